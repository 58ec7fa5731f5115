package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Bus represents a vehicle in a company's fleet
type Bus struct {
	ID          string    `json:"id"`
	PlateNumber string    `json:"plate_number"`
	Model       string    `json:"model,omitempty"`
	Capacity    int       `json:"capacity"`
	CompanyID   string    `json:"company_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewBus creates a new bus for a company
func NewBus(plateNumber, model string, capacity int, companyID string) (*Bus, error) {
	if plateNumber == "" {
		return nil, errors.New("plate number is required")
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if companyID == "" {
		return nil, ErrCompanyNotFound
	}

	now := time.Now().UTC()
	return &Bus{
		ID:          uuid.New().String(),
		PlateNumber: plateNumber,
		Model:       model,
		Capacity:    capacity,
		CompanyID:   companyID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
