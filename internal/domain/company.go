package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CompanyStatus represents the approval status of a bus company (matches DB ENUM)
type CompanyStatus string

const (
	CompanyStatusPending   CompanyStatus = "PENDING"
	CompanyStatusApproved  CompanyStatus = "APPROVED"
	CompanyStatusSuspended CompanyStatus = "SUSPENDED"
)

// Company represents a bus operator company.
// New companies start PENDING and require admin approval before
// their buses and schedules become bookable.
type Company struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Contact       string        `json:"contact,omitempty"`
	Description   string        `json:"description,omitempty"`
	LogoURL       string        `json:"logo_url,omitempty"`
	LicenseNumber string        `json:"license_number,omitempty"`
	Status        CompanyStatus `json:"status"`
	OwnerID       string        `json:"owner_id"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewCompany creates a new company pending admin approval
func NewCompany(name, contact, description, licenseNumber, ownerID string) (*Company, error) {
	if name == "" {
		return nil, errors.New("company name is required")
	}
	if ownerID == "" {
		return nil, ErrInvalidUserID
	}

	now := time.Now().UTC()
	return &Company{
		ID:            uuid.New().String(),
		Name:          name,
		Contact:       contact,
		Description:   description,
		LicenseNumber: licenseNumber,
		Status:        CompanyStatusPending,
		OwnerID:       ownerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Approve marks the company as approved
func (c *Company) Approve() {
	c.Status = CompanyStatusApproved
	c.UpdatedAt = time.Now().UTC()
}

// Suspend marks the company as suspended
func (c *Company) Suspend() {
	c.Status = CompanyStatusSuspended
	c.UpdatedAt = time.Now().UTC()
}

// IsApproved returns true when the company can operate schedules
func (c *Company) IsApproved() bool {
	return c.Status == CompanyStatusApproved
}
