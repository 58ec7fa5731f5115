package dto

import (
	"time"

	"github.com/christianbugingo/ticket-website/internal/domain"
)

// RegisterCompanyRequest represents a bus company registration request
type RegisterCompanyRequest struct {
	Name          string `json:"name" binding:"required"`
	Contact       string `json:"contact,omitempty"`
	Description   string `json:"description,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Contact       string    `json:"contact,omitempty"`
	Description   string    `json:"description,omitempty"`
	LicenseNumber string    `json:"license_number,omitempty"`
	Status        string    `json:"status"`
	OwnerID       string    `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// CompanyFromDomain converts domain Company to CompanyResponse
func CompanyFromDomain(c *domain.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		Contact:       c.Contact,
		Description:   c.Description,
		LicenseNumber: c.LicenseNumber,
		Status:        string(c.Status),
		OwnerID:       c.OwnerID,
		CreatedAt:     c.CreatedAt,
	}
}
