package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/christianbugingo/ticket-website/internal/domain"
)

// PostgresCompanyRepository implements CompanyRepository using PostgreSQL
type PostgresCompanyRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCompanyRepository creates a new PostgresCompanyRepository
func NewPostgresCompanyRepository(pool *pgxpool.Pool) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{pool: pool}
}

// Create creates a new company
func (r *PostgresCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO companies (
			id, name, contact, description, logo_url, license_number,
			status, owner_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		company.ID,
		company.Name,
		company.Contact,
		company.Description,
		company.LogoURL,
		company.LicenseNumber,
		string(company.Status),
		company.OwnerID,
		company.CreatedAt,
		company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// GetByID retrieves a company by ID
func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	return r.getCompany(ctx, `WHERE id = $1`, id)
}

// GetByOwnerID retrieves the company owned by a user
func (r *PostgresCompanyRepository) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Company, error) {
	return r.getCompany(ctx, `WHERE owner_id = $1`, ownerID)
}

func (r *PostgresCompanyRepository) getCompany(ctx context.Context, where string, arg interface{}) (*domain.Company, error) {
	company := &domain.Company{}
	var status string
	var contact, description, logoURL, licenseNumber *string
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, contact, description, logo_url, license_number,
		       status, owner_id, created_at, updated_at
		FROM companies `+where,
		arg,
	).Scan(
		&company.ID,
		&company.Name,
		&contact,
		&description,
		&logoURL,
		&licenseNumber,
		&status,
		&company.OwnerID,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	company.Status = domain.CompanyStatus(status)
	if contact != nil {
		company.Contact = *contact
	}
	if description != nil {
		company.Description = *description
	}
	if logoURL != nil {
		company.LogoURL = *logoURL
	}
	if licenseNumber != nil {
		company.LicenseNumber = *licenseNumber
	}
	return company, nil
}

// UpdateStatus changes a company's approval status
func (r *PostgresCompanyRepository) UpdateStatus(ctx context.Context, id string, status domain.CompanyStatus) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE companies SET status = $2, updated_at = $3
		WHERE id = $1
	`, id, string(status), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update company status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// List retrieves companies, optionally filtered by status
func (r *PostgresCompanyRepository) List(ctx context.Context, status domain.CompanyStatus, limit, offset int) ([]*domain.Company, error) {
	query := `
		SELECT id, name, contact, description, logo_url, license_number,
		       status, owner_id, created_at, updated_at
		FROM companies
	`
	args := []interface{}{limit, offset}
	if status != "" {
		query += ` WHERE status = $3`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]*domain.Company, 0)
	for rows.Next() {
		company := &domain.Company{}
		var st string
		var contact, description, logoURL, licenseNumber *string
		if err := rows.Scan(
			&company.ID,
			&company.Name,
			&contact,
			&description,
			&logoURL,
			&licenseNumber,
			&st,
			&company.OwnerID,
			&company.CreatedAt,
			&company.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		company.Status = domain.CompanyStatus(st)
		if contact != nil {
			company.Contact = *contact
		}
		if description != nil {
			company.Description = *description
		}
		if logoURL != nil {
			company.LogoURL = *logoURL
		}
		if licenseNumber != nil {
			company.LicenseNumber = *licenseNumber
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate companies: %w", err)
	}
	return companies, nil
}
