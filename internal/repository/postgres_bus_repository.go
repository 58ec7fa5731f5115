package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/christianbugingo/ticket-website/internal/domain"
)

// PostgresBusRepository implements BusRepository using PostgreSQL
type PostgresBusRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBusRepository creates a new PostgresBusRepository
func NewPostgresBusRepository(pool *pgxpool.Pool) *PostgresBusRepository {
	return &PostgresBusRepository{pool: pool}
}

// Create creates a new bus
func (r *PostgresBusRepository) Create(ctx context.Context, bus *domain.Bus) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO buses (id, plate_number, model, capacity, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		bus.ID,
		bus.PlateNumber,
		bus.Model,
		bus.Capacity,
		bus.CompanyID,
		bus.CreatedAt,
		bus.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPlateAlreadyExists
		}
		return fmt.Errorf("failed to create bus: %w", err)
	}
	return nil
}

// GetByID retrieves a bus by ID
func (r *PostgresBusRepository) GetByID(ctx context.Context, id string) (*domain.Bus, error) {
	bus := &domain.Bus{}
	var model *string
	err := r.pool.QueryRow(ctx, `
		SELECT id, plate_number, model, capacity, company_id, created_at, updated_at
		FROM buses
		WHERE id = $1
	`, id).Scan(
		&bus.ID,
		&bus.PlateNumber,
		&model,
		&bus.Capacity,
		&bus.CompanyID,
		&bus.CreatedAt,
		&bus.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBusNotFound
		}
		return nil, fmt.Errorf("failed to get bus: %w", err)
	}

	if model != nil {
		bus.Model = *model
	}
	return bus, nil
}

// ListByCompanyID retrieves a company's fleet
func (r *PostgresBusRepository) ListByCompanyID(ctx context.Context, companyID string) ([]*domain.Bus, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, plate_number, model, capacity, company_id, created_at, updated_at
		FROM buses
		WHERE company_id = $1
		ORDER BY plate_number ASC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list buses: %w", err)
	}
	defer rows.Close()

	buses := make([]*domain.Bus, 0)
	for rows.Next() {
		bus := &domain.Bus{}
		var model *string
		if err := rows.Scan(
			&bus.ID,
			&bus.PlateNumber,
			&model,
			&bus.Capacity,
			&bus.CompanyID,
			&bus.CreatedAt,
			&bus.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bus: %w", err)
		}
		if model != nil {
			bus.Model = *model
		}
		buses = append(buses, bus)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buses: %w", err)
	}
	return buses, nil
}
