package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/christianbugingo/ticket-website/internal/domain"
)

// PostgresRouteRepository implements RouteRepository using PostgreSQL
type PostgresRouteRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRouteRepository creates a new PostgresRouteRepository
func NewPostgresRouteRepository(pool *pgxpool.Pool) *PostgresRouteRepository {
	return &PostgresRouteRepository{pool: pool}
}

// Create creates a new route
func (r *PostgresRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO routes (id, origin, destination, distance_km, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		route.ID,
		route.Origin,
		route.Destination,
		route.DistanceKM,
		route.CreatedAt,
		route.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}
	return nil
}

// GetByID retrieves a route by ID
func (r *PostgresRouteRepository) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	route := &domain.Route{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, origin, destination, distance_km, created_at, updated_at
		FROM routes
		WHERE id = $1
	`, id).Scan(
		&route.ID,
		&route.Origin,
		&route.Destination,
		&route.DistanceKM,
		&route.CreatedAt,
		&route.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	return route, nil
}

// List retrieves all routes
func (r *PostgresRouteRepository) List(ctx context.Context) ([]*domain.Route, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, origin, destination, distance_km, created_at, updated_at
		FROM routes
		ORDER BY origin ASC, destination ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	defer rows.Close()

	routes := make([]*domain.Route, 0)
	for rows.Next() {
		route := &domain.Route{}
		if err := rows.Scan(
			&route.ID,
			&route.Origin,
			&route.Destination,
			&route.DistanceKM,
			&route.CreatedAt,
			&route.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate routes: %w", err)
	}
	return routes, nil
}
