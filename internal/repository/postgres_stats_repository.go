package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStatsRepository implements StatsRepository using PostgreSQL
type PostgresStatsRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresStatsRepository creates a new PostgresStatsRepository
func NewPostgresStatsRepository(pool *pgxpool.Pool) *PostgresStatsRepository {
	return &PostgresStatsRepository{pool: pool}
}

// GetPlatformStats computes the admin dashboard aggregates in one round trip
func (r *PostgresStatsRepository) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM companies),
			(SELECT COUNT(*) FROM companies WHERE status = 'PENDING'),
			(SELECT COUNT(*) FROM buses),
			(SELECT COUNT(*) FROM schedules),
			(SELECT COUNT(*) FROM bookings),
			(SELECT COUNT(*) FROM bookings WHERE status IN ('PENDING', 'CONFIRMED')),
			(SELECT COALESCE(SUM(amount_paid), 0) FROM bookings WHERE status != 'CANCELLED')
	`).Scan(
		&stats.TotalUsers,
		&stats.TotalCompanies,
		&stats.PendingCompanies,
		&stats.TotalBuses,
		&stats.TotalSchedules,
		&stats.TotalBookings,
		&stats.ActiveBookings,
		&stats.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute platform stats: %w", err)
	}
	return stats, nil
}
