package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/pkg/telemetry"
)

// PostgresScheduleRepository implements ScheduleRepository using PostgreSQL
type PostgresScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresScheduleRepository creates a new PostgresScheduleRepository
func NewPostgresScheduleRepository(pool *pgxpool.Pool) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{pool: pool}
}

// Create creates a new schedule
func (r *PostgresScheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.schedule.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("schedule_id", schedule.ID),
		attribute.String("bus_id", schedule.BusID),
	)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO schedules (
			id, bus_id, route_id, departure, arrival, price,
			available_seats, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		schedule.ID,
		schedule.BusID,
		schedule.RouteID,
		schedule.Departure,
		schedule.Arrival,
		schedule.Price,
		schedule.AvailableSeats,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

const scheduleDetailColumns = `
	s.id, s.bus_id, s.route_id, s.departure, s.arrival, s.price,
	s.available_seats, s.created_at, s.updated_at,
	r.origin, r.destination,
	bu.plate_number, bu.model, bu.capacity,
	c.id, c.name
`

const scheduleDetailJoins = `
	FROM schedules s
	JOIN routes r ON r.id = s.route_id
	JOIN buses bu ON bu.id = s.bus_id
	JOIN companies c ON c.id = bu.company_id
`

// GetDetailByID retrieves a schedule with its route, bus and company
func (r *PostgresScheduleRepository) GetDetailByID(ctx context.Context, id string) (*domain.ScheduleDetail, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.schedule.get_detail")
	defer span.End()

	row := r.pool.QueryRow(ctx,
		`SELECT `+scheduleDetailColumns+scheduleDetailJoins+` WHERE s.id = $1`, id)
	detail, err := scanScheduleDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return detail, nil
}

// Search finds bookable schedules matching the trip query. Origin and
// destination match case-insensitively as substrings, departures are
// restricted to the travel day, and only approved companies with enough
// remaining seats are returned, ordered by departure.
func (r *PostgresScheduleRepository) Search(ctx context.Context, params ScheduleSearchParams) ([]*domain.ScheduleDetail, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.schedule.search")
	defer span.End()

	span.SetAttributes(
		attribute.String("origin", params.Origin),
		attribute.String("destination", params.Destination),
		attribute.Int("passengers", params.Passengers),
	)

	rows, err := r.pool.Query(ctx,
		`SELECT `+scheduleDetailColumns+scheduleDetailJoins+`
		WHERE r.origin ILIKE '%' || $1 || '%'
		  AND r.destination ILIKE '%' || $2 || '%'
		  AND s.departure >= $3 AND s.departure < $4
		  AND s.available_seats >= $5
		  AND c.status = 'APPROVED'
		ORDER BY s.departure ASC`,
		params.Origin,
		params.Destination,
		params.DayStart,
		params.DayEnd,
		params.Passengers,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to search schedules: %w", err)
	}
	defer rows.Close()

	return collectScheduleDetails(rows)
}

// ListByCompanyID retrieves all schedules operated by a company
func (r *PostgresScheduleRepository) ListByCompanyID(ctx context.Context, companyID string) ([]*domain.ScheduleDetail, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.schedule.list_by_company")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT `+scheduleDetailColumns+scheduleDetailJoins+`
		WHERE bu.company_id = $1
		ORDER BY s.departure ASC`,
		companyID,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	return collectScheduleDetails(rows)
}

func collectScheduleDetails(rows pgx.Rows) ([]*domain.ScheduleDetail, error) {
	details := make([]*domain.ScheduleDetail, 0)
	for rows.Next() {
		detail, err := scanScheduleDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedules: %w", err)
	}
	return details, nil
}

func scanScheduleDetail(row pgx.Row) (*domain.ScheduleDetail, error) {
	detail := &domain.ScheduleDetail{}
	var model *string

	err := row.Scan(
		&detail.ID,
		&detail.BusID,
		&detail.RouteID,
		&detail.Departure,
		&detail.Arrival,
		&detail.Price,
		&detail.AvailableSeats,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.Origin,
		&detail.Destination,
		&detail.PlateNumber,
		&model,
		&detail.Capacity,
		&detail.CompanyID,
		&detail.CompanyName,
	)
	if err != nil {
		return nil, err
	}

	if model != nil {
		detail.BusModel = *model
	}
	return detail, nil
}
