package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/pkg/telemetry"
)

// PostgresBookingRepository implements BookingRepository using PostgreSQL
// with pgxpool. Seat-counter mutations run inside transactions and are
// guarded by conditional updates so concurrent bookings can never
// oversell a schedule.
type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository
func NewPostgresBookingRepository(pool *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool}
}

// Reserve creates a confirmed booking and decrements the schedule seat
// counter in a single transaction. The charge callback runs inside the
// transaction; if it fails, nothing is persisted.
func (r *PostgresBookingRepository) Reserve(ctx context.Context, booking *domain.Booking, charge ChargeFunc) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.reserve")
	defer span.End()

	span.SetAttributes(
		attribute.String("booking_id", booking.ID),
		attribute.String("user_id", booking.UserID),
		attribute.String("schedule_id", booking.ScheduleID),
	)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx)

	var price float64
	var availableSeats int
	err = tx.QueryRow(ctx,
		`SELECT price, available_seats FROM schedules WHERE id = $1`,
		booking.ScheduleID,
	).Scan(&price, &availableSeats)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	if availableSeats < 1 {
		return nil, domain.ErrInsufficientSeats
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (
			id, user_id, schedule_id, seat_number, status,
			payment_method, amount_paid, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ticket_seq
	`,
		booking.ID,
		booking.UserID,
		booking.ScheduleID,
		booking.SeatNumber,
		string(domain.BookingStatusPending),
		string(booking.PaymentMethod),
		price,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&booking.TicketSeq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	paymentRef, err := charge(ctx, price)
	if err != nil {
		telemetry.AddSpanEvent(ctx, "payment.failed", attribute.String("reason", err.Error()))
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
	}

	now := time.Now().UTC()
	_, err = tx.Exec(ctx, `
		UPDATE bookings SET status = $2, payment_ref = $3, updated_at = $4
		WHERE id = $1
	`, booking.ID, string(domain.BookingStatusConfirmed), paymentRef, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	// Conditional decrement is the oversell guard: under concurrent
	// reservations only as many transactions commit as seats remain.
	result, err := tx.Exec(ctx, `
		UPDATE schedules
		SET available_seats = available_seats - 1, updated_at = $2
		WHERE id = $1 AND available_seats >= 1
	`, booking.ScheduleID, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to decrement seats: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrInsufficientSeats
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	booking.Status = domain.BookingStatusConfirmed
	booking.AmountPaid = price
	booking.PaymentRef = paymentRef
	booking.UpdatedAt = now

	span.SetStatus(codes.Ok, "")
	return booking, nil
}

// CancelWithRestore cancels a booking and restores the seat to its
// schedule in a single transaction. CANCELLED is terminal: the
// status-guarded update makes a second cancellation a no-op that
// surfaces ErrNotCancellable, so the counter is incremented at most
// once per booking.
func (r *PostgresBookingRepository) CancelWithRestore(ctx context.Context, bookingID, userID string, now time.Time) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.cancel")
	defer span.End()

	span.SetAttributes(
		attribute.String("booking_id", bookingID),
		attribute.String("user_id", userID),
	)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx)

	booking := &domain.Booking{ID: bookingID, UserID: userID}
	var status string
	var method string
	var departure time.Time
	err = tx.QueryRow(ctx, `
		SELECT b.ticket_seq, b.schedule_id, b.seat_number, b.status,
		       b.payment_method, b.amount_paid, b.payment_ref, b.created_at,
		       s.departure
		FROM bookings b
		JOIN schedules s ON s.id = b.schedule_id
		WHERE b.id = $1 AND b.user_id = $2
	`, bookingID, userID).Scan(
		&booking.TicketSeq,
		&booking.ScheduleID,
		&booking.SeatNumber,
		&status,
		&method,
		&booking.AmountPaid,
		&booking.PaymentRef,
		&booking.CreatedAt,
		&departure,
	)
	if err != nil {
		// Bookings of other users are reported as not found so
		// existence does not leak across accounts.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	booking.Status = domain.BookingStatus(status)
	booking.PaymentMethod = domain.PaymentMethod(method)

	if !booking.IsCancellable() {
		return nil, domain.ErrNotCancellable
	}
	if !domain.WithinCancellationWindow(departure, now) {
		return nil, domain.ErrCancellationWindowClosed
	}

	result, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $2, cancelled_at = $3, updated_at = $3
		WHERE id = $1 AND status IN ('PENDING', 'CONFIRMED')
	`, bookingID, string(domain.BookingStatusCancelled), now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrNotCancellable
	}

	// Increment never exceeds the bus capacity ceiling.
	_, err = tx.Exec(ctx, `
		UPDATE schedules s
		SET available_seats = s.available_seats + 1, updated_at = $2
		FROM buses bu
		WHERE s.id = $1 AND bu.id = s.bus_id AND s.available_seats < bu.capacity
	`, booking.ScheduleID, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to restore seat: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	booking.Status = domain.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.UpdatedAt = now

	span.SetStatus(codes.Ok, "")
	return booking, nil
}

// GetByID retrieves a booking by its ID
func (r *PostgresBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.get_by_id")
	defer span.End()

	booking := &domain.Booking{}
	var status, method string
	var paymentRef *string
	err := r.pool.QueryRow(ctx, `
		SELECT id, ticket_seq, user_id, schedule_id, seat_number, status,
		       payment_method, amount_paid, payment_ref, created_at, updated_at, cancelled_at
		FROM bookings
		WHERE id = $1
	`, id).Scan(
		&booking.ID,
		&booking.TicketSeq,
		&booking.UserID,
		&booking.ScheduleID,
		&booking.SeatNumber,
		&status,
		&method,
		&booking.AmountPaid,
		&paymentRef,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	booking.Status = domain.BookingStatus(status)
	booking.PaymentMethod = domain.PaymentMethod(method)
	if paymentRef != nil {
		booking.PaymentRef = *paymentRef
	}
	return booking, nil
}

const bookingDetailColumns = `
	b.id, b.ticket_seq, b.user_id, b.schedule_id, b.seat_number, b.status,
	b.payment_method, b.amount_paid, b.payment_ref, b.created_at, b.updated_at, b.cancelled_at,
	s.departure, s.arrival, s.price,
	r.origin, r.destination,
	bu.plate_number,
	c.name
`

const bookingDetailJoins = `
	FROM bookings b
	JOIN schedules s ON s.id = b.schedule_id
	JOIN routes r ON r.id = s.route_id
	JOIN buses bu ON bu.id = s.bus_id
	JOIN companies c ON c.id = bu.company_id
`

// GetDetailByID retrieves a booking with its trip details, scoped to the owner
func (r *PostgresBookingRepository) GetDetailByID(ctx context.Context, id, userID string) (*domain.BookingDetail, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.get_detail")
	defer span.End()

	row := r.pool.QueryRow(ctx,
		`SELECT `+bookingDetailColumns+bookingDetailJoins+` WHERE b.id = $1 AND b.user_id = $2`,
		id, userID,
	)
	detail, err := scanBookingDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get booking detail: %w", err)
	}
	return detail, nil
}

// ListByUserID retrieves a user's bookings, newest first
func (r *PostgresBookingRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.BookingDetail, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.list_by_user")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingDetailColumns+bookingDetailJoins+`
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	return collectBookingDetails(rows)
}

// ListByCompanyID retrieves bookings across a company's buses, newest first
func (r *PostgresBookingRepository) ListByCompanyID(ctx context.Context, companyID string, limit, offset int) ([]*domain.BookingDetail, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.list_by_company")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingDetailColumns+bookingDetailJoins+`
		WHERE bu.company_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`,
		companyID, limit, offset,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list company bookings: %w", err)
	}
	defer rows.Close()

	return collectBookingDetails(rows)
}

func collectBookingDetails(rows pgx.Rows) ([]*domain.BookingDetail, error) {
	details := make([]*domain.BookingDetail, 0)
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking detail: %w", err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate booking details: %w", err)
	}
	return details, nil
}

func scanBookingDetail(row pgx.Row) (*domain.BookingDetail, error) {
	detail := &domain.BookingDetail{}
	var status, method string
	var paymentRef *string

	err := row.Scan(
		&detail.ID,
		&detail.TicketSeq,
		&detail.UserID,
		&detail.ScheduleID,
		&detail.SeatNumber,
		&status,
		&method,
		&detail.AmountPaid,
		&paymentRef,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.CancelledAt,
		&detail.Departure,
		&detail.Arrival,
		&detail.Price,
		&detail.Origin,
		&detail.Destination,
		&detail.PlateNumber,
		&detail.CompanyName,
	)
	if err != nil {
		return nil, err
	}

	detail.Status = domain.BookingStatus(status)
	detail.PaymentMethod = domain.PaymentMethod(method)
	if paymentRef != nil {
		detail.PaymentRef = *paymentRef
	}
	return detail, nil
}
