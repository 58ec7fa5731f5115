package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/internal/dto"
	"github.com/christianbugingo/ticket-website/internal/gateway"
	"github.com/christianbugingo/ticket-website/internal/repository"
	"github.com/christianbugingo/ticket-website/pkg/logger"
	"github.com/christianbugingo/ticket-website/pkg/telemetry"
)

// BookingService defines the interface for booking business logic
type BookingService interface {
	// CreateBooking atomically charges the payment and reserves a seat
	CreateBooking(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)

	// CancelBooking cancels a booking and restores its seat
	CancelBooking(ctx context.Context, bookingID, userID string) (*dto.CancelBookingResponse, error)

	// GetBooking retrieves one of the user's bookings with trip details
	GetBooking(ctx context.Context, bookingID, userID string) (*dto.BookingDetailResponse, error)

	// GetUserBookings retrieves the user's booking history, newest first
	GetUserBookings(ctx context.Context, userID string, page, pageSize int) ([]*dto.BookingDetailResponse, error)
}

// bookingService implements BookingService
type bookingService struct {
	bookingRepo    repository.BookingRepository
	paymentGateway gateway.PaymentGateway
	eventPublisher EventPublisher
	searchCache    repository.SearchCache
	chargeTimeout  time.Duration
}

// BookingServiceConfig contains configuration for the booking service
type BookingServiceConfig struct {
	// ChargeTimeout bounds the payment charge inside the reservation
	// transaction; expiry is treated as a payment failure.
	ChargeTimeout time.Duration
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repository.BookingRepository,
	paymentGateway gateway.PaymentGateway,
	eventPublisher EventPublisher,
	searchCache repository.SearchCache,
	cfg *BookingServiceConfig,
) BookingService {
	chargeTimeout := 10 * time.Second
	if cfg != nil && cfg.ChargeTimeout > 0 {
		chargeTimeout = cfg.ChargeTimeout
	}
	if eventPublisher == nil {
		eventPublisher = NewNoOpEventPublisher()
	}
	if searchCache == nil {
		searchCache = repository.NewNoOpSearchCache()
	}
	return &bookingService{
		bookingRepo:    bookingRepo,
		paymentGateway: paymentGateway,
		eventPublisher: eventPublisher,
		searchCache:    searchCache,
		chargeTimeout:  chargeTimeout,
	}
}

// CreateBooking atomically charges the payment and reserves a seat.
// Either the booking exists, payment succeeded and the seat counter is
// decremented, or none of it happened.
func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.create")
	defer span.End()

	if req == nil {
		span.SetStatus(codes.Error, "invalid schedule_id")
		return nil, domain.ErrInvalidScheduleID
	}

	booking, err := domain.NewBooking(userID, req.ScheduleID, req.SeatNumber, domain.PaymentMethod(req.PaymentMethod))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("schedule_id", req.ScheduleID),
		attribute.String("payment_method", req.PaymentMethod),
	)

	charge := func(chargeCtx context.Context, amount float64) (string, error) {
		chargeCtx, cancel := context.WithTimeout(chargeCtx, s.chargeTimeout)
		defer cancel()

		resp, err := s.paymentGateway.Charge(chargeCtx, &gateway.ChargeRequest{
			Reference: booking.ID,
			UserID:    userID,
			Amount:    amount,
			Currency:  "RWF",
			Method:    req.PaymentMethod,
			Details:   req.PaymentDetails,
		})
		if err != nil {
			return "", err
		}
		if !resp.Success {
			return "", errors.New(resp.FailureReason)
		}
		return resp.TransactionID, nil
	}

	booking, err = s.bookingRepo.Reserve(ctx, booking, charge)
	if err != nil {
		if !domain.IsNotFoundError(err) && !domain.IsConflictError(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}

	s.notifyConfirmed(ctx, booking)

	span.SetStatus(codes.Ok, "")
	return dto.FromDomain(booking), nil
}

// CancelBooking cancels a booking and restores its seat. Only the
// booking owner may cancel, and only until two hours before departure.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID, userID string) (*dto.CancelBookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.cancel")
	defer span.End()

	if bookingID == "" {
		span.SetStatus(codes.Error, "invalid booking_id")
		return nil, domain.ErrInvalidBookingID
	}
	if userID == "" {
		span.SetStatus(codes.Error, "invalid user_id")
		return nil, domain.ErrInvalidUserID
	}

	span.SetAttributes(
		attribute.String("booking_id", bookingID),
		attribute.String("user_id", userID),
	)

	booking, err := s.bookingRepo.CancelWithRestore(ctx, bookingID, userID, time.Now().UTC())
	if err != nil {
		if !domain.IsNotFoundError(err) && !domain.IsConflictError(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}

	s.notifyCancelled(ctx, booking)

	span.SetStatus(codes.Ok, "")
	return &dto.CancelBookingResponse{
		BookingID:   booking.ID,
		Status:      string(booking.Status),
		CancelledAt: *booking.CancelledAt,
	}, nil
}

// GetBooking retrieves one of the user's bookings with trip details
func (s *bookingService) GetBooking(ctx context.Context, bookingID, userID string) (*dto.BookingDetailResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.get")
	defer span.End()

	if bookingID == "" {
		return nil, domain.ErrInvalidBookingID
	}
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}

	detail, err := s.bookingRepo.GetDetailByID(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromBookingDetail(detail, time.Now().UTC()), nil
}

// GetUserBookings retrieves the user's booking history, newest first
func (s *bookingService) GetUserBookings(ctx context.Context, userID string, page, pageSize int) ([]*dto.BookingDetailResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.list")
	defer span.End()

	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	details, err := s.bookingRepo.ListByUserID(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	responses := make([]*dto.BookingDetailResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, dto.FromBookingDetail(detail, now))
	}
	return responses, nil
}

// notifyConfirmed publishes the confirmed event and invalidates the
// search cache, best effort. Failures are logged and never surfaced;
// the booking is already committed.
func (s *bookingService) notifyConfirmed(ctx context.Context, booking *domain.Booking) {
	if err := s.eventPublisher.PublishBookingConfirmed(ctx, booking); err != nil {
		logger.Get().Warn("failed to publish booking confirmed event",
			zap.String("booking_id", booking.ID),
			zap.Error(err))
	}
	s.searchCache.Invalidate(ctx)
}

func (s *bookingService) notifyCancelled(ctx context.Context, booking *domain.Booking) {
	if err := s.eventPublisher.PublishBookingCancelled(ctx, booking); err != nil {
		logger.Get().Warn("failed to publish booking cancelled event",
			zap.String("booking_id", booking.ID),
			zap.Error(err))
	}
	s.searchCache.Invalidate(ctx)
}
