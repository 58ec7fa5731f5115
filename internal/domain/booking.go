package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking (matches DB ENUM)
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	// BookingStatusCancelled is terminal; a cancelled booking never
	// transitions again.
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// PaymentMethod represents the method used to pay for a booking
type PaymentMethod string

const (
	PaymentMethodMTNMobileMoney PaymentMethod = "mtn_mobile_money"
	PaymentMethodCreditCard     PaymentMethod = "credit_card"
)

// IsValid checks whether the payment method is supported
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodMTNMobileMoney, PaymentMethodCreditCard:
		return true
	}
	return false
}

// CancellationWindow is the minimum time before departure at which a
// booking may still be cancelled.
const CancellationWindow = 2 * time.Hour

// Booking represents a seat reservation on a schedule
type Booking struct {
	ID            string        `json:"id"`
	TicketSeq     int64         `json:"-"`
	UserID        string        `json:"user_id"`
	ScheduleID    string        `json:"schedule_id"`
	SeatNumber    string        `json:"seat_number"`
	Status        BookingStatus `json:"status"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	AmountPaid    float64       `json:"amount_paid"`
	PaymentRef    string        `json:"payment_ref,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
}

// NewBooking creates a booking in PENDING status; it is confirmed once
// payment succeeds within the reservation transaction.
func NewBooking(userID, scheduleID, seatNumber string, method PaymentMethod) (*Booking, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if scheduleID == "" {
		return nil, ErrInvalidScheduleID
	}
	if seatNumber == "" {
		return nil, ErrInvalidSeatNumber
	}
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	now := time.Now().UTC()
	return &Booking{
		ID:            uuid.New().String(),
		UserID:        userID,
		ScheduleID:    scheduleID,
		SeatNumber:    seatNumber,
		Status:        BookingStatusPending,
		PaymentMethod: method,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// TicketNumber returns the human-readable ticket identifier
func (b *Booking) TicketNumber() string {
	return fmt.Sprintf("TKT-%06d", b.TicketSeq)
}

// IsCancellable returns true when the booking status permits cancellation
func (b *Booking) IsCancellable() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// WithinCancellationWindow returns true when cancellation is still
// allowed relative to the schedule departure.
func WithinCancellationWindow(departure, now time.Time) bool {
	return departure.Sub(now) >= CancellationWindow
}

// DisplayStatus is the passenger-facing trip status derived from the
// booking status and the schedule departure.
func (b *Booking) DisplayStatus(departure, now time.Time) string {
	if b.Status == BookingStatusCancelled {
		return "Cancelled"
	}
	if departure.After(now) {
		return "Upcoming"
	}
	return "Completed"
}

// BookingDetail is the booking read model joined with its schedule,
// route and company for history and dashboard views.
type BookingDetail struct {
	Booking
	Departure   time.Time `json:"departure"`
	Arrival     time.Time `json:"arrival"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	PlateNumber string    `json:"plate_number"`
	CompanyName string    `json:"company_name"`
	Price       float64   `json:"price"`
}
