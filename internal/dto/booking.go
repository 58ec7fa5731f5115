package dto

import (
	"time"

	"github.com/christianbugingo/ticket-website/internal/domain"
)

// CreateBookingRequest represents request to book a seat
type CreateBookingRequest struct {
	ScheduleID     string `json:"schedule_id" binding:"required"`
	SeatNumber     string `json:"seat_number" binding:"required"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
	PaymentDetails string `json:"payment_details,omitempty"`
}

// BookingResponse represents a booking in API response
type BookingResponse struct {
	ID            string     `json:"id"`
	TicketNumber  string     `json:"ticket_number"`
	UserID        string     `json:"user_id"`
	ScheduleID    string     `json:"schedule_id"`
	SeatNumber    string     `json:"seat_number"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	AmountPaid    float64    `json:"amount_paid"`
	CreatedAt     time.Time  `json:"created_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

// CancelBookingResponse represents response after cancelling a booking
type CancelBookingResponse struct {
	BookingID   string    `json:"booking_id"`
	Status      string    `json:"status"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// BookingDetailResponse represents a booking with its trip details
type BookingDetailResponse struct {
	BookingResponse
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Departure     time.Time `json:"departure"`
	Arrival       time.Time `json:"arrival"`
	PlateNumber   string    `json:"plate_number"`
	CompanyName   string    `json:"company_name"`
	DisplayStatus string    `json:"display_status"`
}

// FromDomain converts domain Booking to BookingResponse
func FromDomain(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID,
		TicketNumber:  b.TicketNumber(),
		UserID:        b.UserID,
		ScheduleID:    b.ScheduleID,
		SeatNumber:    b.SeatNumber,
		Status:        string(b.Status),
		PaymentMethod: string(b.PaymentMethod),
		AmountPaid:    b.AmountPaid,
		CreatedAt:     b.CreatedAt,
		CancelledAt:   b.CancelledAt,
	}
}

// FromBookingDetail converts a domain BookingDetail read model
func FromBookingDetail(d *domain.BookingDetail, now time.Time) *BookingDetailResponse {
	return &BookingDetailResponse{
		BookingResponse: *FromDomain(&d.Booking),
		Origin:          d.Origin,
		Destination:     d.Destination,
		Departure:       d.Departure,
		Arrival:         d.Arrival,
		PlateNumber:     d.PlateNumber,
		CompanyName:     d.CompanyName,
		DisplayStatus:   d.DisplayStatus(d.Departure, now),
	}
}
