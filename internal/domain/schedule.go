package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Schedule represents a departure of a bus on a route.
// AvailableSeats is mutated only by booking creation (decrement)
// and cancellation (increment), both guarded in the storage layer.
type Schedule struct {
	ID             string    `json:"id"`
	BusID          string    `json:"bus_id"`
	RouteID        string    `json:"route_id"`
	Departure      time.Time `json:"departure"`
	Arrival        time.Time `json:"arrival"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"available_seats"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewSchedule creates a new schedule with all seats available
func NewSchedule(busID, routeID string, departure, arrival time.Time, price float64, capacity int) (*Schedule, error) {
	if busID == "" {
		return nil, ErrBusNotFound
	}
	if routeID == "" {
		return nil, ErrRouteNotFound
	}
	if departure.Before(time.Now().UTC()) {
		return nil, ErrDepartureInPast
	}
	if !arrival.After(departure) {
		return nil, ErrInvalidTimeRange
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	now := time.Now().UTC()
	return &Schedule{
		ID:             uuid.New().String(),
		BusID:          busID,
		RouteID:        routeID,
		Departure:      departure,
		Arrival:        arrival,
		Price:          price,
		AvailableSeats: capacity,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Duration returns the trip duration formatted as "3h 30m"
func (s *Schedule) Duration() string {
	d := s.Arrival.Sub(s.Departure)
	if d <= 0 {
		return "0h 0m"
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// ScheduleDetail is the schedule read model joined with its bus,
// route and operating company.
type ScheduleDetail struct {
	Schedule
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	PlateNumber string `json:"plate_number"`
	BusModel    string `json:"bus_model,omitempty"`
	Capacity    int    `json:"capacity"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
}
