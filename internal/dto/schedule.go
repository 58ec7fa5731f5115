package dto

import (
	"time"

	"github.com/christianbugingo/ticket-website/internal/domain"
)

// SearchRoutesRequest represents a trip search query
type SearchRoutesRequest struct {
	Origin      string `form:"origin" binding:"required"`
	Destination string `form:"destination" binding:"required"`
	TravelDate  string `form:"travel_date" binding:"required"` // YYYY-MM-DD
	Passengers  int    `form:"passengers,default=1"`
}

// CreateScheduleRequest represents a schedule creation request
type CreateScheduleRequest struct {
	BusID     string    `json:"bus_id" binding:"required"`
	RouteID   string    `json:"route_id" binding:"required"`
	Departure time.Time `json:"departure" binding:"required"`
	Arrival   time.Time `json:"arrival" binding:"required"`
	Price     float64   `json:"price" binding:"required,min=0"`
}

// CreateRouteRequest represents a route creation request
type CreateRouteRequest struct {
	Origin      string  `json:"origin" binding:"required"`
	Destination string  `json:"destination" binding:"required"`
	DistanceKM  float64 `json:"distance_km,omitempty"`
}

// CreateBusRequest represents a bus registration request
type CreateBusRequest struct {
	PlateNumber string `json:"plate_number" binding:"required"`
	Model       string `json:"model,omitempty"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
}

// ScheduleResponse represents a schedule with trip details
type ScheduleResponse struct {
	ID             string    `json:"id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Departure      time.Time `json:"departure"`
	Arrival        time.Time `json:"arrival"`
	Duration       string    `json:"duration"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"available_seats"`
	PlateNumber    string    `json:"plate_number"`
	BusModel       string    `json:"bus_model,omitempty"`
	Capacity       int       `json:"capacity"`
	CompanyName    string    `json:"company_name"`
}

// RouteResponse represents a route in API responses
type RouteResponse struct {
	ID          string  `json:"id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKM  float64 `json:"distance_km,omitempty"`
}

// BusResponse represents a bus in API responses
type BusResponse struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plate_number"`
	Model       string `json:"model,omitempty"`
	Capacity    int    `json:"capacity"`
	CompanyID   string `json:"company_id"`
}

// ScheduleFromDetail converts a domain ScheduleDetail read model
func ScheduleFromDetail(d *domain.ScheduleDetail) *ScheduleResponse {
	return &ScheduleResponse{
		ID:             d.ID,
		Origin:         d.Origin,
		Destination:    d.Destination,
		Departure:      d.Departure,
		Arrival:        d.Arrival,
		Duration:       d.Duration(),
		Price:          d.Price,
		AvailableSeats: d.AvailableSeats,
		PlateNumber:    d.PlateNumber,
		BusModel:       d.BusModel,
		Capacity:       d.Capacity,
		CompanyName:    d.CompanyName,
	}
}

// RouteFromDomain converts domain Route to RouteResponse
func RouteFromDomain(r *domain.Route) *RouteResponse {
	return &RouteResponse{
		ID:          r.ID,
		Origin:      r.Origin,
		Destination: r.Destination,
		DistanceKM:  r.DistanceKM,
	}
}

// BusFromDomain converts domain Bus to BusResponse
func BusFromDomain(b *domain.Bus) *BusResponse {
	return &BusResponse{
		ID:          b.ID,
		PlateNumber: b.PlateNumber,
		Model:       b.Model,
		Capacity:    b.Capacity,
		CompanyID:   b.CompanyID,
	}
}
