package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Route represents an inter-district route
type Route struct {
	ID          string    `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DistanceKM  float64   `json:"distance_km,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewRoute creates a new route
func NewRoute(origin, destination string, distanceKM float64) (*Route, error) {
	if origin == "" || destination == "" {
		return nil, errors.New("origin and destination are required")
	}

	now := time.Now().UTC()
	return &Route{
		ID:          uuid.New().String(),
		Origin:      origin,
		Destination: destination,
		DistanceKM:  distanceKM,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
