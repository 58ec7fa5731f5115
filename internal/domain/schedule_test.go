package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewSchedule(t *testing.T) {
	departure := time.Now().UTC().Add(48 * time.Hour)

	tests := []struct {
		name      string
		busID     string
		routeID   string
		departure time.Time
		arrival   time.Time
		price     float64
		capacity  int
		wantErr   error
	}{
		{"valid", "bus-001", "route-001", departure, departure.Add(2 * time.Hour), 3500, 45, nil},
		{"free trip allowed", "bus-001", "route-001", departure, departure.Add(2 * time.Hour), 0, 45, nil},
		{"missing bus", "", "route-001", departure, departure.Add(2 * time.Hour), 3500, 45, ErrBusNotFound},
		{"missing route", "bus-001", "", departure, departure.Add(2 * time.Hour), 3500, 45, ErrRouteNotFound},
		{"departure in past", "bus-001", "route-001", time.Now().UTC().Add(-time.Hour), departure, 3500, 45, ErrDepartureInPast},
		{"arrival before departure", "bus-001", "route-001", departure, departure.Add(-time.Hour), 3500, 45, ErrInvalidTimeRange},
		{"negative price", "bus-001", "route-001", departure, departure.Add(2 * time.Hour), -1, 45, ErrInvalidPrice},
		{"zero capacity", "bus-001", "route-001", departure, departure.Add(2 * time.Hour), 3500, 0, ErrInvalidCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := NewSchedule(tt.busID, tt.routeID, tt.departure, tt.arrival, tt.price, tt.capacity)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewSchedule() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("NewSchedule() unexpected error = %v", err)
				return
			}

			// A new schedule starts fully available
			if schedule.AvailableSeats != tt.capacity {
				t.Errorf("NewSchedule() available seats = %d, want %d", schedule.AvailableSeats, tt.capacity)
			}
		})
	}
}

func TestSchedule_Duration(t *testing.T) {
	departure := time.Date(2026, 9, 12, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		arrival time.Time
		want    string
	}{
		{"two and a half hours", departure.Add(150 * time.Minute), "2h 30m"},
		{"exactly one hour", departure.Add(time.Hour), "1h 0m"},
		{"forty five minutes", departure.Add(45 * time.Minute), "0h 45m"},
		{"degenerate zero", departure, "0h 0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Schedule{Departure: departure, Arrival: tt.arrival}
			if got := s.Duration(); got != tt.want {
				t.Errorf("Duration() = %s, want %s", got, tt.want)
			}
		})
	}
}
