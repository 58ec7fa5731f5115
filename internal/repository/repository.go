package repository

import (
	"context"
	"time"

	"github.com/christianbugingo/ticket-website/internal/domain"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	ListWithBookingCounts(ctx context.Context, limit, offset int) ([]*domain.User, map[string]int, error)
}

// CompanyRepository defines persistence operations for bus companies
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*domain.Company, error)
	UpdateStatus(ctx context.Context, id string, status domain.CompanyStatus) error
	List(ctx context.Context, status domain.CompanyStatus, limit, offset int) ([]*domain.Company, error)
}

// BusRepository defines persistence operations for buses
type BusRepository interface {
	Create(ctx context.Context, bus *domain.Bus) error
	GetByID(ctx context.Context, id string) (*domain.Bus, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]*domain.Bus, error)
}

// RouteRepository defines persistence operations for routes
type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id string) (*domain.Route, error)
	List(ctx context.Context) ([]*domain.Route, error)
}

// ScheduleSearchParams filters the schedule search
type ScheduleSearchParams struct {
	Origin      string
	Destination string
	DayStart    time.Time
	DayEnd      time.Time
	Passengers  int
}

// ScheduleRepository defines persistence operations for schedules
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) error
	GetDetailByID(ctx context.Context, id string) (*domain.ScheduleDetail, error)
	Search(ctx context.Context, params ScheduleSearchParams) ([]*domain.ScheduleDetail, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]*domain.ScheduleDetail, error)
}

// ChargeFunc performs the payment charge for a reservation. It is
// invoked inside the reservation transaction so that a failed charge
// rolls back every storage mutation. It returns the gateway reference.
type ChargeFunc func(ctx context.Context, amount float64) (string, error)

// BookingRepository defines persistence operations for bookings.
// Reserve and CancelWithRestore each run as a single transaction and
// enforce the seat-counter guards in SQL.
type BookingRepository interface {
	Reserve(ctx context.Context, booking *domain.Booking, charge ChargeFunc) (*domain.Booking, error)
	CancelWithRestore(ctx context.Context, bookingID, userID string, now time.Time) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetDetailByID(ctx context.Context, id, userID string) (*domain.BookingDetail, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.BookingDetail, error)
	ListByCompanyID(ctx context.Context, companyID string, limit, offset int) ([]*domain.BookingDetail, error)
}

// PlatformStats holds aggregate counters for the admin dashboard
type PlatformStats struct {
	TotalUsers       int
	TotalCompanies   int
	PendingCompanies int
	TotalBuses       int
	TotalSchedules   int
	TotalBookings    int
	ActiveBookings   int
	TotalRevenue     float64
}

// StatsRepository computes platform-wide aggregates
type StatsRepository interface {
	GetPlatformStats(ctx context.Context) (*PlatformStats, error)
}

// SearchCache caches schedule search results
type SearchCache interface {
	Get(ctx context.Context, params ScheduleSearchParams) ([]*domain.ScheduleDetail, bool)
	Set(ctx context.Context, params ScheduleSearchParams, results []*domain.ScheduleDetail)
	Invalidate(ctx context.Context)
}
