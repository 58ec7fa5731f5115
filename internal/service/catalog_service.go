package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/internal/dto"
	"github.com/christianbugingo/ticket-website/internal/repository"
	"github.com/christianbugingo/ticket-website/pkg/telemetry"
)

const travelDateLayout = "2006-01-02"

// CatalogService defines search and catalog management operations
type CatalogService interface {
	// SearchSchedules finds bookable trips for a travel date
	SearchSchedules(ctx context.Context, req *dto.SearchRoutesRequest) ([]*dto.ScheduleResponse, error)

	// GetSchedule retrieves a schedule with its trip details
	GetSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error)

	// CreateSchedule creates a schedule for one of the operator's buses
	CreateSchedule(ctx context.Context, operatorUserID string, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)

	// CreateRoute creates a route (admin)
	CreateRoute(ctx context.Context, req *dto.CreateRouteRequest) (*dto.RouteResponse, error)

	// ListRoutes lists all routes
	ListRoutes(ctx context.Context) ([]*dto.RouteResponse, error)

	// CreateBus registers a bus in the operator's fleet
	CreateBus(ctx context.Context, operatorUserID string, req *dto.CreateBusRequest) (*dto.BusResponse, error)

	// ListBuses lists the operator's fleet
	ListBuses(ctx context.Context, operatorUserID string) ([]*dto.BusResponse, error)

	// ListCompanySchedules lists the operator's schedules
	ListCompanySchedules(ctx context.Context, operatorUserID string) ([]*dto.ScheduleResponse, error)
}

// catalogService implements CatalogService
type catalogService struct {
	scheduleRepo repository.ScheduleRepository
	routeRepo    repository.RouteRepository
	busRepo      repository.BusRepository
	companyRepo  repository.CompanyRepository
	searchCache  repository.SearchCache
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	scheduleRepo repository.ScheduleRepository,
	routeRepo repository.RouteRepository,
	busRepo repository.BusRepository,
	companyRepo repository.CompanyRepository,
	searchCache repository.SearchCache,
) CatalogService {
	if searchCache == nil {
		searchCache = repository.NewNoOpSearchCache()
	}
	return &catalogService{
		scheduleRepo: scheduleRepo,
		routeRepo:    routeRepo,
		busRepo:      busRepo,
		companyRepo:  companyRepo,
		searchCache:  searchCache,
	}
}

// SearchSchedules finds bookable trips for a travel date
func (s *catalogService) SearchSchedules(ctx context.Context, req *dto.SearchRoutesRequest) ([]*dto.ScheduleResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.search")
	defer span.End()

	if req.Passengers < 1 {
		req.Passengers = 1
	}

	day, err := time.Parse(travelDateLayout, req.TravelDate)
	if err != nil {
		return nil, fmt.Errorf("%w: travel_date must be YYYY-MM-DD", domain.ErrInvalidTimeRange)
	}

	params := repository.ScheduleSearchParams{
		Origin:      req.Origin,
		Destination: req.Destination,
		DayStart:    day,
		DayEnd:      day.Add(24 * time.Hour),
		Passengers:  req.Passengers,
	}

	span.SetAttributes(
		attribute.String("origin", req.Origin),
		attribute.String("destination", req.Destination),
		attribute.String("travel_date", req.TravelDate),
	)

	details, hit := s.searchCache.Get(ctx, params)
	if !hit {
		details, err = s.scheduleRepo.Search(ctx, params)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		s.searchCache.Set(ctx, params, details)
	}
	span.SetAttributes(attribute.Bool("cache_hit", hit))

	return schedulesToResponses(details), nil
}

// GetSchedule retrieves a schedule with its trip details
func (s *catalogService) GetSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidScheduleID
	}
	detail, err := s.scheduleRepo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ScheduleFromDetail(detail), nil
}

// CreateSchedule creates a schedule for one of the operator's buses.
// The bus must belong to the caller's approved company.
func (s *catalogService) CreateSchedule(ctx context.Context, operatorUserID string, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.create_schedule")
	defer span.End()

	company, err := s.approvedCompany(ctx, operatorUserID)
	if err != nil {
		return nil, err
	}

	bus, err := s.busRepo.GetByID(ctx, req.BusID)
	if err != nil {
		return nil, err
	}
	if bus.CompanyID != company.ID {
		return nil, domain.ErrForbidden
	}

	if _, err := s.routeRepo.GetByID(ctx, req.RouteID); err != nil {
		return nil, err
	}

	schedule, err := domain.NewSchedule(req.BusID, req.RouteID, req.Departure, req.Arrival, req.Price, bus.Capacity)
	if err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.searchCache.Invalidate(ctx)

	detail, err := s.scheduleRepo.GetDetailByID(ctx, schedule.ID)
	if err != nil {
		return nil, err
	}
	return dto.ScheduleFromDetail(detail), nil
}

// CreateRoute creates a route (admin)
func (s *catalogService) CreateRoute(ctx context.Context, req *dto.CreateRouteRequest) (*dto.RouteResponse, error) {
	route, err := domain.NewRoute(req.Origin, req.Destination, req.DistanceKM)
	if err != nil {
		return nil, err
	}
	if err := s.routeRepo.Create(ctx, route); err != nil {
		return nil, err
	}
	return dto.RouteFromDomain(route), nil
}

// ListRoutes lists all routes
func (s *catalogService) ListRoutes(ctx context.Context) ([]*dto.RouteResponse, error) {
	routes, err := s.routeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.RouteResponse, 0, len(routes))
	for _, route := range routes {
		responses = append(responses, dto.RouteFromDomain(route))
	}
	return responses, nil
}

// CreateBus registers a bus in the operator's fleet
func (s *catalogService) CreateBus(ctx context.Context, operatorUserID string, req *dto.CreateBusRequest) (*dto.BusResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.create_bus")
	defer span.End()

	company, err := s.companyRepo.GetByOwnerID(ctx, operatorUserID)
	if err != nil {
		return nil, err
	}

	bus, err := domain.NewBus(req.PlateNumber, req.Model, req.Capacity, company.ID)
	if err != nil {
		return nil, err
	}

	if err := s.busRepo.Create(ctx, bus); err != nil {
		if !domain.IsConflictError(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}
	return dto.BusFromDomain(bus), nil
}

// ListBuses lists the operator's fleet
func (s *catalogService) ListBuses(ctx context.Context, operatorUserID string) ([]*dto.BusResponse, error) {
	company, err := s.companyRepo.GetByOwnerID(ctx, operatorUserID)
	if err != nil {
		return nil, err
	}

	buses, err := s.busRepo.ListByCompanyID(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.BusResponse, 0, len(buses))
	for _, bus := range buses {
		responses = append(responses, dto.BusFromDomain(bus))
	}
	return responses, nil
}

// ListCompanySchedules lists the operator's schedules
func (s *catalogService) ListCompanySchedules(ctx context.Context, operatorUserID string) ([]*dto.ScheduleResponse, error) {
	company, err := s.companyRepo.GetByOwnerID(ctx, operatorUserID)
	if err != nil {
		return nil, err
	}

	details, err := s.scheduleRepo.ListByCompanyID(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	return schedulesToResponses(details), nil
}

func (s *catalogService) approvedCompany(ctx context.Context, operatorUserID string) (*domain.Company, error) {
	company, err := s.companyRepo.GetByOwnerID(ctx, operatorUserID)
	if err != nil {
		return nil, err
	}
	if !company.IsApproved() {
		return nil, domain.ErrCompanyNotApproved
	}
	return company, nil
}

func schedulesToResponses(details []*domain.ScheduleDetail) []*dto.ScheduleResponse {
	responses := make([]*dto.ScheduleResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, dto.ScheduleFromDetail(detail))
	}
	return responses
}
