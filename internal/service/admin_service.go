package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/internal/dto"
	"github.com/christianbugingo/ticket-website/internal/repository"
	"github.com/christianbugingo/ticket-website/pkg/telemetry"
)

// AdminService defines platform administration operations
type AdminService interface {
	// ListUsers lists users with their booking counts
	ListUsers(ctx context.Context, page, pageSize int) ([]*dto.UserWithStatsResponse, error)

	// ListCompanies lists companies, optionally filtered by status
	ListCompanies(ctx context.Context, status string, page, pageSize int) ([]*dto.CompanyResponse, error)

	// UpdateCompanyStatus approves or suspends a company
	UpdateCompanyStatus(ctx context.Context, companyID string, status string) (*dto.CompanyResponse, error)

	// GetPlatformStats returns aggregate platform metrics
	GetPlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error)
}

// adminService implements AdminService
type adminService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	statsRepo   repository.StatsRepository
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	statsRepo repository.StatsRepository,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		statsRepo:   statsRepo,
	}
}

// ListUsers lists users with their booking counts
func (s *adminService) ListUsers(ctx context.Context, page, pageSize int) ([]*dto.UserWithStatsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.admin.list_users")
	defer span.End()

	page, pageSize = clampPage(page, pageSize)

	users, counts, err := s.userRepo.ListWithBookingCounts(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	responses := make([]*dto.UserWithStatsResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, &dto.UserWithStatsResponse{
			ID:           user.ID,
			Email:        user.Email,
			Name:         user.Name,
			Role:         string(user.Role),
			BookingCount: counts[user.ID],
			CreatedAt:    user.CreatedAt,
		})
	}
	return responses, nil
}

// ListCompanies lists companies, optionally filtered by status
func (s *adminService) ListCompanies(ctx context.Context, status string, page, pageSize int) ([]*dto.CompanyResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.admin.list_companies")
	defer span.End()

	page, pageSize = clampPage(page, pageSize)

	companies, err := s.companyRepo.List(ctx, domain.CompanyStatus(status), pageSize, (page-1)*pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	responses := make([]*dto.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		responses = append(responses, dto.CompanyFromDomain(company))
	}
	return responses, nil
}

// UpdateCompanyStatus approves or suspends a company
func (s *adminService) UpdateCompanyStatus(ctx context.Context, companyID string, status string) (*dto.CompanyResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.admin.update_company_status")
	defer span.End()

	span.SetAttributes(
		attribute.String("company_id", companyID),
		attribute.String("status", status),
	)

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	switch domain.CompanyStatus(status) {
	case domain.CompanyStatusApproved:
		company.Approve()
	case domain.CompanyStatusSuspended:
		company.Suspend()
	default:
		return nil, domain.ErrInvalidCompanyStatus
	}

	if err := s.companyRepo.UpdateStatus(ctx, company.ID, company.Status); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.CompanyFromDomain(company), nil
}

// GetPlatformStats returns aggregate platform metrics
func (s *adminService) GetPlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.admin.platform_stats")
	defer span.End()

	stats, err := s.statsRepo.GetPlatformStats(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &dto.PlatformStatsResponse{
		TotalUsers:       stats.TotalUsers,
		TotalCompanies:   stats.TotalCompanies,
		PendingCompanies: stats.PendingCompanies,
		TotalBuses:       stats.TotalBuses,
		TotalSchedules:   stats.TotalSchedules,
		TotalBookings:    stats.TotalBookings,
		ActiveBookings:   stats.ActiveBookings,
		TotalRevenue:     stats.TotalRevenue,
	}, nil
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
