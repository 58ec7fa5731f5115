package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/internal/dto"
	"github.com/christianbugingo/ticket-website/internal/repository"
	"github.com/christianbugingo/ticket-website/pkg/telemetry"
)

// CompanyService defines operations for bus operator companies
type CompanyService interface {
	// RegisterCompany registers a new company pending admin approval
	// and upgrades the owner to the BUS_OPERATOR role
	RegisterCompany(ctx context.Context, ownerUserID string, req *dto.RegisterCompanyRequest) (*dto.CompanyResponse, error)

	// GetMyCompany retrieves the caller's company
	GetMyCompany(ctx context.Context, ownerUserID string) (*dto.CompanyResponse, error)

	// ListCompanyBookings lists bookings taken on the company's schedules
	ListCompanyBookings(ctx context.Context, ownerUserID string, page, pageSize int) ([]*dto.BookingDetailResponse, error)
}

// companyService implements CompanyService
type companyService struct {
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	bookingRepo repository.BookingRepository,
) CompanyService {
	return &companyService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
	}
}

// RegisterCompany registers a new company pending admin approval. The
// owner becomes a BUS_OPERATOR but cannot publish schedules until an
// admin approves the company.
func (s *companyService) RegisterCompany(ctx context.Context, ownerUserID string, req *dto.RegisterCompanyRequest) (*dto.CompanyResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.company.register")
	defer span.End()

	span.SetAttributes(attribute.String("owner_id", ownerUserID))

	if _, err := s.companyRepo.GetByOwnerID(ctx, ownerUserID); err == nil {
		return nil, domain.ErrCompanyAlreadyExists
	} else if !domain.IsNotFoundError(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	company, err := domain.NewCompany(req.Name, req.Contact, req.Description, req.LicenseNumber, ownerUserID)
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, ownerUserID, domain.RoleBusOperator); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.CompanyFromDomain(company), nil
}

// GetMyCompany retrieves the caller's company
func (s *companyService) GetMyCompany(ctx context.Context, ownerUserID string) (*dto.CompanyResponse, error) {
	if ownerUserID == "" {
		return nil, domain.ErrInvalidUserID
	}
	company, err := s.companyRepo.GetByOwnerID(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	return dto.CompanyFromDomain(company), nil
}

// ListCompanyBookings lists bookings taken on the company's schedules
func (s *companyService) ListCompanyBookings(ctx context.Context, ownerUserID string, page, pageSize int) ([]*dto.BookingDetailResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.company.list_bookings")
	defer span.End()

	company, err := s.companyRepo.GetByOwnerID(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	details, err := s.bookingRepo.ListByCompanyID(ctx, company.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := time.Now().UTC()
	responses := make([]*dto.BookingDetailResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, dto.FromBookingDetail(detail, now))
	}
	return responses, nil
}
