package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/internal/dto"
)

func TestCompanyService_RegisterCompany(t *testing.T) {
	tests := []struct {
		name       string
		req        *dto.RegisterCompanyRequest
		setupMocks func(*MockCompanyRepository, *MockUserRepository)
		wantErr    error
	}{
		{
			name: "successful registration",
			req:  &dto.RegisterCompanyRequest{Name: "Volcano Express", Contact: "+250788111222"},
			setupMocks: func(cr *MockCompanyRepository, ur *MockUserRepository) {
				cr.GetByOwnerIDFunc = func(ctx context.Context, ownerID string) (*domain.Company, error) {
					return nil, domain.ErrCompanyNotFound
				}
			},
		},
		{
			name: "owner already has a company",
			req:  &dto.RegisterCompanyRequest{Name: "Second Company"},
			setupMocks: func(cr *MockCompanyRepository, ur *MockUserRepository) {
				cr.GetByOwnerIDFunc = func(ctx context.Context, ownerID string) (*domain.Company, error) {
					return &domain.Company{ID: "company-001", OwnerID: ownerID}, nil
				}
			},
			wantErr: domain.ErrCompanyAlreadyExists,
		},
		{
			name: "lookup failure propagates",
			req:  &dto.RegisterCompanyRequest{Name: "Volcano Express"},
			setupMocks: func(cr *MockCompanyRepository, ur *MockUserRepository) {
				cr.GetByOwnerIDFunc = func(ctx context.Context, ownerID string) (*domain.Company, error) {
					return nil, domain.ErrStorageUnavailable
				}
			},
			wantErr: domain.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			companyRepo := &MockCompanyRepository{}
			userRepo := &MockUserRepository{}
			if tt.setupMocks != nil {
				tt.setupMocks(companyRepo, userRepo)
			}

			svc := NewCompanyService(companyRepo, userRepo, &MockBookingRepository{})

			resp, err := svc.RegisterCompany(context.Background(), "user-001", tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("RegisterCompany() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("RegisterCompany() unexpected error = %v", err)
				return
			}

			if resp.Status != string(domain.CompanyStatusPending) {
				t.Errorf("RegisterCompany() status = %s, want PENDING", resp.Status)
			}
			if resp.OwnerID != "user-001" {
				t.Errorf("RegisterCompany() owner = %s, want user-001", resp.OwnerID)
			}
		})
	}
}

func TestCompanyService_RegisterCompany_UpgradesOwnerRole(t *testing.T) {
	var upgradedID string
	var upgradedRole domain.Role

	companyRepo := &MockCompanyRepository{
		GetByOwnerIDFunc: func(ctx context.Context, ownerID string) (*domain.Company, error) {
			return nil, domain.ErrCompanyNotFound
		},
	}
	userRepo := &MockUserRepository{
		UpdateRoleFunc: func(ctx context.Context, id string, role domain.Role) error {
			upgradedID = id
			upgradedRole = role
			return nil
		},
	}

	svc := NewCompanyService(companyRepo, userRepo, &MockBookingRepository{})

	if _, err := svc.RegisterCompany(context.Background(), "user-001", &dto.RegisterCompanyRequest{Name: "Volcano Express"}); err != nil {
		t.Fatalf("RegisterCompany() unexpected error = %v", err)
	}

	if upgradedID != "user-001" {
		t.Errorf("UpdateRole() user = %s, want user-001", upgradedID)
	}
	if upgradedRole != domain.RoleBusOperator {
		t.Errorf("UpdateRole() role = %s, want BUS_OPERATOR", upgradedRole)
	}
}

func TestCompanyService_GetMyCompany(t *testing.T) {
	companyRepo := &MockCompanyRepository{
		GetByOwnerIDFunc: func(ctx context.Context, ownerID string) (*domain.Company, error) {
			if ownerID != "user-001" {
				return nil, domain.ErrCompanyNotFound
			}
			return &domain.Company{ID: "company-001", Name: "Volcano Express", OwnerID: ownerID, Status: domain.CompanyStatusApproved}, nil
		},
	}

	svc := NewCompanyService(companyRepo, &MockUserRepository{}, &MockBookingRepository{})

	resp, err := svc.GetMyCompany(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("GetMyCompany() unexpected error = %v", err)
	}
	if resp.Name != "Volcano Express" {
		t.Errorf("GetMyCompany() name = %s, want Volcano Express", resp.Name)
	}

	if _, err := svc.GetMyCompany(context.Background(), "user-002"); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Errorf("GetMyCompany() error = %v, want %v", err, domain.ErrCompanyNotFound)
	}
	if _, err := svc.GetMyCompany(context.Background(), ""); !errors.Is(err, domain.ErrInvalidUserID) {
		t.Errorf("GetMyCompany() error = %v, want %v", err, domain.ErrInvalidUserID)
	}
}

func TestCompanyService_ListCompanyBookings(t *testing.T) {
	var gotCompanyID string
	var gotLimit, gotOffset int

	bookingRepo := &MockBookingRepository{
		ListByCompanyIDFunc: func(ctx context.Context, companyID string, limit, offset int) ([]*domain.BookingDetail, error) {
			gotCompanyID = companyID
			gotLimit = limit
			gotOffset = offset
			return []*domain.BookingDetail{
				{
					Booking: domain.Booking{
						ID:     "booking-001",
						Status: domain.BookingStatusConfirmed,
					},
					Departure: time.Now().UTC().Add(24 * time.Hour),
				},
			}, nil
		},
	}

	svc := NewCompanyService(&MockCompanyRepository{}, &MockUserRepository{}, bookingRepo)

	resp, err := svc.ListCompanyBookings(context.Background(), "operator-001", 3, 10)
	if err != nil {
		t.Fatalf("ListCompanyBookings() unexpected error = %v", err)
	}

	if gotCompanyID != "company-001" {
		t.Errorf("ListByCompanyID() company = %s, want company-001", gotCompanyID)
	}
	if gotLimit != 10 || gotOffset != 20 {
		t.Errorf("ListByCompanyID() limit/offset = %d/%d, want 10/20", gotLimit, gotOffset)
	}
	if len(resp) != 1 {
		t.Fatalf("ListCompanyBookings() returned %d bookings, want 1", len(resp))
	}
	if resp[0].DisplayStatus != "Upcoming" {
		t.Errorf("ListCompanyBookings() display_status = %s, want Upcoming", resp[0].DisplayStatus)
	}
}
