package service

import (
	"context"
	"errors"
	"testing"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/internal/repository"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	GetPlatformStatsFunc func(ctx context.Context) (*repository.PlatformStats, error)
}

func (m *MockStatsRepository) GetPlatformStats(ctx context.Context) (*repository.PlatformStats, error) {
	if m.GetPlatformStatsFunc != nil {
		return m.GetPlatformStatsFunc(ctx)
	}
	return &repository.PlatformStats{}, nil
}

func TestAdminService_ListUsers(t *testing.T) {
	userRepo := &MockUserRepository{
		ListWithBookingCountsFunc: func(ctx context.Context, limit, offset int) ([]*domain.User, map[string]int, error) {
			users := []*domain.User{
				{ID: "user-001", Email: "jane@example.com", Role: domain.RolePassenger},
				{ID: "user-002", Email: "joe@example.com", Role: domain.RoleBusOperator},
			}
			counts := map[string]int{"user-001": 4}
			return users, counts, nil
		},
	}

	svc := NewAdminService(userRepo, &MockCompanyRepository{}, &MockStatsRepository{})

	resp, err := svc.ListUsers(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("ListUsers() unexpected error = %v", err)
	}

	if len(resp) != 2 {
		t.Fatalf("ListUsers() returned %d users, want 2", len(resp))
	}
	if resp[0].BookingCount != 4 {
		t.Errorf("ListUsers() booking count = %d, want 4", resp[0].BookingCount)
	}
	// Users with no bookings get a zero count, not a missing entry
	if resp[1].BookingCount != 0 {
		t.Errorf("ListUsers() booking count = %d, want 0", resp[1].BookingCount)
	}
}

func TestAdminService_ListCompanies(t *testing.T) {
	var gotStatus domain.CompanyStatus
	companyRepo := &MockCompanyRepository{
		ListFunc: func(ctx context.Context, status domain.CompanyStatus, limit, offset int) ([]*domain.Company, error) {
			gotStatus = status
			return []*domain.Company{
				{ID: "company-001", Name: "Volcano Express", Status: domain.CompanyStatusPending},
			}, nil
		},
	}

	svc := NewAdminService(&MockUserRepository{}, companyRepo, &MockStatsRepository{})

	resp, err := svc.ListCompanies(context.Background(), "PENDING", 1, 20)
	if err != nil {
		t.Fatalf("ListCompanies() unexpected error = %v", err)
	}

	if gotStatus != domain.CompanyStatusPending {
		t.Errorf("List() status filter = %s, want PENDING", gotStatus)
	}
	if len(resp) != 1 {
		t.Errorf("ListCompanies() returned %d companies, want 1", len(resp))
	}
}

func TestAdminService_UpdateCompanyStatus(t *testing.T) {
	tests := []struct {
		name       string
		companyID  string
		status     string
		setupMocks func(*MockCompanyRepository)
		wantErr    error
		wantStatus domain.CompanyStatus
	}{
		{
			name:       "approve pending company",
			companyID:  "company-001",
			status:     "APPROVED",
			wantStatus: domain.CompanyStatusApproved,
			setupMocks: func(cr *MockCompanyRepository) {
				cr.GetByIDFunc = func(ctx context.Context, id string) (*domain.Company, error) {
					return &domain.Company{ID: id, Status: domain.CompanyStatusPending}, nil
				}
			},
		},
		{
			name:       "suspend approved company",
			companyID:  "company-001",
			status:     "SUSPENDED",
			wantStatus: domain.CompanyStatusSuspended,
			setupMocks: func(cr *MockCompanyRepository) {
				cr.GetByIDFunc = func(ctx context.Context, id string) (*domain.Company, error) {
					return &domain.Company{ID: id, Status: domain.CompanyStatusApproved}, nil
				}
			},
		},
		{
			name:      "unknown status rejected",
			companyID: "company-001",
			status:    "DELETED",
			wantErr:   domain.ErrInvalidCompanyStatus,
		},
		{
			name:      "back to pending rejected",
			companyID: "company-001",
			status:    "PENDING",
			wantErr:   domain.ErrInvalidCompanyStatus,
		},
		{
			name:      "company not found",
			companyID: "nonexistent",
			status:    "APPROVED",
			setupMocks: func(cr *MockCompanyRepository) {
				cr.GetByIDFunc = func(ctx context.Context, id string) (*domain.Company, error) {
					return nil, domain.ErrCompanyNotFound
				}
			},
			wantErr: domain.ErrCompanyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			companyRepo := &MockCompanyRepository{}
			if tt.setupMocks != nil {
				tt.setupMocks(companyRepo)
			}

			var persisted domain.CompanyStatus
			companyRepo.UpdateStatusFunc = func(ctx context.Context, id string, status domain.CompanyStatus) error {
				persisted = status
				return nil
			}

			svc := NewAdminService(&MockUserRepository{}, companyRepo, &MockStatsRepository{})

			resp, err := svc.UpdateCompanyStatus(context.Background(), tt.companyID, tt.status)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UpdateCompanyStatus() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("UpdateCompanyStatus() unexpected error = %v", err)
				return
			}

			if resp.Status != string(tt.wantStatus) {
				t.Errorf("UpdateCompanyStatus() status = %s, want %s", resp.Status, tt.wantStatus)
			}
			if persisted != tt.wantStatus {
				t.Errorf("UpdateStatus() persisted %s, want %s", persisted, tt.wantStatus)
			}
		})
	}
}

func TestAdminService_GetPlatformStats(t *testing.T) {
	statsRepo := &MockStatsRepository{
		GetPlatformStatsFunc: func(ctx context.Context) (*repository.PlatformStats, error) {
			return &repository.PlatformStats{
				TotalUsers:       120,
				TotalCompanies:   4,
				PendingCompanies: 1,
				TotalBuses:       6,
				TotalSchedules:   196,
				TotalBookings:    850,
				ActiveBookings:   310,
				TotalRevenue:     2975000,
			}, nil
		},
	}

	svc := NewAdminService(&MockUserRepository{}, &MockCompanyRepository{}, statsRepo)

	resp, err := svc.GetPlatformStats(context.Background())
	if err != nil {
		t.Fatalf("GetPlatformStats() unexpected error = %v", err)
	}

	if resp.TotalUsers != 120 {
		t.Errorf("GetPlatformStats() total users = %d, want 120", resp.TotalUsers)
	}
	if resp.ActiveBookings != 310 {
		t.Errorf("GetPlatformStats() active bookings = %d, want 310", resp.ActiveBookings)
	}
	if resp.TotalRevenue != 2975000 {
		t.Errorf("GetPlatformStats() revenue = %v, want 2975000", resp.TotalRevenue)
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, pageSize         int
		wantPage, wantPageSize int
	}{
		{0, 0, 1, 20},
		{1, 50, 1, 50},
		{-5, 101, 1, 20},
		{3, 100, 3, 100},
	}

	for _, tt := range tests {
		page, pageSize := clampPage(tt.page, tt.pageSize)
		if page != tt.wantPage || pageSize != tt.wantPageSize {
			t.Errorf("clampPage(%d, %d) = %d, %d, want %d, %d",
				tt.page, tt.pageSize, page, pageSize, tt.wantPage, tt.wantPageSize)
		}
	}
}
