package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/internal/dto"
	"github.com/christianbugingo/ticket-website/internal/service"
)

// stubAuthService implements service.AuthService for middleware tests
type stubAuthService struct {
	claims *service.Claims
	err    error
}

func (s *stubAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) ValidateToken(ctx context.Context, token string) (*service.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func (s *stubAuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error) {
	return nil, nil
}

func authTestRouter(authService service.AuthService, roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{RequireAuth(authService)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})

	router.GET("/protected", handlers...)
	return router
}

func TestRequireAuth(t *testing.T) {
	validClaims := &service.Claims{
		UserID: "user-123",
		Email:  "jane@example.com",
		Role:   domain.RolePassenger,
	}

	tests := []struct {
		name           string
		header         string
		authService    service.AuthService
		expectedStatus int
	}{
		{
			name:           "valid token",
			header:         "Bearer good-token",
			authService:    &stubAuthService{claims: validClaims},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			header:         "",
			authService:    &stubAuthService{claims: validClaims},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer token",
			header:         "Basic dXNlcjpwYXNz",
			authService:    &stubAuthService{claims: validClaims},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			header:         "Bearer expired-token",
			authService:    &stubAuthService{err: service.ErrTokenExpired},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "tampered token",
			header:         "Bearer bad-token",
			authService:    &stubAuthService{err: service.ErrInvalidToken},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := authTestRouter(tt.authService)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		role           domain.Role
		allowed        []domain.Role
		expectedStatus int
	}{
		{
			name:           "admin allowed on admin route",
			role:           domain.RoleAdmin,
			allowed:        []domain.Role{domain.RoleAdmin},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "operator allowed on operator route",
			role:           domain.RoleBusOperator,
			allowed:        []domain.Role{domain.RoleBusOperator, domain.RoleAdmin},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "passenger rejected on operator route",
			role:           domain.RolePassenger,
			allowed:        []domain.Role{domain.RoleBusOperator, domain.RoleAdmin},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "operator rejected on admin route",
			role:           domain.RoleBusOperator,
			allowed:        []domain.Role{domain.RoleAdmin},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := &stubAuthService{claims: &service.Claims{
				UserID: "user-123",
				Role:   tt.role,
			}}
			router := authTestRouter(authService, tt.allowed...)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer token")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
