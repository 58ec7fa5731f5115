package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/internal/dto"
	"github.com/christianbugingo/ticket-website/internal/service"
)

// MockAuthService is a mock implementation of AuthService for testing
type MockAuthService struct {
	RegisterFunc      func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	LoginFunc         func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ValidateTokenFunc func(ctx context.Context, token string) (*service.Claims, error)
	GetUserFunc       func(ctx context.Context, id string) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*service.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return nil, service.ErrInvalidToken
}

func (m *MockAuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return &domain.User{ID: id, Role: domain.RolePassenger}, nil
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, req)
	}
	return &domain.User{ID: userID}, nil
}

func setupAuthRouter(handler *AuthHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	if userID != "" {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", userID)
			c.Next()
		})
	}

	auth := router.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.GET("/me", handler.GetProfile)
		auth.PUT("/me", handler.UpdateProfile)
	}

	return router
}

func authResponse(userID string) *dto.AuthResponse {
	return &dto.AuthResponse{
		AccessToken: "token",
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
		User:        &dto.UserResponse{ID: userID, Email: "jane@example.com", Role: "PASSENGER"},
	}
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		request        map[string]string
		mockFunc       func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"email":    "jane@example.com",
				"password": "password123",
				"name":     "Jane",
			},
			mockFunc: func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
				return authResponse("user-123"), nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"email":    "jane@example.com",
				"password": "password123",
				"name":     "Jane",
			},
			mockFunc: func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
				return nil, domain.ErrEmailAlreadyExists
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "EMAIL_EXISTS",
		},
		{
			name: "short password rejected by binding",
			request: map[string]string{
				"email":    "jane@example.com",
				"password": "short",
				"name":     "Jane",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name: "missing email",
			request: map[string]string{
				"password": "password123",
				"name":     "Jane",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockAuthService{RegisterFunc: tt.mockFunc}
			handler := NewAuthHandler(mockService)
			router := setupAuthRouter(handler, "")

			body, _ := json.Marshal(tt.request)
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.expectedCode != "" {
				if errData := decodeError(t, w.Body.Bytes()); errData == nil || errData.Code != tt.expectedCode {
					t.Errorf("expected code %s, got %+v", tt.expectedCode, errData)
				}
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		request        map[string]string
		mockFunc       func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
		expectedStatus int
	}{
		{
			name: "successful login",
			request: map[string]string{
				"email":    "jane@example.com",
				"password": "password123",
			},
			mockFunc: func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
				return authResponse("user-123"), nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "bad credentials",
			request: map[string]string{
				"email":    "jane@example.com",
				"password": "wrong",
			},
			mockFunc: func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
				return nil, domain.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			request:        map[string]string{"email": "jane@example.com"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockAuthService{LoginFunc: tt.mockFunc}
			handler := NewAuthHandler(mockService)
			router := setupAuthRouter(handler, "")

			body, _ := json.Marshal(tt.request)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestAuthHandler_GetProfile(t *testing.T) {
	mockService := &MockAuthService{
		GetUserFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Email: "jane@example.com", Name: "Jane", Role: domain.RolePassenger}, nil
		},
	}
	handler := NewAuthHandler(mockService)

	t.Run("authenticated", func(t *testing.T) {
		router := setupAuthRouter(handler, "user-123")
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		router := setupAuthRouter(handler, "")
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
	})
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	var gotReq *dto.UpdateProfileRequest
	mockService := &MockAuthService{
		UpdateProfileFunc: func(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error) {
			gotReq = req
			return &domain.User{ID: userID, Name: req.Name, Role: domain.RolePassenger}, nil
		},
	}
	handler := NewAuthHandler(mockService)
	router := setupAuthRouter(handler, "user-123")

	body, _ := json.Marshal(map[string]string{"name": "Jane Doe"})
	req := httptest.NewRequest(http.MethodPut, "/auth/me", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if gotReq == nil || gotReq.Name != "Jane Doe" {
		t.Errorf("expected update request with name Jane Doe, got %+v", gotReq)
	}
}
