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
	"github.com/christianbugingo/ticket-website/pkg/response"
)

// MockBookingService is a mock implementation of BookingService for testing
type MockBookingService struct {
	CreateBookingFunc   func(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	CancelBookingFunc   func(ctx context.Context, bookingID, userID string) (*dto.CancelBookingResponse, error)
	GetBookingFunc      func(ctx context.Context, bookingID, userID string) (*dto.BookingDetailResponse, error)
	GetUserBookingsFunc func(ctx context.Context, userID string, page, pageSize int) ([]*dto.BookingDetailResponse, error)
}

func (m *MockBookingService) CreateBooking(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if m.CreateBookingFunc != nil {
		return m.CreateBookingFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockBookingService) CancelBooking(ctx context.Context, bookingID, userID string) (*dto.CancelBookingResponse, error) {
	if m.CancelBookingFunc != nil {
		return m.CancelBookingFunc(ctx, bookingID, userID)
	}
	return nil, nil
}

func (m *MockBookingService) GetBooking(ctx context.Context, bookingID, userID string) (*dto.BookingDetailResponse, error) {
	if m.GetBookingFunc != nil {
		return m.GetBookingFunc(ctx, bookingID, userID)
	}
	return nil, nil
}

func (m *MockBookingService) GetUserBookings(ctx context.Context, userID string, page, pageSize int) ([]*dto.BookingDetailResponse, error) {
	if m.GetUserBookingsFunc != nil {
		return m.GetUserBookingsFunc(ctx, userID, page, pageSize)
	}
	return nil, nil
}

func setupBookingRouter(handler *BookingHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	if userID != "" {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", userID)
			c.Next()
		})
	}

	bookings := router.Group("/bookings")
	{
		bookings.POST("", handler.CreateBooking)
		bookings.POST("/:id/cancel", handler.CancelBooking)
		bookings.GET("", handler.GetUserBookings)
		bookings.GET("/:id", handler.GetBooking)
	}

	return router
}

func decodeError(t *testing.T, body []byte) *response.ErrorData {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Error
}

func TestBookingHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		request        *dto.CreateBookingRequest
		mockFunc       func(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "successful booking",
			userID: "user-123",
			request: &dto.CreateBookingRequest{
				ScheduleID:    "schedule-123",
				SeatNumber:    "12A",
				PaymentMethod: "mtn_mobile_money",
			},
			mockFunc: func(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
				return &dto.BookingResponse{
					ID:           "booking-123",
					TicketNumber: "TKT-000042",
					Status:       "CONFIRMED",
					AmountPaid:   3500,
					CreatedAt:    time.Now().UTC(),
				}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unauthorized - no user_id",
			userID:         "",
			request:        &dto.CreateBookingRequest{},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "UNAUTHORIZED",
		},
		{
			name:   "insufficient seats",
			userID: "user-123",
			request: &dto.CreateBookingRequest{
				ScheduleID:    "schedule-123",
				SeatNumber:    "12A",
				PaymentMethod: "mtn_mobile_money",
			},
			mockFunc: func(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
				return nil, domain.ErrInsufficientSeats
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "INSUFFICIENT_SEATS",
		},
		{
			name:   "payment declined",
			userID: "user-123",
			request: &dto.CreateBookingRequest{
				ScheduleID:    "schedule-123",
				SeatNumber:    "12A",
				PaymentMethod: "credit_card",
			},
			mockFunc: func(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
				return nil, domain.ErrPaymentFailed
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedCode:   "PAYMENT_FAILED",
		},
		{
			name:   "schedule not found",
			userID: "user-123",
			request: &dto.CreateBookingRequest{
				ScheduleID:    "nonexistent",
				SeatNumber:    "12A",
				PaymentMethod: "mtn_mobile_money",
			},
			mockFunc: func(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
				return nil, domain.ErrScheduleNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:   "unsupported payment method",
			userID: "user-123",
			request: &dto.CreateBookingRequest{
				ScheduleID:    "schedule-123",
				SeatNumber:    "12A",
				PaymentMethod: "cash",
			},
			mockFunc: func(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
				return nil, domain.ErrInvalidPaymentMethod
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name:           "malformed body",
			userID:         "user-123",
			request:        &dto.CreateBookingRequest{ScheduleID: "schedule-123"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name:   "storage unavailable",
			userID: "user-123",
			request: &dto.CreateBookingRequest{
				ScheduleID:    "schedule-123",
				SeatNumber:    "12A",
				PaymentMethod: "mtn_mobile_money",
			},
			mockFunc: func(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
				return nil, domain.ErrStorageUnavailable
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "SERVICE_UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockBookingService{
				CreateBookingFunc: tt.mockFunc,
			}
			handler := NewBookingHandler(mockService)
			router := setupBookingRouter(handler, tt.userID)

			body, _ := json.Marshal(tt.request)
			req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBuffer(body))
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

func TestBookingHandler_CancelBooking(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		bookingID      string
		mockFunc       func(ctx context.Context, bookingID, userID string) (*dto.CancelBookingResponse, error)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:      "successful cancellation",
			userID:    "user-123",
			bookingID: "booking-123",
			mockFunc: func(ctx context.Context, bookingID, userID string) (*dto.CancelBookingResponse, error) {
				return &dto.CancelBookingResponse{
					BookingID:   bookingID,
					Status:      "CANCELLED",
					CancelledAt: time.Now().UTC(),
				}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthorized - no user_id",
			userID:         "",
			bookingID:      "booking-123",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "UNAUTHORIZED",
		},
		{
			name:      "booking not found",
			userID:    "user-123",
			bookingID: "nonexistent",
			mockFunc: func(ctx context.Context, bookingID, userID string) (*dto.CancelBookingResponse, error) {
				return nil, domain.ErrBookingNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:      "already cancelled",
			userID:    "user-123",
			bookingID: "booking-123",
			mockFunc: func(ctx context.Context, bookingID, userID string) (*dto.CancelBookingResponse, error) {
				return nil, domain.ErrNotCancellable
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "NOT_CANCELLABLE",
		},
		{
			name:      "window closed",
			userID:    "user-123",
			bookingID: "booking-123",
			mockFunc: func(ctx context.Context, bookingID, userID string) (*dto.CancelBookingResponse, error) {
				return nil, domain.ErrCancellationWindowClosed
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "CANCELLATION_WINDOW_CLOSED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockBookingService{
				CancelBookingFunc: tt.mockFunc,
			}
			handler := NewBookingHandler(mockService)
			router := setupBookingRouter(handler, tt.userID)

			req := httptest.NewRequest(http.MethodPost, "/bookings/"+tt.bookingID+"/cancel", nil)
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

func TestBookingHandler_GetBooking(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		bookingID      string
		mockFunc       func(ctx context.Context, bookingID, userID string) (*dto.BookingDetailResponse, error)
		expectedStatus int
	}{
		{
			name:      "found",
			userID:    "user-123",
			bookingID: "booking-123",
			mockFunc: func(ctx context.Context, bookingID, userID string) (*dto.BookingDetailResponse, error) {
				return &dto.BookingDetailResponse{
					BookingResponse: dto.BookingResponse{ID: bookingID, Status: "CONFIRMED"},
					Origin:          "Kigali",
					Destination:     "Musanze",
				}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "another user's booking is not found",
			userID:    "user-456",
			bookingID: "booking-123",
			mockFunc: func(ctx context.Context, bookingID, userID string) (*dto.BookingDetailResponse, error) {
				return nil, domain.ErrBookingNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unauthorized",
			userID:         "",
			bookingID:      "booking-123",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockBookingService{
				GetBookingFunc: tt.mockFunc,
			}
			handler := NewBookingHandler(mockService)
			router := setupBookingRouter(handler, tt.userID)

			req := httptest.NewRequest(http.MethodGet, "/bookings/"+tt.bookingID, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestBookingHandler_GetUserBookings(t *testing.T) {
	var gotPage, gotPageSize int
	mockService := &MockBookingService{
		GetUserBookingsFunc: func(ctx context.Context, userID string, page, pageSize int) ([]*dto.BookingDetailResponse, error) {
			gotPage, gotPageSize = page, pageSize
			return []*dto.BookingDetailResponse{
				{BookingResponse: dto.BookingResponse{ID: "booking-1"}},
				{BookingResponse: dto.BookingResponse{ID: "booking-2"}},
			}, nil
		},
	}
	handler := NewBookingHandler(mockService)
	router := setupBookingRouter(handler, "user-123")

	req := httptest.NewRequest(http.MethodGet, "/bookings?page=2&page_size=10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if gotPage != 2 || gotPageSize != 10 {
		t.Errorf("expected page 2 size 10, got page %d size %d", gotPage, gotPageSize)
	}

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Meta == nil {
		t.Error("expected pagination meta in response")
	}
}

func TestParsePagination_Defaults(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"", 1, 20},
		{"?page=abc&page_size=xyz", 1, 20},
		{"?page=-1&page_size=0", 1, 20},
		{"?page=5&page_size=200", 5, 20},
		{"?page=2&page_size=50", 2, 50},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/bookings"+tt.query, nil)

		page, pageSize := parsePagination(c)
		if page != tt.wantPage || pageSize != tt.wantPageSize {
			t.Errorf("parsePagination(%q) = %d, %d, want %d, %d",
				tt.query, page, pageSize, tt.wantPage, tt.wantPageSize)
		}
	}
}
