package dto

import "time"

// UserWithStatsResponse represents a user row in the admin listing
type UserWithStatsResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	BookingCount int       `json:"booking_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// UpdateCompanyStatusRequest represents an admin approval decision
type UpdateCompanyStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED SUSPENDED"`
}

// PlatformStatsResponse represents aggregate platform metrics
type PlatformStatsResponse struct {
	TotalUsers       int     `json:"total_users"`
	TotalCompanies   int     `json:"total_companies"`
	PendingCompanies int     `json:"pending_companies"`
	TotalBuses       int     `json:"total_buses"`
	TotalSchedules   int     `json:"total_schedules"`
	TotalBookings    int     `json:"total_bookings"`
	ActiveBookings   int     `json:"active_bookings"`
	TotalRevenue     float64 `json:"total_revenue"`
}
