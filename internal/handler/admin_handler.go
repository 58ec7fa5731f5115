package handler

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/christianbugingo/ticket-website/internal/dto"
	"github.com/christianbugingo/ticket-website/internal/service"
	"github.com/christianbugingo/ticket-website/pkg/response"
	"github.com/christianbugingo/ticket-website/pkg/telemetry"
)

// AdminHandler handles platform administration HTTP requests
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.admin.list_users")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	page, pageSize := parsePagination(c)

	result, err := h.adminService.ListUsers(ctx, page, pageSize)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.SuccessWithMeta(c, result, gin.H{
		"page":      page,
		"page_size": pageSize,
	})
}

// ListCompanies handles GET /admin/companies
func (h *AdminHandler) ListCompanies(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.admin.list_companies")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	status := c.Query("status")
	page, pageSize := parsePagination(c)

	span.SetAttributes(attribute.String("status", status))

	result, err := h.adminService.ListCompanies(ctx, status, page, pageSize)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.SuccessWithMeta(c, result, gin.H{
		"page":      page,
		"page_size": pageSize,
	})
}

// UpdateCompanyStatus handles PATCH /admin/companies/:id/status
func (h *AdminHandler) UpdateCompanyStatus(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.admin.update_company_status")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	companyID := c.Param("id")
	if companyID == "" {
		span.SetStatus(codes.Error, "company id required")
		response.BadRequest(c, "company id required")
		return
	}

	var req dto.UpdateCompanyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		response.BadRequest(c, err.Error())
		return
	}

	span.SetAttributes(
		attribute.String("company_id", companyID),
		attribute.String("status", req.Status),
	)

	result, err := h.adminService.UpdateCompanyStatus(ctx, companyID, req.Status)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, result)
}

// GetPlatformStats handles GET /admin/stats
func (h *AdminHandler) GetPlatformStats(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.admin.stats")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	result, err := h.adminService.GetPlatformStats(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, result)
}
