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

// CompanyHandler handles bus company HTTP requests
type CompanyHandler struct {
	companyService service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// RegisterCompany handles POST /companies
func (h *CompanyHandler) RegisterCompany(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.company.register")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID := c.GetString("user_id")
	if userID == "" {
		span.SetStatus(codes.Error, "unauthorized")
		response.Unauthorized(c, "authentication required")
		return
	}

	var req dto.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		response.BadRequest(c, err.Error())
		return
	}

	span.SetAttributes(
		attribute.String("owner_id", userID),
		attribute.String("company_name", req.Name),
	)

	result, err := h.companyService.RegisterCompany(ctx, userID, &req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Created(c, result)
}

// GetMyCompany handles GET /operator/company
func (h *CompanyHandler) GetMyCompany(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.company.get_mine")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID := c.GetString("user_id")
	if userID == "" {
		span.SetStatus(codes.Error, "unauthorized")
		response.Unauthorized(c, "authentication required")
		return
	}

	result, err := h.companyService.GetMyCompany(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, result)
}

// ListCompanyBookings handles GET /operator/bookings
func (h *CompanyHandler) ListCompanyBookings(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.company.list_bookings")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID := c.GetString("user_id")
	if userID == "" {
		span.SetStatus(codes.Error, "unauthorized")
		response.Unauthorized(c, "authentication required")
		return
	}

	page, pageSize := parsePagination(c)

	result, err := h.companyService.ListCompanyBookings(ctx, userID, page, pageSize)
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
