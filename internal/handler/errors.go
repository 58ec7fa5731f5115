package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/pkg/response"
)

// handleError converts domain errors to HTTP responses. Domain outcomes
// map to 4xx; only unknown failures surface as 500.
func handleError(c *gin.Context, err error) {
	switch {
	case domain.IsValidationError(err):
		response.BadRequest(c, err.Error())
	case domain.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrInsufficientSeats):
		response.Conflict(c, "INSUFFICIENT_SEATS", err.Error())
	case errors.Is(err, domain.ErrNotCancellable):
		response.Conflict(c, "NOT_CANCELLABLE", err.Error())
	case errors.Is(err, domain.ErrCancellationWindowClosed):
		response.Conflict(c, "CANCELLATION_WINDOW_CLOSED", err.Error())
	case errors.Is(err, domain.ErrPaymentFailed):
		response.Error(c, http.StatusPaymentRequired, "PAYMENT_FAILED", "payment failed", err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		response.Conflict(c, "EMAIL_EXISTS", err.Error())
	case errors.Is(err, domain.ErrPlateAlreadyExists):
		response.Conflict(c, "PLATE_EXISTS", err.Error())
	case errors.Is(err, domain.ErrCompanyAlreadyExists):
		response.Conflict(c, "COMPANY_EXISTS", err.Error())
	case errors.Is(err, domain.ErrCompanyNotApproved):
		response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		response.ServiceUnavailable(c, "storage unavailable, please retry")
	default:
		response.InternalError(c, err)
	}
}
