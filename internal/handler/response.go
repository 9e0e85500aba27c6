package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"unihop/internal/nash"
	"unihop/internal/repository"
	"unihop/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidJobID),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidDeliveryStyle),
		errors.Is(err, service.ErrInvalidDistance),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidTip),
		errors.Is(err, service.ErrInvalidDeliveryDate),
		errors.Is(err, service.ErrInvalidDeliveryTime),
		errors.Is(err, service.ErrInvalidTimeFilter),
		errors.Is(err, service.ErrInvalidPagination):
		return http.StatusBadRequest

	// Malformed upstream payloads - the event cannot be applied and must
	// be redelivered or remediated manually.
	case errors.Is(err, nash.ErrEmailMissing),
		errors.Is(err, nash.ErrMissingConfiguration):
		return http.StatusUnprocessableEntity

	// Upstream provider unreachable or unsuccessful.
	case errors.Is(err, nash.ErrUpstream):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
