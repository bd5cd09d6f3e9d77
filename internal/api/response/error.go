package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/wonny/papertrade/internal/api/middleware"
	"github.com/wonny/papertrade/internal/domain/order"
	"github.com/wonny/papertrade/internal/domain/quote"
	"github.com/wonny/papertrade/internal/domain/stock"
)

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
	Meta  Meta        `json:"meta"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes
const (
	CodeInvalidParameter      = "INVALID_PARAMETER"
	CodeNotFound              = "NOT_FOUND"
	CodeConflict              = "CONFLICT"
	CodeBusinessRuleViolation = "BUSINESS_RULE_VIOLATION"
	CodeExternalAPIError      = "EXTERNAL_API_ERROR"
	CodeInternalError         = "INTERNAL_ERROR"
)

// Error sends an error response with the given status code
func Error(c *gin.Context, status int, code, message string) {
	ErrorWithDetails(c, status, code, message, nil)
}

// ErrorWithDetails sends an error response with additional details
func ErrorWithDetails(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: Meta{
			RequestID: middleware.GetRequestID(c),
			Timestamp: time.Now(),
		},
	})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidParameter, message)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// Conflict sends a 409 Conflict response
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, CodeConflict, message)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternalError, message)
}

// DomainError maps a domain error to the appropriate HTTP response.
func DomainError(c *gin.Context, err error) {
	var holdErr *order.InsufficientHoldingsError
	if errors.As(err, &holdErr) {
		ErrorWithDetails(c, http.StatusUnprocessableEntity, CodeBusinessRuleViolation, holdErr.Error(), map[string]interface{}{
			"symbol":    holdErr.Symbol,
			"requested": holdErr.Requested,
			"available": holdErr.Available,
		})
		return
	}

	switch {
	case errors.Is(err, order.ErrEmptySymbol),
		errors.Is(err, order.ErrInvalidSide),
		errors.Is(err, order.ErrInvalidVolume),
		errors.Is(err, stock.ErrInvalidSymbol),
		errors.Is(err, stock.ErrInvalidExchange),
		errors.Is(err, stock.ErrEmptyName):
		BadRequest(c, err.Error())
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, stock.ErrStockNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, stock.ErrDuplicateSymbol):
		Conflict(c, err.Error())
	case errors.Is(err, quote.ErrUnavailable):
		Error(c, http.StatusBadGateway, CodeExternalAPIError, err.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		InternalError(c, "An unexpected error occurred")
	}
}
