package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"pharmacore/pkg/database"
)

// ErrorResponse is the standardized error envelope returned by every
// handler.
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", resource+" not found", nil))
}

// SendDomainError maps a service-layer error to the matching HTTP
// response. Unrecognized errors become a generic 500 so driver details
// never leak to clients.
func SendDomainError(c echo.Context, err error) error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return SendValidationError(c, validationErr.Field, validationErr.Message)
	}
	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.JSON(http.StatusConflict, CreateErrorResponse("INSUFFICIENT_STOCK", stockErr.Error(), nil))
	}
	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", notFoundErr.Error(), nil))
	}
	var queryErr *database.QueryError
	if errors.As(err, &queryErr) {
		return SendServerError(c, "Database operation failed")
	}
	return SendServerError(c, "Internal server error")
}
