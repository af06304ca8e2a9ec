package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type contextKey string

const EmployeeIDKey contextKey = "employee_id"

// GetEmployeeIDFromContext extracts the authenticated employee id set by
// the JWT middleware.
func GetEmployeeIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(EmployeeIDKey).(int64)
	return id, ok
}

// ParseID parses a numeric path parameter
func ParseID(idStr string, fieldName string) (int64, error) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewValidationError(fieldName, "must be a positive integer id")
	}
	return id, nil
}

// ValidatePositiveInteger validates integer is positive and within bounds
func ValidatePositiveInteger(value int, fieldName string, maxValue int) error {
	if value <= 0 {
		return NewValidationError(fieldName, fmt.Sprintf("%s must be positive", fieldName))
	}
	if maxValue > 0 && value > maxValue {
		return NewValidationError(fieldName, fmt.Sprintf("%s exceeds maximum of %d", fieldName, maxValue))
	}
	return nil
}

// ValidatePositiveFloat validates float is positive and within bounds
func ValidatePositiveFloat(value float64, fieldName string, maxValue float64) error {
	if value <= 0 {
		return NewValidationError(fieldName, fmt.Sprintf("%s must be positive", fieldName))
	}
	if maxValue > 0 && value > maxValue {
		return NewValidationError(fieldName, fmt.Sprintf("%s exceeds maximum of %.2f", fieldName, maxValue))
	}
	return nil
}

// ValidateNonNegativeInteger validates integer is zero or positive
func ValidateNonNegativeInteger(value int, fieldName string) error {
	if value < 0 {
		return NewValidationError(fieldName, fmt.Sprintf("%s must not be negative", fieldName))
	}
	return nil
}

// ValidateRequiredString validates string is non-empty after trimming
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fieldName, fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidateOrderType validates the order type enum
func ValidateOrderType(orderType string) error {
	switch orderType {
	case "retail", "wholesale", "online":
		return nil
	}
	return NewValidationError("order_type", "must be one of retail, wholesale, online")
}

// ParseDate parses a YYYY-MM-DD date string
func ParseDate(dateStr, fieldName string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, NewValidationError(fieldName, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// ValidatePaginationParams clamps limit/offset to sane bounds
func ValidatePaginationParams(limit, offset int) (int, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		return 0, 0, NewValidationError("offset", "must not be negative")
	}
	return limit, offset, nil
}
