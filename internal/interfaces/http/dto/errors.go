package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeUnknown  = "UNKNOWN"
	ErrCodeInternal = "INTERNAL"
)

// Input error codes
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeValidationRequired = "VALIDATION_REQUIRED"
)

// Resource error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodePDFUnavailable is returned when export is requested but no
	// renderer is configured
	ErrCodePDFUnavailable = "PDF_UNAVAILABLE"
)

// errorCodeHTTPStatus maps known error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	ErrCodeInvalidState:   http.StatusUnprocessableEntity,
	ErrCodePDFUnavailable: http.StatusServiceUnavailable,
}

// HTTPStatusForCode resolves an error code to its HTTP status. Domain
// validation codes all start with INVALID_ and map to 400.
func HTTPStatusForCode(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
