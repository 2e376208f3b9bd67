package api

import (
	"fmt"
	"strconv"
)

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeServerError     ErrorType = "server_error"
	ErrorTypeInvalidRequest  ErrorType = "invalid_request"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeUpstreamError   ErrorType = "upstream_error"
	ErrorTypeTooManyRequests ErrorType = "too_many_requests"
)

// APIError is the error body returned to chat clients. For upstream errors
// Code holds the upstream HTTP status when one was received.
type APIError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code,omitempty"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	prefix := string(e.Type)
	if e.Code != "" {
		prefix += " [" + e.Code + "]"
	}
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", prefix, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// UpstreamStatus returns the upstream HTTP status of an upstream error, or 0
// when the error did not come from an upstream reply.
func (e *APIError) UpstreamStatus() int {
	if e.Type != ErrorTypeUpstreamError {
		return 0
	}
	n, err := strconv.Atoi(e.Code)
	if err != nil || n < 100 || n > 599 {
		return 0
	}
	return n
}

// ErrorResponse wraps an APIError for JSON serialization as the top-level error response.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewInvalidRequestError creates an APIError for invalid request parameters.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: message,
	}
}

// NewNotFoundError creates an APIError for resources that cannot be found.
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewServerError creates an APIError for internal server errors.
func NewServerError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServerError,
		Message: message,
	}
}

// NewUpstreamError creates an APIError for failures reported by the
// upstream provider after the request was translated and sent.
func NewUpstreamError(code, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeUpstreamError,
		Code:    code,
		Message: message,
	}
}

// NewTooManyRequestsError creates an APIError for upstream throttling.
func NewTooManyRequestsError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeTooManyRequests,
		Message: message,
	}
}
