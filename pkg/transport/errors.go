package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rhuss/relay/pkg/api"
	"github.com/rhuss/relay/pkg/debug"
)

// UpstreamStatusHeader echoes the upstream's HTTP status on relayed
// upstream failures, since those are all answered with 502.
const UpstreamStatusHeader = "X-Upstream-Status"

// HTTPStatusFromError maps an APIError to the status the relay answers with.
// Upstream failures become 502 whatever the upstream said, except throttling
// which passes through as 429. A nil error maps to 500.
func HTTPStatusFromError(err *api.APIError) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	switch err.Type {
	case api.ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case api.ErrorTypeNotFound:
		return http.StatusNotFound
	case api.ErrorTypeTooManyRequests:
		return http.StatusTooManyRequests
	case api.ErrorTypeUpstreamError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteErrorResponse writes apiErr as a JSON error body with the given
// status. Upstream errors that carry an upstream status also set
// UpstreamStatusHeader.
func WriteErrorResponse(w http.ResponseWriter, apiErr *api.APIError, statusCode int) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	if apiErr != nil {
		if status := apiErr.UpstreamStatus(); status != 0 {
			h.Set(UpstreamStatusHeader, strconv.Itoa(status))
		}
	}
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(api.ErrorResponse{Error: apiErr}); err != nil {
		debug.Log("transport", "writing error response failed", "status", statusCode, "error", err)
	}
}

// WriteAPIError writes an APIError response, deriving the HTTP status code
// from the error type.
func WriteAPIError(w http.ResponseWriter, apiErr *api.APIError) {
	WriteErrorResponse(w, apiErr, HTTPStatusFromError(apiErr))
}
