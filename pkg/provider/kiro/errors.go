package kiro

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/rhuss/relay/pkg/api"
)

// MapHTTPError converts an HTTP response with a non-2xx status code into
// an APIError. It attempts to parse the response body to extract a
// descriptive message.
func MapHTTPError(resp *http.Response) *api.APIError {
	message := ExtractErrorMessage(resp.Body)
	code := strconv.Itoa(resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		if message == "" {
			message = "upstream rejected the translated request"
		}
		return api.NewUpstreamError(code, message)

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if message == "" {
			message = "upstream authentication failed"
		}
		return api.NewUpstreamError(code, message)

	case resp.StatusCode == http.StatusNotFound:
		if message == "" {
			message = "upstream endpoint not found"
		}
		return api.NewUpstreamError(code, message)

	case resp.StatusCode == http.StatusTooManyRequests:
		if message == "" {
			message = "upstream rate limit exceeded"
		}
		return api.NewTooManyRequestsError(message)

	case resp.StatusCode >= http.StatusInternalServerError:
		if message == "" {
			message = fmt.Sprintf("upstream server error (HTTP %d)", resp.StatusCode)
		}
		return api.NewUpstreamError(code, message)

	default:
		if message == "" {
			message = fmt.Sprintf("unexpected upstream error (HTTP %d)", resp.StatusCode)
		}
		return api.NewUpstreamError(code, message)
	}
}

// MapNetworkError converts a network-level error (connection refused, timeout,
// DNS resolution failure) into an APIError with a descriptive message.
func MapNetworkError(err error) *api.APIError {
	return api.NewUpstreamError("", fmt.Sprintf("upstream connection error: %s", err.Error()))
}

// errorMessagePaths lists where AWS-style services put the error text.
var errorMessagePaths = []string{"message", "Message", "error.message", "reason"}

// ExtractErrorMessage reads up to 4 KiB of an error body and returns the
// first error message found in it.
func ExtractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 || !gjson.ValidBytes(data) {
		return ""
	}

	for _, path := range errorMessagePaths {
		if v := gjson.GetBytes(data, path); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
