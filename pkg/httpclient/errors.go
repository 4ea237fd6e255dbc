package httpclient

import (
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/TarielTopuria/EcommerceAngular/pkg/errors"
)

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError so callers can match on the error taxonomy
// instead of raw status codes.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, resource string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", resource, resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFound(resource, resp.Request.URL.Path)
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.InvalidInput(fmt.Sprintf("%s: %s", resource, string(bodyBytes)))
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.Unauthorized(fmt.Sprintf("%s: %s", resource, string(bodyBytes)))
	case resp.StatusCode == http.StatusForbidden:
		return apperrors.Forbidden(fmt.Sprintf("%s: %s", resource, string(bodyBytes)))
	case resp.StatusCode == http.StatusServiceUnavailable:
		return &apperrors.AppError{
			Code:    "SERVICE_UNAVAILABLE",
			Message: fmt.Sprintf("%s: %s", resource, string(bodyBytes)),
			Status:  http.StatusServiceUnavailable,
			Err:     apperrors.ErrServiceUnavail,
		}
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s server error (%d): %s", resource, resp.StatusCode, string(bodyBytes))
	default:
		return &apperrors.AppError{
			Code:    "UPSTREAM_ERROR",
			Message: fmt.Sprintf("%s: %s", resource, string(bodyBytes)),
			Status:  resp.StatusCode,
		}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
