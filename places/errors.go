// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package places

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ProviderError represents the failure of a single provider query. It
// carries the provider status for diagnostics; one failing query never
// aborts a whole search.
type ProviderError struct {
	Kind    ErrorKind
	Status  string // provider status token, e.g. OVER_QUERY_LIMIT
	Message string
	Err     error
}

// ErrorKind classifies provider failures.
type ErrorKind int

const (
	// ErrorKindUnknown unclassified failure.
	ErrorKindUnknown ErrorKind = iota
	// ErrorKindRateLimit the provider throttled the request.
	ErrorKindRateLimit
	// ErrorKindQuotaExceeded the daily quota was exhausted or access was denied.
	ErrorKindQuotaExceeded
	// ErrorKindTimeout the request timed out.
	ErrorKindTimeout
	// ErrorKindInvalidRequest the request was malformed.
	ErrorKindInvalidRequest
	// ErrorKindNetwork transport-level failure.
	ErrorKindNetwork
)

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider query failed"
	}

	if e.Status != "" {
		msg = fmt.Sprintf("%s (status %s)", msg, e.Status)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsRateLimitError reports whether the error is a provider throttle.
func IsRateLimitError(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Kind == ErrorKindRateLimit
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsQuotaExceededError reports whether the error is a quota exhaustion.
func IsQuotaExceededError(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Kind == ErrorKindQuotaExceeded
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsTimeoutError reports whether the error is a timeout.
func IsTimeoutError(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Kind == ErrorKindTimeout
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPStatus maps a non-200 HTTP response to a ProviderError.
func ClassifyHTTPStatus(statusCode int) *ProviderError {
	switch statusCode {
	case http.StatusTooManyRequests:
		return &ProviderError{
			Kind:    ErrorKindRateLimit,
			Message: "rate limit reached",
		}
	case http.StatusForbidden:
		return &ProviderError{
			Kind:    ErrorKindQuotaExceeded,
			Message: "quota exceeded or access denied",
		}
	case http.StatusBadRequest:
		return &ProviderError{
			Kind:    ErrorKindInvalidRequest,
			Message: "invalid request",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &ProviderError{
			Kind:    ErrorKindNetwork,
			Message: fmt.Sprintf("service unavailable (code %d)", statusCode),
		}
	default:
		return &ProviderError{
			Kind:    ErrorKindUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}

// ClassifyProviderStatus maps a non-success Places API status token to a
// ProviderError. OK and ZERO_RESULTS are successes and never reach here.
func ClassifyProviderStatus(status, errorMessage string) *ProviderError {
	kind := ErrorKindUnknown

	switch status {
	case "OVER_QUERY_LIMIT", "RESOURCE_EXHAUSTED":
		kind = ErrorKindQuotaExceeded
	case "REQUEST_DENIED":
		kind = ErrorKindQuotaExceeded
	case "INVALID_REQUEST":
		kind = ErrorKindInvalidRequest
	case "UNKNOWN_ERROR":
		kind = ErrorKindNetwork
	}

	message := errorMessage
	if message == "" {
		message = "provider rejected the query"
	}

	return &ProviderError{
		Kind:    kind,
		Status:  status,
		Message: message,
	}
}
