package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals a malformed or incomplete request payload.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownCollection signals a collection or code outside the allow-list.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrUnauthorized signals a missing or invalid caller token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrQuotaExceeded signals an exhausted generation token budget.
	ErrQuotaExceeded = errors.New("generation quota exceeded")
	// ErrCustomerNotFound signals that no billing customer exists for the caller.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrTranscriptUnavailable signals a video without captions or description.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	// ErrNotConfigured signals a relay whose upstream credential is not set.
	ErrNotConfigured = errors.New("not configured")
)

// UpstreamError is a non-2xx answer from a third-party API.
// The transport layer relays StatusCode and Body to the caller unchanged.
type UpstreamError struct {
	Service    string // display name used in the error summary, e.g. "Datajud"
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Erro na API %s: %d", e.Service, e.StatusCode)
}

// NewUpstreamError creates an upstream status error.
func NewUpstreamError(service string, status int, body string) error {
	return &UpstreamError{Service: service, StatusCode: status, Body: body}
}

// AsUpstreamError unwraps an UpstreamError from err.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
