package lexrelay

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrNoToken is returned by identity-bound calls on a client built without WithToken.
var ErrNoToken = errors.New("lexrelay: bearer token required (use WithToken)")

// APIError is a non-2xx answer from the relay.
// For relayed upstream failures Code carries the upstream summary
// ("Erro na API Datajud: 404") and Details the upstream body.
type APIError struct {
	StatusCode int
	Code       string
	Details    string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Details
	}
	if msg == "" {
		return fmt.Sprintf("lexrelay: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("lexrelay: %d %s: %s", e.StatusCode, e.Code, msg)
}

// AsAPIError unwraps an APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// parseAPIError reads the relay error envelope. Bodies that are not JSON
// are kept verbatim in Details.
func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}
	if !gjson.ValidBytes(body) {
		e.Details = string(body)
		return e
	}
	fields := gjson.GetManyBytes(body, "error", "details", "message", "request_id")
	e.Code = fields[0].String()
	e.Details = fields[1].String()
	e.Message = fields[2].String()
	e.RequestID = fields[3].String()
	return e
}
