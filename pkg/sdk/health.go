package lexrelay

import (
	"context"
	"net/http"
)

// HealthStatus is the liveness answer.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ReadyStatus represents the aggregated readiness of the relay dependencies.
type ReadyStatus struct {
	Status string            `json:"status"` // "ok" or "degraded"
	Checks map[string]string `json:"checks"` // component -> "ok"/"error"
}

// Ready reports whether every dependency passed.
func (r ReadyStatus) Ready() bool { return r.Status == "ok" }

// Health checks that the relay process is up.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var h HealthStatus
	if _, err := c.do(ctx, call{op: "health", method: http.MethodGet, path: "/health"}, &h); err != nil {
		return HealthStatus{}, err
	}
	return h, nil
}

// Ready returns the readiness report. A degraded relay is not an error.
func (c *Client) Ready(ctx context.Context) (ReadyStatus, error) {
	var r ReadyStatus
	_, err := c.do(ctx, call{
		op:     "ready",
		method: http.MethodGet,
		path:   "/ready",
		accept: []int{http.StatusServiceUnavailable},
	}, &r)
	if err != nil {
		return ReadyStatus{}, err
	}
	return r, nil
}
