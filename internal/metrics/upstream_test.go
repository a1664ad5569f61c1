package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("datajud", "429"))
	ObserveUpstream("datajud", 429, 120*time.Millisecond)
	after := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("datajud", "429"))
	if after-before != 1 {
		t.Errorf("expected one 429 observation, got delta %f", after-before)
	}

	beforeErr := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("datajud", "error"))
	ObserveUpstream("datajud", 0, time.Second)
	afterErr := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("datajud", "error"))
	if afterErr-beforeErr != 1 {
		t.Errorf("expected one transport error observation, got delta %f", afterErr-beforeErr)
	}

	if testutil.CollectAndCount(UpstreamRequestDuration) < 1 {
		t.Error("expected duration histogram series")
	}
}

func TestRegisterUpstreamMetrics_Idempotent(t *testing.T) {
	RegisterUpstreamMetrics()
	RegisterUpstreamMetrics()
}
