package datajud

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	"github.com/kailas-cloud/lexrelay/internal/domain/search/query"
	"github.com/kailas-cloud/lexrelay/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterUpstreamMetrics()
	os.Exit(m.Run())
}

const upstreamBody = `{"took":3,"hits":{"total":{"value":2,"relation":"eq"},"hits":[{"_id":"a"},{"_id":"b"}]}}`

// roundTripFunc is a hand-written transport mock.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(baseURL string, retries int, hc *http.Client) *Client {
	return NewClient(&Config{
		BaseURL:          baseURL,
		APIKey:           "secret-key",
		CollectionPrefix: "api_publica_",
		Timeout:          time.Second,
		MaxRetries:       retries,
		RetryBaseDelay:   time.Millisecond,
		HTTPClient:       hc,
	})
}

func TestClient_Search_ReturnsBodyVerbatim(t *testing.T) {
	var gotBody query.Body
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/api_publica_trt1/_search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "APIKey secret-key" {
			t.Errorf("unexpected auth header: %s", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type: %s", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, upstreamBody)
	}))
	defer server.Close()

	c := newTestClient(server.URL+"/", 1, nil)
	data, err := c.Search(context.Background(), "trt1", query.NewBuilder(0, "").Build("rescisão indireta"))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if string(data) != upstreamBody {
		t.Errorf("body changed:\ngot:  %s\nwant: %s", data, upstreamBody)
	}
	if gotBody.Query.MultiMatch.Query != "rescisão indireta" {
		t.Errorf("upstream received query %q", gotBody.Query.MultiMatch.Query)
	}
	if gotBody.Size != 50 {
		t.Errorf("upstream received size %d", gotBody.Size)
	}
}

func TestClient_Search_NonSuccessIsNotRetried(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusTooManyRequests, http.StatusBadGateway} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(status)
				_, _ = io.WriteString(w, "rate limited")
			}))
			defer server.Close()

			c := newTestClient(server.URL, 3, nil)
			_, err := c.Search(context.Background(), "trt1", query.NewBuilder(0, "").Build("x"))

			ue, ok := domain.AsUpstreamError(err)
			if !ok {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if ue.StatusCode != status || ue.Body != "rate limited" || ue.Service != "Datajud" {
				t.Errorf("unexpected upstream error %+v", ue)
			}
			if calls.Load() != 1 {
				t.Errorf("expected exactly 1 upstream call, got %d", calls.Load())
			}
		})
	}
}

func TestClient_Search_RetriesTransportError(t *testing.T) {
	var calls atomic.Int32
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("connection reset by peer")
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(upstreamBody)),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Request:    r,
		}, nil
	})}

	c := newTestClient("http://datajud.test", 1, hc)
	data, err := c.Search(context.Background(), "tst", query.NewBuilder(0, "").Build("x"))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if string(data) != upstreamBody {
		t.Errorf("unexpected body %s", data)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestClient_Search_RetriesAreBounded(t *testing.T) {
	var calls atomic.Int32
	hc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("no route to host")
	})}

	c := newTestClient("http://datajud.test", 2, hc)
	_, err := c.Search(context.Background(), "tst", query.NewBuilder(0, "").Build("x"))
	if err == nil {
		t.Fatal("expected transport error")
	}
	if _, ok := domain.AsUpstreamError(err); ok {
		t.Fatal("transport failure must not look like an upstream status")
	}
	if calls.Load() != 3 {
		t.Errorf("expected 1 attempt + 2 retries, got %d", calls.Load())
	}
}

func TestClient_Search_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c := NewClient(&Config{
		BaseURL:    server.URL,
		APIKey:     "k",
		Timeout:    50 * time.Millisecond,
		MaxRetries: 0,
	})

	start := time.Now()
	_, err := c.Search(context.Background(), "trt1", query.NewBuilder(0, "").Build("x"))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > time.Second {
		t.Errorf("timeout not enforced, took %s", time.Since(start))
	}
}

func TestClient_Search_InvalidJSON(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, "<html>gateway</html>")
	}))
	defer server.Close()

	c := newTestClient(server.URL, 2, nil)
	_, err := c.Search(context.Background(), "trt1", query.NewBuilder(0, "").Build("x"))
	if !errors.Is(err, errInvalidBody) {
		t.Fatalf("expected invalid body error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("invalid JSON must not be retried, got %d calls", calls.Load())
	}
}

func TestClient_Search_CanceledContextIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	hc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		cancel()
		return nil, context.Canceled
	})}

	c := newTestClient("http://datajud.test", 3, hc)
	if _, err := c.Search(ctx, "trt1", query.NewBuilder(0, "").Build("x")); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 attempt after cancellation, got %d", calls.Load())
	}
}

func TestClient_URL(t *testing.T) {
	c := newTestClient("https://api-publica.datajud.cnj.jus.br/", 0, nil)
	want := "https://api-publica.datajud.cnj.jus.br/api_publica_tre-sp/_search"
	if got := c.URL("tre-sp"); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

