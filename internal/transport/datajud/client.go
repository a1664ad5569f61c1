// Package datajud is the HTTP client for the public jurisprudence search API.
package datajud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	"github.com/kailas-cloud/lexrelay/internal/domain/search/query"
	"github.com/kailas-cloud/lexrelay/internal/logger"
	"github.com/kailas-cloud/lexrelay/internal/metrics"
)

const (
	upstreamName = "datajud"
	serviceName  = "Datajud"

	// maxResponseBytes caps how much of an upstream body is buffered.
	maxResponseBytes = 32 << 20
)

// Config holds the search API client settings.
type Config struct {
	BaseURL          string
	APIKey           string
	CollectionPrefix string
	Timeout          time.Duration // per attempt
	MaxRetries       int           // extra attempts after a transport failure
	RetryBaseDelay   time.Duration
	HTTPClient       *http.Client
}

// Client posts query bodies to collection indexes.
type Client struct {
	baseURL    string
	apiKey     string
	prefix     string
	timeout    time.Duration
	maxRetries int
	baseDelay  time.Duration
	httpClient *http.Client
}

// NewClient creates a search API client.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	delay := cfg.RetryBaseDelay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		prefix:     cfg.CollectionPrefix,
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		baseDelay:  delay,
		httpClient: hc,
	}
}

// URL returns the _search endpoint for collection. It never contains the credential.
func (c *Client) URL(collection string) string {
	return c.baseURL + "/" + url.PathEscape(c.prefix+collection) + "/_search"
}

// Search posts body to the collection index and returns the upstream JSON verbatim.
// A non-2xx answer is returned as *domain.UpstreamError. Transport failures are
// retried up to MaxRetries times; HTTP responses never are.
func (c *Client) Search(ctx context.Context, collection string, body query.Body) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	endpoint := c.URL(collection)
	log := logger.FromContext(ctx)

	var result []byte
	attempt := 0
	op := func() error {
		attempt++
		data, err := c.do(ctx, endpoint, payload)
		if err == nil {
			result = data
			return nil
		}
		var ue *domain.UpstreamError
		if errors.As(err, &ue) || errors.Is(err, errInvalidBody) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		metrics.UpstreamRetriesTotal.WithLabelValues(upstreamName).Inc()
		log.Warn("retrying search request",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(op, c.policy(ctx), notify); err != nil {
		return nil, err //nolint:wrapcheck // already wrapped by do
	}
	return result, nil
}

func (c *Client) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.baseDelay
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx)
}

var errInvalidBody = errors.New("invalid upstream body")

// do performs a single attempt bounded by the per-attempt timeout.
func (c *Client) do(ctx context.Context, endpoint string, payload []byte) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "APIKey "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(upstreamName, 0, time.Since(start))
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	metrics.ObserveUpstream(upstreamName, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", errInvalidBody, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewUpstreamError(serviceName, resp.StatusCode, string(data))
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: response is not valid JSON", errInvalidBody)
	}
	return data, nil
}

