package lexrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 32 << 20
)

// Client is the lexrelay SDK entry point. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	retries uint64
	obs     *observer
}

// New creates a Client for the relay at baseURL (e.g. "http://localhost:3500").
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("lexrelay: invalid base url %q", baseURL)
	}

	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		token:   cfg.token,
		retries: cfg.retries,
		obs:     obs,
	}, nil
}

// call describes one relay request.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
	// accept lists extra non-2xx statuses whose body is decoded instead of failing.
	accept []int
}

// do sends rc, decodes the answer into out (when non-nil) and records the operation.
func (c *Client) do(ctx context.Context, rc call, out any) (status int, err error) {
	start := time.Now()
	defer func() { c.obs.observe(rc.op, start, err) }()

	var payload []byte
	if rc.body != nil {
		payload, err = json.Marshal(rc.body)
		if err != nil {
			return 0, fmt.Errorf("lexrelay: encode %s request: %w", rc.op, err)
		}
	}

	var data []byte
	op := func() error {
		var sendErr error
		status, data, sendErr = c.send(ctx, rc, payload)
		if sendErr != nil && ctx.Err() != nil {
			return backoff.Permanent(sendErr)
		}
		return sendErr
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retriesFor(rc)), ctx)
	if err = backoff.Retry(op, policy); err != nil {
		return 0, err
	}

	if (status < 200 || status > 299) && !slices.Contains(rc.accept, status) {
		return status, parseAPIError(status, data)
	}
	if out == nil {
		return status, nil
	}
	if err = json.Unmarshal(data, out); err != nil {
		return status, fmt.Errorf("lexrelay: decode %s response: %w", rc.op, err)
	}
	return status, nil
}

// retriesFor allows retries only for requests without side effects.
func (c *Client) retriesFor(rc call) uint64 {
	if rc.method == http.MethodGet {
		return c.retries
	}
	return 0
}

// send performs a single attempt. Only network failures are returned as errors.
func (c *Client) send(ctx context.Context, rc call, payload []byte) (int, []byte, error) {
	endpoint := c.baseURL + rc.path
	if len(rc.query) > 0 {
		endpoint += "?" + rc.query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, rc.method, endpoint, body)
	if err != nil {
		return 0, nil, backoff.Permanent(fmt.Errorf("lexrelay: build %s request: %w", rc.op, err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rc.auth {
		if c.token == "" {
			return 0, nil, backoff.Permanent(ErrNoToken)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("lexrelay: %s: %w", rc.op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("lexrelay: read %s response: %w", rc.op, err)
	}
	return resp.StatusCode, data, nil
}
