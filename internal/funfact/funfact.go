// Package funfact fetches math trivia for a number from the Numbers API
// (http://numbersapi.com/{n}/math).
//
// The trivia service is treated as unreliable: Fetch never returns an
// error. Any failure is turned into a fixed fallback sentence and the
// Fact is tagged so callers can tell the two apart.
package funfact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aanand-mishra/number-classifier/internal/metrics"
)

// Fallback texts returned instead of a fact.
const (
	FallbackBadStatus   = "Error: Unable to fetch fun fact (invalid response from API)."
	FallbackUnreachable = "Error: Could not reach the Numbers API."
)

// DefaultTimeout bounds a single fetch when the caller does not set one.
const DefaultTimeout = 2 * time.Second

// maxBodyBytes caps how much of the trivia response is read.
const maxBodyBytes = 64 << 10

// Fact is the outcome of a fetch. Fallback is true when Text is one of
// the fallback sentences rather than trivia from the service.
type Fact struct {
	Text     string
	Fallback bool
}

// Fetcher produces a fun fact for n. Implementations must not fail.
type Fetcher interface {
	Fetch(ctx context.Context, n int64) Fact
}

// Client is the HTTP-backed Fetcher.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics reports fetch outcomes to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New returns a Client for the trivia service at baseURL. A non-positive
// timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch issues GET {baseURL}/{n}/math and returns its body as the fact.
func (c *Client) Fetch(ctx context.Context, n int64) Fact {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s/math", c.baseURL, strconv.FormatInt(n, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return c.unreachable(n, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.unreachable(n, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.badStatus(n, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.unreachable(n, err)
	}

	if strings.TrimSpace(string(body)) == "" {
		return c.badStatus(n, errors.New("empty body"))
	}

	c.metrics.ObserveFactFetch(metrics.OutcomeOK)
	return Fact{Text: string(body)}
}

func (c *Client) badStatus(n int64, err error) Fact {
	slog.Warn("fun fact: invalid response",
		slog.Int64("number", n),
		slog.String("error", err.Error()))
	c.metrics.ObserveFactFetch(metrics.OutcomeBadStatus)
	return Fact{Text: FallbackBadStatus, Fallback: true}
}

func (c *Client) unreachable(n int64, err error) Fact {
	slog.Warn("fun fact: service unreachable",
		slog.Int64("number", n),
		slog.String("error", err.Error()))
	c.metrics.ObserveFactFetch(metrics.OutcomeUnreachable)
	return Fact{Text: FallbackUnreachable, Fallback: true}
}
