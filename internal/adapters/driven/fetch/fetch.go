// Package fetch provides the shared rate-limited HTTP client used by the
// upstream content adapters (Reddit, StackOverflow, Semantic Scholar).
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

// Default configuration values.
const (
	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxAttempts bounds retries for throttled requests.
	MaxAttempts = 3

	// baseBackoff is the initial backoff after a 429; subsequent attempts
	// scale it linearly (2s, 4s, 6s).
	baseBackoff = 2 * time.Second

	// UserAgent identifies ragdex to upstream APIs.
	UserAgent = "ragdex/1.0 (RAG corpus builder)"
)

// Client is a rate-limited JSON GET client for one upstream provider.
type Client struct {
	http    *http.Client
	limiter *Limiter
	headers map[string]string
	trace   logger.Tracer
}

// NewClient creates a client with the given sustained request rate.
// Extra headers are sent on every request.
func NewClient(requestsPerSecond float64, headers map[string]string) *Client {
	h := map[string]string{"User-Agent": UserAgent}
	for k, v := range headers {
		h[k] = v
	}
	return &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: NewLimiter(requestsPerSecond, 1),
		headers: h,
		trace:   logger.Pipeline("http"),
	}
}

// GetJSON performs a rate-limited GET and decodes the JSON response into out.
// A 429 response backs off and retries up to MaxAttempts times, then
// surfaces domain.ErrRateLimited as a soft failure for the caller's
// per-query error handling.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("send request: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, resp.Body) //nolint:errcheck
			resp.Body.Close()

			backoff := retryAfter(resp, attempt)
			c.trace.Warn("Rate limited by %s, backing off %s (attempt %d/%d)",
				u.Host, backoff, attempt, MaxAttempts)
			c.limiter.RecordRateLimit(backoff)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return &StatusError{Host: u.Host, Code: resp.StatusCode, Body: string(body)}
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("%w: %s after %d attempts", domain.ErrRateLimited, u.Host, MaxAttempts)
}

// Download performs a rate-limited GET and streams the body to w.
func (c *Client) Download(ctx context.Context, rawURL string, w io.Writer) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: %w", rawURL, &StatusError{Host: req.URL.Host, Code: resp.StatusCode})
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("download %s: %w", rawURL, err)
	}
	return nil
}

// StatusError is returned when an upstream responds with a non-OK status.
// Callers match it with errors.As to react to specific codes (the paper
// adapter maps 404 to domain.ErrNotFound).
type StatusError struct {
	Host string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Host, e.Code, e.Body)
}

// retryAfter derives the backoff for a 429 response: the Retry-After header
// when present, otherwise the attempt-scaled base backoff.
func retryAfter(resp *http.Response, attempt int) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return time.Duration(attempt) * baseBackoff
}
