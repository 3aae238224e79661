package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL     = "https://api.github.com"
	DefaultMinInterval = 500 * time.Millisecond

	// fallbackBackoff is used when a rate-limit response carries no usable
	// reset information.
	fallbackBackoff = 2 * time.Second
	// maxBackoff bounds how long a retry will wait on an advertised reset.
	maxBackoff = 60 * time.Second
)

// Config configures the GitHub API client.
type Config struct {
	Token       string
	BaseURL     string
	MinInterval time.Duration // spacing between any two outbound calls
}

// Client is the GitHub REST API client. Every call passes through a single
// process-wide pacing gate; the upstream quota is account-wide, so the gate
// is shared across endpoints and callers.
type Client struct {
	baseURL    string
	httpClient *http.Client
	gate       *rate.Limiter
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewClient creates a new GitHub client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	minInterval := cfg.MinInterval
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		gate:       rate.NewLimiter(rate.Every(minInterval), 1),
		now:        time.Now,
		sleep:      sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// do executes one API call through the pacing gate. Rate-limit responses are
// retried exactly once after the advertised reset; a second failure surfaces
// as a transient APIError.
func (c *Client) do(ctx context.Context, method, url, accept string, reqBody any, out any) error {
	retried := false
	for {
		if err := c.gate.Wait(ctx); err != nil {
			return fmt.Errorf("pacing gate: %w", err)
		}

		var bodyReader io.Reader
		if reqBody != nil {
			raw, err := json.Marshal(reqBody)
			if err != nil {
				return fmt.Errorf("failed to marshal request: %w", err)
			}
			bodyReader = bytes.NewBuffer(raw)
		}

		httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		httpReq.Header.Set("Accept", accept)
		if reqBody != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return &APIError{StatusCode: 0, Message: err.Error(), Transient: true}
		}

		if isRateLimited(resp) {
			wait := c.backoffDuration(resp)
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if retried {
				return &APIError{
					StatusCode: resp.StatusCode,
					Message:    "rate limit exceeded after retry",
					Transient:  true,
				}
			}
			retried = true
			if err := c.sleep(ctx, wait); err != nil {
				return fmt.Errorf("rate limit backoff: %w", err)
			}
			continue
		}

		return decodeResponse(resp, accept, out)
	}
}

func decodeResponse(resp *http.Response, accept string, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(raw),
			Transient:  resp.StatusCode >= 500,
		}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	// Raw media types return the body as-is instead of JSON.
	if s, ok := out.(*string); ok && accept == acceptRaw {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: err.Error(), Transient: true}
		}
		*s = string(raw)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}
	return nil
}

// isRateLimited detects both primary (403 + remaining 0) and secondary
// (429 / Retry-After) rate limit responses.
func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if resp.StatusCode == http.StatusForbidden {
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return true
		}
		if resp.Header.Get("Retry-After") != "" {
			return true
		}
	}
	return false
}

// backoffDuration derives the wait before the single retry from the
// response headers, falling back to a fixed delay.
func (c *Client) backoffDuration(resp *http.Response) time.Duration {
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
			return clampBackoff(time.Duration(secs) * time.Second)
		}
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if unix, err := strconv.ParseInt(reset, 10, 64); err == nil {
			until := time.Unix(unix, 0).Sub(c.now())
			if until > 0 {
				return clampBackoff(until)
			}
		}
	}
	return fallbackBackoff
}

func clampBackoff(d time.Duration) time.Duration {
	if d > maxBackoff {
		return maxBackoff
	}
	if d <= 0 {
		return fallbackBackoff
	}
	return d
}
