// Package api implements the resilient HTTP client for the fleet-rental
// backend: bearer-token auth, connectivity gating, per-attempt timeouts,
// bounded retries with exponential backoff, and refresh-then-retry-once
// on token expiry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/rentafleet/fleetapi-go/internal/client/models"
	"github.com/rentafleet/fleetapi-go/internal/logging"
	"github.com/rentafleet/fleetapi-go/internal/retryx"
)

// TokenSource yields the current session for attaching credentials.
// A nil session means no credentials are available.
type TokenSource interface {
	Get(ctx context.Context) (*models.Session, error)
}

// Connectivity reports whether the device currently has network access.
type Connectivity interface {
	IsOnline() bool
}

// Refresher renews the session after a 401. Implementations must be
// single-flight: concurrent callers share one in-progress refresh.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Options configures a Client. Zero values fall back to defaults:
// 10s per-attempt timeout, 3 attempts with 1s base delay, a discarding
// logger, and the shared http.DefaultClient transport.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Retry      retryx.Policy
	Tokens     TokenSource
	Monitor    Connectivity
	Refresher  Refresher
	HTTPClient *http.Client
	Logger     logging.Logger
}

// Client executes logical requests against the backend. Instances are
// cheap and may be created freely; all of them should share the same
// TokenSource and Connectivity so they observe a consistent session.
type Client struct {
	baseURL   string
	timeout   time.Duration
	policy    retryx.Policy
	tokens    TokenSource
	monitor   Connectivity
	refresher Refresher
	http      *http.Client
	log       logging.Logger
}

const defaultTimeout = 10 * time.Second

func New(opts Options) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		timeout:   opts.Timeout,
		policy:    opts.Retry,
		tokens:    opts.Tokens,
		monitor:   opts.Monitor,
		refresher: opts.Refresher,
		http:      opts.HTTPClient,
		log:       opts.Logger,
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.policy.MaxAttempts <= 0 {
		c.policy = retryx.DefaultPolicy()
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	return c
}

// Do executes the logical request described by desc and decodes the
// envelope's data field into out (which may be nil).
//
// Order of operations per call: offline gate, then the retryable
// execution, then at most one refresh-and-re-execute round on 401.
// Cancelling ctx aborts pending attempts and backoff waits; a cancelled
// call never triggers a refresh.
func (c *Client) Do(ctx context.Context, desc RequestDescriptor, out any) error {
	if desc.RequiresAuth && c.monitor != nil && !c.monitor.IsOnline() {
		return fmt.Errorf("%s %s: %w", desc.Method, desc.Path, ErrNoConnectivity)
	}

	err := c.execute(ctx, desc, out)
	if err == nil || !desc.RequiresAuth || c.refresher == nil || !errors.Is(err, ErrUnauthorized) {
		return err
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.log.Debug(ctx, "got 401, refreshing session", "method", desc.Method, "path", desc.Path)
	if rerr := c.refresher.Refresh(ctx); rerr != nil {
		// Refresh failed; the original 401 is the terminal outcome.
		return err
	}
	return c.execute(ctx, desc, out)
}

// execute runs the bounded retry loop for one logical request.
// The last attempt's error is surfaced as-is when the budget runs out.
func (c *Client) execute(ctx context.Context, desc RequestDescriptor, out any) error {
	attempt := 0
	return retry.Do(ctx, c.policy.Backoff(), func(ctx context.Context) error {
		attempt++
		err := c.attempt(ctx, desc, out)
		if err != nil && Retryable(err) {
			c.log.Debug(ctx, "transient request failure",
				"method", desc.Method, "path", desc.Path, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
}

// attempt performs a single network attempt under the per-attempt timeout.
func (c *Client) attempt(ctx context.Context, desc RequestDescriptor, out any) error {
	actx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if desc.Body != nil {
		buf, err := json.Marshal(desc.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(actx, desc.Method, c.buildURL(desc), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if desc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if desc.RequiresAuth && c.tokens != nil {
		sess, err := c.tokens.Get(ctx)
		if err != nil {
			return fmt.Errorf("read session: %w", err)
		}
		if sess != nil {
			req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", desc.Method, desc.Path, ErrTimeout)
		}
		return fmt.Errorf("%s %s: %w (%v)", desc.Method, desc.Path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s %s: read body: %w", desc.Method, desc.Path, ErrUnavailable)
	}

	var env Envelope
	parseErr := json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if env.Message != "" {
			return fmt.Errorf("%s: %w", env.Message, ErrUnauthorized)
		}
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		return &StatusError{Code: resp.StatusCode, Message: env.Message}
	}

	if parseErr != nil {
		return fmt.Errorf("%s %s: %w", desc.Method, desc.Path, ErrMalformedResponse)
	}
	if !env.Success {
		return &StatusError{Code: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", ErrMalformedResponse)
		}
	}
	return nil
}

func (c *Client) buildURL(desc RequestDescriptor) string {
	u := c.baseURL + "/" + strings.TrimLeft(desc.Path, "/")
	if len(desc.Query) > 0 {
		u += "?" + desc.Query.Encode()
	}
	return u
}
