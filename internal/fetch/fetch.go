package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/askeland/fsra-register/internal/logger"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

const (
	// DefaultUserAgent identifies the exporter to the register.
	DefaultUserAgent = "fsra-register/1.0 (github.com/askeland/fsra-register)"

	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Config controls a Client. Zero values fall back to the defaults below.
type Config struct {
	Timeout         time.Duration // per-request timeout (default 10s)
	UserAgent       string        // User-Agent header (default DefaultUserAgent)
	MaxRetries      int           // retries after the first attempt, transient errors only (default 5, negative disables)
	RequestInterval time.Duration // minimum spacing between requests (default 500ms)
	RetryInterval   time.Duration // initial backoff between retries (default 250ms)
	Headers         http.Header   // extra headers sent on every request
}

// Client fetches pages from the register. It keeps no per-request state;
// the rate limiter is the only thing shared between calls.
type Client struct {
	http          *http.Client
	userAgent     string
	maxRetries    uint64
	retryInterval time.Duration
	headers       http.Header
	limiter       *rate.Limiter
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	} else if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 5
	}
	if cfg.RequestInterval <= 0 {
		cfg.RequestInterval = 500 * time.Millisecond
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 250 * time.Millisecond
	}

	return &Client{
		http:          &http.Client{Timeout: cfg.Timeout},
		userAgent:     cfg.UserAgent,
		maxRetries:    uint64(cfg.MaxRetries),
		retryInterval: cfg.RetryInterval,
		headers:       cfg.Headers,
		limiter:       rate.NewLimiter(rate.Every(cfg.RequestInterval), 1),
	}
}

// Error is a failed fetch. Status is zero when no response was received.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Transient reports whether retrying the same request could succeed:
// timeouts and 5xx responses qualify, 4xx and DNS failures do not.
func (e *Error) Transient() bool {
	if e.Status >= 500 {
		return true
	}
	if e.Status != 0 {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(e.Err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

// NotFound reports whether the register answered 404 for this URL.
func (e *Error) NotFound() bool { return e.Status == http.StatusNotFound }

// Get fetches rawURL with params appended as the query string and returns
// the response body. Transient failures are retried with exponential backoff
// up to the configured limit; ctx cancellation stops both waiting and
// retrying.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	target, err := buildURL(rawURL, params)
	if err != nil {
		return nil, err
	}

	var body []byte
	attempt := 0

	op := func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		b, err := c.getOnce(ctx, target)
		if err == nil {
			body = b
			return nil
		}

		var fe *Error
		if errors.As(err, &fe) && fe.Transient() {
			logger.Warn("transient fetch failure, will retry", logger.Fields{
				"url":     target,
				"status":  fe.Status,
				"attempt": attempt,
			})
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) getOnce(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &Error{URL: target, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: target, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}

func buildURL(rawURL string, params url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", rawURL, err)
	}
	if len(params) > 0 {
		q := u.Query()
		for key, values := range params {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
