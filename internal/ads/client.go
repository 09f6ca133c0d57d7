// Package ads talks to the NASA/ADS API: literature search and BibTeX
// export by bibcode.
package ads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the ADS API base URL.
	BaseURL = "https://api.adsabs.harvard.edu/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit keeps bursts of paged searches well under the ADS
	// per-day request quota.
	RateLimit = 5.0

	// DefaultRows is the default search page size.
	DefaultRows = 20
)

// Sentinel errors for API failure modes.
var (
	ErrUnauthorized = errors.New("unauthorized access to ADS. Check that the ADS token is valid")
	ErrRateLimited  = errors.New("ADS rate limit exceeded")
)

// APIError is a non-auth, non-rate-limit HTTP failure from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ADS API error: HTTP %d: %s", e.StatusCode, e.Message)
}

// Client is a rate-limited HTTP client for the ADS API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the API token for authenticated requests.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a new ADS API client. The token defaults to the
// ADS_TOKEN environment variable.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	if token := os.Getenv("ADS_TOKEN"); token != "" {
		c.token = token
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do performs one authenticated request against the API and decodes the
// JSON response into out.
func (c *Client) do(ctx context.Context, method, url string, body []byte, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling ADS: %w", err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding ADS response: %w", err)
	}
	return nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a
// problem.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w (status %d)", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(bytes.TrimSpace(msg)),
		}
	}
	return nil
}
