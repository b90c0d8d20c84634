// Package upstream holds the outbound HTTP plumbing shared by every external
// catalog adapter: throttling, body limits, decoding and the error taxonomy.
package upstream

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultMaxBodyBytes caps ordinary adapter responses.
const DefaultMaxBodyBytes = 4 << 20

// Options configures a Client.
type Options struct {
	UserAgent string
	// RPS limits outbound requests per second. Zero disables throttling.
	RPS     int
	Timeout time.Duration
}

// Client issues GET requests against one external provider. It never retries;
// retry policy belongs to the caller.
type Client struct {
	provider   string
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

func NewClient(provider string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Every(time.Second / time.Duration(opts.RPS))
	}
	return &Client{
		provider: provider,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: opts.UserAgent,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// WithHTTPClient swaps the underlying http.Client, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Provider returns the provider name used in errors.
func (c *Client) Provider() string {
	return c.provider
}

// Get fetches rawURL with params and returns at most maxBytes of body.
// A body larger than maxBytes is reported as a TransportError.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	if err := c.limiter.Wait(ctx); err != nil {
		// The limiter refuses early when the next token lands past the deadline.
		if _, ok := ctx.Deadline(); ok && ctx.Err() == nil {
			err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}
		return nil, NewTransportError(c.provider, err)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, NewTransportError(c.provider, err)
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, NewTransportError(c.provider, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewTransportError(c.provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, NewStatusError(c.provider, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, NewTransportError(c.provider, err)
	}
	if int64(len(body)) > maxBytes {
		return nil, NewTransportError(c.provider, fmt.Errorf("response body exceeds %d bytes", maxBytes))
	}
	return body, nil
}

// GetJSON fetches rawURL and decodes the JSON body into target.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, target any) error {
	body, err := c.Get(ctx, rawURL, params, DefaultMaxBodyBytes)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return NewParseError(c.provider, err)
	}
	return nil
}

// GetXML fetches rawURL and decodes the XML body into target.
func (c *Client) GetXML(ctx context.Context, rawURL string, params url.Values, maxBytes int64, target any) error {
	body, err := c.Get(ctx, rawURL, params, maxBytes)
	if err != nil {
		return err
	}
	return DecodeXML(c.provider, body, target)
}

// DecodeXML decodes body into target, reporting failures as ParseError.
func DecodeXML(provider string, body []byte, target any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return NewParseError(provider, errors.New("empty document"))
	}
	if err := xml.Unmarshal(body, target); err != nil {
		return NewParseError(provider, err)
	}
	return nil
}
