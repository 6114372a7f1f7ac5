// Package doh resolves MX records through a DNS-over-HTTPS endpoint.
//
// Two request encodings are supported: the JSON API served by
// https://dns.google/resolve and https://cloudflare-dns.com/dns-query,
// and the RFC 8484 binary message format.
package doh

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/time/rate"
)

// Format selects the DoH request encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatWire Format = "wire"
)

const (
	DefaultJSONEndpoint = "https://dns.google/resolve"
	DefaultWireEndpoint = "https://dns.google/dns-query"

	maxResponseBytes = 64 << 10
)

// ErrStatus is returned when the endpoint answers with a non-2xx status.
var ErrStatus = errors.New("doh: unexpected HTTP status")

// ErrServerFailure is returned when the resolver answers SERVFAIL. The
// resolver could not reach the domain's nameservers, so that is a failed
// lookup rather than a domain without mail exchangers. NXDOMAIN and other
// rcodes are decided by the answer section alone.
var ErrServerFailure = errors.New("doh: resolver returned SERVFAIL")

// Config is the DoH client configuration.
type Config struct {
	Endpoint string
	Format   Format
	// Timeout bounds one lookup, including the HTTP round trip. Default: 5s
	Timeout time.Duration
	// RateLimit is the maximum number of lookups per second. 0 disables limiting.
	RateLimit float64
	// HTTPClient is injectable for testing. Defaults to a client with Timeout.
	HTTPClient *http.Client
}

// Client performs MX lookups against one DoH endpoint.
// It is safe for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a DoH client, filling unset Config fields with defaults.
func New(cfg Config) *Client {
	if cfg.Format == "" {
		cfg.Format = FormatJSON
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultJSONEndpoint
		if cfg.Format == FormatWire {
			cfg.Endpoint = DefaultWireEndpoint
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	c := &Client{cfg: cfg, http: cfg.HTTPClient}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return c
}

// Endpoint returns the resolver URL in use.
func (c *Client) Endpoint() string { return c.cfg.Endpoint }

// HasMX reports whether domain has at least one answer record for an MX query.
// Any transport, status or decoding failure is returned as an error.
func (c *Client) HasMX(ctx context.Context, domain string) (bool, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return false, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	switch c.cfg.Format {
	case FormatWire:
		return c.lookupWire(ctx, domain)
	case FormatJSON:
		return c.lookupJSON(ctx, domain)
	}
	return false, fmt.Errorf("doh: unknown format %q", c.cfg.Format)
}

// jsonResponse is the subset of the JSON API response that matters here.
// Status carries the DNS rcode.
type jsonResponse struct {
	Status int               `json:"Status"`
	Answer []json.RawMessage `json:"Answer"`
}

func (c *Client) lookupJSON(ctx context.Context, domain string) (bool, error) {
	u, err := c.requestURL(url.Values{"name": {domain}, "type": {"MX"}})
	if err != nil {
		return false, err
	}
	body, err := c.get(ctx, u, "application/dns-json")
	if err != nil {
		return false, err
	}

	var resp jsonResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("doh: decode JSON response for %s: %w", domain, err)
	}
	if resp.Status == dns.RcodeServerFailure {
		return false, fmt.Errorf("%w: %s", ErrServerFailure, domain)
	}
	return len(resp.Answer) > 0, nil
}

func (c *Client) lookupWire(ctx context.Context, domain string) (bool, error) {
	q := new(dns.Msg)
	q.SetQuestion(dns.Fqdn(domain), dns.TypeMX)
	// RFC 8484 asks for ID 0 so GET responses are cache friendly.
	q.Id = 0
	packed, err := q.Pack()
	if err != nil {
		return false, fmt.Errorf("doh: pack query for %s: %w", domain, err)
	}

	u, err := c.requestURL(url.Values{"dns": {base64.RawURLEncoding.EncodeToString(packed)}})
	if err != nil {
		return false, err
	}
	body, err := c.get(ctx, u, "application/dns-message")
	if err != nil {
		return false, err
	}

	resp := new(dns.Msg)
	if err := resp.Unpack(body); err != nil {
		return false, fmt.Errorf("doh: decode wire response for %s: %w", domain, err)
	}
	if resp.Rcode == dns.RcodeServerFailure {
		return false, fmt.Errorf("%w: %s", ErrServerFailure, domain)
	}
	return len(resp.Answer) > 0, nil
}

func (c *Client) requestURL(params url.Values) (string, error) {
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("doh: parse endpoint: %w", err)
	}
	q := u.Query()
	for k, v := range params {
		q[k] = v
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) get(ctx context.Context, u, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("doh: build request: %w", err)
	}
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("doh: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("doh: read response: %w", err)
	}
	return body, nil
}
