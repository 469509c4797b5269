package docfold

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/docfold/docfold-go/metrics"
)

const (
	// DefaultBaseURL is the hosted Docfold API endpoint.
	DefaultBaseURL = "https://api.docfold.io"
	// DefaultVersion is the API version segment appended to the base URL.
	DefaultVersion = "v1"

	defaultTimeout = 30 * time.Second
)

// Client is a Docfold API client. It is safe for concurrent use; all
// configuration is fixed at construction.
type Client struct {
	baseURL    string
	version    string
	endpoint   string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, e.g. for a self-hosted instance or
// a local sandbox server. A trailing slash is stripped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithVersion overrides the API version segment.
func WithVersion(version string) Option {
	return func(c *Client) {
		c.version = strings.Trim(version, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client, for custom timeouts,
// proxies or transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMetrics instruments every request with the given Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Docfold API client authenticating with the given key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		version:   DefaultVersion,
		apiKey:    apiKey,
		userAgent: "docfold-go/" + Version,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.endpoint = c.baseURL + "/" + c.version

	if c.metrics != nil {
		base := c.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		instrumented := *c.httpClient
		instrumented.Transport = c.metrics.Transport(base)
		c.httpClient = &instrumented
	}
	return c
}

// BaseURL returns the configured API endpoint without the version segment.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ValidateKey checks the configured API key against the service. A nil error
// means the key is accepted.
func (c *Client) ValidateKey(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint+"/token", nil, "")
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}
