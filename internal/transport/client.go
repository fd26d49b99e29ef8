// Package transport provides the authenticated HTTP client shared by
// the Dataiku and W&B API clients.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// Client provides HTTP client functionality with authentication.
type Client struct {
	http *http.Client
	auth Authenticator
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// WithInsecureTLS disables TLS certificate verification. Some Dataiku
// instances run with self-signed certificates; this mirrors the
// platform client's no-check-certificate mode.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.transportConfig().InsecureSkipVerify = true
	}
}

// WithClientCertificate presents a client certificate when the
// instance requires mutual TLS.
func WithClientCertificate(cert tls.Certificate) Option {
	return func(c *Client) {
		cfg := c.transportConfig()
		cfg.Certificates = append(cfg.Certificates, cert)
	}
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	client := &Client{
		http: &http.Client{Timeout: DefaultHTTPTimeout},
		auth: auth,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// transportConfig returns the client's TLS config, installing a
// dedicated http.Transport on first use.
func (c *Client) transportConfig() *tls.Config {
	transport, ok := c.http.Transport.(*http.Transport)
	if !ok {
		transport = http.DefaultTransport.(*http.Transport).Clone()
		c.http.Transport = transport
	}
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	}
	return transport.TLSClientConfig
}

// Do performs an HTTP request with authentication and common headers
// applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.auth.Apply(req)

	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// DecodeResponse decodes a JSON response into the target structure.
// Non-200 statuses become an APIError carrying the response body.
func DecodeResponse(platform string, resp *http.Response, target any) error {
	return decodeResponse(platform, resp, target)
}
