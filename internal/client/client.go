package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/net/proxy"

	"github.com/nao1215/vidsense/internal/model"
)

const (
	// DefaultEndpoint is the analyze endpoint of a backend running on the
	// same machine with its default port.
	DefaultEndpoint = "http://127.0.0.1:8000/analyze"

	// DefaultMaxBodySize limits how much of a response body is read.
	// Reports include every analyzed comment, so this is generous.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultUserAgent identifies vidsense in backend access logs.
	DefaultUserAgent = "vidsense/1.0 (+https://github.com/nao1215/vidsense)"

	// healthPath is resolved against the endpoint, so "/analyze" becomes
	// "/health" and "/api/analyze" becomes "/api/health".
	healthPath = "health"
)

// Client sends requests to the analysis backend.
// A Client is safe for concurrent use.
type Client struct {
	endpoint     *url.URL
	healthURL    *url.URL
	httpClient   *http.Client
	timeout      time.Duration
	proxyAddress string
	headers      map[string]string
	userAgent    string
	maxBodySize  int64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero, the default, means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithProxy routes requests through the SOCKS5 proxy at "host:port".
// An empty address means a direct connection.
func WithProxy(address string) Option {
	return func(c *Client) {
		c.proxyAddress = address
	}
}

// WithHeaders adds static headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodySize overrides DefaultMaxBodySize. Non-positive values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithHTTPClient uses hc as the base client. Its transport is still wrapped
// to inject headers, and WithProxy is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the given analyze endpoint.
//
// The endpoint must be an absolute http or https URL. No connection is made
// here; call Health to check that the backend is up.
func New(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, ErrInvalidEndpoint
	}

	c := &Client{
		endpoint:    u,
		healthURL:   u.ResolveReference(&url.URL{Path: healthPath}),
		headers:     make(map[string]string),
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		hc, err := c.newHTTPClient()
		if err != nil {
			return nil, err
		}
		c.httpClient = hc
	} else {
		base := c.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		clone := *c.httpClient
		clone.Transport = c.wrap(base)
		if c.timeout > 0 {
			clone.Timeout = c.timeout
		}
		c.httpClient = &clone
	}

	return c, nil
}

// newHTTPClient builds the default client, optionally dialing through SOCKS5.
func (c *Client) newHTTPClient() (*http.Client, error) {
	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		transport = &http.Transport{}
	}
	transport = transport.Clone()

	if c.proxyAddress != "" {
		if !isValidProxyAddress(c.proxyAddress) {
			return nil, ErrInvalidProxyAddress
		}

		dialer, err := proxy.SOCKS5("tcp", c.proxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}

		// Environment proxies must not apply on top of the SOCKS5 hop.
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	}

	return &http.Client{
		Transport: c.wrap(transport),
		Timeout:   c.timeout,
	}, nil
}

// wrap injects the user agent and static headers.
func (c *Client) wrap(base http.RoundTripper) http.RoundTripper {
	return &headerInjectingTransport{
		base:      base,
		userAgent: c.userAgent,
		headers:   c.headers,
	}
}

// isValidProxyAddress checks that address is "host:port" with a port in
// the range 1-65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}

// Endpoint returns the analyze endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// HealthURL returns the health check URL derived from the endpoint.
func (c *Client) HealthURL() string {
	return c.healthURL.String()
}

// Analyze posts req and returns the report.
//
// A non-2xx response with a JSON body returns an *APIError whose message is
// the body's detail or model.DefaultErrorMessage. A body that is not valid
// JSON returns a *JSONError. Transport failures are returned wrapped.
func (c *Client) Analyze(ctx context.Context, req model.AnalyzeRequest) (model.Report, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	status, payload, err := c.Forward(ctx, body)
	if err != nil {
		return nil, err
	}

	if err := checkJSON(payload); err != nil {
		return nil, &JSONError{StatusCode: status, Err: err}
	}

	if !isSuccess(status) {
		var eb model.ErrorBody
		if err := json.Unmarshal(payload, &eb); err != nil {
			// Valid JSON that is not an object carries no detail.
			eb = model.ErrorBody{}
		}
		return nil, &APIError{StatusCode: status, Message: eb.Message()}
	}

	return model.Report(payload), nil
}

// Forward posts a raw JSON body to the analyze endpoint and returns the
// response status and body without interpreting them.
func (c *Client) Forward(ctx context.Context, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := c.readBody(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, payload, nil
}

// Health checks the backend's health endpoint.
// The returned error describes why the status is not HealthOK.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL.String(), nil)
	if err != nil {
		return HealthUnreachable, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthUnreachable, err
	}
	defer resp.Body.Close()

	payload, err := c.readBody(resp.Body)
	if err != nil {
		return HealthUnhealthy, err
	}
	if !isSuccess(resp.StatusCode) {
		return HealthUnhealthy, fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return HealthUnhealthy, &JSONError{StatusCode: resp.StatusCode, Err: err}
	}
	if body.Status != "ok" {
		return HealthUnhealthy, fmt.Errorf("health check reported status %q", body.Status)
	}
	return HealthOK, nil
}

// readBody reads at most maxBodySize bytes.
func (c *Client) readBody(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > c.maxBodySize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, c.maxBodySize)
	}
	return data, nil
}

// checkJSON returns the decode error for payload, or nil if it is one
// valid JSON value.
func checkJSON(payload []byte) error {
	if json.Valid(payload) {
		return nil
	}
	var v json.RawMessage
	if err := json.Unmarshal(payload, &v); err != nil {
		return err
	}
	return errors.New("invalid JSON")
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}
