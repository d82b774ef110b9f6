package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// HttpRequestDoer performs HTTP requests.
type HttpRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestEditorFn mutates an outgoing request before it is sent.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// ClientOption configures the client.
type ClientOption func(*Client) error

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(doer HttpRequestDoer) ClientOption {
	return func(c *Client) error {
		c.doer = doer
		return nil
	}
}

// WithTimeout sets the per-request deadline.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) error {
		if timeout < 0 {
			return fmt.Errorf("timeout must not be negative, got %s", timeout)
		}
		c.timeout = timeout
		return nil
	}
}

// WithLogger routes request failures to the given logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithRequestEditorFn adds a function applied to every request.
func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(c *Client) error {
		if fn != nil {
			c.editors = append(c.editors, fn)
		}
		return nil
	}
}

// Client talks to the back office dispatcher. Every resource path travels in
// the endpoint query parameter of a single base URL.
type Client struct {
	baseURL *url.URL
	doer    HttpRequestDoer
	timeout time.Duration
	logger  *slog.Logger
	editors []RequestEditorFn
}

// New builds a client for baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("back office base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL: parsed,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.doer == nil {
		c.doer = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return c, nil
}

// Products returns the products namespace.
func (c *Client) Products() *ProductsAPI {
	return &ProductsAPI{client: c}
}

// Orders returns the orders namespace.
func (c *Client) Orders() *OrdersAPI {
	return &OrdersAPI{client: c}
}

// APIError is returned for every non-2xx answer.
type APIError struct {
	Status  int
	Message string
	Detail  string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "api error"
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.Status)
}

// IsNotFound reports whether err is an API answer with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type errorEnvelope struct {
	Error  string            `json:"error"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

// endpointURL appends endpoint=<path> to the base URL, keeping any query the
// base already carries.
func (c *Client) endpointURL(path string) (string, error) {
	query, err := runtime.StyleParamWithLocation("form", true, "endpoint", runtime.ParamLocationQuery, path)
	if err != nil {
		return "", fmt.Errorf("style endpoint parameter: %w", err)
	}
	u := *c.baseURL
	if u.RawQuery != "" {
		u.RawQuery += "&" + query
	} else {
		u.RawQuery = query
	}
	return u.String(), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	target, err := c.endpointURL(path)
	if err != nil {
		return nil, err
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, edit := range c.editors {
		if err := edit(ctx, req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// call issues one request and decodes a 2xx body into out. No retries.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	err := c.roundTrip(ctx, method, path, body, out)
	if err != nil {
		attrs := []slog.Attr{
			slog.String("http.method", method),
			slog.String("endpoint", path),
			slog.String("error", err.Error()),
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			attrs = append(attrs, slog.Int("http.status", apiErr.Status))
		}
		c.logger.LogAttrs(ctx, slog.LevelError, "back office request failed", attrs...)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	res, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeAPIError(res)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(res *http.Response) error {
	var envelope errorEnvelope
	_ = json.NewDecoder(res.Body).Decode(&envelope)
	message := envelope.Error
	if message == "" {
		message = http.StatusText(res.StatusCode)
	}
	return &APIError{
		Status:  res.StatusCode,
		Message: message,
		Detail:  envelope.Detail,
		Fields:  envelope.Fields,
	}
}
