// Package api is a typed client for the expenditure backend REST API.
//
// Every method performs exactly one HTTP round trip and returns the decoded
// envelope without unwrapping it, so callers can branch on Success and
// Message. Failures to obtain a well-formed envelope are returned as errors:
// use errors.Is with ErrTransport, ErrTimeout, ErrStatus and ErrDecode to
// tell them apart. A 2xx envelope with success=false is not an error.
//
// The client keeps no state between calls: no retries, no caching.
package api

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
	"strings"
	"time"

	"github.com/google/uuid"

	"expenditure/internal/core"
	"expenditure/internal/log"
)

const (
	// BasePath prefixes every endpoint.
	BasePath = "/api"
	// DefaultTimeout bounds every round trip, body read included.
	DefaultTimeout = 10 * time.Second

	defaultUserAgent = "expenditure-web"
	maxBodyBytes     = 4 << 20
)

// Client is safe for concurrent use. Build one at startup and pass it to
// consumers.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
	userAgent  string
	requestID  func(context.Context) string
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithTimeout replaces DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithTransport sets the round tripper used for requests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.httpClient.Transport = rt }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.WithComponent(log.ComponentAPI)
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRequestID sets how the X-Request-ID header is derived from the call
// context. When fn returns "" a random UUID is sent.
func WithRequestID(fn func(context.Context) string) Option {
	return func(c *Client) { c.requestID = fn }
}

// New returns a client for the backend at origin (scheme://host[:port]).
func New(origin string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return nil, fmt.Errorf("parse origin %q: %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid origin %q: scheme must be http or https", origin)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid origin %q: missing host", origin)
	}
	u.RawQuery, u.Fragment = "", ""
	u.Path = strings.TrimRight(u.Path, "/") + BasePath

	c := &Client{
		baseURL:    u.String(),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.Discard().WithComponent(log.ComponentAPI),
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the absolute URL every endpoint path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

type param struct {
	key   string
	value string
}

// encodeQuery keeps parameters in the given order; url.Values would sort them.
func encodeQuery(params []param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}
	return strings.Join(parts, "&")
}

type request struct {
	op     string
	method string
	path   string
	query  []param
	body   any
	fields log.LogFields
}

// rawEnvelope distinguishes absent keys from zero values.
type rawEnvelope struct {
	Data    json.RawMessage `json:"data"`
	Success *bool           `json:"success"`
	Message *string         `json:"message"`
}

type validator interface {
	Validate() error
}

func do[T any](ctx context.Context, c *Client, r request) (*core.Envelope[T], error) {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + encodeQuery(r.query)
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("api: %s: encode request: %w", r.op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("api: %s: build request: %w", r.op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", c.newRequestID(ctx))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	fields := r.fields
	if fields == nil {
		fields = log.NewFields()
	}
	fields.WithOperation(r.op).
		WithHTTPRequest(r.method, req.URL.Path, req.URL.RawQuery).
		WithRequestID(req.Header.Get("X-Request-ID"))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		terr := transportError(r, target, err)
		c.logFailure(ctx, "API request failed", terr, fields, start)
		return nil, terr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		terr := transportError(r, target, err)
		c.logFailure(ctx, "API response read failed", terr, fields, start)
		return nil, terr
	}

	fields.WithHTTPResponse(resp.StatusCode, time.Since(start).Milliseconds(), resp.StatusCode < 300)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{Op: r.op, StatusCode: resp.StatusCode, Body: raw}
		var env rawEnvelope
		if json.Unmarshal(raw, &env) == nil {
			serr.Message = env.Message
		}
		c.logFailure(ctx, "API returned error status", serr, fields, start)
		return nil, serr
	}

	env, err := decodeEnvelope[T](r.op, resp.StatusCode, raw)
	if err != nil {
		c.logFailure(ctx, "API response rejected", err, fields, start)
		return nil, err
	}
	if !env.Success {
		fields.WithErrorType(log.ErrorTypeRejected)
		c.logger.WarnContext(ctx, "API reported failure", append(fields.ToSlice(), "message", env.MessageOr(""))...)
		return env, nil
	}
	c.logger.DebugContext(ctx, "API request completed", fields.ToSlice()...)
	return env, nil
}

func decodeEnvelope[T any](op string, status int, body []byte) (*core.Envelope[T], error) {
	fail := func(err error) error {
		return &DecodeError{Op: op, StatusCode: status, Err: err}
	}

	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fail(err)
	}
	if raw.Success == nil {
		return nil, fail(errors.New(`missing "success"`))
	}
	if len(raw.Data) == 0 {
		return nil, fail(errors.New(`missing "data"`))
	}

	env := &core.Envelope[T]{Success: *raw.Success, Message: raw.Message}
	if bytes.Equal(bytes.TrimSpace(raw.Data), []byte("null")) {
		if env.Success {
			return nil, fail(errors.New(`"data" is null on success`))
		}
		return env, nil
	}
	if err := json.Unmarshal(raw.Data, &env.Data); err != nil {
		return nil, fail(fmt.Errorf("data: %w", err))
	}
	if env.Success {
		if v, ok := any(env.Data).(validator); ok {
			if err := v.Validate(); err != nil {
				return nil, fail(fmt.Errorf("data: %w", err))
			}
		}
	}
	return env, nil
}

func transportError(r request, target string, err error) *TransportError {
	return &TransportError{
		Op:      r.op,
		Method:  r.method,
		URL:     target,
		Timeout: isTimeout(err),
		Err:     err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func (c *Client) newRequestID(ctx context.Context) string {
	if c.requestID != nil {
		if id := c.requestID(ctx); id != "" {
			return id
		}
	}
	return uuid.NewString()
}

func (c *Client) logFailure(ctx context.Context, msg string, err error, fields log.LogFields, start time.Time) {
	fields[log.FieldDuration] = time.Since(start).Milliseconds()
	fields.WithError(err).WithErrorType(errorType(err))
	c.logger.WarnContext(ctx, msg, fields.ToSlice()...)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return log.ErrorTypeTimeout
	case errors.Is(err, ErrTransport):
		return log.ErrorTypeNetwork
	case errors.Is(err, ErrStatus):
		return log.ErrorTypeStatus
	case errors.Is(err, ErrDecode):
		return log.ErrorTypeDecode
	case errors.Is(err, ErrInvalidArgument):
		return log.ErrorTypeValidation
	}
	return log.ErrorTypeInternal
}
