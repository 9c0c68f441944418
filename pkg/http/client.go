package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/milan604/apinet/pkg/logger"
	"github.com/milan604/apinet/pkg/validator"
)

// Client builds, sends and validates HTTP requests. It holds no per-call
// state and is safe for concurrent use once constructed.
type Client struct {
	transport     Transport
	decoder       Decoder
	logger        logger.LogManager
	tracer        Tracer
	timeout       time.Duration
	requestHooks  []RequestHook
	responseHooks []ResponseHook

	debug     bool
	debugOpts []LogTracerOption
}

// ClientOption configures the HTTP client.
type ClientOption func(*Client)

// WithTransport sets the transport that performs network I/O.
func WithTransport(t Transport) ClientOption {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithHTTPClient sends requests through a custom http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.transport = NewNetTransport(hc)
	}
}

// WithDecoder replaces the JSON decoder used by DoJSON and ExecuteAs.
func WithDecoder(d Decoder) ClientOption {
	return func(c *Client) {
		if d != nil {
			c.decoder = d
		}
	}
}

// WithLogger sets a logger for the client.
func WithLogger(l logger.LogManager) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracer installs a diagnostic tracer.
func WithTracer(t Tracer) ClientOption {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithDebug traces every exchange through the client's logger. It
// takes precedence over WithTracer.
func WithDebug(opts ...LogTracerOption) ClientOption {
	return func(c *Client) {
		c.debug = true
		c.debugOpts = opts
	}
}

// WithTimeout replaces DefaultTimeout for every request sent by this
// client. There is no per-call override.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRequestHook adds a hook that runs before each request.
func WithRequestHook(hook RequestHook) ClientOption {
	return func(c *Client) {
		c.requestHooks = append(c.requestHooks, hook)
	}
}

// WithResponseHook adds a hook that runs after each successful response.
func WithResponseHook(hook ResponseHook) ClientOption {
	return func(c *Client) {
		c.responseHooks = append(c.responseHooks, hook)
	}
}

// NewClient creates a new HTTP client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		transport: NewNetTransport(nil),
		decoder:   JSONDecoder{},
		logger:    logger.NewNop(),
		tracer:    NopTracer{},
		timeout:   DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.debug {
		c.tracer = NewLogTracer(c.logger, c.debugOpts...)
	}

	return c
}

// Timeout returns the timeout applied to every request.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Execute sends req and returns the response body unmodified when the
// status code is in [200, 299]. req itself is never modified. A body is
// only transmitted for methods that carry a payload, and the client's
// timeout always applies.
func (c *Client) Execute(ctx context.Context, req *Request) ([]byte, error) {
	if req == nil || req.URL == nil {
		return nil, invalidURLError(fmt.Errorf("request has no url"))
	}

	req = req.Clone()
	if err := c.applyRequestHooks(ctx, req); err != nil {
		return nil, err
	}
	if !req.Method.HasBody() {
		req.Body = nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.tracer.TraceRequest(ctx, req)

	resp, err := c.transmit(ctx, req)
	if err != nil {
		c.tracer.TraceError(ctx, req, err)
		return nil, err
	}

	c.tracer.TraceResponse(ctx, req, resp)

	if err := c.applyResponseHooks(ctx, req, resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// transmit delegates to the transport and validates the status code.
func (c *Client) transmit(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.transport.Transmit(ctx, req)
	if err != nil {
		return nil, noResponseError(err)
	}
	if resp == nil {
		return nil, noResponseError(fmt.Errorf("transport returned no response"))
	}
	if resp.StatusCode <= 0 {
		return nil, ErrorCodeUnableToProcess.Err()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, invalidResponseError(resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) applyRequestHooks(ctx context.Context, req *Request) error {
	for _, hook := range c.requestHooks {
		if err := hook(ctx, req); err != nil {
			return APIError(fmt.Sprintf("request hook failed: %v", err))
		}
	}
	return nil
}

func (c *Client) applyResponseHooks(ctx context.Context, req *Request, resp *Response) error {
	for _, hook := range c.responseHooks {
		if err := hook(ctx, req, resp); err != nil {
			return APIError(fmt.Sprintf("response hook failed: %v", err))
		}
	}
	return nil
}

// ExecuteURL builds a request for target and executes it.
func (c *Client) ExecuteURL(ctx context.Context, target string, method Method, headers map[string]string) ([]byte, error) {
	req, err := BuildRequest(target, method, headers)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, req)
}

// Decode runs the client's decoder, mapping any failure to ErrDecoding.
func (c *Client) Decode(data []byte, v any) error {
	if err := c.decoder.Decode(data, v); err != nil {
		return decodingError(err)
	}
	return nil
}

// DoJSON executes req and decodes the body into v, which must be a
// non-nil pointer. v is only assigned when decoding succeeds.
func (c *Client) DoJSON(ctx context.Context, req *Request, v any) error {
	data, err := c.Execute(ctx, req)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return c.decodeInto(data, v)
}

func (c *Client) decodeInto(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return decodingError(fmt.Errorf("decode target must be a non-nil pointer, got %T", v))
	}
	tmp := reflect.New(rv.Elem().Type())
	if err := c.Decode(data, tmp.Interface()); err != nil {
		return err
	}
	if err := checkDecoded(data, tmp.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(tmp.Elem())
	return nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return c.ExecuteURL(ctx, url, Get(), headers)
}

// Post performs a POST request carrying body.
func (c *Client) Post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	return c.ExecuteURL(ctx, url, Post(body), headers)
}

// Put performs a PUT request carrying body.
func (c *Client) Put(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	return c.ExecuteURL(ctx, url, Put(body), headers)
}

// Patch performs a PATCH request carrying body.
func (c *Client) Patch(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	return c.ExecuteURL(ctx, url, Patch(body), headers)
}

// Delete performs a DELETE request carrying body, which may be nil.
func (c *Client) Delete(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	return c.ExecuteURL(ctx, url, Delete(body), headers)
}

// GetJSON performs a GET request and decodes the JSON response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	req, err := BuildRequest(url, Get(), nil)
	if err != nil {
		return err
	}
	return c.DoJSON(ctx, req, v)
}

// PostJSON marshals body, POSTs it and decodes the JSON response into v.
func (c *Client) PostJSON(ctx context.Context, url string, body any, v any) error {
	var payload []byte
	if body != nil {
		b, err := JSONBody(body)
		if err != nil {
			return err
		}
		payload = b
	}
	req, err := BuildRequest(url, Post(payload), nil)
	if err != nil {
		return err
	}
	return c.DoJSON(ctx, req, v)
}

// ExecuteAs executes req through e and decodes the body into a T. On
// any decoding failure it returns the zero T and an ErrDecoding error.
// A JSON null is only accepted for pointer, slice, map and interface
// types, and struct fields tagged `validate:"required"` must be present.
func ExecuteAs[T any](ctx context.Context, e Executor, req *Request) (T, error) {
	var zero T
	data, err := e.Execute(ctx, req)
	if err != nil {
		return zero, err
	}
	return decodeAs[T](e, data)
}

// ExecuteURLAs is ExecuteAs for a target URL string.
func ExecuteURLAs[T any](ctx context.Context, e Executor, target string, method Method, headers map[string]string) (T, error) {
	var zero T
	data, err := e.ExecuteURL(ctx, target, method, headers)
	if err != nil {
		return zero, err
	}
	return decodeAs[T](e, data)
}

func decodeAs[T any](e Executor, data []byte) (T, error) {
	var out T
	if err := e.Decode(data, &out); err != nil {
		var zero T
		if !errors.Is(err, ErrDecoding) {
			err = decodingError(err)
		}
		return zero, err
	}
	if err := checkDecoded(data, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

var payloadValidator = validator.New()

// checkDecoded rejects payloads that parsed but do not describe the
// target: a null for a non-nillable type, or a struct failing its
// validate tags. v is the pointer that was decoded into.
func checkDecoded(data []byte, v any) error {
	rv := reflect.ValueOf(v).Elem()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		switch rv.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
			return nil
		}
		return decodingError(fmt.Errorf("null is not a valid %s", rv.Type()))
	}

	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	if err := payloadValidator.Struct(rv.Addr().Interface()); err != nil {
		return decodingError(err)
	}
	return nil
}
