package http

import (
	"context"
	"unicode/utf8"

	"github.com/milan604/apinet/pkg/logger"
)

// Tracer receives diagnostic callbacks around each exchange. It never
// influences control flow.
type Tracer interface {
	TraceRequest(ctx context.Context, req *Request)
	TraceResponse(ctx context.Context, req *Request, resp *Response)
	TraceError(ctx context.Context, req *Request, err error)
}

// NopTracer discards every callback.
type NopTracer struct{}

func (NopTracer) TraceRequest(context.Context, *Request)             {}
func (NopTracer) TraceResponse(context.Context, *Request, *Response) {}
func (NopTracer) TraceError(context.Context, *Request, error)        {}

// LogTracer writes requests and responses to a LogManager at debug level
// and failures at warn level.
type LogTracer struct {
	log  logger.LogManager
	curl bool
	max  int
}

// LogTracerOption configures a LogTracer.
type LogTracerOption func(*LogTracer)

// WithCurl also logs a curl command that reproduces each request.
func WithCurl() LogTracerOption {
	return func(t *LogTracer) { t.curl = true }
}

// WithMaxBody truncates logged bodies to n bytes. n <= 0 logs them whole.
func WithMaxBody(n int) LogTracerOption {
	return func(t *LogTracer) { t.max = n }
}

// NewLogTracer creates a LogTracer writing to l.
func NewLogTracer(l logger.LogManager, opts ...LogTracerOption) *LogTracer {
	t := &LogTracer{log: l, max: 4096}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *LogTracer) TraceRequest(ctx context.Context, req *Request) {
	if !t.log.Enabled("debug") {
		return
	}
	t.log.DebugFCtx(ctx, "api request: method=%s url=%s headers=%v body=%s",
		req.Method, req.URL, req.Header, t.printable(req.Body, "No Request Body"))
	if t.curl {
		t.log.DebugFCtx(ctx, "curl command: %s", CurlCommand(req))
	}
}

func (t *LogTracer) TraceResponse(ctx context.Context, req *Request, resp *Response) {
	if !t.log.Enabled("debug") {
		return
	}
	t.log.DebugFCtx(ctx, "api response: method=%s url=%s status=%d body=%s",
		req.Method, req.URL, resp.StatusCode, t.printable(resp.Body, "Unable to print response"))
}

func (t *LogTracer) TraceError(ctx context.Context, req *Request, err error) {
	t.log.WarnFCtx(ctx, "api request failed: method=%s url=%s: %v", req.Method, req.URL, err)
}

func (t *LogTracer) printable(b []byte, fallback string) string {
	if len(b) == 0 {
		return "<empty>"
	}
	if !utf8.Valid(b) {
		return fallback
	}
	if t.max > 0 && len(b) > t.max {
		return string(b[:t.max]) + "...(truncated)"
	}
	return string(b)
}
