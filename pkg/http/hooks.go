package http

import (
	"context"

	"github.com/google/uuid"

	"github.com/milan604/apinet/pkg/logger"
)

// DefaultRequestIDHeader is the header RequestIDHook writes when none is given.
const DefaultRequestIDHeader = "X-Request-ID"

// RequestHook may modify a request clone before it is transmitted.
type RequestHook func(ctx context.Context, req *Request) error

// ResponseHook inspects a response that already passed status validation.
type ResponseHook func(ctx context.Context, req *Request, resp *Response) error

// RequestIDHook sets header to the request id found in ctx, or to a new
// UUID when ctx has none. An existing header value is kept.
func RequestIDHook(header string) RequestHook {
	if header == "" {
		header = DefaultRequestIDHeader
	}
	return func(ctx context.Context, req *Request) error {
		if _, ok := req.HeaderValue(header); ok {
			return nil
		}
		id, ok := logger.RequestIDFrom(ctx)
		if !ok {
			id = uuid.NewString()
		}
		req.SetHeader(header, id)
		return nil
	}
}
