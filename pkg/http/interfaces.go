package http

import (
	"context"
)

// Executor is the call surface of Client. Depend on it to inject fakes.
type Executor interface {
	// Execute sends a pre-built request and returns the raw body of a 2xx response.
	Execute(ctx context.Context, req *Request) ([]byte, error)

	// ExecuteURL builds a request for target and executes it.
	ExecuteURL(ctx context.Context, target string, method Method, headers map[string]string) ([]byte, error)

	// Decode decodes a response body into v.
	Decode(data []byte, v any) error
}

// HTTPClient extends Executor with the verb and JSON helpers of Client.
type HTTPClient interface {
	Executor

	DoJSON(ctx context.Context, req *Request, v any) error
	Get(ctx context.Context, url string, headers map[string]string) ([]byte, error)
	Post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error)
	Put(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error)
	Patch(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error)
	Delete(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error)
	GetJSON(ctx context.Context, url string, v any) error
	PostJSON(ctx context.Context, url string, body any, v any) error
}

// Ensure Client implements HTTPClient interface.
var _ HTTPClient = (*Client)(nil)
