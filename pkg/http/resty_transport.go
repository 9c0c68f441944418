package http

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
)

type noContentTypeKey struct{}

// RestyTransport sends requests through a resty client.
type RestyTransport struct {
	client *resty.Client
}

// NewRestyTransport wraps c. A nil client gets a fresh resty.New().
// Timeouts come from the request context, not from the resty client.
//
// resty guesses a Content-Type for any request with a body. The transport
// installs a pre-request hook on c that strips the guess, so the headers
// on the wire are exactly the ones on the Request. This replaces any
// pre-request hook already set on c.
func NewRestyTransport(c *resty.Client) *RestyTransport {
	if c == nil {
		c = resty.New()
	}
	c.SetPreRequestHook(func(_ *resty.Client, hr *http.Request) error {
		if hr.Context().Value(noContentTypeKey{}) != nil {
			hr.Header.Del("Content-Type")
		}
		return nil
	})
	return &RestyTransport{client: c}
}

func (t *RestyTransport) Transmit(ctx context.Context, req *Request) (*Response, error) {
	if len(req.Body) > 0 {
		if _, ok := req.HeaderValue("Content-Type"); !ok {
			ctx = context.WithValue(ctx, noContentTypeKey{}, true)
		}
	}

	r := t.client.R().SetContext(ctx)
	if len(req.Header) > 0 {
		r.SetHeaders(req.Header)
	}
	if len(req.Body) > 0 {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method.String(), req.URL.String())
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}
