package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Response is what a Transport hands back: the status code and the
// fully-read body. A StatusCode <= 0 means none could be extracted.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs the network I/O for a single request.
type Transport interface {
	Transmit(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

func (f TransportFunc) Transmit(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// NetTransport sends requests through a net/http client.
type NetTransport struct {
	Client *http.Client
}

// NewNetTransport returns a NetTransport over c, or http.DefaultClient when c is nil.
func NewNetTransport(c *http.Client) *NetTransport {
	return &NetTransport{Client: c}
}

func (t *NetTransport) Transmit(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method.String(), req.URL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}
