package http

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Method is an HTTP verb together with its optional payload. GET never
// carries a body; the other verbs carry whatever bytes they were built with.
type Method struct {
	verb string
	body []byte
}

// Get returns the GET method.
func Get() Method { return Method{verb: http.MethodGet} }

// Put returns a PUT method carrying body, which may be nil.
func Put(body []byte) Method { return Method{verb: http.MethodPut, body: body} }

// Post returns a POST method carrying body, which may be nil.
func Post(body []byte) Method { return Method{verb: http.MethodPost, body: body} }

// Patch returns a PATCH method carrying body, which may be nil.
func Patch(body []byte) Method { return Method{verb: http.MethodPatch, body: body} }

// Delete returns a DELETE method carrying body, which may be nil.
func Delete(body []byte) Method { return Method{verb: http.MethodDelete, body: body} }

// JSONBody marshals v for use as a method payload.
//
//	body, err := http.JSONBody(order)
//	if err != nil { ... }
//	req, err := http.BuildRequest(url, http.Post(body), nil)
func JSONBody(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return b, nil
}

// String returns the verb, e.g. "PATCH". The zero Method reads as GET.
func (m Method) String() string {
	if m.verb == "" {
		return http.MethodGet
	}
	return m.verb
}

// Body returns the payload. It is always nil for GET.
func (m Method) Body() []byte {
	if m.String() == http.MethodGet {
		return nil
	}
	return m.body
}

// HasBody reports whether the method carries any payload bytes.
func (m Method) HasBody() bool { return len(m.Body()) > 0 }

// ParseMethod maps a verb onto a Method carrying body. Unknown verbs fail.
func ParseMethod(verb string, body []byte) (Method, error) {
	switch verb {
	case http.MethodGet:
		return Get(), nil
	case http.MethodPut:
		return Put(body), nil
	case http.MethodPost:
		return Post(body), nil
	case http.MethodPatch:
		return Patch(body), nil
	case http.MethodDelete:
		return Delete(body), nil
	default:
		return Method{}, fmt.Errorf("unsupported method %q", verb)
	}
}
