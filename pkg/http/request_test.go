package http

import (
	"errors"
	"net/url"
	"testing"
)

func TestMethodBodyOnlyForNonGet(t *testing.T) {
	payload := []byte(`{"a":1}`)
	cases := []struct {
		method Method
		verb   string
		body   bool
	}{
		{Get(), "GET", false},
		{Put(payload), "PUT", true},
		{Post(payload), "POST", true},
		{Patch(payload), "PATCH", true},
		{Delete(payload), "DELETE", true},
		{Post(nil), "POST", false},
		{Method{}, "GET", false},
	}
	for _, tc := range cases {
		if got := tc.method.String(); got != tc.verb {
			t.Fatalf("String() = %q, want %q", got, tc.verb)
		}
		if got := tc.method.HasBody(); got != tc.body {
			t.Fatalf("%s HasBody() = %v, want %v", tc.verb, got, tc.body)
		}
	}
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("PATCH", []byte("x"))
	if err != nil {
		t.Fatalf("ParseMethod: %v", err)
	}
	if m.String() != "PATCH" || string(m.Body()) != "x" {
		t.Fatalf("unexpected method %s body %q", m, m.Body())
	}
	if m, _ := ParseMethod("GET", []byte("x")); m.Body() != nil {
		t.Fatalf("GET must not carry a body")
	}
	if _, err := ParseMethod("TRACE", nil); err == nil {
		t.Fatalf("expected error for unsupported verb")
	}
}

func TestBuildRequestDefaults(t *testing.T) {
	req, err := BuildRequest("https://api.example.com/v1/items?limit=2", Get(), nil)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if req.Method.String() != "GET" {
		t.Fatalf("method = %s", req.Method)
	}
	if len(req.Body) != 0 {
		t.Fatalf("GET request has body %q", req.Body)
	}
	if len(req.Header) != 1 || req.Header["Content-Type"] != "application/json" {
		t.Fatalf("default headers = %v", req.Header)
	}
	if req.URL.Host != "api.example.com" || req.URL.Query().Get("limit") != "2" {
		t.Fatalf("url parsed as %s", req.URL)
	}
}

func TestBuildRequestUsesGivenHeadersExactly(t *testing.T) {
	headers := map[string]string{"Accept": "text/plain", "X-Trace": "abc"}
	req, err := BuildRequest("http://localhost:8080/x", Post([]byte("hi")), headers)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if len(req.Header) != 2 || req.Header["Accept"] != "text/plain" || req.Header["X-Trace"] != "abc" {
		t.Fatalf("headers = %v", req.Header)
	}
	if string(req.Body) != "hi" {
		t.Fatalf("body = %q", req.Body)
	}

	headers["Accept"] = "changed"
	if req.Header["Accept"] != "text/plain" {
		t.Fatalf("request shares the caller's header map")
	}

	empty, err := BuildRequest("http://localhost/x", Get(), map[string]string{})
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if len(empty.Header) != 0 {
		t.Fatalf("explicit empty headers replaced by %v", empty.Header)
	}
}

func TestBuildRequestInvalidURL(t *testing.T) {
	for _, target := range []string{
		"",
		"   ",
		"http://exa mple.com",
		"http://example.com/%zz",
		"://missing-scheme",
		"/relative/path",
		"example.com",
	} {
		_, err := BuildRequest(target, Get(), nil)
		if !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("BuildRequest(%q) error = %v, want ErrInvalidURL", target, err)
		}
	}
}

func TestNewRequestFromParsedURL(t *testing.T) {
	u, _ := url.Parse("https://example.com/a")
	req, err := NewRequest(u, Delete(nil), nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	u.Path = "/mutated"
	if req.URL.Path != "/a" {
		t.Fatalf("request shares the caller's url")
	}
	if _, err := NewRequest(nil, Get(), nil); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("nil url error = %v", err)
	}
}

func TestRequestSetHeaderLastWriteWins(t *testing.T) {
	req, _ := BuildRequest("http://example.com", Get(), nil)
	req.SetHeader("content-type", "text/plain")
	if len(req.Header) != 1 {
		t.Fatalf("headers = %v", req.Header)
	}
	if v, ok := req.HeaderValue("Content-Type"); !ok || v != "text/plain" {
		t.Fatalf("HeaderValue = %q, %v", v, ok)
	}
}

func TestRequestClone(t *testing.T) {
	req, _ := BuildRequest("http://example.com/a", Put([]byte("abc")), nil)
	c := req.Clone()
	c.Header["X"] = "1"
	c.Body[0] = 'z'
	c.URL.Path = "/b"
	if _, ok := req.Header["X"]; ok || string(req.Body) != "abc" || req.URL.Path != "/a" {
		t.Fatalf("clone shares state with original: %+v", req)
	}
}

func TestCurlCommand(t *testing.T) {
	req, _ := BuildRequest("http://example.com/a", Post([]byte(`{"name":"o'neil"}`)), map[string]string{
		"X-B": "2",
		"X-A": "1",
	})
	want := `curl -X POST 'http://example.com/a' -H 'X-A: 1' -H 'X-B: 2' -d '{"name":"o'\''neil"}'`
	if got := CurlCommand(req); got != want {
		t.Fatalf("CurlCommand =\n%s\nwant\n%s", got, want)
	}
}

func TestBuildRequestAcceptsEscapedAndReservedCharacters(t *testing.T) {
	for _, target := range []string{
		"http://example.com/a%20b?q=%C3%A9&x=1",
		"http://[::1]:8080/path;p=1",
		"https://user:pw@example.com/~tilde/!$'()*+,;=:@#frag",
	} {
		if _, err := BuildRequest(target, Get(), nil); err != nil {
			t.Fatalf("BuildRequest(%q): %v", target, err)
		}
	}
}
