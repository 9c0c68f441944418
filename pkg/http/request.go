package http

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultTimeout bounds every request sent by a Client unless the client
// was built with WithTimeout.
const DefaultTimeout = 30 * time.Second

// DefaultHeaders returns the headers used when a caller passes none.
func DefaultHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

// Request is a fully-constructed description of an HTTP request prior
// to transmission. Build one per call; hooks operate on a clone.
// Body is only sent when Method carries a payload.
type Request struct {
	URL    *url.URL
	Method Method
	Header map[string]string
	Body   []byte
}

// BuildRequest parses target and builds a Request for method. A nil
// headers map means DefaultHeaders; an empty non-nil map sends none.
// Targets that are empty, unparsable, contain characters outside the
// URI character set, or lack a scheme or host fail with ErrInvalidURL.
func BuildRequest(target string, method Method, headers map[string]string) (*Request, error) {
	u, err := parseTarget(target)
	if err != nil {
		return nil, err
	}
	return NewRequest(u, method, headers)
}

// NewRequest builds a Request from a pre-parsed URL. The URL is copied.
func NewRequest(u *url.URL, method Method, headers map[string]string) (*Request, error) {
	if u == nil {
		return nil, invalidURLError(errors.New("nil url"))
	}
	if headers == nil {
		headers = DefaultHeaders()
	}

	target := *u
	req := &Request{
		URL:    &target,
		Method: method,
		Header: maps.Clone(headers),
	}
	if body := method.Body(); len(body) > 0 {
		req.Body = append([]byte(nil), body...)
	}
	return req, nil
}

func parseTarget(target string) (*url.URL, error) {
	if strings.TrimSpace(target) == "" {
		return nil, invalidURLError(errors.New("empty url"))
	}
	if i := strings.IndexFunc(target, illegalURLRune); i >= 0 {
		r, _ := utf8.DecodeRuneInString(target[i:])
		return nil, invalidURLError(fmt.Errorf("illegal character %q at offset %d", r, i))
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, invalidURLError(err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, invalidURLError(errors.New("url must be absolute: " + target))
	}
	return u, nil
}

// illegalURLRune reports runes that may not appear unescaped in a URI:
// anything outside printable ASCII, plus space and "<>\^`{|}.
func illegalURLRune(r rune) bool {
	if r <= ' ' || r >= 0x7f {
		return true
	}
	return strings.ContainsRune("\"<>\\^`{|}", r)
}

// SetHeader sets key to value, replacing any existing entry whose key
// matches case-insensitively so the last write wins.
func (r *Request) SetHeader(key, value string) {
	if r.Header == nil {
		r.Header = make(map[string]string)
	}
	for k := range r.Header {
		if k != key && strings.EqualFold(k, key) {
			delete(r.Header, k)
		}
	}
	r.Header[key] = value
}

// HeaderValue returns the value stored for key, compared case-insensitively.
func (r *Request) HeaderValue(key string) (string, bool) {
	if v, ok := r.Header[key]; ok {
		return v, true
	}
	for k, v := range r.Header {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// Clone returns a deep copy of r.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	c := *r
	if r.URL != nil {
		u := *r.URL
		c.URL = &u
	}
	c.Header = maps.Clone(r.Header)
	if r.Body != nil {
		c.Body = append([]byte(nil), r.Body...)
	}
	return &c
}
