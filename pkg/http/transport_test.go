package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
)

func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Echo", r.Header.Get("X-Echo"))
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write(b)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTransports(t *testing.T) {
	srv := echoServer(t)
	transports := map[string]Transport{
		"net":   NewNetTransport(nil),
		"resty": NewRestyTransport(resty.New()),
	}
	for name, tr := range transports {
		t.Run(name, func(t *testing.T) {
			req, err := BuildRequest(srv.URL+"/echo", Patch([]byte("hello")), map[string]string{"X-Echo": "1"})
			if err != nil {
				t.Fatalf("BuildRequest: %v", err)
			}
			resp, err := tr.Transmit(context.Background(), req)
			if err != nil {
				t.Fatalf("Transmit: %v", err)
			}
			if resp.StatusCode != http.StatusAccepted {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if string(resp.Body) != "hello" {
				t.Fatalf("body = %q", resp.Body)
			}
		})
	}
}

func TestTransportsReturnErrorStatusesWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "broken", http.StatusInternalServerError)
	}))
	defer srv.Close()

	for name, tr := range map[string]Transport{"net": NewNetTransport(nil), "resty": NewRestyTransport(nil)} {
		req, _ := BuildRequest(srv.URL, Get(), nil)
		resp, err := tr.Transmit(context.Background(), req)
		if err != nil {
			t.Fatalf("%s: Transmit: %v", name, err)
		}
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("%s: status = %d", name, resp.StatusCode)
		}
	}
}

func TestClientWithRestyTransport(t *testing.T) {
	srv := echoServer(t)
	c := NewClient(WithTransport(NewRestyTransport(nil)))
	data, err := c.Put(context.Background(), srv.URL, []byte(`{"v":1}`), nil)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if string(data) != `{"v":1}` {
		t.Fatalf("body = %q", data)
	}
}

func TestNetTransportHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(WithHTTPClient(&http.Client{}), WithTimeout(50*time.Millisecond))
	_, err := c.Get(context.Background(), srv.URL, nil)
	if !errors.Is(err, ErrNoResponse) {
		t.Fatalf("error = %v, want ErrNoResponse", err)
	}
}

func TestTransportsSendExactlyTheGivenHeaders(t *testing.T) {
	type seen struct {
		contentType string
		hasCT       bool
		body        string
	}
	var got seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_, ok := r.Header["Content-Type"]
		got = seen{r.Header.Get("Content-Type"), ok, string(b)}
	}))
	defer srv.Close()

	for name, tr := range map[string]Transport{"net": NewNetTransport(nil), "resty": NewRestyTransport(nil)} {
		t.Run(name, func(t *testing.T) {
			req, _ := BuildRequest(srv.URL, Post([]byte(`{"a":1}`)), map[string]string{})
			if _, err := tr.Transmit(context.Background(), req); err != nil {
				t.Fatalf("Transmit: %v", err)
			}
			if got.hasCT || got.body != `{"a":1}` {
				t.Fatalf("server saw %+v, want no content type", got)
			}

			req, _ = BuildRequest(srv.URL, Post([]byte("x")), nil)
			if _, err := tr.Transmit(context.Background(), req); err != nil {
				t.Fatalf("Transmit: %v", err)
			}
			if got.contentType != "application/json" {
				t.Fatalf("content type = %q", got.contentType)
			}
		})
	}
}
