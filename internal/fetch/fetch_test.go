package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGet_ReturnsHTMLBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "goenhance-test" {
			t.Errorf("user agent not sent, got %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client(), UserAgent: "goenhance-test", PerRequestTimeout: 5 * time.Second}
	body, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if !strings.Contains(string(body), "hello") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestGet_RejectsNonHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client()}
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-HTML content type")
	}
}

func TestGet_RejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client()}
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 403 status")
	}
}

func TestGet_RejectsNonHTTPScheme(t *testing.T) {
	c := &Client{}
	if _, err := c.Get(context.Background(), "ftp://example.com/file"); err == nil {
		t.Fatal("expected error for non-http scheme")
	}
}

func TestGet_CapsRedirects(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL, http.StatusFound)
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client(), RedirectMaxHops: 2}
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for redirect loop")
	}
}
