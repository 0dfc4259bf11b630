package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/colorwaver/colorwaver/internal/security"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/agent":
			_, _ = w.Write([]byte(r.Header.Get("User-Agent")))
		case "/ok":
			_, _ = w.Write([]byte("payload"))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	data, err := Fetch(ctx, srv.URL+"/ok", FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("Fetch() = %q, want payload", data)
	}

	agent, err := Fetch(ctx, srv.URL+"/agent", FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !strings.HasPrefix(string(agent), UserAgentName+"/") {
		t.Errorf("User-Agent = %q, want %s/<version>", agent, UserAgentName)
	}

	if _, err := Fetch(ctx, srv.URL+"/missing", FetchOptions{}); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Fetch() error = %v, want HTTP 404", err)
	}

	if _, err := Fetch(ctx, srv.URL+"/ok", FetchOptions{MaxBytes: 3}); !errors.Is(err, security.ErrSizeLimitExceeded) {
		t.Errorf("Fetch() error = %v, want ErrSizeLimitExceeded", err)
	}

	if _, err := Fetch(ctx, srv.URL+"/slow", FetchOptions{Timeout: 20 * time.Millisecond}); err == nil {
		t.Error("Fetch() should time out")
	}

	if _, err := Fetch(ctx, "://bad", FetchOptions{}); err == nil {
		t.Error("Fetch() should reject a malformed URL")
	}
}
