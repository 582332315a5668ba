package expander

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestExpandFollowsRedirect(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	short := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/landing", http.StatusMovedPermanently)
	}))
	defer short.Close()

	e := NewHTTPExpander(2*time.Second, zap.NewNop())

	got := e.Expand(context.Background(), short.URL)
	if got != target.URL+"/landing" {
		t.Errorf("Expand(%q) = %q, want %q", short.URL, got, target.URL+"/landing")
	}
}

func TestExpandHeadRejectedFallsBackToGet(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	// Shortener that only redirects GET requests
	short := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		http.Redirect(w, r, target.URL+"/page", http.StatusFound)
	}))
	defer short.Close()

	e := NewHTTPExpander(2*time.Second, zap.NewNop())

	got := e.Expand(context.Background(), short.URL)
	if got != target.URL+"/page" {
		t.Errorf("Expand(%q) = %q, want %q", short.URL, got, target.URL+"/page")
	}
}

func TestExpandFailsSoft(t *testing.T) {
	e := NewHTTPExpander(500*time.Millisecond, zap.NewNop())

	raw := "http://127.0.0.1:1/nothing-listens-here"
	if got := e.Expand(context.Background(), raw); got != raw {
		t.Errorf("Expand(%q) = %q, want the raw URL back", raw, got)
	}
}

func TestExpandNormalizesBareHosts(t *testing.T) {
	e := NewHTTPExpander(500*time.Millisecond, zap.NewNop())

	// Unreachable, so the original www form must come back untouched
	raw := "www.example.invalid/path"
	if got := e.Expand(context.Background(), raw); got != raw {
		t.Errorf("Expand(%q) = %q, want the raw URL back", raw, got)
	}
}
