package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonesrussell/feescout/internal/fetcher"
	"github.com/jonesrussell/feescout/internal/logger"
)

const testUserAgent = "feescout-test/1.0"

func newTestFetcher(t *testing.T, robots fetcher.RobotsPolicy) *fetcher.Fetcher {
	t.Helper()

	return fetcher.New(fetcher.Config{
		UserAgent:      testUserAgent,
		RequestTimeout: 5 * time.Second,
	}, robots, logger.NewNoOp())
}

func TestFetch_ReturnsBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != testUserAgent {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>$240 per semester</body></html>"))
	}))
	defer server.Close()

	body, err := newTestFetcher(t, nil).Fetch(context.Background(), server.URL+"/fees.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(body), "$240 per semester") {
		t.Errorf("body missing expected content: %q", body)
	}
}

func TestFetch_NotFoundIsSoftFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := newTestFetcher(t, nil).Fetch(context.Background(), server.URL+"/gone.html")
	if !errors.Is(err, fetcher.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetch_BadStatusDistinctFromNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestFetcher(t, nil).Fetch(context.Background(), server.URL+"/broken.html")
	if !errors.Is(err, fetcher.ErrBadStatus) {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
	if errors.Is(err, fetcher.ErrNotFound) {
		t.Fatal("a server error must not classify as not-found")
	}
}

func TestFetch_TransportErrorReported(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	_, err := newTestFetcher(t, nil).Fetch(context.Background(), server.URL+"/any.html")
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if errors.Is(err, fetcher.ErrNotFound) || errors.Is(err, fetcher.ErrBadStatus) {
		t.Fatalf("transport error misclassified: %v", err)
	}
}

// denyAll is a robots policy that forbids everything.
type denyAll struct{}

func (denyAll) IsAllowed(context.Context, string) (bool, error) { return false, nil }

func TestFetch_RobotsDisallowed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("fetch must not reach the server when robots disallow it")
	}))
	defer server.Close()

	_, err := newTestFetcher(t, denyAll{}).Fetch(context.Background(), server.URL+"/private.html")
	if !errors.Is(err, fetcher.ErrRobotsDisallowed) {
		t.Fatalf("expected ErrRobotsDisallowed, got %v", err)
	}
}

func TestFetch_DelayHonorsCancel(t *testing.T) {
	t.Parallel()

	f := fetcher.New(fetcher.Config{
		UserAgent:      testUserAgent,
		RequestTimeout: time.Second,
		RequestDelay:   time.Hour,
	}, nil, logger.NewNoOp())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, "https://site.test/never.html")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
