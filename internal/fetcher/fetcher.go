// Package fetcher retrieves pages over HTTP for the crawl pipeline. Failures
// are values, never panics: a fetch either yields decoded page markup or a
// classifiable error the crawl loop logs and moves past.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/jonesrussell/feescout/internal/logger"
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// Classifiable fetch failures. All of them mean "skip this page"; the
// distinction exists for diagnostics only.
var (
	// ErrNotFound is returned for HTTP 404 responses.
	ErrNotFound = errors.New("page not found")
	// ErrBadStatus is returned for any other non-200 response.
	ErrBadStatus = errors.New("unexpected status")
	// ErrRobotsDisallowed is returned when robots.txt forbids the URL.
	ErrRobotsDisallowed = errors.New("disallowed by robots.txt")
)

// RobotsPolicy decides whether a URL may be fetched.
type RobotsPolicy interface {
	IsAllowed(ctx context.Context, rawURL string) (bool, error)
}

// Config configures a Fetcher.
type Config struct {
	UserAgent      string
	RequestTimeout time.Duration
	// RequestDelay is a fixed pause applied before every fetch to avoid
	// overloading the origin.
	RequestDelay time.Duration
}

// Fetcher retrieves page markup with a timeout, a declared user agent, a
// fixed inter-request delay, and robots.txt compliance. Response bodies are
// decoded to UTF-8 regardless of the page's declared encoding.
type Fetcher struct {
	httpClient *http.Client
	robots     RobotsPolicy
	log        logger.Interface
	userAgent  string
	delay      time.Duration
}

// New creates a Fetcher. A nil robots policy disables compliance checking.
func New(cfg Config, robots RobotsPolicy, log logger.Interface) *Fetcher {
	return &Fetcher{
		httpClient: NewHTTPClient(cfg.RequestTimeout),
		robots:     robots,
		log:        log,
		userAgent:  cfg.UserAgent,
		delay:      cfg.RequestDelay,
	}
}

// Fetch retrieves the page at rawURL and returns its markup as UTF-8 text.
// HTTP 404 is reported as ErrNotFound, other bad statuses as ErrBadStatus,
// robots denials as ErrRobotsDisallowed; transport errors are returned
// wrapped. Every call pauses for the configured delay first.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := f.pause(ctx); err != nil {
		return nil, err
	}

	if f.robots != nil {
		allowed, robotsErr := f.robots.IsAllowed(ctx, rawURL)
		if robotsErr != nil {
			return nil, fmt.Errorf("robots check for %q: %w", rawURL, robotsErr)
		}
		if !allowed {
			f.log.Debug("skipping disallowed URL", "url", rawURL)
			return nil, fmt.Errorf("%w: %s", ErrRobotsDisallowed, rawURL)
		}
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if reqErr != nil {
		return nil, fmt.Errorf("create request for %q: %w", rawURL, reqErr)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, doErr := f.httpClient.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("fetch %q: %w", rawURL, doErr)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		f.log.Warn("page not found", "url", rawURL)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, rawURL)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %d for %s", ErrBadStatus, resp.StatusCode, rawURL)
	}

	// Decode to UTF-8 at ingestion so the extractors never see per-page
	// encoding artifacts.
	reader, decodeErr := charset.NewReader(
		io.LimitReader(resp.Body, maxResponseBodyBytes),
		resp.Header.Get("Content-Type"),
	)
	if decodeErr != nil {
		return nil, fmt.Errorf("decode %q: %w", rawURL, decodeErr)
	}

	body, readErr := io.ReadAll(reader)
	if readErr != nil {
		return nil, fmt.Errorf("read %q: %w", rawURL, readErr)
	}

	return body, nil
}

// pause waits the configured request delay, aborting early on ctx cancel.
func (f *Fetcher) pause(ctx context.Context) error {
	if f.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(f.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
