// Package crawl walks a site subtree breadth-first within a hard page cap,
// extracting fee records from every page it reaches. All crawl state lives
// in an explicit Session so undergraduate and graduate runs stay independent.
package crawl

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jonesrussell/feescout/internal/domain"
	"github.com/jonesrussell/feescout/internal/extract"
	"github.com/jonesrussell/feescout/internal/logger"
	"github.com/jonesrussell/feescout/internal/sources"
)

// PageFetcher retrieves a page's markup. Any error means the page is
// skipped; the crawl continues.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Stats summarizes one completed crawl run.
type Stats struct {
	RunID         string
	Source        string
	PagesVisited  int
	PagesFailed   int
	RowsExtracted int
}

// Session holds the state of one crawl run: the frontier queue, the visited
// set, and the accumulated records. Sessions are single-use; the loop is
// sequential by design, but the shared structures are still guarded so a
// parallel fetch path could reuse them safely.
type Session struct {
	source   sources.Config
	fetcher  PageFetcher
	log      logger.Interface
	maxPages int
	runID    string

	mu      sync.Mutex
	visited map[string]struct{}
	seen    map[string]struct{} // visited or queued
	queue   []string
	records []domain.FeeRecord
	failed  int
}

// NewSession creates a Session for one crawl target.
func NewSession(source sources.Config, fetcher PageFetcher, maxPages int, log logger.Interface) *Session {
	runID := uuid.NewString()
	return &Session{
		source:   source,
		fetcher:  fetcher,
		log:      log.WithComponent("crawl").With("run_id", runID, "source", source.Name),
		maxPages: maxPages,
		runID:    runID,
		visited:  make(map[string]struct{}),
		seen:     map[string]struct{}{source.StartURL: {}},
		queue:    []string{source.StartURL},
	}
}

// Seen reports whether the URL has been visited or queued in this session.
func (s *Session) Seen(rawURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[rawURL]
	return ok
}

// Run walks the subtree breadth-first until the frontier empties or the page
// cap trips. Fetch failures skip the page and are never retried. The context
// is checked between page visits, so callers can abort a long crawl cleanly.
func (s *Session) Run(ctx context.Context) ([]domain.FeeRecord, Stats, error) {
	s.log.Info("starting crawl",
		"start_url", s.source.StartURL,
		"scope_prefix", s.source.ScopePrefix,
		"max_pages", s.maxPages,
	)

	for s.hasWork() {
		if err := ctx.Err(); err != nil {
			return s.records, s.stats(), fmt.Errorf("crawl aborted: %w", err)
		}

		pageURL, ok := s.nextURL()
		if !ok {
			break
		}

		s.visitPage(ctx, pageURL)
	}

	stats := s.stats()
	s.log.Info("crawl finished",
		"pages_visited", stats.PagesVisited,
		"pages_failed", stats.PagesFailed,
		"rows_extracted", stats.RowsExtracted,
	)

	return s.records, stats, nil
}

// hasWork reports whether the frontier has URLs and the page cap allows
// another visit. The cap is a hard circuit-breaker against cyclic or
// unbounded link graphs.
func (s *Session) hasWork() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) > 0 && len(s.visited) < s.maxPages
}

// nextURL pops the first unvisited URL from the frontier and marks it
// visited. A URL is fetched at most once per run.
func (s *Session) nextURL() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.queue) > 0 {
		pageURL := s.queue[0]
		s.queue = s.queue[1:]

		if _, dup := s.visited[pageURL]; dup {
			continue
		}

		s.visited[pageURL] = struct{}{}
		return pageURL, true
	}

	return "", false
}

// visitPage fetches, extracts, and expands a single page.
func (s *Session) visitPage(ctx context.Context, pageURL string) {
	body, fetchErr := s.fetcher.Fetch(ctx, pageURL)
	if fetchErr != nil {
		s.log.Debug("skipping page", "url", pageURL, "error", fetchErr)
		s.markFailed()
		return
	}

	page, parseErr := extract.ParsePage(body, pageURL)
	if parseErr != nil {
		s.log.Debug("unparseable page", "url", pageURL, "error", parseErr)
		s.markFailed()
		return
	}

	pctx := s.pageContext(page, pageURL)

	var records []domain.FeeRecord
	if pctx.Level == domain.LevelGraduate {
		records = extract.WithPrograms(page, pctx)
	} else {
		records = extract.Tables(page, pctx)
		records = append(records, extract.Inline(page, pctx)...)
	}

	links := DiscoverLinks(page, pageURL, s.source.ScopePrefix, s.source.IncludeArchives, s)
	s.accumulate(records, links)

	s.log.Debug("page processed", "url", pageURL, "rows", len(records), "new_links", len(links))
}

// pageContext derives the metadata attached to every record from this page.
// The level comes from the crawl phase, never from page content.
func (s *Session) pageContext(page *extract.Page, pageURL string) domain.PageContext {
	return domain.PageContext{
		Level:        s.source.AcademicLevel(),
		School:       page.School(s.source.FallbackSchool),
		AcademicYear: extract.DetectAcademicYear(pageURL),
		SourceURL:    pageURL,
	}
}

// accumulate appends extracted records and enqueues newly discovered links.
func (s *Session) accumulate(records []domain.FeeRecord, links []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, records...)
	for _, link := range links {
		if _, dup := s.seen[link]; dup {
			continue
		}
		s.seen[link] = struct{}{}
		s.queue = append(s.queue, link)
	}
}

// markFailed counts a page that could not be fetched or parsed.
func (s *Session) markFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed++
}

// stats snapshots the session counters.
func (s *Session) stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		RunID:         s.runID,
		Source:        s.source.Name,
		PagesVisited:  len(s.visited),
		PagesFailed:   s.failed,
		RowsExtracted: len(s.records),
	}
}
