package crawl

import (
	"net/url"
	"strings"

	"github.com/jonesrussell/feescout/internal/extract"
)

// skipPrefixes filters anchors that can never resolve to a crawlable page.
var skipPrefixes = []string{"#", "javascript:", "mailto:", "tel:"}

// pageSuffix restricts discovery to plain page URLs.
const pageSuffix = ".html"

// archiveToken marks archived year pages, excluded unless opted in.
const archiveToken = "archive"

// Seen reports whether a URL has already been visited or queued.
type Seen interface {
	Seen(rawURL string) bool
}

// DiscoverLinks returns the in-scope links found on the page, in document
// order, deduplicated against each other and against the seen lookup.
// A link qualifies when it resolves against the base URL to the same host
// (or carries no host at all), the fragment-stripped result starts with
// scopePrefix and ends in ".html", and, unless includeArchives is set, the
// URL does not contain "archive" in any case.
func DiscoverLinks(page *extract.Page, baseURL, scopePrefix string, includeArchives bool, seen Seen) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var links []string
	inPage := make(map[string]struct{})

	for _, href := range page.AnchorHrefs() {
		if shouldSkipHref(href) {
			continue
		}

		resolved, ok := resolveInternal(base, href)
		if !ok {
			continue
		}

		if !strings.HasPrefix(resolved, scopePrefix) || !strings.HasSuffix(resolved, pageSuffix) {
			continue
		}

		if !includeArchives && strings.Contains(strings.ToLower(resolved), archiveToken) {
			continue
		}

		if _, dup := inPage[resolved]; dup {
			continue
		}
		if seen != nil && seen.Seen(resolved) {
			continue
		}

		inPage[resolved] = struct{}{}
		links = append(links, resolved)
	}

	return links
}

// shouldSkipHref filters anchors by scheme or prefix.
func shouldSkipHref(href string) bool {
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(href, prefix) {
			return true
		}
	}
	return false
}

// resolveInternal resolves href against base and strips the fragment.
// It reports false for links pointing at a different host; links with no
// authority component are relative and always internal.
func resolveInternal(base *url.URL, href string) (string, bool) {
	parsed, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	if parsed.Host != "" && !strings.EqualFold(parsed.Host, base.Host) {
		return "", false
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""

	return resolved.String(), true
}
