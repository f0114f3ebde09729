package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page wraps a parsed document together with the URL it was fetched from.
type Page struct {
	doc *goquery.Document
	url string
}

// ParsePage parses page markup into a Page. Markup is expected to be UTF-8;
// the fetcher guarantees that.
func ParsePage(body []byte, pageURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse page %q: %w", pageURL, err)
	}
	return &Page{doc: doc, url: pageURL}, nil
}

// URL returns the URL the page was fetched from.
func (p *Page) URL() string {
	return p.url
}

// School returns the page's primary heading: the first non-empty h1, h2, or
// <title>, in that order, falling back to the supplied default.
func (p *Page) School(fallback string) string {
	for _, tag := range []string{"h1", "h2", "title"} {
		text := CleanText(p.doc.Find(tag).First().Text())
		if text != "" {
			return text
		}
	}
	return fallback
}

// AnchorHrefs returns the href attribute of every anchor on the page, in
// document order. Empty hrefs are skipped.
func (p *Page) AnchorHrefs() []string {
	var hrefs []string
	p.doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// blockText extracts the selection's text with a space inserted between
// adjacent nodes, then collapses whitespace. goquery's Text() concatenates
// text nodes directly, which glues words together across tags.
func blockText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range sel.Nodes {
		appendNodeText(node, &sb)
	}
	return CleanText(sb.String())
}

// appendNodeText walks the node tree appending text nodes separated by spaces.
func appendNodeText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendNodeText(c, sb)
	}
}
