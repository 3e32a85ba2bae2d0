package page

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/bytedance/sonic"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	// MaxHTMLSize limits HTML input to 10MB to prevent memory exhaustion
	MaxHTMLSize = 10 * 1024 * 1024

	// minBlockLen filters out trivially short text blocks during scans
	minBlockLen = 5
)

// stripper removes all markup from strings pulled out of attribute values
// or script bodies before they enter the event record.
var stripper = bluemonday.StrictPolicy()

// Page wraps a parsed HTML document and exposes the query capabilities the
// field matchers need: semantic-hint lookups, class queries, visible-text
// scans, hyperlink enumeration and XPath queries. A Page is a snapshot; it
// never mutates after Load.
type Page struct {
	doc  *goquery.Document
	root *html.Node
}

// Load parses HTML with automatic charset detection.
func Load(htmlStr string) (*Page, error) {
	if err := ValidateHTML(htmlStr); err != nil {
		return nil, err
	}

	data := []byte(htmlStr)
	detected := DetectCharset(data)

	var doc *goquery.Document
	utf8Reader, err := charset.NewReader(bytes.NewReader(data), detected)
	if err != nil {
		// Fallback to direct parsing
		doc, err = goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	} else {
		doc, err = goquery.NewDocumentFromReader(utf8Reader)
	}
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	p := &Page{doc: doc}
	if len(doc.Nodes) > 0 {
		p.root = doc.Nodes[0]
	}
	return p, nil
}

// ValidateHTML checks HTML size and returns an error if empty or too large.
func ValidateHTML(htmlStr string) error {
	if len(htmlStr) == 0 {
		return fmt.Errorf("html content required")
	}
	if len(htmlStr) > MaxHTMLSize {
		return fmt.Errorf("html exceeds maximum size of %d bytes", MaxHTMLSize)
	}
	return nil
}

// DetectCharset detects and returns the charset of raw HTML bytes.
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// Title returns the trimmed document title.
func (p *Page) Title() string {
	return strings.TrimSpace(p.doc.Find("title").Text())
}

// Text returns the full visible body text.
func (p *Page) Text() string {
	return strings.TrimSpace(p.doc.Find("body").Text())
}

// Find exposes raw CSS selection for matchers that need element structure.
func (p *Page) Find(selector string) *goquery.Selection {
	return p.doc.Find(selector)
}

// First returns the trimmed text of the first visible element matching the
// selector, or "" when nothing matches.
func (p *Page) First(selector string) string {
	var out string
	p.doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !Visible(s) {
			return true
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			out = text
			return false
		}
		return true
	})
	return out
}

// Attr returns the named attribute of the first element matching the
// selector that carries it.
func (p *Page) Attr(selector, attr string) string {
	var out string
	p.doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if val, ok := s.Attr(attr); ok && val != "" {
			out = val
			return false
		}
		return true
	})
	return out
}

// Meta returns the content of a meta tag addressed by name or property.
func (p *Page) Meta(key string) string {
	sel := fmt.Sprintf("meta[name=%q], meta[property=%q]", key, key)
	return strings.TrimSpace(p.doc.Find(sel).AttrOr("content", ""))
}

// HasAny reports whether at least one element matches the selector.
func (p *Page) HasAny(selector string) bool {
	return p.doc.Find(selector).Length() > 0
}

// VisibleBlocks yields the trimmed text of visible paragraph-like elements
// (p, span, div) longer than minBlockLen. Iteration stops when fn returns
// false. Traversal order is document order, which the matchers treat as
// authoritative.
func (p *Page) VisibleBlocks(fn func(text string) bool) {
	p.doc.Find("p, span, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !Visible(s) {
			return true
		}
		text := strings.TrimSpace(s.Text())
		if len(text) <= minBlockLen {
			return true
		}
		return fn(text)
	})
}

// EachLink yields every hyperlink with its href and visible text. Iteration
// stops when fn returns false.
func (p *Page) EachLink(fn func(href, text string) bool) {
	p.doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || href == "#" {
			return true
		}
		return fn(href, strings.TrimSpace(s.Text()))
	})
}

// XPathEach runs an XPath query and yields each matching node. Invalid
// expressions yield nothing; XPath here is a best-effort strategy layer.
func (p *Page) XPathEach(expr string, fn func(n *html.Node) bool) {
	if p.root == nil {
		return
	}
	nodes, err := htmlquery.QueryAll(p.root, expr)
	if err != nil {
		return
	}
	for _, n := range nodes {
		if !fn(n) {
			return
		}
	}
}

// XPathText returns the trimmed inner text of the first node matching the
// XPath expression.
func (p *Page) XPathText(expr string) string {
	var out string
	p.XPathEach(expr, func(n *html.Node) bool {
		out = strings.TrimSpace(htmlquery.InnerText(n))
		return out == ""
	})
	return out
}

// JSONLD parses every JSON-LD script block into generic maps. Arrays are
// flattened; malformed blocks are skipped.
func (p *Page) JSONLD() []map[string]interface{} {
	var items []map[string]interface{}
	p.doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		content := strings.TrimSpace(s.Text())
		if content == "" {
			return
		}
		var decoded interface{}
		if err := sonic.UnmarshalString(content, &decoded); err != nil {
			return
		}
		switch v := decoded.(type) {
		case map[string]interface{}:
			items = append(items, v)
		case []interface{}:
			for _, entry := range v {
				if m, ok := entry.(map[string]interface{}); ok {
					items = append(items, m)
				}
			}
		}
	})
	return items
}

// Visible approximates DOM visibility for a static snapshot: an element is
// hidden when it or an ancestor carries a hidden attribute, aria-hidden, or
// an inline display:none / visibility:hidden style.
func Visible(s *goquery.Selection) bool {
	for sel := s; sel.Length() > 0; sel = sel.Parent() {
		if goquery.NodeName(sel) == "body" {
			break
		}
		if _, hidden := sel.Attr("hidden"); hidden {
			return false
		}
		if sel.AttrOr("aria-hidden", "") == "true" {
			return false
		}
		style := strings.ReplaceAll(sel.AttrOr("style", ""), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false
		}
	}
	return true
}

// WithinChrome reports whether the element sits inside page chrome
// (nav, header, footer) that matchers should skip.
func WithinChrome(s *goquery.Selection) bool {
	return s.ParentsFiltered("nav, header, footer").Length() > 0
}

// StripMarkup removes all markup from a string and collapses whitespace.
// Used for values pulled from attributes or script bodies.
func StripMarkup(s string) string {
	return NormalizeWhitespace(html.UnescapeString(stripper.Sanitize(s)))
}

// NormalizeWhitespace collapses runs of whitespace into single spaces.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
