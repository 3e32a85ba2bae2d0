// Package page provides the parsed-page abstraction the extraction engine
// runs against. It wraps a goquery document with the query capabilities the
// field matchers require:
//   - semantic-hint lookups (itemprop, datetime and meta attributes)
//   - class and CSS selector queries with visibility filtering
//   - visible-text block scans in document order
//   - hyperlink enumeration
//   - XPath queries (htmlquery) for structured-data markup
//   - JSON-LD parsing (sonic)
//
// Loading detects the input charset (chardet) and converts to UTF-8
// (x/net/html/charset) before parsing. Text pulled from attributes is
// stripped of markup with bluemonday before entering an event record.
//
// A Page is an immutable snapshot of one document; matchers running against
// the same Page always see the same content.
package page
