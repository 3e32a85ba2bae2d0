package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/eventscribe/backend/internal/page"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

// Config controls fetch behavior.
type Config struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// DefaultConfig returns sane fetch limits.
func DefaultConfig() Config {
	return Config{
		Timeout:   15 * time.Second,
		MaxBytes:  page.MaxHTMLSize,
		UserAgent: "EventScribe/1.0",
	}
}

// Fetcher downloads event pages for extraction. Transient failures are
// retried by the underlying transport; anything that is not an HTML
// document is rejected before it reaches the parser.
type Fetcher struct {
	client *resty.Client
	cfg    Config
}

// New builds a Fetcher with retrying transport.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultConfig().MaxBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetTransport(retryClient.StandardClient().Transport)

	return &Fetcher{client: client, cfg: cfg}
}

// HTML downloads a page and returns its raw HTML.
func (f *Fetcher) HTML(ctx context.Context, rawURL string) (string, error) {
	if err := ValidateURL(rawURL); err != nil {
		return "", err
	}

	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if resp.StatusCode() >= 400 {
		return "", fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode())
	}

	body := resp.Body()
	if int64(len(body)) > f.cfg.MaxBytes {
		return "", fmt.Errorf("fetch %s: body exceeds %d bytes", rawURL, f.cfg.MaxBytes)
	}
	if !looksLikeHTML(resp.Header().Get("Content-Type"), body) {
		return "", fmt.Errorf("fetch %s: not an HTML document", rawURL)
	}
	return string(body), nil
}

// Page downloads and parses a page in one step.
func (f *Fetcher) Page(ctx context.Context, rawURL string) (*page.Page, error) {
	htmlStr, err := f.HTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return page.Load(htmlStr)
}

// ValidateURL accepts absolute http/https URLs only.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url missing host")
	}
	return nil
}

// looksLikeHTML trusts the Content-Type header when present and falls back
// to content sniffing when it is absent or generic.
func looksLikeHTML(contentType string, body []byte) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml") {
		return true
	}
	if ct != "" && !strings.Contains(ct, "octet-stream") && !strings.Contains(ct, "text/plain") {
		return false
	}
	detected := mimetype.Detect(body)
	return detected.Is("text/html")
}
