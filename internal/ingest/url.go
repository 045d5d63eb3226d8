package ingest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultUserAgent identifies fetches made by the URL source.
const DefaultUserAgent = "AdaptIQ/1.0"

// Fetcher downloads web pages and returns their visible text.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) { f.userAgent = ua }
}

// NewFetcher returns a Fetcher with a 15 second timeout unless overridden.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: 15 * time.Second},
		userAgent: DefaultUserAgent,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch GETs url and extracts the text outside script, style, nav, footer
// and header elements.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	return VisibleText(doc), nil
}

// VisibleText returns the document text with boilerplate elements removed,
// each text node separated by a single space.
func VisibleText(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, header").Remove()

	var parts []string
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		collectText(s, &parts)
	})
	if len(parts) == 0 {
		collectText(doc.Selection, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(s *goquery.Selection, parts *[]string) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			if t := strings.TrimSpace(c.Text()); t != "" {
				*parts = append(*parts, t)
			}
			return
		}
		collectText(c, parts)
	})
}
