// Package fetcher downloads article pages and extracts their title, body
// text, and source domain.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/credibility/internal/logger"
	"github.com/jonesrussell/credibility/internal/scoring"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	minTitleLength   = 5
	minContentLength = 100
	minParagraph     = 50
)

// ErrInvalidURL indicates the input is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("invalid URL format")

// ErrNoContent indicates the page yielded no extractable article body.
var ErrNoContent = errors.New("could not extract article content")

// Selectors tried in order; the first match long enough wins.
var (
	titleSelectors = []string{
		"h1",
		"title",
		`[property="og:title"]`,
		`[name="twitter:title"]`,
		".article-title",
		".post-title",
		".entry-title",
	}

	contentSelectors = []string{
		"article",
		`[role="main"]`,
		".article-content",
		".post-content",
		".entry-content",
		".content",
		".story-body",
		".article-body",
		"main",
	}

	strippedElements = "script, style, nav, header, footer, aside, iframe"

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Article is the extracted page content. Domain is lower-cased with any
// leading www. stripped, matching reputation table keys.
type Article struct {
	Title  string
	Text   string
	Domain string
}

// Fetcher downloads and parses article pages.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	logger     logger.Logger
}

// Config holds fetcher settings.
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// New creates a fetcher.
func New(cfg Config, log logger.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		logger:     log,
	}
}

// Extract fetches rawURL and pulls out the article content.
func (f *Fetcher) Extract(ctx context.Context, rawURL string) (*Article, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, ErrInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	article := &Article{
		Title:  extractTitle(doc),
		Domain: scoring.NormalizeDomain(parsed.Hostname()),
	}

	article.Text = extractContent(doc)
	if article.Text == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, article.Domain)
	}

	f.logger.Debug("Article extracted",
		logger.String("domain", article.Domain),
		logger.Int("text_length", len(article.Text)))

	return article, nil
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		title := strings.TrimSpace(sel.Text())
		if title == "" {
			title, _ = sel.Attr("content")
			title = strings.TrimSpace(title)
		}
		if len(title) > minTitleLength {
			return title
		}
	}
	return ""
}

func extractContent(doc *goquery.Document) string {
	doc.Find(strippedElements).Remove()

	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := cleanText(sel.Text())
		if len(text) > minContentLength {
			return text
		}
	}

	// Fallback: collect long paragraphs from the whole body.
	var paragraphs []string
	doc.Find("body p").Each(func(_ int, p *goquery.Selection) {
		text := cleanText(p.Text())
		if len(text) > minParagraph {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

func cleanText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
