// Package extract turns a candidate link into readable body text plus any
// embedded media references.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/eventscout/eventscout/internal/retry"
)

const fetchUserAgent = "Mozilla/5.0 (compatible; EventScout/1.0)"

// Platform hosts whose links count as social-platform references.
var platformHosts = []string{
	"tiktok.com",
	"instagram.com",
	"facebook.com/reel",
	"fb.watch",
	"v.redd.it",
}

var videoExtensions = []string{".mp4", ".m3u8", ".webm"}

// Content is everything extracted from one page.
type Content struct {
	Text          string
	Videos        []string
	PlatformLinks []string
}

type Extractor struct {
	Retry  retry.Config
	client *http.Client
}

func New(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Extractor{
		Retry:  retry.Config{MaxAttempts: 2, Delay: 2 * time.Second},
		client: &http.Client{Timeout: timeout},
	}
}

// Extract fetches the page and returns body text, direct video URLs and
// platform reference links. The caller is expected to treat any error as
// "no content" and keep going.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*Content, error) {
	html, err := e.fetchHTML(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	text := ""
	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil {
		slog.Debug("readability failed, media-only extraction", "url", pageURL, "error", err)
	} else {
		text = strings.Join(strings.Fields(article.TextContent), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	videos := collectVideoLinks(doc)
	platforms := collectPlatformLinks(doc)

	slog.Debug("extracted media references",
		"url", pageURL,
		"videos", len(videos),
		"platform_links", len(platforms),
		"text_length", len(text))

	return &Content{Text: text, Videos: videos, PlatformLinks: platforms}, nil
}

func (e *Extractor) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	var html string
	err := retry.Do(ctx, e.Retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return fmt.Errorf("build page request: %w", err)
		}
		req.Header.Set("User-Agent", fetchUserAgent)

		resp, err := e.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch page: status %d", resp.StatusCode)
		}

		var buf bytes.Buffer
		if _, err := io.Copy(&buf, resp.Body); err != nil {
			return fmt.Errorf("read page body: %w", err)
		}
		html = buf.String()
		return nil
	})
	return html, err
}

func collectVideoLinks(doc *goquery.Document) []string {
	found := make(map[string]struct{})

	doc.Find("video source, video").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || src == "" {
			src, _ = sel.Attr("data-src")
		}
		if src == "" {
			return
		}
		lower := strings.ToLower(src)
		for _, ext := range videoExtensions {
			if strings.HasSuffix(lower, ext) {
				found[src] = struct{}{}
				return
			}
		}
	})

	doc.Find(`meta[property="og:video"], meta[property="og:video:url"], meta[property="og:video:secure_url"]`).
		Each(func(_ int, sel *goquery.Selection) {
			if content, ok := sel.Attr("content"); ok && content != "" {
				found[content] = struct{}{}
			}
		})

	return sortedKeys(found)
}

func collectPlatformLinks(doc *goquery.Document) []string {
	found := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}
		for _, host := range platformHosts {
			if strings.Contains(href, host) {
				found[href] = struct{}{}
				return
			}
		}
	})

	return sortedKeys(found)
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
