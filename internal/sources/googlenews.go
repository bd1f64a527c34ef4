package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
)

// GoogleNews searches the Google News RSS endpoint for one query.
type GoogleNews struct {
	Query    string
	Language string
	Country  string
	parser   *gofeed.Parser
}

func NewGoogleNews(query string) *GoogleNews {
	return &GoogleNews{
		Query:    query,
		Language: "en",
		Country:  "IL",
		parser:   gofeed.NewParser(),
	}
}

func (g *GoogleNews) Name() string {
	return "google-news:" + g.Query
}

func (g *GoogleNews) Fetch(ctx context.Context, limit int) ([]Item, error) {
	feed, err := g.parser.ParseURLWithContext(g.searchURL(), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse google news feed: %w", err)
	}

	entries := feed.Items
	if len(entries) > limit {
		entries = entries[:limit]
	}

	items := make([]Item, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		link := DirectLink(entry.Link)
		if link == "" {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}

		published := entry.Published
		if published == "" {
			published = entry.Updated
		}
		items = append(items, Item{
			Title:     strings.TrimSpace(entry.Title),
			Link:      link,
			Published: published,
		})
	}

	slog.Debug("fetched google news items", "query", g.Query, "count", len(items))
	return items, nil
}

func (g *GoogleNews) searchURL() string {
	q := url.QueryEscape(g.Query)
	return fmt.Sprintf(
		"https://news.google.com/rss/search?q=%s&hl=%s-%s&gl=%s&ceid=%s:%s",
		q, g.Language, g.Country, g.Country, g.Country, g.Language,
	)
}

// DirectLink strips Google News redirect wrapping and returns the
// destination article URL. Non-Google links pass through unchanged.
func DirectLink(entryLink string) string {
	if entryLink == "" {
		return entryLink
	}
	parsed, err := url.Parse(entryLink)
	if err != nil || !strings.HasSuffix(parsed.Host, "news.google.com") {
		return entryLink
	}

	qs := parsed.Query()
	if target := qs.Get("url"); target != "" {
		return target
	}
	if strings.Contains(entryLink, "url=") {
		fragment := strings.SplitN(entryLink, "url=", 2)[1]
		fragment = strings.SplitN(fragment, "&", 2)[0]
		if unescaped, err := url.QueryUnescape(fragment); err == nil {
			return unescaped
		}
		slog.Debug("failed to parse inline url parameter", "link", entryLink)
	}
	if strings.HasPrefix(parsed.Path, "/rss/articles/") {
		// Some links carry `url` in the fragment portion.
		if fragQS, err := url.ParseQuery(parsed.Fragment); err == nil {
			if target := fragQS.Get("url"); target != "" {
				return target
			}
		}
	}
	return entryLink
}
