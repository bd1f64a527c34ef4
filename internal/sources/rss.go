package sources

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"
)

// RSSFeed fetches one arbitrary RSS/Atom feed.
type RSSFeed struct {
	URL    string
	parser *gofeed.Parser
}

func NewRSSFeed(url string) *RSSFeed {
	return &RSSFeed{URL: url, parser: gofeed.NewParser()}
}

func (r *RSSFeed) Name() string {
	return "rss:" + r.URL
}

func (r *RSSFeed) Fetch(ctx context.Context, limit int) ([]Item, error) {
	feed, err := r.parser.ParseURLWithContext(r.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse rss feed: %w", err)
	}

	entries := feed.Items
	if len(entries) > limit {
		entries = entries[:limit]
	}

	items := make([]Item, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		link := entry.Link
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

	slog.Debug("fetched rss items", "url", r.URL, "count", len(items))
	return items, nil
}
