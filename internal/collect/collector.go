// Package collect merges the output of every configured source into one
// deduplicated candidate list per cycle.
package collect

import (
	"context"
	"log/slog"

	"github.com/eventscout/eventscout/internal/config"
	"github.com/eventscout/eventscout/internal/metrics"
	"github.com/eventscout/eventscout/internal/sources"
)

type Collector struct {
	sources []sources.Source
}

// New builds the source list from the queries document, in config order:
// Google News queries, then RSS feeds, then subreddits, then TikTok tags.
func New(q *config.Queries) *Collector {
	var srcs []sources.Source
	for _, query := range q.GoogleNewsQueries {
		srcs = append(srcs, sources.NewGoogleNews(query))
	}
	for _, url := range q.RSSFeeds {
		srcs = append(srcs, sources.NewRSSFeed(url))
	}
	for _, sub := range q.Subreddits {
		srcs = append(srcs, sources.NewSubreddit(sub))
	}
	for _, tag := range q.TikTokTags {
		srcs = append(srcs, sources.NewTikTokSearch(tag))
	}
	return &Collector{sources: srcs}
}

// FromSources builds a collector over an explicit source list.
func FromSources(srcs []sources.Source) *Collector {
	return &Collector{sources: srcs}
}

// Collect runs every source sequentially and merges results in source
// order. A source failure is logged and contributes nothing; it never
// aborts the cycle. Duplicate links across sources are dropped, first
// occurrence wins. Items without a link are rejected at this boundary.
func (c *Collector) Collect(ctx context.Context, maxPerSource int) []sources.Item {
	var items []sources.Item
	seenLinks := make(map[string]struct{})

	for _, src := range c.sources {
		results, err := src.Fetch(ctx, maxPerSource)
		if err != nil {
			slog.Warn("source fetch failed", "source", src.Name(), "error", err)
			metrics.Global.IncrementSourceFailures()
			continue
		}
		for _, item := range results {
			if item.Link == "" {
				continue
			}
			if _, dup := seenLinks[item.Link]; dup {
				metrics.Global.IncrementDuplicatesFiltered()
				continue
			}
			seenLinks[item.Link] = struct{}{}
			items = append(items, item)
		}
	}

	metrics.Global.AddItemsCollected(len(items))
	slog.Info("collected unique raw candidates", "count", len(items))
	return items
}
