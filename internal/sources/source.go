// Package sources contains the fetchers that turn external feeds and APIs
// into normalized candidate records.
package sources

import "context"

// Item is the fixed-shape record every adapter hands to the collector.
// Link is the natural identity and is always absolute; Published is
// advisory and source-dependent.
type Item struct {
	Title     string
	Link      string
	Published string
}

// Source fetches and normalizes raw records from one configured entry
// (one query, one feed URL, one subreddit, one tag).
type Source interface {
	Fetch(ctx context.Context, limit int) ([]Item, error)
	Name() string
}
