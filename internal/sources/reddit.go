package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const userAgent = "Mozilla/5.0 (compatible; EventScout/1.0; +https://github.com/)"

// Title cues marking a post as a scoop/announcement worth looking at.
var scoopKeywords = []string{
	"breaking", "scoop", "headline", "leak", "leaked", "leaks",
	"announce", "announcement", "announced", "exclusive",
	"reveals", "revealed", "new track", "new single", "new album",
	"tour dates", "lineup",
}

var videoHints = map[string]struct{}{
	"hosted:video": {},
	"rich:video":   {},
	"video":        {},
}

var videoDomains = []string{
	"youtube.com", "youtu.be", "tiktok.com", "instagram.com",
	"facebook.com", "fb.watch", "streamable.com", "v.redd.it",
	"reddit.com", "twitter.com", "x.com",
}

// Subreddit fetches top submissions from one subreddit over the public
// JSON endpoint, keeping only posts with video or scoop signals.
type Subreddit struct {
	Sub      string
	Timespan string // reddit "t" parameter: hour/day/week/...
	BaseURL  string
	Client   *http.Client
}

func NewSubreddit(name string) *Subreddit {
	return &Subreddit{
		Sub:      name,
		Timespan: "day",
		BaseURL:  "https://www.reddit.com",
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *Subreddit) Name() string {
	return "reddit:" + s.Sub
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title               string          `json:"title"`
	URL                 string          `json:"url"`
	URLOverriddenByDest string          `json:"url_overridden_by_dest"`
	Stickied            bool            `json:"stickied"`
	Over18              bool            `json:"over_18"`
	Score               int             `json:"score"`
	NumComments         int             `json:"num_comments"`
	IsVideo             bool            `json:"is_video"`
	Media               json.RawMessage `json:"media"`
	PostHint            string          `json:"post_hint"`
	Domain              string          `json:"domain"`
	CreatedUTC          float64         `json:"created_utc"`
}

func (s *Subreddit) Fetch(ctx context.Context, limit int) ([]Item, error) {
	endpoint := fmt.Sprintf("%s/r/%s/top.json", s.BaseURL, url.PathEscape(s.Sub))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build reddit request: %w", err)
	}
	q := req.URL.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("t", s.Timespan)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch subreddit %s: %w", s.Sub, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch subreddit %s: status %d", s.Sub, resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode subreddit %s: %w", s.Sub, err)
	}

	var items []Item
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Stickied || post.Over18 {
			continue
		}
		title := strings.TrimSpace(post.Title)
		link := post.URLOverriddenByDest
		if link == "" {
			link = post.URL
		}
		if link == "" {
			continue
		}
		// Filter low-signal posts to reduce noise.
		if post.Score < 20 && post.NumComments < 3 {
			continue
		}
		if !looksLikeVideo(post, link) && !looksLikeScoop(title) {
			slog.Debug("skipping subreddit post without scoop/video cues",
				"title", truncate(title, 80), "link", link)
			continue
		}

		published := ""
		if post.CreatedUTC > 0 {
			published = time.Unix(int64(post.CreatedUTC), 0).UTC().Format(time.RFC3339)
		}
		items = append(items, Item{Title: title, Link: link, Published: published})
	}

	slog.Debug("fetched subreddit items", "subreddit", s.Sub, "count", len(items))
	return items, nil
}

func looksLikeVideo(post redditPost, link string) bool {
	linkLower := strings.ToLower(link)
	hint := strings.ToLower(post.PostHint)
	domain := strings.ToLower(post.Domain)

	if post.IsVideo || len(post.Media) > 0 && string(post.Media) != "null" {
		return true
	}
	if _, ok := videoHints[hint]; ok {
		return true
	}
	if strings.HasSuffix(linkLower, ".mp4") ||
		strings.HasSuffix(linkLower, ".webm") ||
		strings.HasSuffix(linkLower, ".mov") {
		return true
	}
	for _, candidate := range videoDomains {
		if strings.Contains(linkLower, candidate) || strings.Contains(domain, candidate) {
			return true
		}
	}
	return false
}

func looksLikeScoop(title string) bool {
	normalized := strings.ToLower(title)
	for _, token := range scoopKeywords {
		if strings.Contains(normalized, token) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
