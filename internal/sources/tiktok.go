package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"
)

// TikTokSearch fetches recent clips for a hashtag or keyword through the
// public TikWM search API, which needs no authentication. Results are
// filtered to a rough recency window, higher-engagement clips first.
type TikTokSearch struct {
	Tag     string
	MaxDays int
	BaseURL string
	Client  *http.Client
}

func NewTikTokSearch(tag string) *TikTokSearch {
	return &TikTokSearch{
		Tag:     tag,
		MaxDays: 7,
		BaseURL: "https://www.tikwm.com",
		Client:  &http.Client{Timeout: 20 * time.Second},
	}
}

func (t *TikTokSearch) Name() string {
	return "tiktok:" + t.Tag
}

type tikwmVideo struct {
	Title       string          `json:"title"`
	Desc        string          `json:"desc"`
	Description string          `json:"description"`
	ShareURL    string          `json:"share_url"`
	Play        string          `json:"play"`
	URL         string          `json:"url"`
	VideoURL    string          `json:"video_url"`
	CreateTime  int64           `json:"create_time"`
	PlayCount   int64           `json:"play_count"`
	DiggCount   int64           `json:"digg_count"`
	Author      json.RawMessage `json:"author"`
}

type tikwmResponse struct {
	Data struct {
		Videos []tikwmVideo `json:"videos"`
		List   []tikwmVideo `json:"list"`
	} `json:"data"`
}

func (t *TikTokSearch) Fetch(ctx context.Context, limit int) ([]Item, error) {
	count := limit * 3
	if count < 24 {
		count = 24
	}
	endpoint := fmt.Sprintf("%s/api/search", t.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build tiktok request: %w", err)
	}
	q := req.URL.Query()
	q.Set("keywords", t.Tag)
	q.Set("count", fmt.Sprint(count))
	q.Set("page", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tiktok search %s: %w", t.Tag, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch tiktok search %s: status %d", t.Tag, resp.StatusCode)
	}

	var payload tikwmResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tiktok search %s: %w", t.Tag, err)
	}

	videos := payload.Data.Videos
	if len(videos) == 0 {
		videos = payload.Data.List
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -t.MaxDays)
	kept := make([]tikwmVideo, 0, len(videos))
	for _, v := range videos {
		if shareURL(v) == "" {
			continue
		}
		if v.CreateTime > 0 && time.Unix(v.CreateTime, 0).UTC().Before(cutoff) {
			continue
		}
		kept = append(kept, v)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].PlayCount != kept[j].PlayCount {
			return kept[i].PlayCount > kept[j].PlayCount
		}
		if kept[i].DiggCount != kept[j].DiggCount {
			return kept[i].DiggCount > kept[j].DiggCount
		}
		return kept[i].CreateTime > kept[j].CreateTime
	})

	items := make([]Item, 0, limit)
	for _, v := range kept {
		published := ""
		if v.CreateTime > 0 {
			published = time.Unix(v.CreateTime, 0).UTC().Format(time.RFC3339)
		}
		items = append(items, Item{
			Title:     "[TikTok] " + clipTitle(v),
			Link:      shareURL(v),
			Published: published,
		})
		if len(items) >= limit {
			break
		}
	}

	slog.Debug("fetched tiktok items", "tag", t.Tag, "count", len(items))
	return items, nil
}

func clipTitle(v tikwmVideo) string {
	for _, candidate := range []string{v.Title, v.Desc, v.Description} {
		if c := strings.TrimSpace(candidate); c != "" {
			return c
		}
	}
	var author struct {
		UniqueID string `json:"unique_id"`
		Nickname string `json:"nickname"`
	}
	if len(v.Author) > 0 && json.Unmarshal(v.Author, &author) == nil {
		if author.UniqueID != "" {
			return "TikTok by @" + author.UniqueID
		}
		if author.Nickname != "" {
			return "TikTok by @" + author.Nickname
		}
	}
	return "TikTok video"
}

func shareURL(v tikwmVideo) string {
	for _, candidate := range []string{v.ShareURL, v.Play, v.URL, v.VideoURL} {
		if c := strings.TrimSpace(candidate); c != "" {
			return c
		}
	}
	return ""
}
