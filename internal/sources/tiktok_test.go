package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTikTokSearchOrdersByEngagement(t *testing.T) {
	now := time.Now().Unix()
	fixture := fmt.Sprintf(`{
	  "data": {
	    "videos": [
	      {"title": "small clip", "share_url": "https://www.tiktok.com/@a/video/1", "create_time": %d, "play_count": 100, "digg_count": 5},
	      {"title": "huge clip", "share_url": "https://www.tiktok.com/@b/video/2", "create_time": %d, "play_count": 90000, "digg_count": 800},
	      {"title": "ancient clip", "share_url": "https://www.tiktok.com/@c/video/3", "create_time": %d, "play_count": 500000, "digg_count": 9000},
	      {"title": "no link clip", "create_time": %d, "play_count": 100000, "digg_count": 100}
	    ]
	  }
	}`, now, now, now-60*60*24*30, now)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("keywords"); got != "telavivparty" {
			t.Errorf("keywords = %q, want telavivparty", got)
		}
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	s := &TikTokSearch{
		Tag:     "telavivparty",
		MaxDays: 7,
		BaseURL: srv.URL,
		Client:  srv.Client(),
	}

	items, err := s.Fetch(context.Background(), 5)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("kept %d items, want 2 (recent clips with links): %+v", len(items), items)
	}
	if items[0].Link != "https://www.tiktok.com/@b/video/2" {
		t.Fatalf("first item = %q, want the highest-engagement clip", items[0].Link)
	}
	for _, item := range items {
		if !strings.HasPrefix(item.Title, "[TikTok] ") {
			t.Fatalf("title %q missing the source tag", item.Title)
		}
	}
}

func TestTikTokSearchHonoursLimit(t *testing.T) {
	now := time.Now().Unix()
	var clips []string
	for i := 0; i < 6; i++ {
		clips = append(clips, fmt.Sprintf(
			`{"title": "clip %d", "share_url": "https://www.tiktok.com/@x/video/%d", "create_time": %d, "play_count": %d}`,
			i, i, now, 1000-i))
	}
	fixture := `{"data": {"videos": [` + strings.Join(clips, ",") + `]}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	s := &TikTokSearch{Tag: "raves", MaxDays: 7, BaseURL: srv.URL, Client: srv.Client()}

	items, err := s.Fetch(context.Background(), 3)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("kept %d items, want the limit of 3", len(items))
	}
}

func TestClipTitleFallsBackToAuthor(t *testing.T) {
	v := tikwmVideo{Author: []byte(`{"unique_id": "djdemo"}`)}
	if got := clipTitle(v); got != "TikTok by @djdemo" {
		t.Fatalf("clipTitle = %q, want author fallback", got)
	}

	if got := clipTitle(tikwmVideo{}); got != "TikTok video" {
		t.Fatalf("clipTitle = %q, want generic fallback", got)
	}
}
