package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/eventscout/eventscout/internal/collect"
	"github.com/eventscout/eventscout/internal/config"
	"github.com/eventscout/eventscout/internal/digest"
	"github.com/eventscout/eventscout/internal/extract"
	"github.com/eventscout/eventscout/internal/keywords"
	"github.com/eventscout/eventscout/internal/metrics"
	"github.com/eventscout/eventscout/internal/rank"
	"github.com/eventscout/eventscout/internal/sources"
	"github.com/eventscout/eventscout/internal/storage"
	"github.com/eventscout/eventscout/internal/telegram"
)

type memStore struct {
	mu    sync.Mutex
	ids   map[string]struct{}
	saves int
}

func newMemStore(preSeen ...string) *memStore {
	m := &memStore{ids: make(map[string]struct{})}
	for _, id := range preSeen {
		m.ids[id] = struct{}{}
	}
	return m
}

func (m *memStore) Contains(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.ids[id]
	return ok
}

func (m *memStore) Add(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[id] = struct{}{}
	return nil
}

func (m *memStore) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	return nil
}

func (m *memStore) Close() error { return nil }

type staticSource struct {
	items []sources.Item
}

func (s *staticSource) Name() string { return "static" }

func (s *staticSource) Fetch(ctx context.Context, limit int) ([]sources.Item, error) {
	return s.items, nil
}

type stubBot struct {
	err  error
	sent []string
}

func (b *stubBot) SendMessage(ctx context.Context, text string, preview bool) error {
	if b.err != nil {
		return b.err
	}
	b.sent = append(b.sent, text)
	return nil
}

func TestRunCycleSkipsSeenCandidates(t *testing.T) {
	var fetched []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		fetched = append(fetched, r.URL.Path)
		mu.Unlock()
		w.Write([]byte("<html><body><p>short page</p></body></html>"))
	}))
	defer srv.Close()

	seenLink := srv.URL + "/seen"
	freshLink := srv.URL + "/fresh"

	store := newMemStore(storage.HashID(seenLink))
	kw := keywords.FromConfig(&config.Queries{})

	a := &App{
		cfg: &config.Config{
			Limit:        5,
			MaxPerSource: 10,
			MinScore:     100, // nothing crosses, so no digest is sent
			LinkPreview:  true,
		},
		collector: collect.FromSources([]sources.Source{
			&staticSource{items: []sources.Item{
				{Title: "already notified", Link: seenLink},
				{Title: "new story", Link: freshLink},
			}},
		}),
		extractor: extract.New(2 * time.Second),
		scorer:    rank.NewScorer(kw),
		store:     store,
		composer:  digest.NewComposer(kw),
		bot:       telegram.New("token", "@chat"),
		rankKey:   rank.ScoreKey,
	}

	a.runCycle(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if len(fetched) != 1 || fetched[0] != "/fresh" {
		t.Fatalf("extracted paths = %v, want only /fresh", fetched)
	}
	if store.saves != 1 {
		t.Fatalf("seen store saved %d times, want 1 even with an empty selection", store.saves)
	}
	if store.Contains(storage.HashID(freshLink)) {
		t.Fatal("unselected candidate must not be marked seen")
	}
}

func TestRunCycleDeliveryFailureMarksUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>short page</p></body></html>"))
	}))
	defer srv.Close()

	link := srv.URL + "/story"
	store := newMemStore()
	kw := keywords.FromConfig(&config.Queries{})
	bot := &stubBot{err: errors.New("chat not found")}

	a := &App{
		cfg: &config.Config{
			Limit:        5,
			MaxPerSource: 10,
			MinScore:     -100, // everything crosses, so a digest is composed
			LinkPreview:  true,
		},
		collector: collect.FromSources([]sources.Source{
			&staticSource{items: []sources.Item{{Title: "big story", Link: link}}},
		}),
		extractor: extract.New(2 * time.Second),
		scorer:    rank.NewScorer(kw),
		store:     store,
		composer:  digest.NewComposer(kw),
		bot:       bot,
		rankKey:   rank.ScoreKey,
	}

	a.runCycle(context.Background())

	if len(bot.sent) != 0 {
		t.Fatalf("failing bot recorded %d sends", len(bot.sent))
	}
	if !store.Contains(storage.HashID(link)) {
		t.Fatal("seen id must be persisted even when delivery fails")
	}

	stats := metrics.Global.GetStats()
	if stats["is_healthy"].(bool) {
		t.Fatal("delivery failure should mark the process unhealthy")
	}
	if stats["last_error"].(string) == "" {
		t.Fatal("delivery failure should surface in last_error")
	}
}
