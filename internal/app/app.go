// Package app wires the pipeline together and drives collection cycles.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/eventscout/eventscout/internal/collect"
	"github.com/eventscout/eventscout/internal/config"
	"github.com/eventscout/eventscout/internal/digest"
	"github.com/eventscout/eventscout/internal/extract"
	"github.com/eventscout/eventscout/internal/judge"
	"github.com/eventscout/eventscout/internal/keywords"
	"github.com/eventscout/eventscout/internal/logger"
	"github.com/eventscout/eventscout/internal/metrics"
	"github.com/eventscout/eventscout/internal/rank"
	"github.com/eventscout/eventscout/internal/ratelimit"
	"github.com/eventscout/eventscout/internal/retry"
	"github.com/eventscout/eventscout/internal/storage"
	"github.com/eventscout/eventscout/internal/telegram"
)

// dispatcher is the outbound delivery call, one message per cycle.
type dispatcher interface {
	SendMessage(ctx context.Context, text string, preview bool) error
}

type App struct {
	cfg       *config.Config
	collector *collect.Collector
	extractor *extract.Extractor
	scorer    *rank.Scorer
	oracle    judge.Judge
	limiter   *ratelimit.JudgeLimiter
	store     storage.SeenStore
	composer  *digest.Composer
	bot       dispatcher
	rankKey   rank.RankKey
}

func New(cfg *config.Config) (*App, error) {
	queries, err := config.LoadQueries(cfg.QueriesPath)
	if err != nil {
		return nil, fmt.Errorf("load queries: %w", err)
	}

	kw := keywords.FromConfig(queries)

	store, err := openSeenStore(cfg)
	if err != nil {
		return nil, err
	}

	oracle, err := judge.FromConfig(cfg)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("configure judge: %w", err)
	}
	if oracle != nil {
		logger.Info("judge oracle enabled", "backend", oracle.Name())
	} else {
		logger.Info("no judge configured, rule-based scoring only")
	}

	var limiter *ratelimit.JudgeLimiter
	if oracle != nil && cfg.MaxJudgeRequests > 0 {
		limiter = ratelimit.NewJudgeLimiter(cfg.MaxJudgeRequests)
	}

	rankKey := rank.ScoreKey
	if cfg.SelectStrategy == "media-boost" {
		rankKey = rank.MediaBoostKey(cfg.MediaBoost)
	}

	extractor := extract.New(cfg.RequestTimeout)
	if cfg.RetryAttempts > 0 {
		extractor.Retry = retry.Config{MaxAttempts: cfg.RetryAttempts, Delay: cfg.RetryDelay}
	}

	return &App{
		cfg:       cfg,
		collector: collect.New(queries),
		extractor: extractor,
		scorer:    rank.NewScorer(kw),
		oracle:    oracle,
		limiter:   limiter,
		store:     store,
		composer:  digest.NewComposer(kw),
		bot:       telegram.New(cfg.TelegramToken, cfg.TelegramChatID),
		rankKey:   rankKey,
	}, nil
}

func openSeenStore(cfg *config.Config) (storage.SeenStore, error) {
	if cfg.DatabaseDSN != "" {
		store, err := storage.NewPostgresStore(cfg.DatabaseDSN)
		if err == nil {
			return store, nil
		}
		logger.Error("postgres seen store unavailable, falling back to file", "error", err)
	}
	store, err := storage.NewFileStore(cfg.SeenPath)
	if err != nil {
		return nil, fmt.Errorf("open seen store: %w", err)
	}
	return store, nil
}

func (a *App) Close() {
	if err := a.store.Close(); err != nil {
		logger.Error("closing seen store failed", "error", err)
	}
	if closer, ok := a.oracle.(interface{ Close() }); ok {
		closer.Close()
	}
}

// Run executes the first cycle immediately and then repeats on the
// configured interval. Interval zero means a single cycle.
func (a *App) Run(ctx context.Context) error {
	a.runCycle(ctx)

	if a.cfg.IntervalMinutes <= 0 {
		return nil
	}

	cycles := 1
	ticker := time.NewTicker(time.Duration(a.cfg.IntervalMinutes) * time.Minute)
	defer ticker.Stop()

	for {
		if a.cfg.MaxCycles > 0 && cycles >= a.cfg.MaxCycles {
			logger.Info("cycle budget reached, stopping", "cycles", cycles)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			a.runCycle(ctx)
			cycles++
		}
	}
}

// runCycle is one full collect, score, select, deliver pass. Every
// per-item failure is absorbed so one bad source or page never blocks
// the digest for healthy ones.
func (a *App) runCycle(ctx context.Context) {
	start := time.Now()
	logger.Info("starting collection cycle")

	items := a.collector.Collect(ctx, a.cfg.MaxPerSource)

	var candidates []rank.Candidate
	for _, item := range items {
		id := storage.HashID(item.Link)
		if a.store.Contains(id) {
			metrics.Global.IncrementSeenSkipped()
			continue
		}

		content, err := a.extractor.Extract(ctx, item.Link)
		if err != nil {
			logger.Warn("extraction failed", "link", item.Link, "error", err)
			metrics.Global.IncrementExtractionFailures()
			content = &extract.Content{}
		}

		oracle := a.oracle
		if oracle != nil && a.limiter != nil {
			if a.limiter.Allow() {
				a.limiter.Use()
			} else {
				oracle = nil
			}
		}

		title := rank.NormTitle(item.Title)
		score := rank.Round2(a.scorer.FinalScore(ctx, title, content.Text, oracle))
		metrics.Global.IncrementCandidatesScored()

		candidates = append(candidates, rank.Candidate{
			ID:            id,
			Title:         title,
			Link:          item.Link,
			Score:         score,
			Videos:        content.Videos,
			PlatformLinks: content.PlatformLinks,
		})
	}

	selected := rank.SelectTop(candidates, a.cfg.Limit, a.cfg.MinScore, a.rankKey)
	logger.Info("cycle scored",
		"collected", len(items),
		"scored", len(candidates),
		"selected", len(selected))

	for _, cand := range selected {
		if err := a.store.Add(cand.ID); err != nil {
			logger.Error("recording seen id failed", "id", cand.ID, "error", err)
		}
	}
	if err := a.store.Save(); err != nil {
		logger.Error("persisting seen store failed", "error", err)
	}

	delivered := true
	if message := a.composer.Compose(selected); message != "" {
		if err := a.bot.SendMessage(ctx, message, a.cfg.LinkPreview); err != nil {
			logger.Error("digest delivery failed", "error", err)
			metrics.Global.IncrementDeliveryFailures()
			metrics.Global.SetError(fmt.Sprintf("digest delivery failed: %v", err))
			delivered = false
		} else {
			metrics.Global.IncrementDigestsSent()
		}
	} else {
		logger.Info("nothing selected, no digest sent")
	}

	metrics.Global.RecordCycleTime(time.Since(start))
	if delivered {
		metrics.Global.SetLastRun()
	}
	logger.Info("cycle finished", "duration", time.Since(start).Round(time.Millisecond))
}
