// Package judge wraps the optional external scoring oracles. Every
// backend returns a relevance estimate in [0, 10] and is responsible for
// clamping its own output; callers treat any error as a 0.0 contribution.
package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/eventscout/eventscout/internal/config"
)

type Judge interface {
	Score(ctx context.Context, title, text string) (float64, error)
	Name() string
}

// FromConfig picks the configured backend: Ollama first, then
// OpenRouter, then Gemini. Returns nil when none is configured;
// rule-based-only scoring is always a valid mode.
func FromConfig(cfg *config.Config) (Judge, error) {
	switch {
	case cfg.OllamaEndpoint != "" && cfg.OllamaModel != "":
		return NewOllama(cfg.OllamaEndpoint, cfg.OllamaModel), nil
	case cfg.OpenRouterAPIKey != "":
		return NewOpenRouter(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.OpenRouterModel), nil
	case cfg.GeminiAPIKey != "":
		return NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, nil
	}
}

var jsonBlobRe = regexp.MustCompile(`(?s)\{.*\}`)

// parseScore pulls the first JSON object out of a model response and
// reads its score field, clamped to [0, 10]. Models wrap JSON in prose
// often enough that a strict top-level parse is not an option.
func parseScore(payload string) (float64, error) {
	blob := jsonBlobRe.FindString(payload)
	if blob == "" {
		return 0, fmt.Errorf("no JSON object in judge response")
	}

	var parsed struct {
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(blob), &parsed); err != nil {
		return 0, fmt.Errorf("decode judge response: %w", err)
	}

	score := parsed.Score
	if score < 0 {
		score = 0.0
	}
	if score > 10 {
		score = 10.0
	}
	return score, nil
}

// clipRunes shortens the article text handed to a judge prompt.
func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
