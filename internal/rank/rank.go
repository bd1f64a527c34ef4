// Package rank is the scoring and selection core: it turns extracted
// candidates into relevance scores and picks the ones worth notifying.
package rank

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/eventscout/eventscout/internal/judge"
	"github.com/eventscout/eventscout/internal/keywords"
	"github.com/eventscout/eventscout/internal/metrics"
)

// Candidate is one enriched, scored content item. Immutable after
// creation; lives for a single cycle, only its ID outlives it via the
// seen store.
type Candidate struct {
	ID            string
	Title         string
	Link          string
	Score         float64
	Videos        []string
	PlatformLinks []string
}

// HasMedia reports whether the candidate carries any media reference.
func (c Candidate) HasMedia() bool {
	return len(c.Videos) > 0 || len(c.PlatformLinks) > 0
}

// FirstMediaLink returns the first available media reference, direct
// videos first.
func (c Candidate) FirstMediaLink() string {
	if len(c.Videos) > 0 {
		return c.Videos[0]
	}
	if len(c.PlatformLinks) > 0 {
		return c.PlatformLinks[0]
	}
	return ""
}

// NormTitle applies NFKC normalization and collapses whitespace.
func NormTitle(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// Round2 rounds a score to two decimals, the precision candidates carry.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// English immediacy cues use word boundaries; the Hebrew ones are matched
// by substring because RE2 word boundaries only understand ASCII.
var (
	immediacyRe       = regexp.MustCompile(`\b(today|tonight|this week|tomorrow)\b`)
	immediacyHebrew   = []string{"היום", "הלילה", "השבוע", "מחר"}
	ticketsOnSaleRe   = regexp.MustCompile(`\b(pre\s?sale|tickets? on sale)\b`)
	offTopicRe        = regexp.MustCompile(`\b(news|politics|finance)\b`)
	thinContentLength = 120
)

type Scorer struct {
	kw *keywords.Set
}

func NewScorer(kw *keywords.Set) *Scorer {
	return &Scorer{kw: kw}
}

// RuleScore computes the deterministic keyword-driven relevance score.
// The result is unbounded and may be negative; no clamping happens here.
func (s *Scorer) RuleScore(title, text string) float64 {
	combined := strings.ToLower(title + " " + text)
	score := 0.0

	hitsHe := s.kw.HitsHebrew(combined)
	hitsEn := s.kw.HitsEnglish(combined)
	hitsCity := s.kw.HitsCities(combined)
	hitsArtist := s.kw.HitsArtists(combined)
	hitsViral := s.kw.HitsViral(combined)

	if hitsHe == 0 && hitsEn == 0 {
		// No topical keyword at all is a strong negative signal that
		// secondary cues must not be able to rescue.
		score -= 3.0
	} else {
		score += float64(hitsHe) * 2.0
		score += float64(hitsEn) * 1.4
	}

	score += float64(hitsCity) * 1.2
	score += float64(hitsArtist) * 2.5
	score += float64(hitsViral) * 1.5

	if immediacyRe.MatchString(combined) || containsAny(combined, immediacyHebrew) {
		score += 1.8
	}

	if utf8.RuneCountInString(text) < thinContentLength {
		score -= 0.8
	}

	if ticketsOnSaleRe.MatchString(combined) {
		score += 0.8
	}

	if offTopicRe.MatchString(combined) {
		score -= 1.0
	}

	slog.Debug("rule-based score computed",
		"title", clip(title, 80),
		"score", score,
		"hits_he", hitsHe,
		"hits_en", hitsEn,
		"hits_city", hitsCity,
		"hits_artist", hitsArtist,
		"hits_viral", hitsViral)
	return score
}

// FinalScore blends the rule-based score with the judge oracle when one
// is supplied. A judge failure contributes 0.0 and is never propagated.
func (s *Scorer) FinalScore(ctx context.Context, title, text string, oracle judge.Judge) float64 {
	ruleBased := s.RuleScore(title, text)
	if oracle == nil {
		return ruleBased
	}

	metrics.Global.IncrementJudgeCalls()
	judgeScore, err := oracle.Score(ctx, title, text)
	if err != nil {
		slog.Warn("judge scoring failed", "judge", oracle.Name(), "error", err)
		metrics.Global.IncrementJudgeFailures()
		judgeScore = 0.0
	}
	if judgeScore < 0 {
		judgeScore = 0.0
	}
	if judgeScore > 10 {
		judgeScore = 10.0
	}

	final := 0.6*ruleBased + 0.4*judgeScore
	slog.Debug("blended score", "rule_based", ruleBased, "judge", judgeScore, "final", final)
	return final
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
