package rank

import (
	"log/slog"
	"sort"
)

// RankKey maps a candidate to the value it is ordered by during
// selection. The score threshold always applies to the raw score; the
// key only influences ordering.
type RankKey func(Candidate) float64

// ScoreKey orders candidates by their blended score. The default policy.
func ScoreKey(c Candidate) float64 {
	return c.Score
}

// MediaBoostKey orders candidates by score plus a fixed bonus when they
// carry any media reference, letting clips outrank slightly higher
// scored text-only items.
func MediaBoostKey(bonus float64) RankKey {
	return func(c Candidate) float64 {
		if c.HasMedia() {
			return c.Score + bonus
		}
		return c.Score
	}
}

// SelectTop filters candidates below minScore, orders the survivors
// descending by key (ties keep their input order) and returns at most
// limit of them. A nil key means ScoreKey.
func SelectTop(candidates []Candidate, limit int, minScore float64, key RankKey) []Candidate {
	if key == nil {
		key = ScoreKey
	}

	filtered := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score >= minScore {
			filtered = append(filtered, c)
		}
	}
	slog.Info("filtered candidates by score", "kept", len(filtered), "min_score", minScore)

	sort.SliceStable(filtered, func(i, j int) bool {
		return key(filtered[i]) > key(filtered[j])
	})

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}
