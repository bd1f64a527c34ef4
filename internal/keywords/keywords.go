// Package keywords holds the immutable keyword sets that drive relevance
// scoring. A Set is built once at startup from the queries config and passed
// by reference into the scorer; nothing mutates it afterwards.
package keywords

import (
	"strings"

	"github.com/eventscout/eventscout/internal/config"
)

type Set struct {
	hebrew  map[string]struct{}
	english map[string]struct{}
	artists map[string]struct{}
	viral   map[string]struct{}
	cities  map[string]struct{}

	// cityOrder keeps the config order so city detection is
	// deterministic when a title names several cities.
	cityOrder []string
}

// FromConfig lowercases every keyword list from the queries document into
// category sets.
func FromConfig(q *config.Queries) *Set {
	s := &Set{
		hebrew:  fold(q.KeywordsHe),
		english: fold(q.KeywordsEn),
		artists: fold(q.ArtistKeywords),
		viral:   fold(q.ViralCues),
		cities:  fold(q.Cities),
	}
	seen := make(map[string]struct{}, len(q.Cities))
	for _, city := range q.Cities {
		city = strings.ToLower(strings.TrimSpace(city))
		if city == "" {
			continue
		}
		if _, dup := seen[city]; dup {
			continue
		}
		seen[city] = struct{}{}
		s.cityOrder = append(s.cityOrder, city)
	}
	return s
}

func fold(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}

// countHits counts how many keywords from the set occur in the haystack.
// Each keyword contributes at most once, no matter how often it repeats.
func countHits(set map[string]struct{}, haystack string) int {
	hits := 0
	for kw := range set {
		if strings.Contains(haystack, kw) {
			hits++
		}
	}
	return hits
}

// The haystack passed to the Hits methods must already be lowercased.

func (s *Set) HitsHebrew(haystack string) int  { return countHits(s.hebrew, haystack) }
func (s *Set) HitsEnglish(haystack string) int { return countHits(s.english, haystack) }
func (s *Set) HitsArtists(haystack string) int { return countHits(s.artists, haystack) }
func (s *Set) HitsViral(haystack string) int   { return countHits(s.viral, haystack) }
func (s *Set) HitsCities(haystack string) int  { return countHits(s.cities, haystack) }

// CityIn returns the first configured city (in config order) found as a
// case-insensitive substring of text, in the casing it appears there.
func (s *Set) CityIn(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, city := range s.cityOrder {
		idx := strings.Index(lower, city)
		if idx < 0 {
			continue
		}
		end := idx + len(city)
		// Lowercasing can change byte lengths (İ and friends), so the
		// byte offsets only line up when the window case-folds back to
		// the city itself.
		if end <= len(text) && strings.EqualFold(text[idx:end], city) {
			return text[idx:end], true
		}
		return city, true
	}
	return "", false
}
