// Package digest renders one cycle's selected candidates into the single
// HTML-formatted message sent to the channel.
package digest

import (
	"fmt"
	"strings"

	"github.com/eventscout/eventscout/internal/keywords"
	"github.com/eventscout/eventscout/internal/rank"
)

const maxLinksPerBlock = 3

type Composer struct {
	kw *keywords.Set
}

func NewComposer(kw *keywords.Set) *Composer {
	return &Composer{kw: kw}
}

// Compose builds the digest text. An empty selection yields an empty
// string, which the caller treats as "send nothing".
func (c *Composer) Compose(candidates []rank.Candidate) string {
	if len(candidates) == 0 {
		return ""
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("🎛️ EventScout — %d high-quality leads", len(candidates)))
	lines = append(lines, "")

	for i, cand := range candidates {
		lines = append(lines, fmt.Sprintf("<b>%d. %s</b>", i+1, cand.Title))
		lines = append(lines, fmt.Sprintf("Score: %.2f · Source: %s", cand.Score, cand.Link))
		if len(cand.Videos) > 0 {
			lines = append(lines, "🎬 Direct video links:\n"+strings.Join(firstN(cand.Videos, maxLinksPerBlock), "\n"))
		}
		if len(cand.PlatformLinks) > 0 {
			lines = append(lines, "📱 Platform references:\n"+strings.Join(firstN(cand.PlatformLinks, maxLinksPerBlock), "\n"))
		}
		lines = append(lines, "")
	}

	message := strings.TrimSpace(strings.Join(lines, "\n"))

	if suggestion := c.SocialUploadSuggestion(candidates); suggestion != "" {
		message += "\n\n" + suggestion
	}
	return message
}

// SocialUploadSuggestion picks the candidate best suited for a repost
// clip and renders a short caption-ideas block. Returns "" when no
// candidate carries any media reference.
func (c *Composer) SocialUploadSuggestion(candidates []rank.Candidate) string {
	best, ok := bestMediaCandidate(candidates)
	if !ok {
		return ""
	}

	var lines []string
	lines = append(lines, "📲 Suggested social upload")
	lines = append(lines, "Clip: "+best.FirstMediaLink())
	lines = append(lines, "Caption ideas:")

	if city, ok := c.kw.CityIn(best.Title); ok {
		lines = append(lines, fmt.Sprintf("• %s Nightlife Scoop: %s", city, best.Title))
		lines = append(lines, fmt.Sprintf("• %s is about to go off 🔥 Full story in bio", city))
	} else {
		lines = append(lines, fmt.Sprintf("• Festival radar: %s", best.Title))
		lines = append(lines, "• This one is blowing up, don't sleep on it 🔥")
	}
	return strings.Join(lines, "\n")
}

// bestMediaCandidate ranks by (has media, video count, platform link
// count, score), all descending, and keeps input order on full ties.
func bestMediaCandidate(candidates []rank.Candidate) (rank.Candidate, bool) {
	var best rank.Candidate
	found := false
	for _, cand := range candidates {
		if !cand.HasMedia() {
			continue
		}
		if !found || mediaRank(cand, best) {
			best = cand
			found = true
		}
	}
	return best, found
}

// mediaRank reports whether a strictly outranks b.
func mediaRank(a, b rank.Candidate) bool {
	if len(a.Videos) != len(b.Videos) {
		return len(a.Videos) > len(b.Videos)
	}
	if len(a.PlatformLinks) != len(b.PlatformLinks) {
		return len(a.PlatformLinks) > len(b.PlatformLinks)
	}
	return a.Score > b.Score
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
