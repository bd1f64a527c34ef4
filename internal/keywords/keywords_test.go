package keywords

import (
	"strings"
	"testing"

	"github.com/eventscout/eventscout/internal/config"
)

func testSet() *Set {
	return FromConfig(&config.Queries{
		KeywordsHe: []string{"מסיבה", "  פסטיבל  ", ""},
		KeywordsEn: []string{"Party", "FESTIVAL", "rave"},
		Cities:     []string{"Tel Aviv", "haifa"},
		ViralCues:  []string{"viral"},
	})
}

func TestHitsCountEachKeywordOnce(t *testing.T) {
	s := testSet()
	haystack := "party party party at the festival"
	if got := s.HitsEnglish(haystack); got != 2 {
		t.Fatalf("HitsEnglish = %d, want 2 (party and festival once each)", got)
	}
}

func TestHitsAreCaseFoldedOnLoad(t *testing.T) {
	s := testSet()
	if got := s.HitsEnglish("the festival was great"); got != 1 {
		t.Fatalf("uppercase-configured keyword not matched, hits = %d", got)
	}
	if got := s.HitsCities("nightlife in tel aviv"); got != 1 {
		t.Fatalf("city keyword not folded, hits = %d", got)
	}
}

func TestHitsHebrewSubstrings(t *testing.T) {
	s := testSet()
	if got := s.HitsHebrew("הזמנות למסיבה הגדולה"); got != 1 {
		t.Fatalf("hebrew keyword not matched inside a word, hits = %d", got)
	}
}

func TestEmptyAndPaddedKeywordsDropped(t *testing.T) {
	s := testSet()
	if got := s.HitsHebrew("פסטיבל"); got != 1 {
		t.Fatalf("padded keyword not trimmed on load, hits = %d", got)
	}
	if got := s.HitsHebrew("anything at all"); got != 0 {
		t.Fatalf("empty keyword matched everything, hits = %d", got)
	}
}

func TestCityInPrefersConfigOrderDeterministically(t *testing.T) {
	s := FromConfig(&config.Queries{
		Cities: []string{"tel aviv", "haifa"},
	})

	title := "Haifa and Tel Aviv ring in the festival season"
	first, ok := s.CityIn(title)
	if !ok {
		t.Fatal("no city detected")
	}
	if first != "Tel Aviv" {
		t.Fatalf("CityIn = %q, want the first configured city Tel Aviv", first)
	}
	for i := 0; i < 200; i++ {
		if got, _ := s.CityIn(title); got != first {
			t.Fatalf("run %d: CityIn = %q, earlier run returned %q", i, got, first)
		}
	}
}

func TestCityInSurvivesLengthChangingLowercase(t *testing.T) {
	s := testSet()

	// İ lowercases to a longer byte sequence, shifting every index after
	// it in the lowered string.
	city, ok := s.CityIn("İstanbul vs Tel Aviv party scene")
	if !ok {
		t.Fatal("city not detected after a length-changing rune")
	}
	if !strings.EqualFold(city, "tel aviv") {
		t.Fatalf("CityIn = %q, want a form of %q", city, "tel aviv")
	}
}

func TestCityInReturnsOriginalCasing(t *testing.T) {
	s := testSet()

	city, ok := s.CityIn("Tel Aviv beach party crowd goes viral")
	if !ok {
		t.Fatal("city not detected in title")
	}
	if city != "Tel Aviv" {
		t.Fatalf("CityIn = %q, want the title's casing %q", city, "Tel Aviv")
	}

	if _, ok := s.CityIn("forest rave in the desert"); ok {
		t.Fatal("city detected where none is present")
	}
}
