package sources

import "testing"

func TestDirectLinkPassesThroughNonGoogleURLs(t *testing.T) {
	url := "https://example.com/article"
	if got := DirectLink(url); got != url {
		t.Fatalf("DirectLink(%q) = %q, want unchanged", url, got)
	}
}

func TestDirectLinkStripsGoogleRedirect(t *testing.T) {
	wrapped := "https://news.google.com/rss/articles/CBMiQGh0dHBzOi8vZXhhbXBsZS5jb20vYXJ0P2hlPTE&url=https%3A%2F%2Ffoo.bar&oc=5"
	if got := DirectLink(wrapped); got != "https://foo.bar" {
		t.Fatalf("DirectLink = %q, want %q", got, "https://foo.bar")
	}
}

func TestDirectLinkReadsQueryParameter(t *testing.T) {
	wrapped := "https://news.google.com/articles?url=https%3A%2F%2Fexample.com%2Fstory&hl=en"
	if got := DirectLink(wrapped); got != "https://example.com/story" {
		t.Fatalf("DirectLink = %q, want %q", got, "https://example.com/story")
	}
}

func TestDirectLinkKeepsUnparseableRedirect(t *testing.T) {
	wrapped := "https://news.google.com/rss/articles/CBMiOpaque"
	if got := DirectLink(wrapped); got != wrapped {
		t.Fatalf("DirectLink = %q, want the original link back", got)
	}
}

func TestDirectLinkEmptyInput(t *testing.T) {
	if got := DirectLink(""); got != "" {
		t.Fatalf("DirectLink(\"\") = %q, want empty", got)
	}
}
