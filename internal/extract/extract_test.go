package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

const fixturePage = `<!DOCTYPE html>
<html>
<head>
  <title>Underground rave returns</title>
  <meta property="og:video" content="https://cdn.example.com/og.mp4">
</head>
<body>
  <article>
    <p>The underground rave scene is back this weekend with a massive warehouse
    event that organisers say will run from midnight until well past sunrise.
    Tickets for the first wave sold out within hours of the announcement and a
    second allocation is expected to open later this week.</p>
    <p>The lineup brings together resident DJs alongside several international
    guests who have not played in the city for years. Organisers promise an
    upgraded sound system and an expanded outdoor area compared to previous
    editions of the party.</p>
    <p>Attendees are advised to arrive early as capacity is strictly limited
    and entry will close once the venue is full. Travel details are shared with
    ticket holders on the day of the event.</p>
  </article>
  <video src="https://cdn.example.com/clip.mp4"></video>
  <video><source src="https://cdn.example.com/teaser.webm" type="video/webm"></video>
  <video src="https://cdn.example.com/ignored.gif"></video>
  <a href="https://www.tiktok.com/@dj/video/9">watch the clip</a>
  <a href="https://www.tiktok.com/@dj/video/9">duplicate anchor</a>
  <a href="https://example.com/tickets">tickets</a>
</body>
</html>`

func TestExtractFindsTextAndMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("fetch sent without a User-Agent")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(fixturePage))
	}))
	defer srv.Close()

	e := New(5 * time.Second)
	content, err := e.Extract(context.Background(), srv.URL+"/article")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if !strings.Contains(content.Text, "underground rave") {
		t.Fatalf("body text not extracted: %q", content.Text)
	}
	if strings.Contains(content.Text, "\n") {
		t.Fatal("text whitespace not collapsed")
	}

	wantVideos := []string{
		"https://cdn.example.com/clip.mp4",
		"https://cdn.example.com/og.mp4",
		"https://cdn.example.com/teaser.webm",
	}
	if !reflect.DeepEqual(content.Videos, wantVideos) {
		t.Fatalf("videos = %v, want %v", content.Videos, wantVideos)
	}

	wantPlatform := []string{"https://www.tiktok.com/@dj/video/9"}
	if !reflect.DeepEqual(content.PlatformLinks, wantPlatform) {
		t.Fatalf("platform links = %v, want %v", content.PlatformLinks, wantPlatform)
	}
}

func TestExtractErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	e := New(5 * time.Second)
	if _, err := e.Extract(context.Background(), srv.URL+"/gone"); err == nil {
		t.Fatal("expected an error for a 404 page")
	}
}

func TestExtractRetriesTransientFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(fixturePage))
	}))
	defer srv.Close()

	e := New(5 * time.Second)
	e.Retry.Delay = time.Millisecond

	content, err := e.Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract after retry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("server saw %d calls, want 2", calls)
	}
	if len(content.Videos) == 0 {
		t.Fatal("retried fetch lost the media links")
	}
}
