package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Queries is the YAML document describing what to collect and which
// keywords drive scoring. Loaded once at startup and treated as immutable.
type Queries struct {
	GoogleNewsQueries []string `yaml:"google_news_queries"`
	RSSFeeds          []string `yaml:"rss_feeds"`
	Subreddits        []string `yaml:"subreddits"`
	TikTokTags        []string `yaml:"tiktok_tags"`

	KeywordsHe     []string `yaml:"keywords_he"`
	KeywordsEn     []string `yaml:"keywords_en"`
	ArtistKeywords []string `yaml:"artist_keywords"`
	ViralCues      []string `yaml:"viral_cues"`
	Cities         []string `yaml:"cities"`
}

// LoadQueries reads the collection/keyword config from a YAML file.
func LoadQueries(path string) (*Queries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open queries config: %w", err)
	}
	defer f.Close()

	var q Queries
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&q); err != nil {
		return nil, fmt.Errorf("decode queries config: %w", err)
	}
	return &q, nil
}
