package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Telegram settings
	TelegramToken  string
	TelegramChatID string
	LinkPreview    bool

	// Collection settings
	QueriesPath  string
	MaxPerSource int
	Limit        int
	MinScore     float64

	// Selection policy: "score" or "media-boost"
	SelectStrategy string
	MediaBoost     float64

	// Judge settings (all optional; rule-based-only is a valid mode)
	OllamaEndpoint    string
	OllamaModel       string
	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterBaseURL string
	GeminiAPIKey      string
	GeminiModel       string
	MaxJudgeRequests  int // per-day judge call budget (0 = unlimited)

	// Seen store
	SeenPath    string
	DatabaseDSN string // when set, seen ids live in Postgres instead of the file

	// Scheduling
	IntervalMinutes int
	MaxCycles       int

	// App settings
	Verbose        bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		QueriesPath:       "configs/queries.yaml",
		MaxPerSource:      8,
		Limit:             6,
		MinScore:          4.0,
		SelectStrategy:    "score",
		MediaBoost:        1.5,
		MaxJudgeRequests:  0,
		SeenPath:          "seen.json",
		LinkPreview:       true,
		RequestTimeout:    20 * time.Second,
		RetryAttempts:     3,
		RetryDelay:        time.Second,
		OpenRouterModel:   "google/gemma-2-9b-it:free",
		OpenRouterBaseURL: "https://openrouter.ai/api/v1",
		GeminiModel:       "gemini-1.5-flash",
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")

	cfg.OllamaEndpoint = os.Getenv("OLLAMA_ENDPOINT")
	cfg.OllamaModel = os.Getenv("OLLAMA_MODEL")
	cfg.OpenRouterAPIKey = os.Getenv("OPENROUTER_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if v := os.Getenv("OPENROUTER_MODEL"); v != "" {
		cfg.OpenRouterModel = v
	}
	if v := os.Getenv("OPENROUTER_ENDPOINT"); v != "" {
		cfg.OpenRouterBaseURL = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}

	if v := os.Getenv("QUERIES_PATH"); v != "" {
		cfg.QueriesPath = v
	}
	if v := os.Getenv("SEEN_PATH"); v != "" {
		cfg.SeenPath = v
	}
	cfg.DatabaseDSN = os.Getenv("DATABASE_DSN")

	if v := os.Getenv("SELECT_STRATEGY"); v != "" {
		cfg.SelectStrategy = v
	}
	if v := os.Getenv("MEDIA_BOOST"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val >= 0 {
			cfg.MediaBoost = val
		}
	}

	cfg.MaxJudgeRequests = getEnvIntOrDefault("MAX_JUDGE_REQUESTS", cfg.MaxJudgeRequests)

	if v := os.Getenv("DISABLE_LINK_PREVIEW"); v == "true" {
		cfg.LinkPreview = false
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	return cfg, nil
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.TelegramChatID == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	if c.SelectStrategy != "score" && c.SelectStrategy != "media-boost" {
		return fmt.Errorf("SELECT_STRATEGY must be 'score' or 'media-boost'")
	}
	return nil
}

// JudgeEnabled reports whether any judge backend is configured.
func (c *Config) JudgeEnabled() bool {
	return (c.OllamaEndpoint != "" && c.OllamaModel != "") ||
		c.OpenRouterAPIKey != "" ||
		c.GeminiAPIKey != ""
}
