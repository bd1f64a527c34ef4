package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Ollama scores candidates through a local Ollama instance.
type Ollama struct {
	Endpoint string
	Model    string
	Client   *http.Client
}

func NewOllama(endpoint, model string) *Ollama {
	return &Ollama{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Model:    model,
		Client:   &http.Client{Timeout: 25 * time.Second},
	}
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Score(ctx context.Context, title, text string) (float64, error) {
	prompt := fmt.Sprintf(`
Evaluate if this announcement is a high-value post for Israeli party/festival followers.
Return a JSON object with: score (0-10) and reasons (short, English).
Title: %s
Text: %s
`, title, clipRunes(text, 1200))

	body, err := json.Marshal(map[string]interface{}{
		"model":  o.Model,
		"prompt": prompt,
		"stream": false,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.Endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("call ollama: status %d", resp.StatusCode)
	}

	var payload struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode ollama response: %w", err)
	}

	return parseScore(payload.Response)
}
