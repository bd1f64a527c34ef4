package judge

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini scores candidates through the Google Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(apiKey, model string) (*Gemini, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func (g *Gemini) Score(ctx context.Context, title, text string) (float64, error) {
	model := g.client.GenerativeModel(g.model)

	prompt := fmt.Sprintf(`
Return a valid JSON object only. Evaluate how suitable this content is for a repost about parties or festivals in Israel.
Return JSON with: score (0-10) and reasons (concise English).
Title: %s
Text: %s
`, title, clipRunes(text, 1600))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return 0, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return 0, fmt.Errorf("no response from gemini")
	}

	payload := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return parseScore(payload)
}
