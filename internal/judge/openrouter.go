package judge

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenRouter scores candidates through the OpenRouter chat completions
// API, which speaks the OpenAI wire format.
type OpenRouter struct {
	client *openai.Client
	model  string
}

func NewOpenRouter(apiKey, baseURL, model string) *OpenRouter {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)
	return &OpenRouter{client: &client, model: model}
}

func (o *OpenRouter) Name() string { return "openrouter" }

func (o *OpenRouter) Score(ctx context.Context, title, text string) (float64, error) {
	prompt := fmt.Sprintf(`
Return a valid JSON object. Evaluate how suitable this content is for a repost about parties or festivals in Israel.
Return JSON with: score (0-10), reasons (concise English), genre (string), city (if detected).
Title: %s
Text: %s
`, title, clipRunes(text, 1600))

	response, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String("You are a strict judge. Return valid JSON only."),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(0.2),
		MaxTokens:   openai.Int(300),
	})
	if err != nil {
		return 0, fmt.Errorf("openrouter request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return 0, fmt.Errorf("no response from openrouter")
	}

	return parseScore(response.Choices[0].Message.Content)
}
