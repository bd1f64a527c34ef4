// Package telegram delivers digest messages through the Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eventscout/eventscout/internal/logger"
)

const apiBase = "https://api.telegram.org"

type Client struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
}

func New(token, chatID string) *Client {
	return &Client{
		token:   token,
		chatID:  chatID,
		baseURL: apiBase,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// SendMessage posts one digest. Delivery is a single attempt: a failed
// send is logged by the caller and the cycle moves on.
func (c *Client) SendMessage(ctx context.Context, text string, preview bool) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                c.chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: !preview,
	})
	if err != nil {
		return fmt.Errorf("encode telegram request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram API status %d: %s", resp.StatusCode, string(payload))
	}

	logger.Debug("digest delivered", "chars", len(text))
	return nil
}
