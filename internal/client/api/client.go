// Package api is the typed HTTP client the builder view and the
// post-auth reconciler talk through. Server errors arrive as
// {"error": "..."} bodies; the client surfaces that string when
// present and a generic message otherwise.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"sitebuilder/internal/domain/models"
)

// Client wraps the server's JSON API.
type Client struct {
	http *resty.Client
}

// NewClient creates a client for the given base URL
func NewClient(baseURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient}
}

// SetAuthToken attaches the bearer token used on every request.
func (c *Client) SetAuthToken(token string) {
	c.http.SetAuthToken(token)
}

// SendMessageResponse mirrors the server's send result. HTML stays nil
// when the server omits the field, so callers can tell "leave the
// preview alone" apart from "clear it".
type SendMessageResponse struct {
	UserMessage      *models.HistoryMessage  `json:"userMessage"`
	AssistantMessage *models.HistoryMessage  `json:"assistantMessage"`
	Messages         []models.HistoryMessage `json:"messages"`
	HTML             *string                 `json:"html"`
}

// SendChatMessage posts one user turn and returns the authoritative
// transcript.
func (c *Client) SendChatMessage(ctx context.Context, chatID, content string) (*SendMessageResponse, error) {
	var result SendMessageResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"chatId": chatID, "content": content}).
		SetResult(&result).
		Post("/api/chat/send")
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp, "Failed to send message.")
	}

	return &result, nil
}

// CreateChat creates a chat with the given title and model.
func (c *Client) CreateChat(ctx context.Context, title, modelName string) (*models.Chat, error) {
	var chat models.Chat

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"title": title, "modelName": modelName}).
		SetResult(&chat).
		Post("/api/chats")
	if err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp, "Failed to create chat.")
	}

	return &chat, nil
}

// AppendChatMessage replays one transcript turn into an existing chat.
func (c *Client) AppendChatMessage(ctx context.Context, chatID string, role models.HistoryRole, content string) (*models.HistoryMessage, error) {
	var message models.HistoryMessage

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"role": string(role), "content": content}).
		SetResult(&message).
		Post(fmt.Sprintf("/api/chats/%s/messages", chatID))
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp, "Failed to append message.")
	}

	return &message, nil
}

// apiError prefers the server's error field over the fallback text.
func apiError(resp *resty.Response, fallback string) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		return fmt.Errorf("%s", body.Error)
	}
	return fmt.Errorf("%s", fallback)
}
