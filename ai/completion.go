// Package ai talks to the external completion service. The proxy is
// stateless: one request in, one generated reply out, no retries.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"character-chat/backend/internal/models"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"

	// Fixed decoding budget for every chat completion.
	completionModel       = "gpt-4o-mini"
	completionMaxTokens   = 500
	completionTemperature = 0.7
)

// ErrEmptyCompletion is returned when the service answers 200 but carries
// no generated text.
var ErrEmptyCompletion = errors.New("no response generated")

// Turn is one entry of the two-role transcript sent upstream.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transcript maps a session message log to the two-role form the completion
// service expects: user messages stay "user", everything else becomes
// "assistant".
func Transcript(messages []models.ChatMessage) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, msg := range messages {
		role := "assistant"
		if msg.Sender == models.SenderUser {
			role = "user"
		}
		turns = append(turns, Turn{Role: role, Content: msg.Content})
	}
	return turns
}

// Client calls the chat-completions API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a completion client. An empty key yields a disabled
// client; callers should fall back to the dialogue pools.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL creates a client against a custom endpoint, used by
// tests and OpenAI-compatible local models.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether the client has credentials to call upstream.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type completionRequest struct {
	Model       string  `json:"model"`
	Messages    []Turn  `json:"messages"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateResponse prepends the persona prompt for character (generic
// preamble when nil) to the transcript and returns the generated reply.
func (c *Client) GenerateResponse(ctx context.Context, character *models.Character, transcript []Turn) (string, error) {
	messages := make([]Turn, 0, len(transcript)+1)
	messages = append(messages, Turn{Role: "system", Content: PersonalityPrompt(character)})
	messages = append(messages, transcript...)

	requestBody := completionRequest{
		Model:       completionModel,
		Messages:    messages,
		MaxTokens:   completionMaxTokens,
		Temperature: completionTemperature,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status code %d: %s", resp.StatusCode, string(body))
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	if completion.Error != nil {
		return "", fmt.Errorf("API error: %s", completion.Error.Message)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	return completion.Choices[0].Message.Content, nil
}
