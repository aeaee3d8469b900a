package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Ollama is a Client backed by a locally hosted Ollama server.
type Ollama struct {
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// NewOllama creates a client for the Ollama chat API. The timeout
// applies to each request as a whole; no retries are performed.
func NewOllama(baseURL, model string, temperature float64, maxTokens int, timeout time.Duration) *Ollama {
	return &Ollama{
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []Message     `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaChatResponse struct {
	Message Message `json:"message"`
}

// Chat sends messages to the Ollama /api/chat endpoint and returns the
// full (non-streamed) response content.
func (o *Ollama) Chat(ctx context.Context, messages []Message) (string, error) {
	reqBody, err := json.Marshal(ollamaChatRequest{
		Model:    o.model,
		Messages: messages,
		Stream:   false,
		Options: ollamaOptions{
			Temperature: o.temperature,
			NumPredict:  o.maxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("calling LLM", "model", o.model, "messages", len(messages))
	start := time.Now()

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read LLM response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM API error: status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ollamaChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode LLM response: %w", err)
	}

	slog.Debug("LLM response received",
		"model", o.model,
		"duration", time.Since(start),
		"chars", len(chatResp.Message.Content))

	return chatResp.Message.Content, nil
}

// Name returns the client name.
func (o *Ollama) Name() string {
	return "ollama"
}
