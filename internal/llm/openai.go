package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// OpenAIClient talks to the OpenAI chat completions API, or any endpoint
// speaking the same protocol when baseURL is overridden.
type OpenAIClient struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
}

func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	return &OpenAIClient{
		baseURL: normalizeBaseURL(baseURL, "https://api.openai.com/v1"),
		model:   model,
		apiKey:  apiKey,
		http:    newHTTPClient(),
	}
}

func (c *OpenAIClient) Name() string { return "OpenAI" }

func (c *OpenAIClient) Ask(ctx context.Context, system, question string) string {
	answer, err := c.chat(ctx, system, question)
	if err != nil {
		return fmt.Sprintf("[OpenAI error] %v", err)
	}
	return answer
}

type openAIRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float32   `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) chat(ctx context.Context, system, question string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("no API key configured")
	}
	payload, err := json.Marshal(openAIRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: question},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(request)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %s", resp.Status)
	}

	var decoded openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("response missing choices")
	}
	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}
