package llm

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/lodex23/htbCli/internal/config"
)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client answers a question against a system prompt. Ask never fails: backend
// errors come back as a human-readable string prefixed with the provider name
// so the caller can record them in the challenge history as-is.
type Client interface {
	Name() string
	Ask(ctx context.Context, system, question string) string
}

const (
	defaultOpenAIModel = "gpt-4o-mini"
	defaultOllamaModel = "llama3.1:8b"
	defaultOllamaBase  = "http://localhost:11434"
	requestTimeout     = 120 * time.Second
)

// FromConfig selects the provider. An explicit provider setting wins; "auto"
// uses OpenAI when an API key is available and falls back to Ollama.
func FromConfig(cfg config.Config) Client {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = "auto"
	}

	openaiModel := cfg.OpenAI.Model
	if openaiModel == "" {
		openaiModel = defaultOpenAIModel
	}
	ollamaModel := cfg.Ollama.Model
	if ollamaModel == "" {
		ollamaModel = defaultOllamaModel
	}

	switch {
	case provider == "openai" || (provider == "auto" && cfg.OpenAI.APIKey != ""):
		return NewOpenAIClient(cfg.OpenAI.APIKey, openaiModel, "")
	case provider == "ollama" || provider == "auto":
		return NewOllamaClient(cfg.Ollama.BaseURL, ollamaModel)
	default:
		return StubClient{}
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:   true,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

func normalizeBaseURL(baseURL, fallback string) string {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = fallback
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// StubClient is the disabled provider.
type StubClient struct{}

func (StubClient) Name() string { return "Stub" }

func (StubClient) Ask(context.Context, string, string) string {
	return "AI provider not configured. Set OPENAI_API_KEY or run Ollama locally and set OLLAMA_BASE_URL."
}
