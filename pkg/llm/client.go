// Package llm wraps the OpenAI-compatible chat API used for structured
// extraction. Credentials and model come from the environment (.env),
// matching the deployment where the endpoint is a campus-hosted proxy.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Config selects the endpoint and model. BaseURL is optional; when empty
// the client talks to the public OpenAI API.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// ConfigFromEnv reads LLM_API_KEY, LLM_MODEL_NAME and LLM_BASE_URL.
// Missing credentials are a configuration error, reported before any work
// is dispatched.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		APIKey:  os.Getenv("LLM_API_KEY"),
		Model:   os.Getenv("LLM_MODEL_NAME"),
		BaseURL: os.Getenv("LLM_BASE_URL"),
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("LLM_API_KEY not set (create a .env file or export it)")
	}
	if cfg.Model == "" {
		return cfg, fmt.Errorf("LLM_MODEL_NAME not set (create a .env file or export it)")
	}
	return cfg, nil
}

// Client is safe for concurrent use by pipeline workers.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(cfg Config) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}
}

// ExtractJSON sends a system+user prompt pair and unmarshals the model's
// JSON reply into out. Temperature is pinned to zero so reruns over the
// same syllabus are reproducible.
func (c *Client) ExtractJSON(ctx context.Context, system, user string, out any) error {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("chat completion returned no choices")
	}

	raw := CleanJSON(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("invalid model output: %w", err)
	}
	return nil
}

// CleanJSON strips markdown code fences and any prose around the outermost
// JSON object. Models wrap their output despite instructions often enough
// that this is load-bearing.
func CleanJSON(content string) string {
	s := strings.TrimSpace(content)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
