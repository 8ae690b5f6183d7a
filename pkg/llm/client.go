// Package llm talks to an OpenAI-compatible chat completion endpoint and orchestrates
// retries, fallback model and static fallback answers on top of it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/umputun/luna/pkg/config"
	"github.com/umputun/luna/pkg/domain"
)

// ErrEmptyCompletion is returned when the endpoint answered without usable text
var ErrEmptyCompletion = errors.New("empty completion")

// Client makes chat completion calls. Outbound calls share one token bucket.
type Client struct {
	config  config.LLMConfig
	limiter *rate.Limiter

	mu     sync.Mutex
	key    string
	client *openai.Client
}

// NewClient creates a new completion client
func NewClient(cfg config.LLMConfig) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &Client{config: cfg, limiter: rate.NewLimiter(limit, burst)}
}

// Complete sends system prompt and question to the model and returns the answer text.
// Transport errors, non-2xx responses, malformed bodies and empty answers are all errors.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: float32(c.config.Temperature),
		MaxTokens:   c.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Question,
			},
		},
	}

	resp, err := c.clientFor(req.APIKey).CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response: %w", ErrEmptyCompletion)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

// clientFor returns an openai client for the key, rebuilt only when the key changes
func (c *Client) clientFor(key string) *openai.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil && c.key == key {
		return c.client
	}

	clientConfig := openai.DefaultConfig(key)
	if c.config.Endpoint != "" {
		clientConfig.BaseURL = c.config.Endpoint
	}
	c.client = openai.NewClientWithConfig(clientConfig)
	c.key = key
	return c.client
}
