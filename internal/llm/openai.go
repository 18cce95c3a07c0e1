package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// openaiClient talks to any OpenAI-compatible chat completions endpoint.
// Retries are driven by generate, so the SDK's own retry loop is off.
type openaiClient struct {
	cfg      LLMConfig
	client   openai.Client
	observer Observer
}

func NewOpenAIClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.Model == "" {
		return nil, errors.New("openai model is required")
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return &openaiClient{cfg: cfg, client: openai.NewClient(opts...), observer: observer}, nil
}

func (c *openaiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	return generate(ctx, c.cfg, c.observer, req, func(ctx context.Context, p callParams) (string, string, error) {
		var messages []openai.ChatCompletionMessageParamUnion
		if p.System != "" {
			messages = append(messages, openai.SystemMessage(p.System))
		}
		messages = append(messages, openai.UserMessage(p.Prompt))

		params := openai.ChatCompletionNewParams{
			Model:       c.cfg.Model,
			Messages:    messages,
			Temperature: openai.Float(p.Temperature),
		}
		if p.MaxTokens > 0 {
			params.MaxTokens = openai.Int(int64(p.MaxTokens))
		}

		resp, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", "", err
		}
		if len(resp.Choices) == 0 {
			return "", "", fmt.Errorf("%w: no choices returned", ErrInvalidOutput)
		}
		return resp.Choices[0].Message.Content, resp.Model, nil
	})
}

func (c *openaiClient) Available(ctx context.Context) bool {
	_, err := c.client.Models.List(ctx)
	return err == nil
}
