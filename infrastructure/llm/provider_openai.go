package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// openAIDefaultModel is used when the configuration names no model.
const openAIDefaultModel = "gpt-4o-mini"

func init() {
	registerProvider("openai", newOpenAIGenerator)
}

// openAIGenerator implements Generator on top of OpenAI's chat
// completion API.
type openAIGenerator struct {
	client *openai.Client
	model  string
}

func newOpenAIGenerator(cfg Config) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}
	model := cfg.Model
	if model == "" {
		model = openAIDefaultModel
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &openAIGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

func (g *openAIGenerator) Generate(ctx context.Context, prompt string, opts RequestOptions) (Completion, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if opts.Temperature != nil {
		req.Temperature = float32(*opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	if opts.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Completion{}, g.wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return Completion{}, &ProviderError{Provider: "openai", Message: "no choices returned", Err: ErrEmptyCompletion}
	}

	text := resp.Choices[0].Message.Content
	return Completion{
		Text:      text,
		TokensIn:  tokenCount(resp.Usage.PromptTokens, prompt),
		TokensOut: tokenCount(resp.Usage.CompletionTokens, text),
	}, nil
}

func (g *openAIGenerator) Model() string { return g.model }

func (g *openAIGenerator) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus("openai", apiErr.HTTPStatusCode, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return classifyContext("openai", err)
	}
	return &ProviderError{Provider: "openai", Message: "request failed", Err: err}
}

// tokenCount prefers the provider-reported usage and falls back to the
// character heuristic when the report is zero.
func tokenCount(reported int, text string) int {
	if reported > 0 {
		return reported
	}
	return estimateTokens(text)
}
