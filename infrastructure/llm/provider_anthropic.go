package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	anthropicDefaultModel = "claude-3-5-haiku-20241022"

	// anthropicDefaultMaxTokens applies when the caller sets no limit;
	// the Anthropic API requires an explicit max_tokens value.
	anthropicDefaultMaxTokens = 1024
)

func init() {
	registerProvider("anthropic", newAnthropicGenerator)
}

// anthropicGenerator implements Generator on top of the Anthropic
// Messages API. The API has no JSON response mode; JSONMode is carried
// by prompt instructions alone.
type anthropicGenerator struct {
	client anthropic.Client
	model  string
}

func newAnthropicGenerator(cfg Config) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}
	model := cfg.Model
	if model == "" {
		model = anthropicDefaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &anthropicGenerator{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, nil
}

func (g *anthropicGenerator) Generate(ctx context.Context, prompt string, opts RequestOptions) (Completion, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if opts.Temperature != nil {
		params.Temperature = anthropic.Float(*opts.Temperature)
	}

	message, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return Completion{}, g.wrapError(err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(tb.Text)
		}
	}
	if text.Len() == 0 {
		return Completion{}, &ProviderError{Provider: "anthropic", Message: "no text blocks returned", Err: ErrEmptyCompletion}
	}

	out := text.String()
	return Completion{
		Text:      out,
		TokensIn:  tokenCount(int(message.Usage.InputTokens), prompt),
		TokensOut: tokenCount(int(message.Usage.OutputTokens), out),
	}, nil
}

func (g *anthropicGenerator) Model() string { return g.model }

func (g *anthropicGenerator) wrapError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return classifyStatus("anthropic", apiErr.StatusCode, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return classifyContext("anthropic", err)
	}
	return &ProviderError{Provider: "anthropic", Message: "request failed", Err: err}
}
