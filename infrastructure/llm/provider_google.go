package llm

import (
	"context"
	"errors"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

const googleDefaultModel = "gemini-2.0-flash"

func init() {
	registerProvider("google", newGoogleGenerator)
}

// googleGenerator implements Generator on top of the Gemini API.
type googleGenerator struct {
	client *genai.Client
	model  string
}

func newGoogleGenerator(cfg Config) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}
	model := cfg.Model
	if model == "" {
		model = googleDefaultModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &googleGenerator{client: client, model: model}, nil
}

func (g *googleGenerator) Generate(ctx context.Context, prompt string, opts RequestOptions) (Completion, error) {
	config := &genai.GenerateContentConfig{}
	if opts.Temperature != nil {
		config.Temperature = genai.Ptr(float32(*opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.JSONMode {
		config.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return Completion{}, g.wrapError(err)
	}

	text := resp.Text()
	if text == "" {
		return Completion{}, &ProviderError{Provider: "google", Message: "no candidates returned", Err: ErrEmptyCompletion}
	}

	var tokensIn, tokensOut int
	if usage := resp.UsageMetadata; usage != nil {
		tokensIn = int(usage.PromptTokenCount)
		tokensOut = int(usage.CandidatesTokenCount)
	}
	return Completion{
		Text:      text,
		TokensIn:  tokenCount(tokensIn, prompt),
		TokensOut: tokenCount(tokensOut, text),
	}, nil
}

func (g *googleGenerator) Model() string { return g.model }

func (g *googleGenerator) wrapError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return classifyStatus("google", apiErr.Code, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return classifyContext("google", err)
	}
	return &ProviderError{Provider: "google", Message: "request failed", Err: err}
}
