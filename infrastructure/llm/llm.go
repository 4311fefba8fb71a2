// Package llm is the transport behind the scoring and profile-detection
// oracles. It abstracts the supported providers (OpenAI, Anthropic,
// Google Gemini) behind a single Generator interface and composes
// cross-cutting concerns — rate limiting, timeouts, logging, metrics,
// tracing, opt-in retries — as middleware around it.
//
// The orchestration layer never retries; any retry or timeout policy
// lives here, in the transport, where the caller composes it
// explicitly:
//
//	client, err := llm.New("openai", llm.Config{
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	    Model:  "gpt-4o-mini",
//	    Middleware: []llm.Middleware{
//	        llm.RateLimit(rate.Limit(2), 4),
//	        llm.Timeout(60 * time.Second),
//	    },
//	})
package llm

import (
	"context"
	"fmt"

	"github.com/talentmatch/talentmatch/internal/ports"
)

// charsPerToken is the heuristic used when a provider does not report
// usage: roughly four characters per token for English text.
const charsPerToken = 4

// Completion is one generation outcome, with token usage when the
// provider reports it and estimates otherwise.
type Completion struct {
	Text      string
	TokensIn  int
	TokensOut int
}

// Generator is the minimal surface a provider must implement. The
// middleware chain wraps any conforming implementation.
type Generator interface {
	// Generate sends one prompt and returns the raw completion.
	Generate(ctx context.Context, prompt string, opts RequestOptions) (Completion, error)

	// Model returns the configured model identifier.
	Model() string
}

// RequestOptions carries the provider-agnostic request parameters.
type RequestOptions struct {
	// Temperature, when set, overrides the provider default.
	Temperature *float64

	// MaxTokens bounds the completion length; zero keeps the provider
	// default.
	MaxTokens int

	// JSONMode asks the provider for structured JSON output when the
	// model supports it. Providers without such a mode ignore it.
	JSONMode bool
}

// Middleware wraps a Generator with cross-cutting behavior. Middleware
// composes in the order given, first entry outermost.
type Middleware func(Generator) Generator

// Config holds everything needed to build a provider-backed client.
type Config struct {
	// APIKey authenticates against the provider. For Google it may
	// instead be a path to a service account credentials file.
	APIKey string

	// Model selects the provider model; empty picks the provider
	// default.
	Model string

	// BaseURL overrides the provider endpoint, mainly for tests.
	BaseURL string

	// Middleware is applied around the provider, first entry outermost.
	Middleware []Middleware
}

type providerFactory func(Config) (Generator, error)

var providerFactories = map[string]providerFactory{}

// registerProvider is called from provider init functions.
func registerProvider(name string, factory providerFactory) {
	providerFactories[name] = factory
}

// Providers lists the registered provider names.
func Providers() []string {
	names := make([]string, 0, len(providerFactories))
	for name := range providerFactories {
		names = append(names, name)
	}
	return names
}

// Client adapts a Generator to the ports.LLMClient interface consumed
// by the oracles.
type Client struct {
	gen Generator
}

var _ ports.LLMClient = (*Client)(nil)

// New builds a client for the named provider with the middleware chain
// from cfg applied.
func New(provider string, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}
	factory, ok := providerFactories[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	gen, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", provider, err)
	}

	// Reverse order so the first configured middleware sits outermost.
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		gen = cfg.Middleware[i](gen)
	}
	return &Client{gen: gen}, nil
}

// Wrap builds a client around an existing Generator, used by tests.
func Wrap(gen Generator) *Client { return &Client{gen: gen} }

// Complete sends a prompt and returns the generated text. Recognized
// options: "temperature" (float64), "max_tokens" (int),
// "json_mode" (bool).
func (c *Client) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	completion, err := c.gen.Generate(ctx, prompt, parseOptions(options))
	if err != nil {
		return "", err
	}
	return completion.Text, nil
}

// EstimateTokens approximates a token count with the character
// heuristic.
func (c *Client) EstimateTokens(text string) (int, error) {
	return estimateTokens(text), nil
}

// GetModel returns the underlying provider's model identifier.
func (c *Client) GetModel() string { return c.gen.Model() }

func parseOptions(options map[string]any) RequestOptions {
	var opts RequestOptions
	if options == nil {
		return opts
	}
	if t, ok := options["temperature"].(float64); ok && t >= 0 {
		opts.Temperature = &t
	}
	if m, ok := options["max_tokens"].(int); ok && m > 0 {
		opts.MaxTokens = m
	}
	if j, ok := options["json_mode"].(bool); ok {
		opts.JSONMode = j
	}
	return opts
}

func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}
