// Package oracle implements the LLM-backed oracles: semantic candidate
// scoring and multi-profile detection. Both build a structured prompt,
// send it through the transport-agnostic LLM port, and hold the raw
// response against a JSON schema plus struct validation before any of
// it reaches the domain.
//
// The oracles never retry. A malformed or failed response surfaces as
// an error wrapping domain.ErrInvalidOracleResponse and the caller
// decides what happens next.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/talentmatch/talentmatch/internal/domain"
	"github.com/talentmatch/talentmatch/internal/matching"
	"github.com/talentmatch/talentmatch/internal/ports"
)

// Default request parameters for scoring calls. A low temperature keeps
// scores reproducible across identical requests.
const (
	defaultTemperature = 0.1
	defaultMaxTokens   = 4096
)

// Config tunes the oracle request parameters.
type Config struct {
	// Temperature for oracle calls; zero value falls back to the
	// package default.
	Temperature float64

	// MaxTokens bounds each completion; zero falls back to the package
	// default.
	MaxTokens int
}

func (c Config) withDefaults() Config {
	if c.Temperature <= 0 {
		c.Temperature = defaultTemperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	return c
}

// Client is the scoring oracle. It satisfies matching.Scorer.
type Client struct {
	llm      ports.LLMClient
	cfg      Config
	validate *validator.Validate
	logger   *zap.Logger
}

var _ matching.Scorer = (*Client)(nil)

// NewClient builds a scoring oracle over the given LLM client. A nil
// logger falls back to a no-op logger.
func NewClient(llm ports.LLMClient, cfg Config, logger *zap.Logger) (*Client, error) {
	if llm == nil {
		return nil, fmt.Errorf("oracle: llm client must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		llm:      llm,
		cfg:      cfg.withDefaults(),
		validate: validator.New(),
		logger:   logger,
	}, nil
}

// scoringResponse is the wire shape of one scoring reply.
type scoringResponse struct {
	Results []domain.MatchResult `json:"results" validate:"required,dive"`
	Summary string               `json:"summary"`
}

// Score submits one candidate batch for one profile and returns the
// validated per-candidate results. It never retries and never mutates
// its inputs.
func (c *Client) Score(ctx context.Context, profile domain.JobProfile, batch []domain.CandidateRecord, weights domain.WeightConfig) (matching.BatchOutcome, error) {
	prompt, err := buildScoringPrompt(profile, batch, weights)
	if err != nil {
		return matching.BatchOutcome{}, err
	}

	raw, err := c.llm.Complete(ctx, prompt, c.requestOptions())
	if err != nil {
		return matching.BatchOutcome{}, fmt.Errorf("scoring request: %w", err)
	}

	var resp scoringResponse
	if err := c.decode(raw, scoringSchemaLoader, &resp); err != nil {
		return matching.BatchOutcome{}, err
	}

	for i, result := range resp.Results {
		if err := c.validate.Struct(result); err != nil {
			return matching.BatchOutcome{}, fmt.Errorf("%w: result %d (%s): %v",
				domain.ErrInvalidOracleResponse, i, result.CandidateName, err)
		}
	}

	c.logger.Debug("scoring response accepted",
		zap.String("profile_id", profile.ID),
		zap.Int("batch_size", len(batch)),
		zap.Int("results", len(resp.Results)),
	)
	return matching.BatchOutcome{Results: resp.Results, Summary: resp.Summary}, nil
}

func (c *Client) requestOptions() map[string]any {
	return map[string]any{
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"json_mode":   true,
	}
}

// decode extracts the JSON object from a raw oracle reply, checks it
// against the schema, and unmarshals it into out. Every failure wraps
// domain.ErrInvalidOracleResponse; the raw text is only ever logged at
// debug level.
func (c *Client) decode(raw string, schema jsonSchema, out any) error {
	doc := ExtractJSON(raw)
	if doc == "" {
		c.logger.Debug("oracle response carried no JSON", zap.String("raw", raw))
		return fmt.Errorf("%w: no JSON object in response (%d chars)", domain.ErrInvalidOracleResponse, len(raw))
	}

	if err := validateAgainstSchema(schema, doc); err != nil {
		c.logger.Debug("oracle response failed schema check", zap.String("raw", raw), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrInvalidOracleResponse, err)
	}

	if err := json.Unmarshal([]byte(doc), out); err != nil {
		c.logger.Debug("oracle response failed to unmarshal", zap.String("raw", raw), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrInvalidOracleResponse, err)
	}
	return nil
}
