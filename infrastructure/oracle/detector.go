package oracle

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/talentmatch/talentmatch/internal/domain"
)

// AnalyzeTender asks the detection oracle whether a free-text
// requirement describes one role or several, returning the detected
// profiles in document order. Profiles come back without ids; each
// receives a synthetic "profile-{index}" id, 1-based.
func (c *Client) AnalyzeTender(ctx context.Context, text string) (domain.TenderAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return domain.TenderAnalysis{}, domain.ErrEmptyTenderText
	}

	prompt, err := buildDetectionPrompt(text)
	if err != nil {
		return domain.TenderAnalysis{}, err
	}

	raw, err := c.llm.Complete(ctx, prompt, c.requestOptions())
	if err != nil {
		return domain.TenderAnalysis{}, fmt.Errorf("tender analysis request: %w", err)
	}

	var analysis domain.TenderAnalysis
	if err := c.decode(raw, detectionSchemaLoader, &analysis); err != nil {
		return domain.TenderAnalysis{}, err
	}
	if err := c.validate.Struct(analysis); err != nil {
		return domain.TenderAnalysis{}, fmt.Errorf("%w: %v", domain.ErrInvalidOracleResponse, err)
	}

	for i := range analysis.Profiles {
		if analysis.Profiles[i].ID == "" {
			analysis.Profiles[i].ID = fmt.Sprintf("profile-%d", i+1)
		}
	}
	// A reply claiming multiple roles but carrying none is not usable.
	if analysis.IsMultiple && len(analysis.Profiles) == 0 {
		return domain.TenderAnalysis{}, fmt.Errorf("%w: multiple roles reported without profiles", domain.ErrInvalidOracleResponse)
	}

	c.logger.Debug("tender analysis accepted",
		zap.Bool("is_multiple", analysis.IsMultiple),
		zap.Int("profiles", len(analysis.Profiles)),
		zap.Int("confidence", analysis.Confidence),
	)
	return analysis, nil
}
