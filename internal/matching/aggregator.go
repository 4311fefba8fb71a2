package matching

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/talentmatch/talentmatch/internal/domain"
)

// coverageMaxDistance is the Levenshtein tolerance used when checking
// whether the oracle covered a submitted candidate. Distance 1 absorbs
// the single-character typos the oracle occasionally introduces into
// echoed names without conflating distinct candidates.
const coverageMaxDistance = 1

// Aggregate is the merged outcome of all batch responses for one
// profile: deduplicated results, an advisory summary, and the names of
// submitted candidates the oracle never reported on.
type Aggregate struct {
	// Results holds one entry per candidate in first-seen order.
	Results []domain.MatchResult

	// Summary is the synthesized tier narrative.
	Summary string

	// Missing lists submitted candidate names with no result after
	// deduplication, in submission order. A non-empty list is a
	// warning, not a failure.
	Missing []string
}

// Aggregator merges batch responses for a single profile. It is
// stateless apart from its logger and safe to reuse across runs.
type Aggregator struct {
	logger *zap.Logger
}

// NewAggregator creates an Aggregator. A nil logger falls back to a
// no-op logger.
func NewAggregator(logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{logger: logger}
}

// Aggregate merges the per-batch result slices for one profile.
//
// Deduplication groups results by candidate name; duplicates can only
// occur when the oracle double-reports, never by design. The entry with
// the strictly higher relevance score wins; ties keep the first-seen
// entry. The rule is deterministic regardless of batch order within a
// name's duplicate set arriving in a fixed sequence.
//
// After deduplication the submitted pool is checked for completeness:
// any candidate without a result is reported in Missing and logged as a
// warning. The run is still considered successful.
func (a *Aggregator) Aggregate(batches [][]domain.MatchResult, submitted []domain.CandidateRecord) Aggregate {
	var ordered []domain.MatchResult
	index := make(map[string]int)

	for _, batch := range batches {
		for _, result := range batch {
			key := foldName(result.CandidateName)
			if key == "" {
				continue
			}
			at, seen := index[key]
			if !seen {
				index[key] = len(ordered)
				ordered = append(ordered, result)
				continue
			}
			if result.RelevanceScore > ordered[at].RelevanceScore {
				a.logger.Debug("superseding duplicate oracle result",
					zap.String("candidate", result.CandidateName),
					zap.Int("previous_score", ordered[at].RelevanceScore),
					zap.Int("new_score", result.RelevanceScore),
				)
				ordered[at] = result
			}
		}
	}

	missing := a.missingCandidates(index, submitted)
	if len(missing) > 0 {
		a.logger.Warn("oracle returned fewer results than candidates submitted",
			zap.Int("submitted", len(submitted)),
			zap.Int("unique_results", len(ordered)),
			zap.Strings("missing", missing),
		)
	}

	return Aggregate{
		Results: ordered,
		Summary: synthesizeSummary(ordered),
		Missing: missing,
	}
}

// missingCandidates identifies submitted candidates absent from the
// deduplicated result index. A returned name within the Levenshtein
// tolerance of a submitted name counts as coverage, so a misspelled
// echo does not produce a false warning.
func (a *Aggregator) missingCandidates(index map[string]int, submitted []domain.CandidateRecord) []string {
	var missing []string
	for _, candidate := range submitted {
		key := foldName(candidate.Name)
		if _, ok := index[key]; ok {
			continue
		}
		if fuzzyCovered(key, index) {
			continue
		}
		missing = append(missing, candidate.Name)
	}
	return missing
}

func fuzzyCovered(key string, index map[string]int) bool {
	for seen := range index {
		if levenshtein.ComputeDistance(key, seen) <= coverageMaxDistance {
			return true
		}
	}
	return false
}

// foldName produces the deduplication key for a candidate name:
// Unicode NFC normalization, whitespace trim, case fold. Accented
// names compare equal across composed and decomposed encodings.
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(name)))
}
