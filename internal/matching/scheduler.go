// Package matching implements the orchestration core: batch
// scheduling, result aggregation and deduplication, multi-profile
// coordination, and the result query engine.
package matching

import (
	"github.com/talentmatch/talentmatch/internal/domain"
)

// DefaultBatchSize bounds one scoring request to five candidates.
// Oversized batches risk truncated or incomplete oracle replies, so the
// default stays well inside the service's practical token budget.
const DefaultBatchSize = 5

// Split partitions the candidate pool into batches of at most
// batchSize, preserving input order. Every candidate lands in exactly
// one batch and the final batch may be shorter. A non-positive batch
// size is a caller bug and returns ErrInvalidBatchSize rather than a
// silent fallback.
func Split(candidates []domain.CandidateRecord, batchSize int) ([][]domain.CandidateRecord, error) {
	if batchSize <= 0 {
		return nil, domain.ErrInvalidBatchSize
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	batches := make([][]domain.CandidateRecord, 0, (len(candidates)+batchSize-1)/batchSize)
	for start := 0; start < len(candidates); start += batchSize {
		end := start + batchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batches = append(batches, candidates[start:end])
	}
	return batches, nil
}
