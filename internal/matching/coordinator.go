package matching

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentmatch/talentmatch/internal/domain"
)

// BatchOutcome is what the scoring oracle returns for one
// (profile, batch, weights) request: per-candidate results plus the
// oracle's own batch summary.
type BatchOutcome struct {
	Results []domain.MatchResult
	Summary string
}

// Scorer is the scoring oracle seen from the orchestration side. The
// production implementation lives in infrastructure/oracle; tests
// substitute stubs.
type Scorer interface {
	// Score submits one candidate batch for one profile. It must not
	// mutate its inputs and must not retry internally; retry policy
	// belongs to the caller.
	Score(ctx context.Context, profile domain.JobProfile, batch []domain.CandidateRecord, weights domain.WeightConfig) (BatchOutcome, error)
}

// State is the coordinator's lifecycle position.
type State int

const (
	// StateIdle means no run has started yet.
	StateIdle State = iota
	// StateRunning means a run is in progress.
	StateRunning
	// StateFailed means the last run aborted; no sessions survive.
	StateFailed
	// StateCompleted means the last run processed every profile.
	StateCompleted
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// RunResult is the outcome of a completed coordination run: one
// AggregatedSession per profile, keyed by profile id, plus the profile
// order for tab-style presentation.
type RunResult struct {
	// RunID identifies this coordination run in logs.
	RunID string `json:"run_id"`

	// ProfileOrder lists profile ids in processing order.
	ProfileOrder []string `json:"profile_order"`

	// Sessions maps profile id to its aggregated session.
	Sessions map[string]domain.AggregatedSession `json:"sessions"`
}

// ProgressFunc observes run progress after each completed profile.
type ProgressFunc func(completed, total int)

// Coordinator drives the full matching pipeline for an ordered list of
// profiles against a shared candidate pool: split into batches, score
// each batch sequentially, aggregate, then move to the next profile.
//
// Batches within a profile and profiles within a run are processed
// strictly sequentially to stay under oracle rate limits and keep
// progress reporting simple; total latency scales linearly with batch
// count times profile count.
//
// The run is fail-fast: the first unrecovered error aborts everything
// and sessions from earlier profiles are discarded, not surfaced. A
// caller that wants partial results must re-invoke the run.
type Coordinator struct {
	scorer     Scorer
	aggregator *Aggregator
	batchSize  int
	logger     *zap.Logger
	onProgress ProgressFunc

	mu        sync.Mutex
	state     State
	completed int
	total     int
}

// CoordinatorOption customizes a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithBatchSize overrides DefaultBatchSize.
func WithBatchSize(size int) CoordinatorOption {
	return func(c *Coordinator) { c.batchSize = size }
}

// WithProgress installs a progress observer.
func WithProgress(fn ProgressFunc) CoordinatorOption {
	return func(c *Coordinator) { c.onProgress = fn }
}

// WithLogger installs a logger; the default is a no-op logger.
func WithLogger(logger *zap.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator creates a Coordinator in StateIdle.
func NewCoordinator(scorer Scorer, opts ...CoordinatorOption) (*Coordinator, error) {
	if scorer == nil {
		return nil, fmt.Errorf("scorer cannot be nil")
	}
	c := &Coordinator{
		scorer:    scorer,
		batchSize: DefaultBatchSize,
		logger:    zap.NewNop(),
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.batchSize <= 0 {
		return nil, domain.ErrInvalidBatchSize
	}
	c.aggregator = NewAggregator(c.logger)
	return c, nil
}

// State returns the coordinator's current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Progress returns the completed fraction of the current or last run,
// in [0,1]. Zero before any run starts.
func (c *Coordinator) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.total == 0 {
		return 0
	}
	return float64(c.completed) / float64(c.total)
}

// Run executes one full coordination run. Inputs are validated before
// any oracle work starts; the candidate pool is shared read-only across
// all profiles. On failure the coordinator ends in StateFailed and no
// sessions are returned. Run may be invoked again after a terminal
// state; each invocation is a fresh run.
func (c *Coordinator) Run(ctx context.Context, profiles []domain.JobProfile, pool []domain.CandidateRecord, weights domain.WeightConfig) (*RunResult, error) {
	if len(profiles) == 0 {
		return nil, domain.ErrNoProfiles
	}
	if len(pool) == 0 {
		return nil, domain.ErrEmptyCandidates
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	c.begin(len(profiles))
	c.logger.Info("coordination run started",
		zap.String("run_id", runID),
		zap.Int("profiles", len(profiles)),
		zap.Int("candidates", len(pool)),
		zap.Int("batch_size", c.batchSize),
	)

	// Sessions accumulate here during the run and are surfaced only on
	// completion; a failure discards the map.
	sessions := make(map[string]domain.AggregatedSession, len(profiles))
	order := make([]string, 0, len(profiles))

	for i, profile := range profiles {
		session, err := c.runProfile(ctx, profile, pool, weights)
		if err != nil {
			c.fail()
			c.logger.Error("coordination run aborted",
				zap.String("run_id", runID),
				zap.String("profile_id", profile.ID),
				zap.Int("profile_index", i),
				zap.Error(err),
			)
			return nil, &domain.CoordinationError{ProfileID: profile.ID, ProfileIndex: i, Err: err}
		}
		sessions[profile.ID] = session
		order = append(order, profile.ID)
		c.advance()
		if c.onProgress != nil {
			c.onProgress(i+1, len(profiles))
		}
	}

	c.complete()
	c.logger.Info("coordination run completed", zap.String("run_id", runID))
	return &RunResult{RunID: runID, ProfileOrder: order, Sessions: sessions}, nil
}

// runProfile executes the pipeline for one profile: split, score each
// batch sequentially, aggregate.
func (c *Coordinator) runProfile(ctx context.Context, profile domain.JobProfile, pool []domain.CandidateRecord, weights domain.WeightConfig) (domain.AggregatedSession, error) {
	batches, err := Split(pool, c.batchSize)
	if err != nil {
		return domain.AggregatedSession{}, err
	}

	batchResults := make([][]domain.MatchResult, 0, len(batches))
	for bi, batch := range batches {
		outcome, err := c.scorer.Score(ctx, profile, batch, weights)
		if err != nil {
			return domain.AggregatedSession{}, fmt.Errorf("batch %d/%d: %w", bi+1, len(batches), err)
		}
		batchResults = append(batchResults, outcome.Results)
	}

	// Per-batch oracle summaries only cover a slice of the pool, so the
	// session always carries the synthesized cross-batch narrative.
	agg := c.aggregator.Aggregate(batchResults, pool)

	return domain.AggregatedSession{
		Profile:           profile,
		Results:           agg.Results,
		Summary:           agg.Summary,
		MissingCandidates: agg.Missing,
	}, nil
}

func (c *Coordinator) begin(total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateRunning
	c.completed = 0
	c.total = total
}

func (c *Coordinator) advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed++
}

func (c *Coordinator) fail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateFailed
}

func (c *Coordinator) complete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateCompleted
}
