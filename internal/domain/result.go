package domain

// MatchResult is one candidate's scored outcome against one job
// profile, as reported by the scoring oracle. CandidateName is the join
// key back to the CandidateRecord that was submitted.
type MatchResult struct {
	// CandidateName echoes the submitted candidate name.
	CandidateName string `json:"candidate_name" validate:"required"`

	// RelevanceScore is the oracle's overall relevance on a 0-100 scale.
	RelevanceScore int `json:"relevance_score" validate:"min=0,max=100"`

	// Reasoning is the oracle's free-text explanation for the score.
	Reasoning string `json:"reasoning"`

	// MatchingSkills lists the candidate skills the oracle considered
	// relevant, including semantic equivalents of the required skills.
	MatchingSkills []string `json:"matching_skills"`

	// MissingSkills lists required skills the oracle could not find.
	MissingSkills []string `json:"missing_skills"`

	// Sectors echoes the sectors the oracle took into account.
	Sectors []string `json:"sectors"`
}

// AggregatedSession is the deduplicated, summarized result set for one
// profile across all of its batches. Sessions live only for the
// duration of one coordination run and are discarded on reset.
type AggregatedSession struct {
	// Profile is the job profile the session was matched against.
	Profile JobProfile `json:"profile"`

	// Results holds one deduplicated MatchResult per candidate, in
	// first-seen order.
	Results []MatchResult `json:"results"`

	// Summary is the advisory narrative synthesized from the results.
	// It is never used in downstream computation.
	Summary string `json:"summary"`

	// MissingCandidates lists submitted candidate names absent from the
	// oracle's output after deduplication. Non-fatal.
	MissingCandidates []string `json:"missing_candidates,omitempty"`
}
