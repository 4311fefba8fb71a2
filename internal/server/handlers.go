package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/talentmatch/talentmatch/internal/domain"
	"github.com/talentmatch/talentmatch/internal/matching"
)

// jobOfferPayload is the wire shape of a single job offer.
type jobOfferPayload struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	MinExperience string `json:"min_experience"`
}

// matchRequest is the POST /match body.
type matchRequest struct {
	JobOffer *jobOfferPayload         `json:"job_offer"`
	CVList   []domain.CandidateRecord `json:"cv_list"`
	Weights  *domain.WeightConfig     `json:"weights"`
}

// matchResponse is the POST /match reply: the aggregated session for
// the single offer, with results enriched by candidate data and the
// activity indicator.
type matchResponse struct {
	RunID             string                    `json:"run_id"`
	Profile           domain.JobProfile         `json:"profile"`
	Results           []matching.EnrichedResult `json:"results"`
	Summary           string                    `json:"summary"`
	MissingCandidates []string                  `json:"missing_candidates,omitempty"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := validateMatchRequest(req); err != nil {
		s.writeError(w, r, err)
		return
	}

	profile := domain.JobProfile{
		ID:            "profile-1",
		Title:         req.JobOffer.Title,
		Description:   req.JobOffer.Description,
		MinExperience: req.JobOffer.MinExperience,
	}

	result, err := s.runMatching(r.Context(), []domain.JobProfile{profile}, req.CVList, req.Weights)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	session := result.Sessions[profile.ID]
	writeJSON(w, http.StatusOK, matchResponse{
		RunID:             result.RunID,
		Profile:           session.Profile,
		Results:           matching.Enrich(session.Results, req.CVList),
		Summary:           session.Summary,
		MissingCandidates: session.MissingCandidates,
	})
}

// matchMultiRequest is the POST /match/multi body. Callers supply
// either explicit profiles or tender text to detect them from.
type matchMultiRequest struct {
	TenderText string                   `json:"tender_text"`
	Profiles   []domain.JobProfile      `json:"profiles"`
	CVList     []domain.CandidateRecord `json:"cv_list"`
	Weights    *domain.WeightConfig     `json:"weights"`
}

// sessionPayload mirrors one aggregated session with enriched results.
type sessionPayload struct {
	Profile           domain.JobProfile         `json:"profile"`
	Results           []matching.EnrichedResult `json:"results"`
	Summary           string                    `json:"summary"`
	MissingCandidates []string                  `json:"missing_candidates,omitempty"`
}

// matchMultiResponse is the POST /match/multi reply.
type matchMultiResponse struct {
	RunID        string                    `json:"run_id"`
	Analysis     *domain.TenderAnalysis    `json:"analysis,omitempty"`
	ProfileOrder []string                  `json:"profile_order"`
	Sessions     map[string]sessionPayload `json:"sessions"`
}

func (s *Server) handleMatchMulti(w http.ResponseWriter, r *http.Request) {
	var req matchMultiRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	vErr := domain.NewValidationError("multi match request")
	if len(req.CVList) == 0 {
		vErr.Add("cv_list must not be empty")
	}
	if len(req.Profiles) == 0 && strings.TrimSpace(req.TenderText) == "" {
		vErr.Add("either profiles or tender_text is required")
	}
	validateCandidates(req.CVList, vErr)
	if vErr.HasProblems() {
		s.writeError(w, r, vErr)
		return
	}

	profiles := req.Profiles
	var analysis *domain.TenderAnalysis
	if len(profiles) == 0 {
		detected, err := s.analyzer.AnalyzeTender(r.Context(), req.TenderText)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		analysis = &detected
		profiles = detected.Profiles
	}
	for i := range profiles {
		if profiles[i].ID == "" {
			profiles[i].ID = fmt.Sprintf("profile-%d", i+1)
		}
	}

	result, err := s.runMatching(r.Context(), profiles, req.CVList, req.Weights)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sessions := make(map[string]sessionPayload, len(result.Sessions))
	for id, session := range result.Sessions {
		sessions[id] = sessionPayload{
			Profile:           session.Profile,
			Results:           matching.Enrich(session.Results, req.CVList),
			Summary:           session.Summary,
			MissingCandidates: session.MissingCandidates,
		}
	}
	writeJSON(w, http.StatusOK, matchMultiResponse{
		RunID:        result.RunID,
		Analysis:     analysis,
		ProfileOrder: result.ProfileOrder,
		Sessions:     sessions,
	})
}

// analyzeTenderRequest is the POST /analyze-tender body.
type analyzeTenderRequest struct {
	TenderText string `json:"tender_text"`
}

func (s *Server) handleAnalyzeTender(w http.ResponseWriter, r *http.Request) {
	var req analyzeTenderRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if strings.TrimSpace(req.TenderText) == "" {
		vErr := domain.NewValidationError("tender analysis request")
		vErr.Add("tender_text must not be empty")
		s.writeError(w, r, vErr)
		return
	}

	analysis, err := s.analyzer.AnalyzeTender(r.Context(), req.TenderText)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// runMatching executes one coordination run with a fresh coordinator,
// so concurrent requests never share state-machine state.
func (s *Server) runMatching(ctx context.Context, profiles []domain.JobProfile, pool []domain.CandidateRecord, weights *domain.WeightConfig) (*matching.RunResult, error) {
	w := s.cfg.DefaultWeights
	if weights != nil {
		w = *weights
	}

	coord, err := matching.NewCoordinator(s.scorer,
		matching.WithBatchSize(s.cfg.BatchSize),
		matching.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}
	return coord.Run(ctx, profiles, pool, w)
}

// validateMatchRequest rejects structurally invalid POST /match bodies
// before any orchestration work starts.
func validateMatchRequest(req matchRequest) error {
	vErr := domain.NewValidationError("match request")
	if req.JobOffer == nil || (strings.TrimSpace(req.JobOffer.Title) == "" && strings.TrimSpace(req.JobOffer.Description) == "") {
		vErr.Add("job_offer with a title or description is required")
	}
	if len(req.CVList) == 0 {
		vErr.Add("cv_list must not be empty")
	}
	validateCandidates(req.CVList, vErr)
	if req.Weights != nil {
		if err := req.Weights.Validate(); err != nil {
			vErr.Add(err.Error())
		}
	}
	if vErr.HasProblems() {
		return vErr
	}
	return nil
}

func validateCandidates(cvList []domain.CandidateRecord, vErr *domain.ValidationError) {
	for i, c := range cvList {
		if strings.TrimSpace(c.Name) == "" {
			vErr.Add(fmt.Sprintf("cv_list[%d] is missing a name", i))
		}
	}
}

func decodeBody(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		vErr := domain.NewValidationError("request body")
		vErr.Add("malformed JSON: " + err.Error())
		return vErr
	}
	return nil
}
