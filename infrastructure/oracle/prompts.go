package oracle

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/talentmatch/talentmatch/internal/domain"
)

// The prompts embed the full profile description verbatim rather than a
// keyword digest: the whole point of delegating to the oracle is that it
// reasons over semantics ("K8s" counts for "Kubernetes"), and stripping
// the text down would throw that context away.

const scoringPromptText = `You are an expert technical recruiter. Score each candidate below against the job profile.

JOB PROFILE
Title: {{.Profile.Title}}
{{- if .Profile.Description}}
Description:
{{.Profile.Description}}
{{- end}}
{{- if .Profile.RequiredSkills}}
Required skills: {{join .Profile.RequiredSkills ", "}}
{{- end}}
{{- if .Profile.NiceToHave}}
Nice to have: {{join .Profile.NiceToHave ", "}}
{{- end}}
{{- if .Profile.MinExperience}}
Minimum experience: {{.Profile.MinExperience}}
{{- end}}
{{- if .Profile.Responsibilities}}
Responsibilities: {{join .Profile.Responsibilities "; "}}
{{- end}}

SCORING WEIGHTS (the relevance_score must reflect this weighting)
- Technical skills: {{.Weights.TechnicalSkills}}%
- Experience: {{.Weights.Experience}}%
- Training and certifications: {{.Weights.Training}}%
- Sector and context fit: {{.Weights.Context}}%

CANDIDATES
{{range $i, $c := .Candidates}}{{add $i 1}}. {{$c.Name}}
   Current title: {{$c.JobTitle}}
   Skills: {{join $c.Skills ", "}}
   Experience: {{$c.YearsExperience}}
   Sectors: {{join $c.Sectors ", "}}
{{end}}
RULES
- Score EVERY candidate listed above. Never omit a candidate, even when the fit is poor; a poor fit gets a low score, not silence.
- Treat semantically equivalent skills as matches (e.g. "K8s" matches "Kubernetes", "Postgres" matches "PostgreSQL").
- relevance_score is an integer from 0 to 100.
- matching_skills and missing_skills refer to the required skills of the profile.
- Respond with a SINGLE JSON object and nothing else, in exactly this shape:

{
  "results": [
    {
      "candidate_name": "<name exactly as listed>",
      "relevance_score": 0,
      "reasoning": "<one or two sentences>",
      "matching_skills": ["..."],
      "missing_skills": ["..."],
      "sectors": ["..."]
    }
  ],
  "summary": "<one sentence on this group>"
}`

const detectionPromptText = `You are an expert in analyzing staffing requirements and tender documents. Determine whether the text below asks for one role or several distinct roles.

REQUIREMENT TEXT
{{.Text}}

RULES
- A requirement is "multiple" only when it describes clearly distinct roles (e.g. a backend developer AND a data engineer), not seniority variations of one role.
- For each detected role, extract the title, a self-contained description, required skills, nice-to-have skills, the minimum experience as stated, main responsibilities, and the estimated headcount.
- confidence is an integer from 0 to 100.
- Respond with a SINGLE JSON object and nothing else, in exactly this shape:

{
  "is_multiple": false,
  "total_profiles_needed": 1,
  "confidence": 0,
  "reasoning": "<one or two sentences>",
  "profiles": [
    {
      "title": "...",
      "description": "...",
      "required_skills": ["..."],
      "nice_to_have": ["..."],
      "min_experience": "...",
      "responsibilities": ["..."],
      "estimated_headcount": 1
    }
  ]
}`

var promptFuncs = template.FuncMap{
	"join": strings.Join,
	"add":  func(a, b int) int { return a + b },
}

var (
	scoringPrompt   = template.Must(template.New("scoring").Funcs(promptFuncs).Parse(scoringPromptText))
	detectionPrompt = template.Must(template.New("detection").Funcs(promptFuncs).Parse(detectionPromptText))
)

type scoringPromptData struct {
	Profile    domain.JobProfile
	Weights    domain.WeightConfig
	Candidates []domain.CandidateRecord
}

// buildScoringPrompt renders the scoring request for one batch.
func buildScoringPrompt(profile domain.JobProfile, candidates []domain.CandidateRecord, weights domain.WeightConfig) (string, error) {
	var sb strings.Builder
	err := scoringPrompt.Execute(&sb, scoringPromptData{
		Profile:    profile,
		Weights:    weights,
		Candidates: candidates,
	})
	if err != nil {
		return "", fmt.Errorf("render scoring prompt: %w", err)
	}
	return sb.String(), nil
}

// buildDetectionPrompt renders the profile-detection request.
func buildDetectionPrompt(text string) (string, error) {
	var sb strings.Builder
	if err := detectionPrompt.Execute(&sb, struct{ Text string }{Text: text}); err != nil {
		return "", fmt.Errorf("render detection prompt: %w", err)
	}
	return sb.String(), nil
}
