package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// CandidateRecord describes one candidate from the external candidate
// repository. Records are read-only during orchestration; Name is the
// unique join key within a session.
type CandidateRecord struct {
	// Name uniquely identifies the candidate within a session and is the
	// join key between oracle results and the source record.
	Name string `json:"name" yaml:"name" validate:"required"`

	// JobTitle is the candidate's current or most recent role title.
	JobTitle string `json:"job_title" yaml:"job_title"`

	// Skills lists the candidate's declared skills, free-form.
	Skills []string `json:"skills" yaml:"skills"`

	// YearsExperience is the raw experience statement as sourced
	// (for example "7 years" or "7"). Kept as text because the source
	// repository does not normalize it.
	YearsExperience string `json:"years_experience" yaml:"years_experience"`

	// Sectors lists the industry sectors the candidate has worked in.
	Sectors []string `json:"sectors" yaml:"sectors"`

	// Availability is the raw availability statement used to derive the
	// binary activity indicator.
	Availability string `json:"availability,omitempty" yaml:"availability,omitempty"`
}

// ExperienceYears extracts the leading integer from a raw experience
// statement. Returns 0 when no digits are present.
func ExperienceYears(raw string) int {
	start := -1
	for i, r := range raw {
		if unicode.IsDigit(r) {
			start = i
			break
		}
	}
	if start == -1 {
		return 0
	}
	end := start
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	years, err := strconv.Atoi(strings.TrimSpace(raw[start:end]))
	if err != nil {
		return 0
	}
	return years
}
