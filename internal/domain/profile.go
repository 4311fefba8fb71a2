package domain

// JobProfile defines a single job role that candidates are matched
// against. Profiles come either from the profile-detection oracle in
// multi-profile mode or are built directly from free text in
// single-profile mode. A profile is immutable once matching starts.
type JobProfile struct {
	// ID uniquely identifies the profile within one coordination run.
	// Profiles returned by the detection oracle without an id receive a
	// synthetic "profile-{index}" id.
	ID string `json:"id" yaml:"id"`

	// Title is the role title, e.g. "Data Engineer".
	Title string `json:"title" yaml:"title" validate:"required"`

	// Description carries the full free-text role description. The
	// scoring request embeds it verbatim so the oracle can reason over
	// semantics rather than keyword lists.
	Description string `json:"description" yaml:"description"`

	// RequiredSkills lists the hard requirements for the role.
	RequiredSkills []string `json:"required_skills" yaml:"required_skills"`

	// NiceToHave lists desirable but optional skills.
	NiceToHave []string `json:"nice_to_have" yaml:"nice_to_have"`

	// MinExperience is the minimum experience requirement as stated in
	// the source text, e.g. "5 years".
	MinExperience string `json:"min_experience" yaml:"min_experience"`

	// Responsibilities lists the main duties attached to the role.
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`

	// EstimatedHeadcount is how many people the requirement asks for
	// on this role, as estimated by the detection oracle.
	EstimatedHeadcount int `json:"estimated_headcount" yaml:"estimated_headcount"`
}

// TenderAnalysis is the outcome of one profile-detection oracle call on
// a free-text requirement.
type TenderAnalysis struct {
	// IsMultiple reports whether the requirement describes more than one
	// distinct role.
	IsMultiple bool `json:"is_multiple"`

	// TotalProfilesNeeded is the number of distinct roles detected.
	TotalProfilesNeeded int `json:"total_profiles_needed" validate:"min=0"`

	// Confidence is the oracle's self-reported confidence, 0-100.
	Confidence int `json:"confidence" validate:"min=0,max=100"`

	// Reasoning explains the detection outcome.
	Reasoning string `json:"reasoning"`

	// Profiles holds the detected role definitions, ordered as they
	// appear in the requirement text.
	Profiles []JobProfile `json:"profiles"`
}
