package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/talentmatch/talentmatch/internal/domain"
)

// DefaultPageSize is the fixed page size used by the presentation
// layer.
const DefaultPageSize = 10

// EnrichedResult joins one MatchResult with its source candidate record
// and the derived activity indicator, giving the query engine every
// field the filters and sort keys need.
type EnrichedResult struct {
	domain.MatchResult

	// Candidate is the source record joined by candidate name. Zero
	// value when the oracle reported a name outside the submitted pool.
	Candidate domain.CandidateRecord `json:"candidate"`

	// TACE is the binary activity indicator derived from the
	// candidate's availability statement.
	TACE int `json:"tace"`
}

// Enrich joins results with the candidate pool by folded name and
// derives the activity indicator. Results keep their input order.
func Enrich(results []domain.MatchResult, pool []domain.CandidateRecord) []EnrichedResult {
	byName := make(map[string]domain.CandidateRecord, len(pool))
	for _, c := range pool {
		byName[foldName(c.Name)] = c
	}

	enriched := make([]EnrichedResult, len(results))
	for i, r := range results {
		candidate := byName[foldName(r.CandidateName)]
		enriched[i] = EnrichedResult{
			MatchResult: r,
			Candidate:   candidate,
			TACE:        ActivityIndicator(candidate.Availability),
		}
	}
	return enriched
}

// SortKey selects the ordering applied before pagination.
type SortKey string

const (
	// SortByScore orders by relevance score.
	SortByScore SortKey = "score"
	// SortByExperience orders by parsed integer years of experience.
	SortByExperience SortKey = "experience"
	// SortByName orders lexicographically by candidate name.
	SortByName SortKey = "name"
)

// Filters are the optional, AND-combined result filters. Zero values
// disable the corresponding filter. The filters are independent, so
// application order never changes the outcome.
type Filters struct {
	// MinScore keeps results with relevance_score >= MinScore.
	MinScore int `json:"min_score"`

	// Sector keeps results whose sectors contain this case-insensitive
	// substring.
	Sector string `json:"sector"`

	// SearchSkill keeps results where the term case-insensitively
	// matches any matching skill or any raw candidate skill.
	SearchSkill string `json:"search_skill"`

	// MinTACE keeps results whose activity indicator meets this
	// threshold. The indicator is binary, so any threshold above zero
	// keeps only available candidates.
	MinTACE int `json:"min_tace"`
}

// QueryOptions bundles filters, sort, and the requested page.
type QueryOptions struct {
	Filters    Filters `json:"filters"`
	Sort       SortKey `json:"sort"`
	Descending bool    `json:"descending"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
}

// QueryPage is one page of filtered, sorted results plus the total
// match count before pagination.
type QueryPage struct {
	Items      []EnrichedResult `json:"items"`
	TotalCount int              `json:"total_count"`
}

// Query filters, sorts, and paginates an enriched result set. Sorting
// is stable: ties preserve the input order. Page numbering is 1-based;
// out-of-range pages return an empty item list with the true total.
func Query(results []EnrichedResult, opts QueryOptions) QueryPage {
	filtered := applyFilters(results, opts.Filters)
	sorted := applySort(filtered, opts.Sort, opts.Descending)

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(sorted) {
		return QueryPage{Items: []EnrichedResult{}, TotalCount: len(sorted)}
	}
	end := start + pageSize
	if end > len(sorted) {
		end = len(sorted)
	}
	return QueryPage{Items: sorted[start:end], TotalCount: len(sorted)}
}

func applyFilters(results []EnrichedResult, f Filters) []EnrichedResult {
	kept := make([]EnrichedResult, 0, len(results))
	for _, r := range results {
		if r.RelevanceScore < f.MinScore {
			continue
		}
		if f.Sector != "" && !containsFold(r.Sectors, f.Sector) && !containsFold(r.Candidate.Sectors, f.Sector) {
			continue
		}
		if f.SearchSkill != "" && !containsFold(r.MatchingSkills, f.SearchSkill) && !containsFold(r.Candidate.Skills, f.SearchSkill) {
			continue
		}
		if r.TACE < f.MinTACE {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// containsFold reports whether any value contains the term,
// case-insensitively.
func containsFold(values []string, term string) bool {
	folded := strings.ToLower(term)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), folded) {
			return true
		}
	}
	return false
}

func applySort(results []EnrichedResult, key SortKey, descending bool) []EnrichedResult {
	sorted := make([]EnrichedResult, len(results))
	copy(sorted, results)

	var less func(i, j int) bool
	switch key {
	case SortByExperience:
		less = func(i, j int) bool {
			return domain.ExperienceYears(sorted[i].Candidate.YearsExperience) <
				domain.ExperienceYears(sorted[j].Candidate.YearsExperience)
		}
	case SortByName:
		less = func(i, j int) bool {
			return foldName(sorted[i].CandidateName) < foldName(sorted[j].CandidateName)
		}
	case SortByScore, "":
		less = func(i, j int) bool {
			return sorted[i].RelevanceScore < sorted[j].RelevanceScore
		}
	default:
		// Unknown keys keep the input order.
		return sorted
	}

	if descending {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(sorted, less)
	return sorted
}

// QueryState owns the current page for one presentation surface and
// enforces the reset invariant: the page returns to 1 whenever the
// filters, the sort key or order, or the active profile change. The
// reset is a deliberate UX rule, not an accident of implementation.
type QueryState struct {
	page      int
	signature string
}

// NewQueryState starts on page 1 with no recorded signature.
func NewQueryState() *QueryState {
	return &QueryState{page: 1}
}

// Apply records the active profile, filters and sort, resetting the
// page to 1 when any of them differ from the previous call. It returns
// the page to request.
func (s *QueryState) Apply(profileID string, f Filters, sortKey SortKey, descending bool) int {
	sig := fmt.Sprintf("%s|%d|%s|%s|%d|%s|%t", profileID, f.MinScore, f.Sector, f.SearchSkill, f.MinTACE, sortKey, descending)
	if sig != s.signature {
		s.signature = sig
		s.page = 1
	}
	return s.page
}

// Page returns the current page.
func (s *QueryState) Page() int { return s.page }

// SetPage moves to a specific page; values below 1 clamp to 1.
func (s *QueryState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}
