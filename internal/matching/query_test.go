package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentmatch/talentmatch/internal/domain"
)

func enrichedFixture() []EnrichedResult {
	pool := []domain.CandidateRecord{
		{Name: "Alice", YearsExperience: "8 years", Skills: []string{"Go", "Terraform"}, Sectors: []string{"Finance"}, Availability: "available now"},
		{Name: "Bob", YearsExperience: "3 years", Skills: []string{"Python"}, Sectors: []string{"Retail"}, Availability: "on assignment"},
		{Name: "Carol", YearsExperience: "12 years", Skills: []string{"Java", "Kafka"}, Sectors: []string{"Finance", "Energy"}, Availability: "Disponible"},
		{Name: "Dan", YearsExperience: "5 years", Skills: []string{"Go"}, Sectors: []string{"Telecom"}, Availability: ""},
	}
	results := []domain.MatchResult{
		{CandidateName: "Alice", RelevanceScore: 91, MatchingSkills: []string{"Go"}, Sectors: []string{"Finance"}},
		{CandidateName: "Bob", RelevanceScore: 55, MatchingSkills: []string{"Python"}, Sectors: []string{"Retail"}},
		{CandidateName: "Carol", RelevanceScore: 78, MatchingSkills: []string{"Kafka"}, Sectors: []string{"Finance", "Energy"}},
		{CandidateName: "Dan", RelevanceScore: 78, MatchingSkills: []string{"Go"}, Sectors: []string{"Telecom"}},
	}
	return Enrich(results, pool)
}

// TestEnrich verifies the join between oracle results and the source
// pool, including the derived binary activity indicator.
func TestEnrich(t *testing.T) {
	enriched := enrichedFixture()
	require.Len(t, enriched, 4)

	assert.Equal(t, "8 years", enriched[0].Candidate.YearsExperience)
	assert.Equal(t, 100, enriched[0].TACE, "availability statement flips TACE to 100")
	assert.Equal(t, 0, enriched[1].TACE)
	assert.Equal(t, 100, enriched[2].TACE, "availability matching is case-insensitive")
	assert.Equal(t, 0, enriched[3].TACE, "empty availability means inactive")
}

// TestQuery_Filters covers each filter and the AND combination.
func TestQuery_Filters(t *testing.T) {
	enriched := enrichedFixture()

	tests := []struct {
		name          string
		filters       Filters
		expectedNames []string
	}{
		{
			name:          "no filters keeps everything",
			expectedNames: []string{"Alice", "Bob", "Carol", "Dan"},
		},
		{
			name:          "min score",
			filters:       Filters{MinScore: 70},
			expectedNames: []string{"Alice", "Carol", "Dan"},
		},
		{
			name:          "sector substring is case-insensitive",
			filters:       Filters{Sector: "finan"},
			expectedNames: []string{"Alice", "Carol"},
		},
		{
			name:          "skill search matches raw candidate skills too",
			filters:       Filters{SearchSkill: "terraform"},
			expectedNames: []string{"Alice"},
		},
		{
			name:          "min tace",
			filters:       Filters{MinTACE: 70},
			expectedNames: []string{"Alice", "Carol"},
		},
		{
			name:          "filters combine with AND",
			filters:       Filters{MinScore: 70, Sector: "Finance", MinTACE: 100},
			expectedNames: []string{"Alice", "Carol"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Query(enriched, QueryOptions{Filters: tt.filters, PageSize: 100})
			names := make([]string, len(page.Items))
			for i, item := range page.Items {
				names[i] = item.CandidateName
			}
			assert.Equal(t, tt.expectedNames, names)
			assert.Equal(t, len(tt.expectedNames), page.TotalCount)
		})
	}
}

// TestQuery_FilterCommutativity checks that independent AND-filters
// give the same result regardless of application order, by comparing
// the combined query against manual sequential application.
func TestQuery_FilterCommutativity(t *testing.T) {
	enriched := enrichedFixture()

	combined := Query(enriched, QueryOptions{Filters: Filters{MinScore: 70, Sector: "Finance"}, PageSize: 100})

	scoreFirst := applyFilters(applyFilters(enriched, Filters{MinScore: 70}), Filters{Sector: "Finance"})
	sectorFirst := applyFilters(applyFilters(enriched, Filters{Sector: "Finance"}), Filters{MinScore: 70})

	assert.Equal(t, scoreFirst, sectorFirst)
	assert.Equal(t, combined.Items, scoreFirst)
}

// TestQuery_Sort covers the three sort keys, both directions, and
// stability for ties.
func TestQuery_Sort(t *testing.T) {
	enriched := enrichedFixture()

	tests := []struct {
		name          string
		sort          SortKey
		descending    bool
		expectedNames []string
	}{
		{
			name:          "score descending keeps tie order stable",
			sort:          SortByScore,
			descending:    true,
			expectedNames: []string{"Alice", "Carol", "Dan", "Bob"},
		},
		{
			name:          "score ascending",
			sort:          SortByScore,
			expectedNames: []string{"Bob", "Carol", "Dan", "Alice"},
		},
		{
			name:          "experience descending parses integer years",
			sort:          SortByExperience,
			descending:    true,
			expectedNames: []string{"Carol", "Alice", "Dan", "Bob"},
		},
		{
			name:          "name ascending",
			sort:          SortByName,
			expectedNames: []string{"Alice", "Bob", "Carol", "Dan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Query(enriched, QueryOptions{Sort: tt.sort, Descending: tt.descending, PageSize: 100})
			names := make([]string, len(page.Items))
			for i, item := range page.Items {
				names[i] = item.CandidateName
			}
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

// TestQuery_Pagination checks page slicing and out-of-range pages.
func TestQuery_Pagination(t *testing.T) {
	enriched := enrichedFixture()

	page1 := Query(enriched, QueryOptions{Page: 1, PageSize: 3})
	require.Len(t, page1.Items, 3)
	assert.Equal(t, 4, page1.TotalCount)

	page2 := Query(enriched, QueryOptions{Page: 2, PageSize: 3})
	require.Len(t, page2.Items, 1)
	assert.Equal(t, "Dan", page2.Items[0].CandidateName)

	page3 := Query(enriched, QueryOptions{Page: 3, PageSize: 3})
	assert.Empty(t, page3.Items)
	assert.Equal(t, 4, page3.TotalCount)
}

// TestQueryState_Reset verifies the deliberate UX invariant: any
// change to filters, sort, or active profile resets the page to 1.
func TestQueryState_Reset(t *testing.T) {
	state := NewQueryState()

	page := state.Apply("profile-1", Filters{MinScore: 70}, SortByScore, true)
	assert.Equal(t, 1, page)

	state.SetPage(3)
	assert.Equal(t, 3, state.Apply("profile-1", Filters{MinScore: 70}, SortByScore, true),
		"unchanged inputs keep the current page")

	t.Run("filter change resets", func(t *testing.T) {
		state.SetPage(3)
		assert.Equal(t, 1, state.Apply("profile-1", Filters{MinScore: 80}, SortByScore, true))
	})
	t.Run("sort key change resets", func(t *testing.T) {
		state.SetPage(3)
		assert.Equal(t, 1, state.Apply("profile-1", Filters{MinScore: 80}, SortByName, true))
	})
	t.Run("sort order change resets", func(t *testing.T) {
		state.SetPage(3)
		assert.Equal(t, 1, state.Apply("profile-1", Filters{MinScore: 80}, SortByName, false))
	})
	t.Run("profile change resets", func(t *testing.T) {
		state.SetPage(3)
		assert.Equal(t, 1, state.Apply("profile-2", Filters{MinScore: 80}, SortByName, false))
	})
}

// TestActivityIndicator pins the binary semantics of the availability
// heuristic.
func TestActivityIndicator(t *testing.T) {
	tests := []struct {
		availability string
		expected     int
	}{
		{"available immediately", 100},
		{"Disponible", 100},
		{"ASAP", 100},
		{"immédiat", 100},
		{"on assignment until June", 0},
		{"", 0},
		{"unknown", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ActivityIndicator(tt.availability), "availability %q", tt.availability)
	}
}
