package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/talentmatch/talentmatch/internal/domain"
)

// Tier boundaries for the summary narrative. Scores below the lowest
// tier are excluded from tier call-outs entirely.
const (
	tierStrongMin   = 80
	tierModerateMin = 60
	tierWeakMin     = 40

	topTierCallouts = 3
	topSkillsCount  = 5
)

// synthesizeSummary composes the advisory narrative for one aggregated
// result set: up to three named candidates in the strong tier, counts
// per tier, and the five most frequent matching skills. The text is
// presentation-only and never feeds a downstream computation.
func synthesizeSummary(results []domain.MatchResult) string {
	if len(results) == 0 {
		return "No candidates were scored."
	}

	var strong, moderate, weak []domain.MatchResult
	for _, r := range results {
		switch {
		case r.RelevanceScore >= tierStrongMin:
			strong = append(strong, r)
		case r.RelevanceScore >= tierModerateMin:
			moderate = append(moderate, r)
		case r.RelevanceScore >= tierWeakMin:
			weak = append(weak, r)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d candidate(s) scored: %d strong (80+), %d moderate (60-79), %d weak (40-59).",
		len(results), len(strong), len(moderate), len(weak))

	if len(strong) > 0 {
		names := topCandidates(strong, topTierCallouts)
		fmt.Fprintf(&b, " Strongest matches: %s.", strings.Join(names, ", "))
	}

	if skills := topSkills(results, topSkillsCount); len(skills) > 0 {
		fmt.Fprintf(&b, " Most matched skills: %s.", strings.Join(skills, ", "))
	}

	return b.String()
}

// topCandidates returns up to n names from the tier, ordered by score
// descending. The sort is stable so equal scores keep aggregation
// order.
func topCandidates(tier []domain.MatchResult, n int) []string {
	ranked := make([]domain.MatchResult, len(tier))
	copy(ranked, tier)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = fmt.Sprintf("%s (%d)", r.CandidateName, r.RelevanceScore)
	}
	return names
}

// topSkills ranks matching_skills values by frequency across all
// results, ties broken by first occurrence. Counting folds case so
// "Kubernetes" and "kubernetes" accumulate together; the first-seen
// spelling is the one displayed.
func topSkills(results []domain.MatchResult, n int) []string {
	type entry struct {
		display string
		count   int
		first   int
	}
	index := make(map[string]*entry)
	var order []*entry
	seq := 0

	for _, r := range results {
		for _, skill := range r.MatchingSkills {
			display := strings.TrimSpace(skill)
			if display == "" {
				continue
			}
			key := strings.ToLower(display)
			e, ok := index[key]
			if !ok {
				e = &entry{display: display, first: seq}
				index[key] = e
				order = append(order, e)
			}
			e.count++
			seq++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	if len(order) > n {
		order = order[:n]
	}
	skills := make([]string, len(order))
	for i, e := range order {
		skills[i] = e.display
	}
	return skills
}
