package matching

import "strings"

// availabilityMarkers are the substrings that flip the activity
// indicator to 100. Matching is case-insensitive; the list covers the
// phrasings seen in the candidate repository.
var availabilityMarkers = []string{
	"available",
	"immediate",
	"immédiat",
	"disponible",
	"asap",
}

// ActivityIndicator derives the TACE signal from a raw availability
// statement. The computation is deliberately binary: 100 when the
// statement contains an availability marker, 0 otherwise. No gradient
// exists in the source data, so none is invented here.
func ActivityIndicator(availability string) int {
	folded := strings.ToLower(strings.TrimSpace(availability))
	if folded == "" {
		return 0
	}
	for _, marker := range availabilityMarkers {
		if strings.Contains(folded, marker) {
			return 100
		}
	}
	return 0
}
