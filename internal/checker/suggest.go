package checker

// DefaultSuggestionDistance is the edit-distance cap for suggestions.
const DefaultSuggestionDistance = 2

// Suggester proposes near-miss identifier names for dangling references
// using Levenshtein distance.
type Suggester struct {
	maxDistance int
}

// NewSuggester creates a Suggester with the given edit-distance cap.
// A cap of zero disables suggestions.
func NewSuggester(maxDistance int) *Suggester {
	return &Suggester{maxDistance: maxDistance}
}

// Suggest returns the candidate closest to name within the distance
// cap, or empty when none qualifies. Ties resolve to the
// lexicographically smaller candidate so output stays deterministic.
func (s *Suggester) Suggest(name string, candidates []string) string {
	if s.maxDistance <= 0 {
		return ""
	}

	best := ""
	bestDistance := s.maxDistance + 1

	for _, candidate := range candidates {
		if candidate == name {
			continue
		}

		d := distance(name, candidate)
		if d < bestDistance || (d == bestDistance && best != "" && candidate < best) {
			best = candidate
			bestDistance = d
		}
	}

	if bestDistance > s.maxDistance {
		return ""
	}

	return best
}

// distance computes the Levenshtein distance between two strings,
// rune-wise, with a two-row dynamic program.
func distance(a, b string) int {
	if a == b {
		return 0
	}

	runesA := []rune(a)
	runesB := []rune(b)

	if len(runesA) == 0 {
		return len(runesB)
	}

	if len(runesB) == 0 {
		return len(runesA)
	}

	prev := make([]int, len(runesB)+1)
	curr := make([]int, len(runesB)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(runesA); i++ {
		curr[0] = i

		for j := 1; j <= len(runesB); j++ {
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
			}

			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(runesB)]
}
