package resolve

import "golang.org/x/text/cases"

// ExactScore is the exact-matching strategy: 100 when candidate and
// reference are equal under Unicode case folding, 0 otherwise. It shares the
// ScoreFunc shape so a Resolver configured with it behaves like the fuzzy
// path with matching reduced to case-normalized equality.
func ExactScore(candidate, reference string) int {
	fold := cases.Fold()
	if fold.String(candidate) == fold.String(reference) {
		return 100
	}
	return 0
}
