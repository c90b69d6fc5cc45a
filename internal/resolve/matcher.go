package resolve

import "sort"

// Match is the outcome of scoring one candidate against the reference set.
// MatchedID is empty and Score is zero when no reference cleared the
// threshold.
type Match struct {
	CandidateID string
	MatchedID   string
	Score       int
	Matched     bool
}

// ScoreFunc computes a 0-100 similarity between a candidate and a reference.
type ScoreFunc func(candidate, reference string) int

// BestMatch scores candidate against every reference and returns the best
// match at or above threshold. references must already be in canonical order
// (see CanonicalReferences); the scan keeps the first reference reaching the
// maximum score, so ties resolve to the earliest canonical entry. BestMatch
// is pure: it reads references without mutating them and depends on nothing
// but its arguments, so it can be mapped across partitions as-is.
func BestMatch(candidate string, references []string, threshold int, score ScoreFunc) Match {
	bestScore := -1
	bestRef := ""
	for _, reference := range references {
		if s := score(candidate, reference); s > bestScore {
			bestScore = s
			bestRef = reference
		}
	}
	if bestScore < threshold || bestScore < 0 {
		return Match{CandidateID: candidate}
	}
	return Match{CandidateID: candidate, MatchedID: bestRef, Score: bestScore, Matched: true}
}

// CanonicalReferences copies and sorts the reference set into the stable
// enumeration order the tie-break policy is defined over: ties on the maximum
// score resolve to the lexicographically smallest reference string. The copy
// also guarantees the broadcast slice shared across partitions is never an
// alias of caller-owned memory.
func CanonicalReferences(references []string) []string {
	canonical := make([]string, len(references))
	copy(canonical, references)
	sort.Strings(canonical)
	return canonical
}
