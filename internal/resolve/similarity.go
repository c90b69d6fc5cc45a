package resolve

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/adrg/strutil/metrics"
)

// indel measures edit distance with substitutions costed as a delete plus an
// insert, the distance the classic fuzzy ratio is defined over.
var indel = func() *metrics.Levenshtein {
	m := metrics.NewLevenshtein()
	m.ReplaceCost = 2
	return m
}()

// TokenSortRatio returns a token-order-insensitive similarity between a and b
// on a 0-100 scale. Both inputs are normalized to lowercase alphanumeric
// tokens (letter/digit boundaries split, everything else is a separator),
// the tokens are sorted, and the rejoined strings are compared with an
// indel ratio. 100 means the token multisets are identical; the score is
// symmetric in its arguments.
func TokenSortRatio(a, b string) int {
	na := normalizeTokens(a)
	nb := normalizeTokens(b)
	if na == nb {
		return 100
	}
	if na == "" || nb == "" {
		return 0
	}
	lensum := len([]rune(na)) + len([]rune(nb))
	distance := indel.Distance(na, nb)
	return int(math.Round(100 * float64(lensum-distance) / float64(lensum)))
}

// normalizeTokens lowercases, maps non-alphanumerics to separators, splits
// runs where letters meet digits, and returns the sorted tokens joined by
// single spaces. "PUMP-101" and "Pump101" both normalize to "101 pump".
func normalizeTokens(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var prev rune
	for _, r := range strings.ToLower(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteByte(' ')
			prev = 0
			continue
		}
		if prev != 0 && unicode.IsDigit(prev) != unicode.IsDigit(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	tokens := strings.Fields(b.String())
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
