package extraction

import "strings"

var quoteReplacer = strings.NewReplacer(
	"‘", "'", // left single
	"’", "'", // right single
	"“", `"`, // left double
	"”", `"`, // right double
)

// normalizeName prepares a name for comparison: curly quotes become
// straight, whitespace collapses to single spaces, everything lowercase.
func normalizeName(s string) string {
	s = quoteReplacer.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// matchWordMinLength excludes short filler tokens ("de", "cm", "x")
// from word-overlap scoring.
const matchWordMinLength = 2

// matchWords tokenizes a normalized name into scoring words.
func matchWords(normalized string) []string {
	fields := strings.Fields(normalized)
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) > matchWordMinLength {
			words = append(words, w)
		}
	}
	return words
}

// firstInt extracts the first unsigned integer embedded in a string,
// e.g. "Tray 104" -> 104. Returns 0, false when none is present.
func firstInt(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return parseDigits(s[start:i])
		}
	}
	if start >= 0 {
		return parseDigits(s[start:])
	}
	return 0, false
}

func parseDigits(digits string) (int, bool) {
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	return n, true
}
