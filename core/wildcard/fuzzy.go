package wildcard

import (
	"strings"
	"unicode"
)

// Distance returns the optimal string alignment distance between a and
// b: the number of single-rune inserts, deletes, substitutions and
// adjacent transpositions needed to turn one into the other.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	d := make([][]int, len(ra)+1)
	for i := range d {
		d[i] = make([]int, len(rb)+1)
		d[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d[i][j] = minInt(
				d[i-1][j]+1,
				d[i][j-1]+1,
				d[i-1][j-1]+cost,
			)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				d[i][j] = minInt(d[i][j], d[i-2][j-2]+1)
			}
		}
	}
	return d[len(ra)][len(rb)]
}

// IsFuzzyMatch reports whether candidate is a near miss for target.
// Comparison is case-insensitive and the tolerated distance grows with
// the target's length, capped so short targets stay strict.
func IsFuzzyMatch(candidate, target string) bool {
	if target == "" {
		return false
	}
	threshold := 1 + len(target)/4
	if threshold > 5 {
		threshold = 5
	}
	return Distance(strings.ToLower(candidate), strings.ToLower(target)) <= threshold
}

// Abbreviation returns the lower-cased skeleton of upper-case letters
// and digits in name: "Get-ChildItem" becomes "gci". Names without
// any upper-case letters or digits abbreviate to "".
func Abbreviation(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsUpper(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchesAbbreviation reports whether token spells out the
// abbreviation of name, ignoring case.
func MatchesAbbreviation(name, token string) bool {
	abbr := Abbreviation(name)
	return abbr != "" && strings.EqualFold(abbr, token)
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
