// Package suggest finds the closest known name to a misspelled one.
package suggest

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// MaxDistance is the largest edit distance for which a name is suggested.
const MaxDistance = 2

// Closest returns the candidate nearest to name or "" if none is within
// MaxDistance edits.  Ties go to the alphabetically smaller candidate.
func Closest(name string, candidates []string) string {
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)
	best, bestDist := "", MaxDistance+1
	for _, c := range sorted {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Hint returns a parenthetical " (did you mean ...?)" for name, or "" when
// there is nothing close.
func Hint(name string, candidates []string) string {
	if c := Closest(name, candidates); c != "" {
		return fmt.Sprintf(" (did you mean %q?)", c)
	}
	return ""
}
