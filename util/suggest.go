package util

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Closest returns the candidate with the smallest case-insensitive Levenshtein
// distance to name, if that distance is at most maxDist. Ties go to the
// earliest candidate.
func Closest(name string, candidates []string, maxDist int) (string, bool) {
	best, bestDist := "", maxDist+1
	lower := strings.ToLower(name)
	for _, c := range candidates {
		if d := matchr.Levenshtein(lower, strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist <= maxDist
}

// DidYouMean returns " (did you mean \"x\"?)" for the closest candidate within
// maxDist of name, or "" if there is none.
func DidYouMean(name string, candidates []string, maxDist int) string {
	if c, ok := Closest(name, candidates, maxDist); ok {
		return " (did you mean \"" + c + "\"?)"
	}
	return ""
}
