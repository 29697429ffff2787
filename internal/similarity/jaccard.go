// Package similarity scores textual overlap between two documents.
package similarity

import "github.com/jobfolio/profile-intake/internal/textnorm"

// Jaccard computes token-set similarity between two texts in [0,1]:
// intersection size over union size of their comparison token sets. It is
// deterministic and symmetric; if either token set is empty the score is 0.
func Jaccard(left, right string) float64 {
	leftSet := tokenSet(left)
	rightSet := tokenSet(right)

	if len(leftSet) == 0 || len(rightSet) == 0 {
		return 0
	}

	intersection := 0
	for token := range leftSet {
		if _, ok := rightSet[token]; ok {
			intersection++
		}
	}

	union := len(leftSet) + len(rightSet) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	tokens := textnorm.TokenizeForComparison(text)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
