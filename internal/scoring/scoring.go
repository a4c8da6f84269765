// Package scoring grades an actual answer against an expected answer with
// task-specific partial credit. Scoring is pure string math: deterministic,
// no I/O, always in [0,1].
package scoring

import (
	"regexp"
	"strings"

	"github.com/DucHai972/Questionnaire/internal/task"
)

var (
	idPattern   = regexp.MustCompile(`R\d+`)
	wordPattern = regexp.MustCompile(`\w+`)
)

// Score computes a graded similarity between expected and actual for the
// given task kind.
//
// Contract: 0 when either side is empty; 1 on case-insensitive equality;
// otherwise the kind-specific rule, falling back to substring containment
// (0.7) and then shared-word overlap. Empty denominators short-circuit to 0
// before any division.
func Score(kind task.Kind, expected, actual string) float64 {
	if expected == "" || actual == "" {
		return 0
	}

	expectedLower := strings.ToLower(expected)
	actualLower := strings.ToLower(actual)
	if expectedLower == actualLower {
		return 1
	}

	switch kind {
	case task.KindBoundaryDetection:
		// Identifier overlap, order-insensitive. Falls through when
		// either side carries no identifier-shaped token.
		expectedIDs := tokenSet(idPattern.FindAllString(expected, -1))
		actualIDs := tokenSet(idPattern.FindAllString(actual, -1))
		if len(expectedIDs) > 0 && len(actualIDs) > 0 {
			return float64(intersection(expectedIDs, actualIDs)) / float64(len(expectedIDs))
		}

	case task.KindReverseLookup, task.KindAnswerLookup, task.KindSemanticRetrieval:
		expectedTerms := tokenSet(wordPattern.FindAllString(expectedLower, -1))
		if len(expectedTerms) > 0 {
			actualTerms := tokenSet(wordPattern.FindAllString(actualLower, -1))
			score := float64(intersection(expectedTerms, actualTerms)) / float64(len(expectedTerms))
			if score > 1 {
				score = 1
			}
			return score
		}
	}

	if strings.Contains(actualLower, expectedLower) || strings.Contains(expectedLower, actualLower) {
		return 0.7
	}

	expectedWords := tokenSet(strings.Fields(expectedLower))
	if len(expectedWords) == 0 {
		return 0
	}
	actualWords := tokenSet(strings.Fields(actualLower))
	return float64(intersection(expectedWords, actualWords)) / float64(len(expectedWords))
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func intersection(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}
