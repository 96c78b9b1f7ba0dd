// Package scoring aggregates Likert answer values into category affinity
// percentages.
package scoring

import (
	"math"

	"vocational-workers/internal/catalog"
)

// AnswerValue is one answer as resolved against the option catalog, in the
// order the answer store returned it.
type AnswerValue struct {
	LikertValue int
	// Resolved is false when the selected option was missing from the
	// catalog; such answers contribute nothing.
	Resolved bool
}

// Aggregate sums Likert values per category and normalizes each sum to a
// 0-100 percentage rounded to 2 decimals.
//
// Answers are processed 1-indexed in input order; the catalog's position map
// decides which category each position feeds. Unresolved answers and
// positions outside the mapped range are skipped. Categories that received
// no contribution are absent from the result.
func Aggregate(answers []AnswerValue, cat *catalog.Catalog) map[string]float64 {
	raw := make(map[string]float64)

	for i, answer := range answers {
		if !answer.Resolved {
			continue
		}

		category := cat.CategoryAt(i + 1)
		if category == "" {
			continue
		}

		raw[category] += float64(answer.LikertValue)
	}

	maxScore := cat.MaxScore()
	scores := make(map[string]float64, len(raw))
	for category, sum := range raw {
		scores[category] = round2(sum / maxScore * 100)
	}

	return scores
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
