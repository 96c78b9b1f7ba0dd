// Package ranking turns category affinity scores into an ordered list of
// career recommendations.
package ranking

import (
	"context"
	"sort"

	"vocational-workers/internal/catalog"
)

const (
	// topCategories is how many of the highest-scoring categories expand
	// into career candidates. Fixed, not configurable per call.
	topCategories = 3

	// careersPerCategory caps the candidates taken from each category.
	careersPerCategory = 2

	// DefaultTopN is the default recommendation count.
	DefaultTopN = 5
)

// Recommendation is one ranked career suggestion for an attempt.
type Recommendation struct {
	Career        string  `json:"career"`
	Description   string  `json:"description"`
	Score         float64 `json:"score"`
	Tier          string  `json:"tier"`
	Category      string  `json:"category"`
	GeneratedByAI bool    `json:"generatedByAi"`
}

// Describer produces a personalized description for a candidate. The second
// return value reports whether generated text was produced; false means the
// caller keeps the baseline description.
type Describer interface {
	Describe(ctx context.Context, career, category string, score float64) (string, bool)
}

// TierFor maps a percentage score to its affinity tier. Thresholds are
// checked descending; the first match wins.
func TierFor(score float64) string {
	switch {
	case score >= 80:
		return "Very High"
	case score >= 65:
		return "High"
	case score >= 50:
		return "Medium-High"
	case score >= 35:
		return "Medium"
	default:
		return "Medium-Low"
	}
}

// Rank selects the top categories, expands them into career candidates and
// returns at most topN recommendations ordered by score descending. Ties
// keep catalog order. An empty score map yields an empty list.
//
// When useAI is true and describer is non-nil, each candidate's description
// is enriched through the describer; a declined enrichment keeps the
// baseline description.
func Rank(
	ctx context.Context,
	scores map[string]float64,
	cat *catalog.Catalog,
	topN int,
	useAI bool,
	describer Describer,
) []Recommendation {
	if topN <= 0 {
		topN = DefaultTopN
	}

	ordered := orderedCategories(scores, cat)
	if len(ordered) > topCategories {
		ordered = ordered[:topCategories]
	}

	var recommendations []Recommendation
	for _, category := range ordered {
		score := scores[category]
		careers := cat.CareersFor(category)
		if len(careers) > careersPerCategory {
			careers = careers[:careersPerCategory]
		}

		for _, career := range careers {
			description := career.BaseDescription
			generated := false

			if useAI && describer != nil {
				if text, ok := describer.Describe(ctx, career.Name, category, score); ok {
					description = text
					generated = description != career.BaseDescription
				}
			}

			recommendations = append(recommendations, Recommendation{
				Career:        career.Name,
				Description:   description,
				Score:         score,
				Tier:          TierFor(score),
				Category:      category,
				GeneratedByAI: generated,
			})
		}
	}

	// Candidates within a category share the category score, so a stable
	// sort preserves catalog order across ties.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if len(recommendations) > topN {
		recommendations = recommendations[:topN]
	}

	return recommendations
}

// orderedCategories sorts scored categories by percentage descending with
// catalog order as the tie-break.
func orderedCategories(scores map[string]float64, cat *catalog.Catalog) []string {
	position := make(map[string]int, len(cat.Categories))
	for i, category := range cat.Categories {
		position[category] = i
	}

	ordered := make([]string, 0, len(scores))
	for _, category := range cat.Categories {
		if _, ok := scores[category]; ok {
			ordered = append(ordered, category)
		}
	}
	// Scored categories missing from the catalog list cannot expand into
	// careers, so they are ignored entirely.

	sort.SliceStable(ordered, func(i, j int) bool {
		si, sj := scores[ordered[i]], scores[ordered[j]]
		if si != sj {
			return si > sj
		}
		return position[ordered[i]] < position[ordered[j]]
	})

	return ordered
}
