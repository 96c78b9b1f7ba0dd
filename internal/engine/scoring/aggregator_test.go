package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vocational-workers/internal/catalog"
)

func answersWithValue(count, likert int) []AnswerValue {
	answers := make([]AnswerValue, count)
	for i := range answers {
		answers[i] = AnswerValue{LikertValue: likert, Resolved: true}
	}
	return answers
}

func TestAggregate_FullAttemptMaxValues(t *testing.T) {
	cat := catalog.Default()

	scores := Aggregate(answersWithValue(20, 5), cat)

	assert.Len(t, scores, 5)
	for _, category := range cat.Categories {
		assert.Equal(t, 100.0, scores[category], "category %s", category)
	}
}

func TestAggregate_MixedValuesPerCategory(t *testing.T) {
	cat := catalog.Default()

	// First category: 5+4+3+2 = 14 of 20 -> 70%. Second: 1+1+1+1 = 4 -> 20%.
	answers := []AnswerValue{
		{LikertValue: 5, Resolved: true},
		{LikertValue: 4, Resolved: true},
		{LikertValue: 3, Resolved: true},
		{LikertValue: 2, Resolved: true},
		{LikertValue: 1, Resolved: true},
		{LikertValue: 1, Resolved: true},
		{LikertValue: 1, Resolved: true},
		{LikertValue: 1, Resolved: true},
	}

	scores := Aggregate(answers, cat)

	assert.Len(t, scores, 2)
	assert.Equal(t, 70.0, scores["Sciences & Technology"])
	assert.Equal(t, 20.0, scores["Social Sciences"])
}

func TestAggregate_UnresolvedAnswersContributeNothing(t *testing.T) {
	cat := catalog.Default()

	// Unresolved answers hold their position but add no points.
	answers := []AnswerValue{
		{LikertValue: 5, Resolved: true},
		{Resolved: false},
		{Resolved: false},
		{LikertValue: 5, Resolved: true},
	}

	scores := Aggregate(answers, cat)

	assert.Len(t, scores, 1)
	assert.Equal(t, 50.0, scores["Sciences & Technology"])
}

func TestAggregate_PositionsOutsideMappedRangeIgnored(t *testing.T) {
	cat := catalog.Default()

	answers := answersWithValue(25, 5)
	scores := Aggregate(answers, cat)

	// Positions 21-25 map to no category.
	assert.Len(t, scores, 5)
	for _, category := range cat.Categories {
		assert.Equal(t, 100.0, scores[category])
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	scores := Aggregate(nil, catalog.Default())
	assert.Empty(t, scores)
}

func TestAggregate_RoundsToTwoDecimals(t *testing.T) {
	cat := &catalog.Catalog{
		Categories:           []string{"Only"},
		PositionCategory:     map[int]string{1: "Only", 2: "Only", 3: "Only"},
		QuestionsPerCategory: 3,
		MaxLikert:            5,
	}

	// 10 of 15 -> 66.666... -> 66.67
	answers := []AnswerValue{
		{LikertValue: 5, Resolved: true},
		{LikertValue: 4, Resolved: true},
		{LikertValue: 1, Resolved: true},
	}

	scores := Aggregate(answers, cat)
	assert.Equal(t, 66.67, scores["Only"])
}

func TestAggregate_ScoreNeverExceedsBounds(t *testing.T) {
	cat := catalog.Default()

	for likert := 1; likert <= 5; likert++ {
		scores := Aggregate(answersWithValue(20, likert), cat)
		for category, score := range scores {
			assert.GreaterOrEqual(t, score, 0.0, "category %s", category)
			assert.LessOrEqual(t, score, 100.0, "category %s", category)
		}
	}
}
