package processrecommendations

import "vocational-workers/internal/engine"

type Input struct {
	AttemptID int64 `json:"attemptId"`
	UseAI     *bool `json:"useAi,omitempty"`
}

type Output struct {
	Success          bool                    `json:"success"`
	Error            string                  `json:"error,omitempty"`
	Recommendations  []engine.Recommendation `json:"recommendations,omitempty"`
	ScoresByCategory map[string]float64      `json:"scoresByCategory,omitempty"`
	TotalAnswers     int                     `json:"totalAnswers"`
	GeneratedWithAI  int                     `json:"generatedWithAi"`
}
