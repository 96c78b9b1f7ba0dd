// Package describe produces personalized career descriptions through an
// external text-generation service, falling back to baseline descriptions
// whenever generation is unavailable.
package describe

import (
	"context"
	"fmt"

	"vocational-workers/internal/common/logger"
	"vocational-workers/internal/common/metrics"
	"vocational-workers/internal/genai"
)

// Generator enriches recommendations with generated text. A nil inner
// TextGenerator (missing credentials) declines every request, which callers
// must treat as "use the baseline description".
type Generator struct {
	gen    genai.TextGenerator
	logger logger.Logger
}

func NewGenerator(gen genai.TextGenerator, log logger.Logger) *Generator {
	return &Generator{
		gen:    gen,
		logger: log.WithFields(map[string]interface{}{"component": "describe"}),
	}
}

// Describe requests a short personalized description for a career. It never
// returns an error: any failure of the external call is logged and reported
// as a declined enrichment so the pipeline continues with the baseline text.
func (g *Generator) Describe(ctx context.Context, career, category string, score float64) (string, bool) {
	if g == nil || g.gen == nil {
		return "", false
	}

	prompt := buildPrompt(career, category, score)

	text, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		g.logger.Warn("text generation failed, using baseline description", map[string]interface{}{
			"career": career,
			"error":  err.Error(),
		})
		metrics.EnrichmentOutcomes.WithLabelValues("fallback").Inc()
		return "", false
	}

	text = SanitizeText(text)
	if text == "" {
		metrics.EnrichmentOutcomes.WithLabelValues("fallback").Inc()
		return "", false
	}

	g.logger.Info("description generated", map[string]interface{}{
		"career": career,
	})
	metrics.EnrichmentOutcomes.WithLabelValues("generated").Inc()
	return text, true
}

// interestLabel maps a score to the qualitative label embedded in the
// prompt. This ladder is coarser than the recommendation tier ladder (no
// step below "medium") and the two are intentionally kept separate.
func interestLabel(score float64) string {
	switch {
	case score >= 80:
		return "very high"
	case score >= 65:
		return "high"
	case score >= 50:
		return "medium-high"
	default:
		return "medium"
	}
}

func buildPrompt(career, category string, score float64) string {
	return fmt.Sprintf(`You are an expert vocational counselor. A student completed a vocational test and scored %.1f%% affinity with %s.

Their profile shows a %s level of interest in %s.

Write a motivating, personalized description of 2-3 sentences that:
1. Explains why this career fits their profile
2. Highlights specific opportunities
3. Is inspiring but realistic

Reply ONLY with the description, no introduction.`, score, career, interestLabel(score), category)
}
