// Package engine runs the recommendation pipeline for one questionnaire
// attempt: load answers, compute category scores, rank and describe career
// candidates, and atomically replace the stored recommendation set.
package engine

import (
	"context"

	"vocational-workers/internal/catalog"
	"vocational-workers/internal/common/logger"
	"vocational-workers/internal/common/metrics"
	"vocational-workers/internal/engine/ranking"
	"vocational-workers/internal/engine/scoring"
	"vocational-workers/internal/repository"
)

// AnswerSource supplies the stored answers of an attempt in insertion order.
type AnswerSource interface {
	ListByAttempt(ctx context.Context, attemptID int64) ([]repository.Answer, error)
}

// OptionSource resolves option ids against the option catalog. The boolean
// is false on a catalog miss, which is a skip condition rather than an error.
type OptionSource interface {
	Get(ctx context.Context, optionID int64) (repository.Option, bool, error)
}

// RecommendationStore replaces the attempt's recommendation rows atomically.
type RecommendationStore interface {
	Replace(ctx context.Context, attemptID int64, recs []ranking.Recommendation) error
}

// Recommendation is re-exported so callers of the engine do not need to
// import the ranking package.
type Recommendation = ranking.Recommendation

// Result is the structured outcome of one pipeline run. Stage failures are
// reported here, never raised past the engine boundary.
type Result struct {
	Success          bool                     `json:"success"`
	Error            string                   `json:"error,omitempty"`
	Recommendations  []ranking.Recommendation `json:"recommendations,omitempty"`
	ScoresByCategory map[string]float64       `json:"scoresByCategory,omitempty"`
	TotalAnswers     int                      `json:"totalAnswers"`
	GeneratedWithAI  int                      `json:"generatedWithAi"`
}

// Pipeline failure reasons surfaced to callers.
const (
	ErrLoadAnswers       = "failed to load answers"
	ErrNoRecommendations = "no recommendations generated"
	ErrPersist           = "failed to save recommendations"
)

type Engine struct {
	answers AnswerSource
	options OptionSource
	store   RecommendationStore
	catalog *catalog.Catalog
	desc    ranking.Describer
	topN    int
	logger  logger.Logger
}

type Dependencies struct {
	Answers AnswerSource
	Options OptionSource
	Store   RecommendationStore
	Catalog *catalog.Catalog
	// Describer may be nil; every recommendation then keeps its baseline
	// description.
	Describer ranking.Describer
	TopN      int
	Logger    logger.Logger
}

func New(deps Dependencies) *Engine {
	cat := deps.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	topN := deps.TopN
	if topN <= 0 {
		topN = ranking.DefaultTopN
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Engine{
		answers: deps.Answers,
		options: deps.Options,
		store:   deps.Store,
		catalog: cat,
		desc:    deps.Describer,
		topN:    topN,
		logger:  log.WithFields(map[string]interface{}{"component": "engine"}),
	}
}

// Process runs the four pipeline stages for an attempt. Each stage is a
// precondition for the next; the first failure short-circuits into a
// structured failure result.
func (e *Engine) Process(ctx context.Context, attemptID int64, useAI bool) *Result {
	log := e.logger.WithFields(map[string]interface{}{"attemptId": attemptID})
	log.Info("processing recommendations", map[string]interface{}{"useAi": useAI})

	// LOAD_ANSWERS
	answers, err := e.answers.ListByAttempt(ctx, attemptID)
	if err != nil {
		log.WithError(err).Error("failed to load answers", nil)
		metrics.PipelineStageFailures.WithLabelValues("load").Inc()
		return &Result{Success: false, Error: ErrLoadAnswers}
	}

	// COMPUTE_SCORES
	values := e.resolveAnswers(ctx, answers, log)
	scores := scoring.Aggregate(values, e.catalog)
	if len(scores) == 0 {
		log.Warn("no category scores computed", map[string]interface{}{
			"totalAnswers": len(answers),
		})
		metrics.PipelineStageFailures.WithLabelValues("score").Inc()
		return &Result{Success: false, Error: ErrNoRecommendations, TotalAnswers: len(answers)}
	}
	log.Info("scores computed", map[string]interface{}{"scores": scores})

	// RANK_AND_DESCRIBE
	recommendations := ranking.Rank(ctx, scores, e.catalog, e.topN, useAI, e.desc)
	if len(recommendations) == 0 {
		metrics.PipelineStageFailures.WithLabelValues("rank").Inc()
		return &Result{Success: false, Error: ErrNoRecommendations, TotalAnswers: len(answers)}
	}

	// PERSIST
	if err := e.store.Replace(ctx, attemptID, recommendations); err != nil {
		log.WithError(err).Error("failed to replace recommendations", nil)
		metrics.PipelineStageFailures.WithLabelValues("persist").Inc()
		return &Result{Success: false, Error: ErrPersist, TotalAnswers: len(answers)}
	}
	metrics.RecommendationsWritten.Add(float64(len(recommendations)))

	aiCount := 0
	for _, rec := range recommendations {
		if rec.GeneratedByAI {
			aiCount++
		}
	}

	log.Info("recommendations saved", map[string]interface{}{
		"count":   len(recommendations),
		"aiCount": aiCount,
	})

	return &Result{
		Success:          true,
		Recommendations:  recommendations,
		ScoresByCategory: scores,
		TotalAnswers:     len(answers),
		GeneratedWithAI:  aiCount,
	}
}

// resolveAnswers looks up each answer's selected option. Catalog misses and
// lookup failures leave the answer unresolved so it contributes nothing.
func (e *Engine) resolveAnswers(ctx context.Context, answers []repository.Answer, log logger.Logger) []scoring.AnswerValue {
	values := make([]scoring.AnswerValue, len(answers))
	for i, answer := range answers {
		opt, ok, err := e.options.Get(ctx, answer.SelectedOptionID)
		if err != nil {
			log.WithError(err).Warn("option lookup failed, skipping answer", map[string]interface{}{
				"answerId": answer.ID,
				"optionId": answer.SelectedOptionID,
			})
			continue
		}
		if !ok {
			log.Debug("option not in catalog, skipping answer", map[string]interface{}{
				"answerId": answer.ID,
				"optionId": answer.SelectedOptionID,
			})
			continue
		}
		values[i] = scoring.AnswerValue{LikertValue: opt.LikertValue, Resolved: true}
	}
	return values
}
