package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vocational-workers/internal/engine/ranking"
)

// RecommendationRepository writes the computed recommendation set for an
// attempt.
type RecommendationRepository struct {
	db *sql.DB
}

func NewRecommendationRepository(db *sql.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Replace deletes all existing recommendation rows for the attempt and
// inserts the new set within one transaction. A failure partway rolls back,
// leaving the prior rows intact; concurrent runs for the same attempt are
// serialized by the transaction boundary.
func (r *RecommendationRepository) Replace(ctx context.Context, attemptID int64, recs []ranking.Recommendation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM recommendations WHERE attempt_id = $1`, attemptID); err != nil {
		return fmt.Errorf("delete prior recommendations for attempt %d: %w", attemptID, err)
	}

	createdAt := time.Now().UTC()
	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recommendations (
				id, attempt_id, career, description, score,
				tier, category, generated_by_ai, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.New().String(),
			attemptID,
			rec.Career,
			rec.Description,
			rec.Score,
			rec.Tier,
			rec.Category,
			rec.GeneratedByAI,
			createdAt,
		); err != nil {
			return fmt.Errorf("insert recommendation %q for attempt %d: %w", rec.Career, attemptID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace transaction: %w", err)
	}

	return nil
}

// CountByAttempt reports how many recommendation rows exist for an attempt.
func (r *RecommendationRepository) CountByAttempt(ctx context.Context, attemptID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM recommendations WHERE attempt_id = $1`, attemptID).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("count recommendations for attempt %d: %w", attemptID, err)
	}
	return count, nil
}
