package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// AnswerRepository reads answer rows for an attempt.
type AnswerRepository struct {
	db *sql.DB
}

func NewAnswerRepository(db *sql.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// ListByAttempt returns the attempt's answers in insertion order. The order
// defines each answer's 1-based position for category mapping.
func (r *AnswerRepository) ListByAttempt(ctx context.Context, attemptID int64) ([]Answer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, attempt_id, selected_option_id
		FROM answers
		WHERE attempt_id = $1
		ORDER BY id`, attemptID)
	if err != nil {
		return nil, fmt.Errorf("query answers for attempt %d: %w", attemptID, err)
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.ID, &a.AttemptID, &a.SelectedOptionID); err != nil {
			return nil, fmt.Errorf("scan answer row: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer rows: %w", err)
	}

	return answers, nil
}
