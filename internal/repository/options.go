package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OptionRepository resolves option ids to their Likert value and owning
// question. Option rows are immutable catalog data, so a cache-aside redis
// layer fronts the database.
type OptionRepository struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
}

func NewOptionRepository(db *sql.DB, rdb *redis.Client, cacheTTL time.Duration) *OptionRepository {
	return &OptionRepository{db: db, redis: rdb, cacheTTL: cacheTTL}
}

// Get resolves one option. The second return value is false when the option
// does not exist in the catalog; that is a skip condition for scoring, not
// an error.
func (r *OptionRepository) Get(ctx context.Context, optionID int64) (Option, bool, error) {
	cacheKey := fmt.Sprintf("option:%d", optionID)

	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var opt Option
			if err := json.Unmarshal([]byte(val), &opt); err == nil {
				return opt, true, nil
			}
		}
	}

	var opt Option
	err := r.db.QueryRowContext(ctx, `
		SELECT id, question_id, likert_value
		FROM options
		WHERE id = $1`, optionID).Scan(&opt.ID, &opt.QuestionID, &opt.LikertValue)
	if errors.Is(err, sql.ErrNoRows) {
		return Option{}, false, nil
	}
	if err != nil {
		return Option{}, false, fmt.Errorf("query option %d: %w", optionID, err)
	}

	if r.redis != nil {
		if data, err := json.Marshal(opt); err == nil {
			r.redis.Set(ctx, cacheKey, data, r.cacheTTL)
		}
	}

	return opt, true, nil
}
