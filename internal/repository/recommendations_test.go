package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"vocational-workers/internal/engine/ranking"
)

func testRecommendations() []ranking.Recommendation {
	return []ranking.Recommendation{
		{
			Career:        "Medicine",
			Description:   "Diagnosis, treatment and prevention of disease",
			Score:         90.0,
			Tier:          "Very High",
			Category:      "Health",
			GeneratedByAI: true,
		},
		{
			Career:        "Nursing",
			Description:   "Comprehensive patient care",
			Score:         90.0,
			Tier:          "Very High",
			Category:      "Health",
			GeneratedByAI: false,
		},
	}
}

func TestRecommendationRepository_Replace(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	recs := testRecommendations()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM recommendations").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 5))
	for _, rec := range recs {
		mock.ExpectExec("INSERT INTO recommendations").
			WithArgs(sqlmock.AnyArg(), int64(42), rec.Career, rec.Description,
				rec.Score, rec.Tier, rec.Category, rec.GeneratedByAI, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	repo := NewRecommendationRepository(db)
	err = repo.Replace(context.Background(), 42, recs)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendationRepository_Replace_Repeatable(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	recs := testRecommendations()

	// Running the replace twice leaves exactly one copy of the set: each run
	// deletes whatever the previous one inserted.
	for run := 0; run < 2; run++ {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM recommendations").
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, int64(len(recs)*run)))
		for range recs {
			mock.ExpectExec("INSERT INTO recommendations").
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()
	}

	repo := NewRecommendationRepository(db)
	assert.NoError(t, repo.Replace(context.Background(), 42, recs))
	assert.NoError(t, repo.Replace(context.Background(), 42, recs))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendationRepository_Replace_EmptySetClearsRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM recommendations").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	repo := NewRecommendationRepository(db)
	err = repo.Replace(context.Background(), 42, nil)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendationRepository_Replace_InsertFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM recommendations").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO recommendations").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	repo := NewRecommendationRepository(db)
	err = repo.Replace(context.Background(), 42, testRecommendations())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendationRepository_Replace_DeleteFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM recommendations").
		WithArgs(int64(42)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	repo := NewRecommendationRepository(db)
	err = repo.Replace(context.Background(), 42, testRecommendations())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendationRepository_CountByAttempt(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	repo := NewRecommendationRepository(db)
	count, err := repo.CountByAttempt(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, 5, count)
}
