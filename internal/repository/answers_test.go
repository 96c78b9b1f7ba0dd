package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAnswerRepository_ListByAttempt(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "attempt_id", "selected_option_id"}).
		AddRow(1, 42, 101).
		AddRow(2, 42, 105).
		AddRow(3, 42, 109)

	mock.ExpectQuery("SELECT id, attempt_id, selected_option_id").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	repo := NewAnswerRepository(db)
	answers, err := repo.ListByAttempt(context.Background(), 42)

	assert.NoError(t, err)
	assert.Len(t, answers, 3)
	assert.Equal(t, Answer{ID: 1, AttemptID: 42, SelectedOptionID: 101}, answers[0])
	assert.Equal(t, Answer{ID: 3, AttemptID: 42, SelectedOptionID: 109}, answers[2])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerRepository_ListByAttempt_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, attempt_id, selected_option_id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "attempt_id", "selected_option_id"}))

	repo := NewAnswerRepository(db)
	answers, err := repo.ListByAttempt(context.Background(), 42)

	assert.NoError(t, err)
	assert.Empty(t, answers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerRepository_ListByAttempt_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, attempt_id, selected_option_id").
		WithArgs(int64(42)).
		WillReturnError(assert.AnError)

	repo := NewAnswerRepository(db)
	answers, err := repo.ListByAttempt(context.Background(), 42)

	assert.Error(t, err)
	assert.Nil(t, answers)
}
