package database

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

func newMockSQLite(t *testing.T) (*SQLite, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.Nil(t, err)
	t.Cleanup(func() { db.Close() })
	return newSQLite(db, &Options{}), mock
}

func TestSQLiteUnavailable(t *testing.T) {
	s, mock := newMockSQLite(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO job_execution")).WillReturnError(fmt.Errorf("disk I/O error"))
	_, err := s.InsertExecution(ctx, newExecution("a", 0))
	assert.True(t, errors.Is(err, errors.ErrUnavailable))
	assert.True(t, errors.IsRetryable(err))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*)")).WillReturnError(fmt.Errorf("connection reset"))
	_, err = s.CountByStatus(ctx, &structs.Query{})
	assert.True(t, errors.Is(err, errors.ErrUnavailable))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, job_name")).WillReturnError(fmt.Errorf("database is locked"))
	_, err = s.Execution(ctx, 1)
	assert.True(t, errors.Is(err, errors.ErrUnavailable))
	assert.False(t, errors.Is(err, errors.ErrNotFound))

	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestSQLiteFinishExecutionArgs(t *testing.T) {
	s, mock := newMockSQLite(t)
	msg := "boom"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE job_execution SET status=?, end_time=?, error_message=?, attributes=? WHERE id=? AND status=?;")).
		WithArgs("Falha", toMicros(base), "boom", "{}", int64(7), "EmExecucao").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := s.FinishExecution(context.Background(), 7, structs.FAILURE, base, &msg, nil)

	assert.Nil(t, err)
	assert.Equal(t, int64(1), rows)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestSQLiteFinishDetailKeepsMessage(t *testing.T) {
	s, mock := newMockSQLite(t)

	mock.ExpectExec(regexp.QuoteMeta("step_message=COALESCE(?, step_message)")).
		WithArgs("Sucesso", toMicros(base), nil, int64(3), "EmExecucao").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := s.FinishDetail(context.Background(), 3, structs.SUCCESS, base, nil)

	assert.Nil(t, err)
	assert.Equal(t, int64(0), rows)
	assert.Nil(t, mock.ExpectationsWereMet())
}
