package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgres(mock), mock
}

func TestPostgresStore_UpsertUpdate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`ON CONFLICT \(company_id\) DO UPDATE`).
		WithArgs("C-1", "47110", "56210", 42.5, 87.5, 0.875, pgxmock.AnyArg(), "analyst").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.UpsertUpdate(context.Background(), testRecord("C-1"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertUpdate_EmptyOldCodeIsNull(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	rec := testRecord("C-2")
	rec.OldCode = ""

	mock.ExpectExec(`INSERT INTO sic_updates`).
		WithArgs("C-2", nil, "56210", 42.5, 87.5, 0.875, pgxmock.AnyArg(), "analyst").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.UpsertUpdate(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetUpdate_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`(?s)SELECT company_id, .+ FROM sic_updates WHERE company_id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	got, err := s.GetUpdate(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetUpdate(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{
		"company_id", "old_code", "new_code", "old_accuracy", "new_accuracy", "confidence", "updated_at", "actor",
	}).AddRow("C-1", "47110", "56210", 42.5, 87.5, 0.875, now, "analyst")

	mock.ExpectQuery(`(?s)SELECT company_id, .+ FROM sic_updates WHERE company_id = \$1`).
		WithArgs("C-1").
		WillReturnRows(rows)

	got, err := s.GetUpdate(context.Background(), "C-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "56210", got.NewCode)
	assert.Equal(t, "analyst", got.Actor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListUpdates_ActorFilter(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{
		"company_id", "old_code", "new_code", "old_accuracy", "new_accuracy", "confidence", "updated_at", "actor",
	}).
		AddRow("C-1", "47110", "56210", 42.5, 87.5, 0.875, now, "alice").
		AddRow("C-2", "", "64191", 10.0, 91.0, 0.91, now, "alice")

	mock.ExpectQuery(`(?s)SELECT company_id, .+ FROM sic_updates WHERE actor = \$1`).
		WithArgs("alice", 100).
		WillReturnRows(rows)

	got, err := s.ListUpdates(context.Background(), UpdateFilter{Actor: "alice"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "C-2", got[1].CompanyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateAndCompleteScoreRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO score_runs`).
		WithArgs(pgxmock.AnyArg(), "companies.xlsx", 120, "running", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := s.CreateScoreRun(context.Background(), "companies.xlsx", 120)
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)

	mock.ExpectExec(`UPDATE score_runs SET scored = \$1`).
		WithArgs(118, "complete", pgxmock.AnyArg(), run.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.CompleteScoreRun(context.Background(), run.ID, 118))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CompleteScoreRun_Missing(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE score_runs SET scored = \$1`).
		WithArgs(5, "complete", pgxmock.AnyArg(), "no-such-run").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.CompleteScoreRun(context.Background(), "no-such-run", 5)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
