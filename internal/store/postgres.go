package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/db"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
)

// PostgresStore implements Store using a pgx pool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore over an established pool.
func NewPostgres(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS sic_updates (
	company_id   TEXT PRIMARY KEY,
	old_code     TEXT,
	new_code     TEXT NOT NULL,
	old_accuracy DOUBLE PRECISION NOT NULL DEFAULT 0,
	new_accuracy DOUBLE PRECISION NOT NULL,
	confidence   DOUBLE PRECISION NOT NULL DEFAULT 0,
	updated_at   TIMESTAMPTZ NOT NULL,
	actor        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS score_runs (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	total       INTEGER NOT NULL,
	scored      INTEGER NOT NULL DEFAULT 0,
	status      TEXT NOT NULL DEFAULT 'running',
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_sic_updates_actor ON sic_updates(actor);
CREATE INDEX IF NOT EXISTS idx_score_runs_started_at ON score_runs(started_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// UpsertUpdate relies on INSERT ... ON CONFLICT for atomic last-write-wins;
// same-key writers serialize on the row, distinct keys proceed concurrently.
func (s *PostgresStore) UpsertUpdate(ctx context.Context, rec model.UpdateRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sic_updates
			(company_id, old_code, new_code, old_accuracy, new_accuracy, confidence, updated_at, actor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id) DO UPDATE SET
			old_code     = EXCLUDED.old_code,
			new_code     = EXCLUDED.new_code,
			old_accuracy = EXCLUDED.old_accuracy,
			new_accuracy = EXCLUDED.new_accuracy,
			confidence   = EXCLUDED.confidence,
			updated_at   = EXCLUDED.updated_at,
			actor        = EXCLUDED.actor`,
		rec.CompanyID, nullable(rec.OldCode), rec.NewCode, rec.OldAccuracy,
		rec.NewAccuracy, rec.Confidence, rec.UpdatedAt.UTC(), rec.Actor,
	)
	return eris.Wrapf(err, "postgres: upsert update %s", rec.CompanyID)
}

func (s *PostgresStore) GetUpdate(ctx context.Context, companyID string) (*model.UpdateRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT company_id, COALESCE(old_code, ''), new_code, old_accuracy, new_accuracy, confidence, updated_at, actor
		FROM sic_updates WHERE company_id = $1`,
		companyID,
	)

	var rec model.UpdateRecord
	err := row.Scan(&rec.CompanyID, &rec.OldCode, &rec.NewCode, &rec.OldAccuracy,
		&rec.NewAccuracy, &rec.Confidence, &rec.UpdatedAt, &rec.Actor)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get update %s", companyID)
	}
	return &rec, nil
}

func (s *PostgresStore) ListUpdates(ctx context.Context, filter UpdateFilter) ([]model.UpdateRecord, error) {
	query := `
		SELECT company_id, COALESCE(old_code, ''), new_code, old_accuracy, new_accuracy, confidence, updated_at, actor
		FROM sic_updates`
	var args []any

	if filter.Actor != "" {
		query += ` WHERE actor = $1`
		args = append(args, filter.Actor)
	}
	query += ` ORDER BY updated_at DESC, company_id`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list updates")
	}
	defer rows.Close()

	var records []model.UpdateRecord
	for rows.Next() {
		var rec model.UpdateRecord
		if err := rows.Scan(&rec.CompanyID, &rec.OldCode, &rec.NewCode, &rec.OldAccuracy,
			&rec.NewAccuracy, &rec.Confidence, &rec.UpdatedAt, &rec.Actor); err != nil {
			return nil, eris.Wrap(err, "postgres: scan update")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list updates iterate")
}

func (s *PostgresStore) CreateScoreRun(ctx context.Context, source string, total int) (*model.ScoreRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO score_runs (id, source, total, scored, status, started_at)
		VALUES ($1, $2, $3, 0, $4, $5)`,
		id, source, total, string(model.ScoreRunRunning), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert score run")
	}

	return &model.ScoreRun{
		ID:        id,
		Source:    source,
		Total:     total,
		Status:    model.ScoreRunRunning,
		StartedAt: now,
	}, nil
}

func (s *PostgresStore) CompleteScoreRun(ctx context.Context, runID string, scored int) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE score_runs SET scored = $1, status = $2, finished_at = $3 WHERE id = $4`,
		scored, string(model.ScoreRunComplete), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete score run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "score run %s", runID)
	}
	return nil
}

func (s *PostgresStore) ListScoreRuns(ctx context.Context, limit int) ([]model.ScoreRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, source, total, scored, status, started_at, finished_at
		FROM score_runs ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list score runs")
	}
	defer rows.Close()

	var runs []model.ScoreRun
	for rows.Next() {
		var r model.ScoreRun
		if err := rows.Scan(&r.ID, &r.Source, &r.Total, &r.Scored, &r.Status, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan score run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list score runs iterate")
}

// helpers

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
