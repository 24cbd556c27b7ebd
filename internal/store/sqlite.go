package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS sic_updates (
	company_id   TEXT PRIMARY KEY,
	old_code     TEXT,
	new_code     TEXT NOT NULL,
	old_accuracy REAL NOT NULL DEFAULT 0,
	new_accuracy REAL NOT NULL,
	confidence   REAL NOT NULL DEFAULT 0,
	updated_at   DATETIME NOT NULL,
	actor        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS score_runs (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	total       INTEGER NOT NULL,
	scored      INTEGER NOT NULL DEFAULT 0,
	status      TEXT NOT NULL DEFAULT 'running',
	started_at  DATETIME NOT NULL,
	finished_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_sic_updates_actor ON sic_updates(actor);
CREATE INDEX IF NOT EXISTS idx_score_runs_started_at ON score_runs(started_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UpsertUpdate writes the record in one statement. SQLite applies the whole
// upsert atomically, so the previous record stays intact if the write fails.
func (s *SQLiteStore) UpsertUpdate(ctx context.Context, rec model.UpdateRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sic_updates
			(company_id, old_code, new_code, old_accuracy, new_accuracy, confidence, updated_at, actor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(company_id) DO UPDATE SET
			old_code     = excluded.old_code,
			new_code     = excluded.new_code,
			old_accuracy = excluded.old_accuracy,
			new_accuracy = excluded.new_accuracy,
			confidence   = excluded.confidence,
			updated_at   = excluded.updated_at,
			actor        = excluded.actor`,
		rec.CompanyID, rec.OldCode, rec.NewCode, rec.OldAccuracy,
		rec.NewAccuracy, rec.Confidence, rec.UpdatedAt.UTC(), rec.Actor,
	)
	return eris.Wrapf(err, "sqlite: upsert update %s", rec.CompanyID)
}

func (s *SQLiteStore) GetUpdate(ctx context.Context, companyID string) (*model.UpdateRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT company_id, old_code, new_code, old_accuracy, new_accuracy, confidence, updated_at, actor
		FROM sic_updates WHERE company_id = ?`,
		companyID,
	)

	var rec model.UpdateRecord
	var oldCode sql.NullString
	err := row.Scan(&rec.CompanyID, &oldCode, &rec.NewCode, &rec.OldAccuracy,
		&rec.NewAccuracy, &rec.Confidence, &rec.UpdatedAt, &rec.Actor)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get update %s", companyID)
	}
	rec.OldCode = oldCode.String
	return &rec, nil
}

func (s *SQLiteStore) ListUpdates(ctx context.Context, filter UpdateFilter) ([]model.UpdateRecord, error) {
	query := `
		SELECT company_id, old_code, new_code, old_accuracy, new_accuracy, confidence, updated_at, actor
		FROM sic_updates WHERE 1=1`
	var args []any

	if filter.Actor != "" {
		query += ` AND actor = ?`
		args = append(args, filter.Actor)
	}
	query += ` ORDER BY updated_at DESC, company_id`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list updates")
	}
	defer rows.Close()

	var records []model.UpdateRecord
	for rows.Next() {
		var rec model.UpdateRecord
		var oldCode sql.NullString
		if err := rows.Scan(&rec.CompanyID, &oldCode, &rec.NewCode, &rec.OldAccuracy,
			&rec.NewAccuracy, &rec.Confidence, &rec.UpdatedAt, &rec.Actor); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan update")
		}
		rec.OldCode = oldCode.String
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list updates iterate")
}

func (s *SQLiteStore) CreateScoreRun(ctx context.Context, source string, total int) (*model.ScoreRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO score_runs (id, source, total, scored, status, started_at)
		VALUES (?, ?, ?, 0, ?, ?)`,
		id, source, total, string(model.ScoreRunRunning), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert score run")
	}

	return &model.ScoreRun{
		ID:        id,
		Source:    source,
		Total:     total,
		Status:    model.ScoreRunRunning,
		StartedAt: now,
	}, nil
}

func (s *SQLiteStore) CompleteScoreRun(ctx context.Context, runID string, scored int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE score_runs SET scored = ?, status = ?, finished_at = ? WHERE id = ?`,
		scored, string(model.ScoreRunComplete), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete score run %s", runID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "score run %s", runID)
	}
	return nil
}

func (s *SQLiteStore) ListScoreRuns(ctx context.Context, limit int) ([]model.ScoreRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, total, scored, status, started_at, finished_at
		FROM score_runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list score runs")
	}
	defer rows.Close()

	var runs []model.ScoreRun
	for rows.Next() {
		var r model.ScoreRun
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.Source, &r.Total, &r.Scored, &r.Status, &r.StartedAt, &finished); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan score run")
		}
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list score runs iterate")
}
