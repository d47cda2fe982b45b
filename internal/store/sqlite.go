package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/geoborder/borderlens/internal/model"
)

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = eris.New("store: not found")

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
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	status      TEXT NOT NULL DEFAULT 'running',
	pair_count  INTEGER NOT NULL DEFAULT 0,
	row_count   INTEGER NOT NULL DEFAULT 0,
	started_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	finished_at DATETIME
);

CREATE TABLE IF NOT EXISTS integrated_rows (
	id               TEXT PRIMARY KEY,
	run_id           TEXT NOT NULL REFERENCES runs(id),
	border_pair      TEXT NOT NULL,
	country_1        TEXT NOT NULL,
	country_2        TEXT NOT NULL,
	border_length_km REAL NOT NULL,
	ratios           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_integrated_rows_run_id ON integrated_rows(run_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, pairCount int) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, status, pair_count, started_at) VALUES (?, ?, ?, ?)`,
		id, string(model.RunStatusRunning), pairCount, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.Run{
		ID:        id,
		Status:    model.RunStatusRunning,
		PairCount: pairCount,
		StartedAt: now,
	}, nil
}

func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, status model.RunStatus, rowCount int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, row_count = ?, finished_at = ? WHERE id = ?`,
		string(status), rowCount, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", runID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "run %s", runID)
	}
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, pair_count, row_count, started_at, finished_at FROM runs WHERE id = ?`,
		runID,
	)
	return scanRun(row)
}

func (s *SQLiteStore) LatestRun(ctx context.Context) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, pair_count, row_count, started_at, finished_at
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`,
	)
	return scanRun(row)
}

func scanRun(row *sql.Row) (*model.Run, error) {
	var r model.Run
	var status string
	var finished sql.NullTime
	err := row.Scan(&r.ID, &status, &r.PairCount, &r.RowCount, &r.StartedAt, &finished)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}
	r.Status = model.RunStatus(status)
	if finished.Valid {
		t := finished.Time
		r.FinishedAt = &t
	}
	return &r, nil
}

func (s *SQLiteStore) InsertRows(ctx context.Context, runID string, rows []model.IntegratedRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO integrated_rows (id, run_id, border_pair, country_1, country_2, border_length_km, ratios)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	for _, row := range rows {
		ratios, err := json.Marshal(row.Ratios)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal ratios")
		}
		if _, err := stmt.ExecContext(ctx,
			uuid.New().String(), runID, row.BorderPair,
			row.Country1, row.Country2, row.BorderLengthKM, string(ratios),
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert row %s", row.BorderPair)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit rows")
}

func (s *SQLiteStore) RowsForRun(ctx context.Context, runID string) ([]model.IntegratedRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT border_pair, country_1, country_2, border_length_km, ratios
		 FROM integrated_rows WHERE run_id = ? ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query rows for run %s", runID)
	}
	defer rows.Close() //nolint:errcheck

	var out []model.IntegratedRow
	for rows.Next() {
		var row model.IntegratedRow
		var ratios string
		if err := rows.Scan(&row.BorderPair, &row.Country1, &row.Country2, &row.BorderLengthKM, &ratios); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan integrated row")
		}
		if err := json.Unmarshal([]byte(ratios), &row.Ratios); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal ratios")
		}
		out = append(out, row)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate rows")
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
