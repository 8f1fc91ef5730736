// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records conversion runs in a local SQLite database so
// past conversions can be listed from the CLI.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pagepress/pkg/types"
)

const (
	appDir = "pagepress"
	dbFile = "history.db"

	defaultLimit = 20

	// startedAtLayout is fixed width so text order in SQLite matches time
	// order. RFC3339Nano trims trailing zeros and does not sort.
	startedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// DefaultPath returns <user config dir>/pagepress/history.db, or a path
// under the working directory when no config dir is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("."+appDir, dbFile)
	}
	return filepath.Join(dir, appDir, dbFile)
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at cfg.Path (DefaultPath
// when empty) and ensures the schema exists.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			inputs TEXT NOT NULL,
			output TEXT NOT NULL,
			pages INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			error_kind TEXT,
			error TEXT,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores run and returns it with its assigned ID.
func (s *Store) Record(ctx context.Context, run types.Run) (types.Run, error) {
	inputs, err := json.Marshal(run.Inputs)
	if err != nil {
		return run, fmt.Errorf("encoding inputs: %w", err)
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (kind, inputs, output, pages, status, error_kind, error, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(run.Kind), string(inputs), run.Output, run.Pages, string(run.Status),
		run.ErrorKind, run.Error,
		run.StartedAt.UTC().Format(startedAtLayout), run.Duration.Milliseconds(),
	)
	if err != nil {
		return run, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return run, fmt.Errorf("reading run id: %w", err)
	}
	run.ID = id
	return run, nil
}

// ListOptions filters List.
type ListOptions struct {
	// Kind restricts results to one conversion kind; empty means all.
	Kind types.RunKind

	// Limit caps the number of rows (default 20).
	Limit int
}

// List returns recorded runs, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Run, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	query := `SELECT id, kind, inputs, output, pages, status, error_kind, error, started_at, duration_ms FROM runs`
	var args []any
	if opts.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(opts.Kind))
	}
	query += ` ORDER BY started_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var (
			r                    types.Run
			kind, status, inputs string
			errKind, errMsg      sql.NullString
			startedAt            string
			durationMS           int64
		)
		if err := rows.Scan(&r.ID, &kind, &inputs, &r.Output, &r.Pages, &status,
			&errKind, &errMsg, &startedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Kind = types.RunKind(kind)
		r.Status = types.RunStatus(status)
		r.ErrorKind = errKind.String
		r.Error = errMsg.String
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if err := json.Unmarshal([]byte(inputs), &r.Inputs); err != nil {
			return nil, fmt.Errorf("decoding inputs of run %d: %w", r.ID, err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("decoding start time of run %d: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
