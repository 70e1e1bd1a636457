package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/tursodatabase/go-libsql"

	"github.com/raphi011/hookr/internal/trigger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Outcome values stored with each run.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeSignaled = "signaled"
)

// Error is returned for every operation the database rejects.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// Store persists hook records, repository bindings and run history.
type Store struct {
	db *sql.DB
}

// HookRecord is a hook's aggregate run statistics.
type HookRecord struct {
	Name           string `json:"name"`
	TotalRuns      int64  `json:"total_runs"`
	SuccessfulRuns int64  `json:"successful_runs"`
}

// FailedRuns returns the number of runs that did not succeed.
func (r HookRecord) FailedRuns() int64 {
	return r.TotalRuns - r.SuccessfulRuns
}

// Binding records that a hook is installed at a repository's trigger point.
type Binding struct {
	Name  string        `json:"name"`
	Repo  string        `json:"repo"`
	Point trigger.Point `json:"type"`
}

// Run is one execution of a hook command.
type Run struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Repo      string        `json:"repo"`
	Outcome   string        `json:"outcome"`
	ExitCode  *int          `json:"exit_code,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Succeeded reports whether the run counts as successful.
func (r Run) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// Open opens (creating if needed) the database at path and applies pending
// migrations. Pass MemoryPath for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := "file::memory:"
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, wrap("open", err)
		}
		dsn = "file:" + path
	}

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, wrap("open", err)
	}

	// A single long-lived connection keeps per-connection pragmas in effect
	// and lets an in-memory database survive between calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, wrap("enable foreign keys", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, wrap("migrate", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return wrap("close", s.db.Close())
}

// RegisterHook records name with zero counters. Registering a known name
// is a no-op.
func (s *Store) RegisterHook(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO hooks (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name)
	return wrap("register hook", err)
}

// IsHookRegistered reports whether name has a hook record.
func (s *Store) IsHookRegistered(ctx context.Context, name string) (bool, error) {
	return s.exists(ctx, "is hook registered", `SELECT EXISTS(SELECT 1 FROM hooks WHERE name = ?)`, name)
}

// Hook returns the record for name. ok is false if it is not registered.
func (s *Store) Hook(ctx context.Context, name string) (rec HookRecord, ok bool, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT name, total_runs, successful_runs FROM hooks WHERE name = ?`, name,
	).Scan(&rec.Name, &rec.TotalRuns, &rec.SuccessfulRuns)
	if errors.Is(err, sql.ErrNoRows) {
		return HookRecord{}, false, nil
	}
	if err != nil {
		return HookRecord{}, false, wrap("get hook", err)
	}
	return rec, true, nil
}

// Hooks returns every hook record ordered by name.
func (s *Store) Hooks(ctx context.Context) ([]HookRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, total_runs, successful_runs FROM hooks ORDER BY name`)
	if err != nil {
		return nil, wrap("list hooks", err)
	}
	defer rows.Close()

	var out []HookRecord
	for rows.Next() {
		var r HookRecord
		if err := rows.Scan(&r.Name, &r.TotalRuns, &r.SuccessfulRuns); err != nil {
			return nil, wrap("list hooks", err)
		}
		out = append(out, r)
	}
	return out, wrap("list hooks", rows.Err())
}

// RecordRun increments the hook's run counters and stores the run in the
// history, in one transaction. A run for an unregistered hook is silently
// ignored.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("record run", err)
	}
	defer func() { _ = tx.Rollback() }()

	success := 0
	if run.Succeeded() {
		success = 1
	}
	res, err := tx.ExecContext(ctx, `
		UPDATE hooks
		SET total_runs = total_runs + 1,
		    successful_runs = successful_runs + ?
		WHERE name = ?`, success, run.Name)
	if err != nil {
		return wrap("record run", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap("record run", err)
	}
	if n == 0 {
		return nil
	}

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	var exitCode any
	if run.ExitCode != nil {
		exitCode = *run.ExitCode
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO hook_runs (id, name, repo, outcome, exit_code, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Name, run.Repo, run.Outcome, exitCode,
		run.StartedAt.UTC().Format(time.RFC3339Nano), run.Duration.Milliseconds())
	if err != nil {
		return wrap("record run", err)
	}

	return wrap("record run", tx.Commit())
}

// History returns the most recent runs of name, newest first. A limit of
// zero or less returns all runs.
func (s *Store) History(ctx context.Context, name string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, repo, outcome, exit_code, started_at, duration_ms
		FROM hook_runs
		WHERE name = ?
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, name, limit)
	if err != nil {
		return nil, wrap("history", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r          Run
			exitCode   sql.NullInt64
			startedAt  string
			durationMs int64
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Repo, &r.Outcome, &exitCode, &startedAt, &durationMs); err != nil {
			return nil, wrap("history", err)
		}
		if exitCode.Valid {
			code := int(exitCode.Int64)
			r.ExitCode = &code
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, wrap("history", fmt.Errorf("run %s: %w", r.ID, err))
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, r)
	}
	return out, wrap("history", rows.Err())
}

// DeleteHook removes the hook record together with its bindings and run
// history. It reports whether the hook existed.
func (s *Store) DeleteHook(ctx context.Context, name string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, wrap("delete hook", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		`DELETE FROM hook_runs WHERE name = ?`,
		`DELETE FROM repo_hooks WHERE name = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, name); err != nil {
			return false, wrap("delete hook", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM hooks WHERE name = ?`, name)
	if err != nil {
		return false, wrap("delete hook", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrap("delete hook", err)
	}

	if err := tx.Commit(); err != nil {
		return false, wrap("delete hook", err)
	}
	return n > 0, nil
}

func (s *Store) exists(ctx context.Context, op, query string, args ...any) (bool, error) {
	var found int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		return false, wrap(op, err)
	}
	return found == 1, nil
}
