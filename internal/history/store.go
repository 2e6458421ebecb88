package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"subclean/internal/config"
)

// timestampLayout is fixed width so started_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database configured in cfg.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("history: config is required")
	}
	if strings.TrimSpace(cfg.History.Path) == "" {
		return nil, errors.New("history: history.path is empty")
	}
	dbPath := cfg.History.Path
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a completed run and returns it with its row ID assigned.
func (s *Store) Record(ctx context.Context, run Run) (*Run, error) {
	if strings.TrimSpace(run.RunID) == "" {
		return nil, errors.New("record run: run id is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            run_id, started_at, input_path, output_path, input_sha256, convergence,
            original_entries, cleaned_entries, passes, trimmed_lines,
            dropped_entries, removed_advertisements, duration_ms
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.StartedAt.Format(timestampLayout),
		run.InputPath,
		run.OutputPath,
		nullableString(run.InputSHA256),
		run.Convergence,
		run.OriginalEntries,
		run.CleanedEntries,
		run.Passes,
		run.TrimmedLines,
		run.DroppedEntries,
		run.RemovedAdvertisements,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	run.ID = id
	run.Duration = run.Duration.Truncate(time.Millisecond)
	return &run, nil
}

// List returns the most recent runs first. A non-positive limit returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, run_id, started_at, input_path, output_path, input_sha256, convergence,
        original_entries, cleaned_entries, passes, trimmed_lines,
        dropped_entries, removed_advertisements, duration_ms
        FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run          Run
		startedAtRaw string
		digest       sql.NullString
		durationMS   int64
	)
	if err := scanner.Scan(
		&run.ID,
		&run.RunID,
		&startedAtRaw,
		&run.InputPath,
		&run.OutputPath,
		&digest,
		&run.Convergence,
		&run.OriginalEntries,
		&run.CleanedEntries,
		&run.Passes,
		&run.TrimmedLines,
		&run.DroppedEntries,
		&run.RemovedAdvertisements,
		&durationMS,
	); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	startedAt, err := time.Parse(timestampLayout, startedAtRaw)
	if err != nil {
		return nil, fmt.Errorf("parse started_at %q: %w", startedAtRaw, err)
	}
	run.StartedAt = startedAt
	run.InputSHA256 = digest.String
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
