package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/folio/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

const (
	// dbFile is the database file name inside the data directory.
	dbFile = "journal.db"

	// timeLayout is fixed width so stored timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store is a SQLite-backed store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.folio/data/journal.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".folio", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// WAL mode lets a history read run alongside an ingest write.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// IngestJournal returns an IngestJournal backed by this store.
func (s *Store) IngestJournal() driven.IngestJournal {
	return &journalStore{store: s}
}

// migrate runs all pending migrations and records each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_ingest_journal.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Ingest Journal ====================

// journalStore implements driven.IngestJournal.
type journalStore struct {
	store *Store
}

var _ driven.IngestJournal = (*journalStore)(nil)

// Record stores a run and its outcomes in one transaction.
func (j *journalStore) Record(ctx context.Context, run domain.IngestRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	tx, err := j.store.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ingest_runs (id, path, index_name, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Path, run.Index, formatTime(run.StartedAt), formatTime(run.FinishedAt))
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ingest_outcomes (run_id, position, filename, kind, title, author, year, document_id, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("preparing outcome insert: %w", err)
	}
	defer stmt.Close()

	for i, o := range run.Outcomes {
		var errMsg string
		if o.Err != nil {
			errMsg = o.Err.Error()
		}
		_, err := stmt.ExecContext(ctx, run.ID, i, o.Filename, string(o.Kind),
			o.Identity.Title, o.Identity.Author, o.Identity.Year, o.DocumentID, errMsg)
		if err != nil {
			return "", fmt.Errorf("inserting outcome %s: %w", o.Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return run.ID, nil
}

// Recent returns up to limit runs, most recent first, with their outcomes.
func (j *journalStore) Recent(ctx context.Context, limit int) ([]domain.IngestRun, error) {
	rows, err := j.store.db.QueryContext(ctx, `
		SELECT id, path, index_name, started_at, finished_at
		FROM ingest_runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}

	var runs []domain.IngestRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range runs {
		outcomes, err := j.outcomes(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Outcomes = outcomes
	}
	return runs, nil
}

// Get returns one run with its outcomes.
func (j *journalStore) Get(ctx context.Context, id string) (*domain.IngestRun, error) {
	row := j.store.db.QueryRowContext(ctx, `
		SELECT id, path, index_name, started_at, finished_at
		FROM ingest_runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	run.Outcomes, err = j.outcomes(ctx, id)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (j *journalStore) outcomes(ctx context.Context, runID string) ([]domain.IngestOutcome, error) {
	rows, err := j.store.db.QueryContext(ctx, `
		SELECT filename, kind, title, author, year, document_id, error
		FROM ingest_outcomes WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []domain.IngestOutcome
	for rows.Next() {
		var (
			o      domain.IngestOutcome
			kind   string
			errMsg string
		)
		if err := rows.Scan(&o.Filename, &kind, &o.Identity.Title, &o.Identity.Author,
			&o.Identity.Year, &o.DocumentID, &errMsg); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		o.Kind = domain.OutcomeKind(kind)
		if errMsg != "" {
			o.Err = errors.New(errMsg)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.IngestRun, error) {
	var (
		run               domain.IngestRun
		started, finished string
	)
	if err := row.Scan(&run.ID, &run.Path, &run.Index, &started, &finished); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = parseTime(started); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if run.FinishedAt, err = parseTime(finished); err != nil {
		return nil, fmt.Errorf("parsing finished_at: %w", err)
	}
	return &run, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
