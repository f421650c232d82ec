// Package history provides SQLite-backed persistence of past report
// generations.
//
// Only deliverable metadata is stored (when, what category, which
// widgets, from which sources). The canonical dataset and the rendered
// body are never persisted; the history exists to answer "what did we
// generate", not to cache report content.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/arloai/reportgen/internal/model"
)

// Store records report generations in a SQLite database file.
//
// Design decision: We use a single database file in the state directory
// rather than per-campaign files. Generations across campaigns are one
// chronological stream and the history command lists them as such.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended for most use
	// cases.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database under dbDir.
// If CreateIfNotExists is false and no database exists, an error is
// returned instead of silently creating an empty history.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, "reportgen.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("check history database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection
	// avoids lock contention entirely for this workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// createTables creates the history schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- One row per report generation. Widget and source lists are JSON
	-- arrays; they are displayed, never queried by element.
	CREATE TABLE IF NOT EXISTS generations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		generated_at DATETIME NOT NULL,
		category TEXT NOT NULL,
		format TEXT NOT NULL,
		widgets TEXT NOT NULL,
		sources TEXT NOT NULL,
		engine_version TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_generations_time ON generations(generated_at);
	CREATE INDEX IF NOT EXISTS idx_generations_category ON generations(category);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Entry is one recorded report generation.
type Entry struct {
	ID            int64
	GeneratedAt   time.Time
	Category      string
	Format        string
	Widgets       []string
	Sources       []string
	EngineVersion string
}

// Save records the deliverable's metadata together with the output
// format it was exported to. Returns the new entry's ID.
func (s *Store) Save(ctx context.Context, d *model.Deliverable, format string) (int64, error) {
	widgetsJSON, err := json.Marshal(d.Widgets)
	if err != nil {
		return 0, fmt.Errorf("serialize widget list: %w", err)
	}
	sourcesJSON, err := json.Marshal(d.Sources)
	if err != nil {
		return 0, fmt.Errorf("serialize source list: %w", err)
	}

	query := `
	INSERT INTO generations (generated_at, category, format, widgets, sources, engine_version)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		d.Meta.GeneratedAt.UTC().Format(time.RFC3339),
		d.Category,
		format,
		string(widgetsJSON),
		string(sourcesJSON),
		d.Meta.EngineVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("insert generation record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read generation id: %w", err)
	}
	return id, nil
}

// List returns the most recent generations, newest first, up to limit.
// A non-positive limit returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
	SELECT id, generated_at, category, format, widgets, sources, engine_version
	FROM generations
	ORDER BY generated_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query generations: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			generatedAt string
			widgetsJSON string
			sourcesJSON string
		)
		if err := rows.Scan(&e.ID, &generatedAt, &e.Category, &e.Format, &widgetsJSON, &sourcesJSON, &e.EngineVersion); err != nil {
			return nil, fmt.Errorf("scan generation record: %w", err)
		}

		e.GeneratedAt, err = time.Parse(time.RFC3339, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse generation timestamp %q: %w", generatedAt, err)
		}
		if err := json.Unmarshal([]byte(widgetsJSON), &e.Widgets); err != nil {
			return nil, fmt.Errorf("parse widget list: %w", err)
		}
		if err := json.Unmarshal([]byte(sourcesJSON), &e.Sources); err != nil {
			return nil, fmt.Errorf("parse source list: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generations: %w", err)
	}
	return entries, nil
}
