package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/stitchcli/internal/types"
)

// Manager stores generated pattern records in SQLite
type Manager struct {
	db *sql.DB
}

// NewManager opens (or creates) the history database at dbPath
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS patterns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		source_image TEXT NOT NULL,
		cols TEXT NOT NULL,
		stitch_width TEXT NOT NULL,
		stitch_height TEXT NOT NULL,
		pattern_image TEXT NOT NULL,
		status INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		error TEXT,
		profile_name TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_patterns_timestamp ON patterns(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_patterns_source_image ON patterns(source_image);
	`

	_, err := m.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return nil
}

// Save records one pattern generation attempt
func (m *Manager) Save(entry types.PatternEntry) error {
	query := `
		INSERT INTO patterns (
			timestamp, source_image, cols, stitch_width, stitch_height,
			pattern_image, status, duration_ms, error, profile_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	timestamp := entry.Timestamp
	if timestamp == "" {
		// Format timestamp for SQLite in local time
		timestamp = time.Now().Local().Format("2006-01-02 15:04:05")
	}

	_, err := m.db.Exec(query,
		timestamp,
		entry.SourceImage,
		entry.Cols,
		entry.StitchWidth,
		entry.StitchHeight,
		entry.PatternImage,
		entry.Status,
		entry.DurationMs,
		entry.Error,
		entry.ProfileName,
	)

	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// Load returns all history entries, newest first
func (m *Manager) Load() ([]types.PatternEntry, error) {
	query := `
		SELECT id, timestamp, source_image, cols, stitch_width, stitch_height,
		       pattern_image, status, duration_ms, COALESCE(error, ''), COALESCE(profile_name, '')
		FROM patterns
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := m.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// LoadForImage returns history entries for one source image, newest first
func (m *Manager) LoadForImage(sourceImage string) ([]types.PatternEntry, error) {
	query := `
		SELECT id, timestamp, source_image, cols, stitch_width, stitch_height,
		       pattern_image, status, duration_ms, COALESCE(error, ''), COALESCE(profile_name, '')
		FROM patterns
		WHERE source_image = ?
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := m.db.Query(query, sourceImage)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Clear removes all history entries
func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM patterns"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

func scanEntries(rows *sql.Rows) ([]types.PatternEntry, error) {
	var entries []types.PatternEntry

	for rows.Next() {
		var e types.PatternEntry
		if err := rows.Scan(
			&e.ID,
			&e.Timestamp,
			&e.SourceImage,
			&e.Cols,
			&e.StitchWidth,
			&e.StitchHeight,
			&e.PatternImage,
			&e.Status,
			&e.DurationMs,
			&e.Error,
			&e.ProfileName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	return entries, nil
}
