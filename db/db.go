// Package db records assembly run history in a local SQLite database.
package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens or creates the SQLite database at the default location,
// ~/.local/share/epe-video-editor/history.db. Parent directories are created
// if they don't exist.
func Open() (*sql.DB, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbPath)
}

// OpenAt opens or creates the database at an explicit path.
func OpenAt(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Verify connection works
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, err
	}

	if err := migrate(database); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

// migrate runs all database migrations.
// Migrations are idempotent (safe to run multiple times).
func migrate(database *sql.DB) error {
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			recording TEXT NOT NULL,
			start_seconds REAL NOT NULL,
			end_seconds REAL NOT NULL,
			intro TEXT,
			outro TEXT,
			strategy TEXT NOT NULL,
			output_path TEXT NOT NULL,
			elapsed_ms INTEGER,
			status TEXT NOT NULL,
			error TEXT
		)
	`)
	return err
}

// getDBPath returns the path to the database file.
func getDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "epe-video-editor", "history.db"), nil
}
