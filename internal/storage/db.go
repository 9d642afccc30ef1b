// Package storage provides the on-disk result cache: analysis results
// keyed by file path and content hash, so unchanged files skip re-analysis.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"sift/internal/errors"
	"sift/internal/logging"
)

// DB represents a database connection with schema management
type DB struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the SQLite database at .sift/sift.db under repoRoot.
// If the database doesn't exist, it is created along with its tables.
func Open(repoRoot string, logger *logging.Logger) (*DB, error) {
	siftDir := filepath.Join(repoRoot, ".sift")
	if err := os.MkdirAll(siftDir, 0755); err != nil {
		return nil, errors.New(errors.CacheUnavailable, "failed to create .sift directory", err)
	}

	dbPath := filepath.Join(siftDir, "sift.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.New(errors.CacheUnavailable, "failed to open database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous=NORMAL", // Balance between safety and performance
		"PRAGMA busy_timeout=5000",  // Wait up to 5 seconds on lock
		"PRAGMA temp_store=MEMORY",  // Use memory for temp tables
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, errors.New(errors.CacheUnavailable, fmt.Sprintf("failed to set pragma %q", pragma), err)
		}
	}

	db := &DB{conn: conn, logger: logger, dbPath: dbPath}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) initSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS results (
	path         TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	payload      TEXT NOT NULL,
	created_at   TEXT NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (path, content_hash)
);
CREATE INDEX IF NOT EXISTS idx_results_path ON results(path);
`
	if _, err := db.conn.Exec(schema); err != nil {
		return errors.New(errors.CacheUnavailable, "failed to initialize schema", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the on-disk path of the database file
func (db *DB) Path() string {
	return db.dbPath
}
