package storage

import (
	"database/sql"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// HashContent returns the cache key hash for file content.
func HashContent(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ResultCache stores serialized per-file analysis results keyed by path and
// content hash. A hit means the file is byte-identical to the last analyzed
// version under the same configuration.
type ResultCache struct {
	db *DB
	// configHash is mixed into the content key so configuration changes
	// invalidate every entry.
	configHash string
}

// NewResultCache creates a result cache. configHash should change whenever
// the effective configuration or the rule set changes.
func NewResultCache(db *DB, configHash string) *ResultCache {
	return &ResultCache{db: db, configHash: configHash}
}

func (c *ResultCache) key(contentHash string) string {
	return HashContent([]byte(contentHash + ":" + c.configHash))
}

// Get retrieves the cached payload for a file, if present.
func (c *ResultCache) Get(path string, contentHash string) (string, bool, error) {
	var payload string
	err := c.db.conn.QueryRow(`
		SELECT payload FROM results
		WHERE path = ? AND content_hash = ?
	`, path, c.key(contentHash)).Scan(&payload)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

// Put stores the payload for a file, replacing any older entries for the
// same path.
func (c *ResultCache) Put(path string, contentHash string, payload string) error {
	tx, err := c.db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM results WHERE path = ?`, path); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		INSERT INTO results (path, content_hash, payload) VALUES (?, ?, ?)
	`, path, c.key(contentHash), payload); err != nil {
		return err
	}
	return tx.Commit()
}

// Invalidate drops all entries for a path.
func (c *ResultCache) Invalidate(path string) error {
	_, err := c.db.conn.Exec(`DELETE FROM results WHERE path = ?`, path)
	return err
}

// Clear drops every entry.
func (c *ResultCache) Clear() error {
	_, err := c.db.conn.Exec(`DELETE FROM results`)
	return err
}
