package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Well-known keys. These mirror the browser localStorage entries the
// dashboards depend on: each is independently settable and clearable.
const (
	KeyOwner         = "owner"
	KeyOwnerToken    = "ownerToken"
	KeyProviderToken = "providerToken"
	KeyDeviceID      = "deviceID"
)

// Keystore is a durable string key/value store backed by SQLite. It stands in
// for the browser's localStorage: small, synchronous, survives restarts.
type Keystore struct {
	db *sql.DB
}

// Open opens (or creates) the keystore at path and applies the schema.
func Open(path string) (*Keystore, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Keystore{db: db}, nil
}

// Close closes the underlying database.
func (k *Keystore) Close() error {
	return k.db.Close()
}

// Get returns the value for key, or "" when the key is absent.
func (k *Keystore) Get(key string) (string, error) {
	var value string
	err := k.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (k *Keystore) Set(key, value string) error {
	if _, err := k.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (k *Keystore) Delete(key string) error {
	if _, err := k.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
