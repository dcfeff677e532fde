// Package sqlite stores catalog collections in a SQLite database using the
// ncruces/go-sqlite3 driver. Bodies and systems live in separate tables of
// the same file, and each save replaces one table inside a transaction.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/spaceplace/internal/log"
	"github.com/zjrosen/spaceplace/internal/registry"
)

// schema is created idempotently on first write.
const schema = `
CREATE TABLE IF NOT EXISTS systems (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	star     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS bodies (
	position            INTEGER PRIMARY KEY,
	id                  INTEGER NOT NULL,
	kind                TEXT NOT NULL,
	name                TEXT NOT NULL,
	mass                REAL NOT NULL,
	diameter            REAL NOT NULL,
	system_name         TEXT,
	system_star         TEXT,
	surface_type        TEXT,
	average_temperature REAL,
	has_liquid_water    INTEGER,
	gas_composition     TEXT,
	core_composition    TEXT,
	radiation_level     REAL,
	ice_composition     TEXT,
	surface_composition TEXT,
	spectral_type       TEXT,
	luminosity          REAL
);
CREATE TABLE IF NOT EXISTS snapshots (
	collection TEXT PRIMARY KEY,
	snapshot   TEXT NOT NULL,
	saved_at   INTEGER NOT NULL,
	next_id    INTEGER NOT NULL DEFAULT 0
);
`

// DB is a lazily opened catalog database. Reads against a missing file
// report registry.ErrNoData without creating it.
type DB struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// NewDB binds a database to path without touching the filesystem.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Path returns the database file path.
func (d *DB) Path() string { return d.path }

// Close closes the connection if one was opened.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// conn returns an open connection. With create false a missing file yields
// registry.ErrNoData; with create true the parent directory, file and
// schema are created.
func (d *DB) conn(create bool) (*sql.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db != nil {
		return d.db, nil
	}

	if _, err := os.Stat(d.path); errors.Is(err, fs.ErrNotExist) {
		if !create {
			return nil, registry.ErrNoData
		}
		if err := os.MkdirAll(filepath.Dir(d.path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	log.Debug(log.CatDB, "Opening database", "path", d.path)
	db, err := sql.Open("sqlite3", "file:"+d.path)
	if err != nil {
		log.ErrorErr(log.CatDB, "Failed to open database", err, "path", d.path)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		log.ErrorErr(log.CatDB, "Failed to create schema", err, "path", d.path)
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	log.Info(log.CatDB, "Connected to database", "path", d.path)

	d.db = db
	return db, nil
}

// snapshotOf reports whether collection was ever saved to this database and
// the next id recorded with it.
func snapshotOf(db *sql.DB, collection string) (saved bool, nextID int, err error) {
	var snapshot string
	err = db.QueryRow(`SELECT snapshot, next_id FROM snapshots WHERE collection = ?`, collection).
		Scan(&snapshot, &nextID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return true, nextID, nil
}

// replace runs fill inside a transaction after clearing table, then records
// a new snapshot and next id for collection.
func replace(db *sql.DB, table, collection, snapshot string, savedAt int64, nextID int, fill func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	if err := fill(tx); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT INTO snapshots (collection, snapshot, saved_at, next_id) VALUES (?, ?, ?, ?)
		 ON CONFLICT(collection) DO UPDATE SET
		   snapshot = excluded.snapshot, saved_at = excluded.saved_at, next_id = excluded.next_id`,
		collection, snapshot, savedAt, nextID,
	); err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
