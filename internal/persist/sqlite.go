// Package persist stores the catalog durably in a local SQLite database.
//
// Each collection lives in its own slot (one row keyed by slot name holding
// a JSON array), plus a slot for the id counters. All slots are written in a
// single transaction so a crash can never leave the collections out of sync
// with each other. Reads are defensive: a missing or unparsable slot yields
// an empty collection, never an error.
package persist

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"libreria/internal/catalog"
	"libreria/internal/store"
)

// Slot names, one per collection plus the id counters.
const (
	SlotBooks      = "books"
	SlotAuthors    = "authors"
	SlotCategories = "categories"
	SlotCounters   = "counters"
)

const slotSchema = `
CREATE TABLE IF NOT EXISTS catalog_slots (
	slot TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Compile-time check that DB satisfies the store's persistence port.
var _ store.Persister = (*DB)(nil)

// DB is a handle to the catalog database.
type DB struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// Open opens (creating if necessary) the catalog database at dbPath.
func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to catalog database: %w", err), closeErr)
	}

	if _, err := db.Exec(slotSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create slot table: %w", err), closeErr)
	}

	return &DB{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// WriteSnapshot serializes the three collections and the counters into
// their slots inside one transaction.
func (d *DB) WriteSnapshot(snap catalog.Snapshot, counters catalog.Counters) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	slots := []struct {
		name  string
		value any
	}{
		{SlotBooks, snap.Books},
		{SlotAuthors, snap.Authors},
		{SlotCategories, snap.Categories},
		{SlotCounters, counters},
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO catalog_slots (slot, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare slot upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, s := range slots {
		data, err := json.Marshal(s.value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s slot: %w", s.name, err)
		}
		if _, err := stmt.Exec(s.name, string(data)); err != nil {
			return fmt.Errorf("failed to write %s slot: %w", s.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads all slots. Missing or corrupt slots degrade to empty
// collections. Author birth dates stored as strings are revived into time
// values; records whose date cannot be parsed keep an absent date.
func (d *DB) ReadSnapshot() (catalog.Snapshot, catalog.Counters, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var snap catalog.Snapshot
	var counters catalog.Counters

	rows, err := d.db.Query(`SELECT slot, data FROM catalog_slots`)
	if err != nil {
		return snap, counters, fmt.Errorf("failed to read slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var slot, data string
		if err := rows.Scan(&slot, &data); err != nil {
			return snap, counters, fmt.Errorf("failed to scan slot row: %w", err)
		}

		switch slot {
		case SlotBooks:
			snap.Books = decodeSlot[catalog.Book](slot, data)
		case SlotAuthors:
			snap.Authors = decodeAuthors(data)
		case SlotCategories:
			snap.Categories = decodeSlot[catalog.Category](slot, data)
		case SlotCounters:
			if err := json.Unmarshal([]byte(data), &counters); err != nil {
				slog.Warn("Ignoring corrupt counters slot", "error", err)
				counters = catalog.Counters{}
			}
		}
	}
	if err := rows.Err(); err != nil {
		return snap, counters, fmt.Errorf("failed to iterate slots: %w", err)
	}

	if snap.Books == nil {
		snap.Books = []catalog.Book{}
	}
	if snap.Authors == nil {
		snap.Authors = []catalog.Author{}
	}
	if snap.Categories == nil {
		snap.Categories = []catalog.Category{}
	}

	return snap, counters, nil
}

// decodeSlot parses a slot payload into a typed collection, degrading to an
// empty collection when the payload is not a valid array.
func decodeSlot[T any](slot, data string) []T {
	var out []T
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		slog.Warn("Treating corrupt slot as empty", "slot", slot, "error", err)
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

// storedAuthor mirrors catalog.Author with dates as raw strings, so legacy
// payloads with date-only values still parse.
type storedAuthor struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Nombre          string `json:"nombre"`
	Biography       string `json:"biography"`
	Biografia       string `json:"biografia"`
	Nationality     string `json:"nationality"`
	Nacionalidad    string `json:"nacionalidad"`
	BirthDate       string `json:"birthDate"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	PhotoURL        string `json:"photoUrl"`
	Foto            string `json:"foto"`
}

func decodeAuthors(data string) []catalog.Author {
	var stored []storedAuthor
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		slog.Warn("Treating corrupt slot as empty", "slot", SlotAuthors, "error", err)
		return []catalog.Author{}
	}

	authors := make([]catalog.Author, 0, len(stored))
	for _, s := range stored {
		authors = append(authors, catalog.Author{
			ID:              s.ID,
			Name:            s.Name,
			Nombre:          s.Nombre,
			Biography:       s.Biography,
			Biografia:       s.Biografia,
			Nationality:     s.Nationality,
			Nacionalidad:    s.Nacionalidad,
			BirthDate:       reviveDate(s.BirthDate),
			FechaNacimiento: reviveDate(s.FechaNacimiento),
			PhotoURL:        s.PhotoURL,
			Foto:            s.Foto,
		})
	}
	return authors
}

// reviveDate parses a stored birth-date string. The original storefront
// persisted both full timestamps and bare dates.
func reviveDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	slog.Warn("Dropping unparsable birth date", "value", s)
	return nil
}
