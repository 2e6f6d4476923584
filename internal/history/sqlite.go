package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/embrylab/blastograde/internal/models"
)

// SQLiteStore persists history to a SQLite file with the same bounded FIFO
// semantics as MemoryStore. database/sql serializes access; the capacity
// trim runs in the same transaction as the insert.
type SQLiteStore struct {
	db       *sql.DB
	capacity int
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS analyses (
	seq       INTEGER PRIMARY KEY AUTOINCREMENT,
	id        TEXT NOT NULL UNIQUE,
	timestamp TEXT NOT NULL,
	band      TEXT NOT NULL,
	payload   BLOB NOT NULL
);
`

// NewSQLiteStore opens (creating if needed) the history database at path.
func NewSQLiteStore(path string, capacity int) (*SQLiteStore, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return &SQLiteStore{db: db, capacity: capacity}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append inserts an analysis and trims the oldest rows past capacity.
func (s *SQLiteStore) Append(a models.Analysis) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding analysis: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("appending analysis: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(
		`INSERT INTO analyses (id, timestamp, band, payload) VALUES (?, ?, ?, ?)`,
		a.ID, a.Timestamp.Format(time.RFC3339Nano), string(a.Band), payload,
	); err != nil {
		return fmt.Errorf("appending analysis: %w", err)
	}

	if _, err := tx.Exec(
		`DELETE FROM analyses WHERE seq NOT IN (SELECT seq FROM analyses ORDER BY seq DESC LIMIT ?)`,
		s.capacity,
	); err != nil {
		return fmt.Errorf("trimming history: %w", err)
	}

	return tx.Commit()
}

// Recent returns up to n analyses, newest first.
func (s *SQLiteStore) Recent(n int) ([]models.Analysis, error) {
	if n <= 0 || n > s.capacity {
		n = s.capacity
	}
	rows, err := s.db.Query(`SELECT payload FROM analyses ORDER BY seq DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []models.Analysis
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("listing history: %w", err)
		}
		var a models.Analysis
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, fmt.Errorf("decoding stored analysis: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Get returns the analysis with the given ID.
func (s *SQLiteStore) Get(id string) (*models.Analysis, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM analyses WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading analysis: %w", err)
	}
	var a models.Analysis
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("decoding stored analysis: %w", err)
	}
	return &a, nil
}

// Clear drops every entry.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM analyses`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
