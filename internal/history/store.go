// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists per-file conversion outcomes in a SQLite ledger.
// Recording is opt-in: the pipeline writes here only when a ledger path is
// configured, and the batch never fails because of the ledger.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/gps2shp/pkg/types"
)

// Store manages the conversion ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger at dbPath, creating the schema and any
// parent directories as needed.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	source       TEXT NOT NULL,
	outputs      TEXT NOT NULL,
	status       TEXT NOT NULL,
	error        TEXT NOT NULL DEFAULT '',
	completed_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source);
`

func (s *Store) createSchema() error {
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one outcome to the ledger.
func (s *Store) Record(outcome types.ConversionOutcome) error {
	_, err := s.db.Exec(
		`INSERT INTO conversions (source, outputs, status, error, completed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		outcome.Source,
		strings.Join(outcome.Outputs, ","),
		string(outcome.Status),
		outcome.Error,
		outcome.CompletedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording outcome for %s: %w", outcome.Source, err)
	}
	return nil
}

// List returns recorded outcomes, newest first. A non-positive limit
// returns everything.
func (s *Store) List(limit int) ([]types.ConversionOutcome, error) {
	q := `SELECT source, outputs, status, error, completed_at
	      FROM conversions ORDER BY id DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var outcomes []types.ConversionOutcome
	for rows.Next() {
		var o types.ConversionOutcome
		var outputs, completed string
		if err := rows.Scan(&o.Source, &outputs, (*string)(&o.Status), &o.Error, &completed); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		if outputs != "" {
			o.Outputs = strings.Split(outputs, ",")
		}
		if t, perr := time.Parse(time.RFC3339, completed); perr == nil {
			o.CompletedAt = t
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
