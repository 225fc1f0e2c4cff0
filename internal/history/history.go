// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists executed searches in a local SQLite database
// with full-text search over the query strings.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/splunk-search/pkg/types"
)

const dbFile = "history.db"

// Entry status values.
const (
	StatusCompleted = "completed"
	StatusEmpty     = "empty"
	StatusFailed    = "failed"
)

// Entry is one recorded search. Credentials and session keys are never
// part of an entry.
type Entry struct {
	ID          string    `json:"id" yaml:"id"`
	SID         string    `json:"sid" yaml:"sid"`
	Query       string    `json:"query" yaml:"query"`
	Normalized  string    `json:"normalized" yaml:"normalized"`
	Host        string    `json:"host" yaml:"host"`
	Started     time.Time `json:"started" yaml:"started"`
	DurationMS  int64     `json:"duration_ms" yaml:"duration_ms"`
	ResultCount int       `json:"result_count" yaml:"result_count"`
	Status      string    `json:"status" yaml:"status"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Store manages the search history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at dir/history.db,
// creating the schema when it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = ".splunk-search"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			sid TEXT,
			query TEXT NOT NULL,
			normalized TEXT NOT NULL,
			host TEXT,
			started TEXT NOT NULL,
			duration_ms INTEGER,
			result_count INTEGER,
			status TEXT NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_sid ON searches(sid)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_started ON searches(started)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='searches_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE searches_fts USING fts5(query, content=searches, content_rowid=rowid)`,
			`CREATE TRIGGER searches_ai AFTER INSERT ON searches BEGIN
				INSERT INTO searches_fts(rowid, query) VALUES (new.rowid, new.query);
			END`,
			`CREATE TRIGGER searches_ad AFTER DELETE ON searches BEGIN
				INSERT INTO searches_fts(searches_fts, rowid, query) VALUES('delete', old.rowid, old.query);
			END`,
			`CREATE TRIGGER searches_au AFTER UPDATE ON searches BEGIN
				INSERT INTO searches_fts(searches_fts, rowid, query) VALUES('delete', old.rowid, old.query);
				INSERT INTO searches_fts(rowid, query) VALUES (new.rowid, new.query);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Record inserts one executed search and returns its generated id. A zero
// Started timestamp is filled with the current time.
func (s *Store) Record(ctx context.Context, e Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Started.IsZero() {
		e.Started = time.Now().UTC()
	}
	if e.Status == "" {
		e.Status = StatusCompleted
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (id, sid, query, normalized, host, started, duration_ms, result_count, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SID, e.Query, e.Normalized, e.Host,
		e.Started.UTC().Format(time.RFC3339Nano),
		e.DurationMS, e.ResultCount, e.Status, e.Error,
	)
	if err != nil {
		return "", fmt.Errorf("inserting search: %w", err)
	}
	return e.ID, nil
}

// Recent returns the most recently started entries, newest first. A limit
// of zero uses the store default.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	return s.query(ctx,
		`SELECT id, sid, query, normalized, host, started, duration_ms, result_count, status, error
		 FROM searches ORDER BY started DESC, rowid DESC LIMIT ?`, limit)
}

// Find runs an FTS5 match over the recorded query strings, ranked by
// relevance. A limit of zero uses the store default.
func (s *Store) Find(ctx context.Context, match string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	return s.query(ctx,
		`SELECT e.id, e.sid, e.query, e.normalized, e.host, e.started,
			e.duration_ms, e.result_count, e.status, e.error
		FROM searches_fts
		JOIN searches e ON e.rowid = searches_fts.rowid
		WHERE searches_fts MATCH ?
		ORDER BY searches_fts.rank
		LIMIT ?`, match, limit)
}

// Get returns the entry whose id or sid equals key.
func (s *Store) Get(ctx context.Context, key string) (*Entry, error) {
	entries, err := s.query(ctx,
		`SELECT id, sid, query, normalized, host, started, duration_ms, result_count, status, error
		 FROM searches WHERE id = ? OR sid = ? ORDER BY started DESC LIMIT 1`, key, key)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("search %s not found", key)
	}
	return &entries[0], nil
}

// Prune deletes all but the keep most recently started entries and
// returns the number removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM searches WHERE rowid NOT IN (
			SELECT rowid FROM searches ORDER BY started DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning searches: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing prune: %w", err)
	}
	return int(removed), nil
}

func (s *Store) query(ctx context.Context, stmt string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			sid     sql.NullString
			host    sql.NullString
			errText sql.NullString
			started string
		)
		if err := rows.Scan(
			&e.ID, &sid, &e.Query, &e.Normalized, &host, &started,
			&e.DurationMS, &e.ResultCount, &e.Status, &errText,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		e.SID = sid.String
		e.Host = host.String
		e.Error = errText.String
		t, err := time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp of search %s: %w", e.ID, err)
		}
		e.Started = t
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
