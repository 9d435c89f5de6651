// Package history keeps a local log of review sessions.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type Session struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	FeedsVisited int
	Relevant     int
	Irrelevant   int
	Quit         bool
}

// Totals aggregates every recorded session.
type Totals struct {
	Sessions   int
	Relevant   int
	Irrelevant int
}

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id            TEXT PRIMARY KEY,
			started_at    DATETIME NOT NULL,
			finished_at   DATETIME NOT NULL,
			feeds_visited INTEGER NOT NULL DEFAULT 0,
			relevant      INTEGER NOT NULL DEFAULT 0,
			irrelevant    INTEGER NOT NULL DEFAULT 0,
			quit          INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// RecordSession stores sess, assigning an ID when it has none, and returns
// the ID used.
func (s *Store) RecordSession(sess Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	_, err := s.writeDB.Exec(`
		INSERT INTO sessions (id, started_at, finished_at, feeds_visited, relevant, irrelevant, quit)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sess.ID, sess.StartedAt.UTC(), sess.FinishedAt.UTC(), sess.FeedsVisited, sess.Relevant, sess.Irrelevant, sess.Quit)
	if err != nil {
		return "", fmt.Errorf("recording session %s: %w", sess.ID, err)
	}
	if err := s.setMeta("last_session", sess.ID); err != nil {
		return "", err
	}
	return sess.ID, nil
}

// Sessions returns the most recent sessions first. limit <= 0 means 50.
func (s *Store) Sessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.readDB.Query(`
		SELECT id, started_at, finished_at, feeds_visited, relevant, irrelevant, quit
		FROM sessions ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.StartedAt, &sess.FinishedAt, &sess.FeedsVisited, &sess.Relevant, &sess.Irrelevant, &sess.Quit); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *Store) Totals() (Totals, error) {
	var t Totals
	err := s.readDB.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(relevant), 0), COALESCE(SUM(irrelevant), 0) FROM sessions
	`).Scan(&t.Sessions, &t.Relevant, &t.Irrelevant)
	if err != nil {
		return Totals{}, fmt.Errorf("reading totals: %w", err)
	}
	return t, nil
}

// LastSession returns the ID of the most recently recorded session.
func (s *Store) LastSession() (string, error) {
	return s.getMeta("last_session")
}

// Prune deletes sessions started before now-olderThan.
func (s *Store) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UTC()
	res, err := s.writeDB.Exec("DELETE FROM sessions WHERE started_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.writeDB.Exec("VACUUM")
	}
	return n, nil
}

// Stats returns the number of sessions and the database file size.
func (s *Store) Stats(dbPath string) (int, int64, error) {
	var count int
	if err := s.readDB.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		return 0, 0, err
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, err
	}
	return count, info.Size(), nil
}

func (s *Store) setMeta(key, value string) error {
	_, err := s.writeDB.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (s *Store) getMeta(key string) (string, error) {
	var value string
	err := s.readDB.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	return value, err
}
