package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Stats aggregates terminal sessions and web visits for the stats section.
type Stats struct {
	Sessions         int64     `json:"terminal_sessions"`
	SectionsRevealed int64     `json:"sections_revealed"`
	TopSection       string    `json:"most_read_section"`
	Visitors         int64     `json:"web_visitors"`
	UniqueVisitors   int64     `json:"unique_web_visitors"`
	LastVisit        time.Time `json:"last_web_visit"`
}

// Store keeps session and visit counters in SQLite. Times are stored as
// unix seconds.
type Store struct {
	db *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS reveals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id INTEGER NOT NULL,
	section TEXT NOT NULL,
	revealed_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	timestamp INTEGER NOT NULL
);`

// OpenStore opens or creates termfolio.db inside dir.
func OpenStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dbPath := filepath.Join(dir, "termfolio.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Visits are written from request goroutines; one connection keeps
	// SQLite from reporting busy.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	log.Printf("Stats database ready at %s", dbPath)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) RecordSession(at time.Time) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO sessions (started_at) VALUES (?)`, at.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to record session: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) RecordReveal(sessionID int64, section string, at time.Time) error {
	_, err := s.db.Exec(`INSERT INTO reveals (session_id, section, revealed_at) VALUES (?, ?, ?)`,
		sessionID, section, at.Unix())
	if err != nil {
		return fmt.Errorf("failed to record reveal: %w", err)
	}
	return nil
}

func (s *Store) RecordVisit(hashedIP, userAgent, path string, at time.Time) error {
	_, err := s.db.Exec(`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		hashedIP, userAgent, path, at.Unix())
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

func (s *Store) Stats() (Stats, error) {
	var st Stats
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&st.Sessions); err != nil {
		return Stats{}, fmt.Errorf("failed to count sessions: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM reveals`).Scan(&st.SectionsRevealed); err != nil {
		return Stats{}, fmt.Errorf("failed to count reveals: %w", err)
	}

	var top sql.NullString
	err := s.db.QueryRow(`
		SELECT section FROM reveals
		GROUP BY section
		ORDER BY COUNT(*) DESC, section ASC
		LIMIT 1`).Scan(&top)
	if err != nil && err != sql.ErrNoRows {
		return Stats{}, fmt.Errorf("failed to find top section: %w", err)
	}
	st.TopSection = top.String

	var last sql.NullInt64
	err = s.db.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT hashed_ip), MAX(timestamp) FROM visitors`).
		Scan(&st.Visitors, &st.UniqueVisitors, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count visitors: %w", err)
	}
	if last.Valid {
		st.LastVisit = time.Unix(last.Int64, 0)
	}
	return st, nil
}

// PruneVisits deletes visitor rows older than the retention window.
func (s *Store) PruneVisits(now time.Time, retention time.Duration) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM visitors WHERE timestamp < ?`, now.Add(-retention).Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		log.Printf("Privacy cleanup: removed %d visitor records", n)
	}
	return n, nil
}
