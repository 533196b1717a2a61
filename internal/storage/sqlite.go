// Package storage provides SQLite-based persistence for the move journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrUnknownSession is returned when a session ID has no journal entry.
var ErrUnknownSession = errors.New("storage: unknown session")

// Journal is the write side of the move journal.
type Journal interface {
	StartSession(rec SessionRecord) (string, error)
	SaveMove(m MoveRecord) (int64, error)
}

var _ Journal = (*Store)(nil)

// Store manages the SQLite database connection for the move journal.
type Store struct {
	db *sql.DB
}

// SessionRecord describes one played board.
type SessionRecord struct {
	ID        string
	GameID    string
	Cols      int
	Rows      int
	Seed      int64
	Source    string // "local" or "ssh"
	StartedAt time.Time
}

// MoveRecord is one finished drag: a committed or rejected swap attempt.
type MoveRecord struct {
	ID        int64
	SessionID string
	FromCol   int
	FromRow   int
	ToCol     int
	ToRow     int
	Committed bool
	CreatedAt time.Time
}

// SessionStats contains aggregated journal counts for a session.
type SessionStats struct {
	SessionID string
	GameID    string
	Cols      int
	Rows      int
	Committed int
	Rejected  int
	StartedAt time.Time
	LastMove  time.Time
}

// Attempts returns the number of finished swap attempts.
func (s SessionStats) Attempts() int {
	return s.Committed + s.Rejected
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			cols INTEGER NOT NULL,
			rows INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT 'local',
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS moves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			from_col INTEGER NOT NULL,
			from_row INTEGER NOT NULL,
			to_col INTEGER NOT NULL,
			to_row INTEGER NOT NULL,
			committed INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_moves_session ON moves(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession records a new session. An empty ID is replaced with a
// fresh one; the stored ID is returned.
func (s *Store) StartSession(rec SessionRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = NewSessionID()
	}
	if rec.Source == "" {
		rec.Source = "local"
	}

	_, err := s.db.Exec(
		"INSERT INTO sessions (id, game_id, cols, rows, seed, source) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.GameID, rec.Cols, rec.Rows, rec.Seed, rec.Source,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start session: %w", err)
	}
	return rec.ID, nil
}

// SaveMove appends a finished swap attempt to the journal.
// Returns the ID of the inserted record.
func (s *Store) SaveMove(m MoveRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO moves (session_id, from_col, from_row, to_col, to_row, committed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.SessionID, m.FromCol, m.FromRow, m.ToCol, m.ToRow, m.Committed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentMoves retrieves the newest moves, newest first. An empty
// sessionID returns moves across all sessions.
func (s *Store) RecentMoves(sessionID string, limit int) ([]MoveRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, session_id, from_col, from_row, to_col, to_row, committed, created_at
		 FROM moves`
	args := []any{}
	if sessionID != "" {
		query += " WHERE session_id = ?"
		args = append(args, sessionID)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		var createdAt any
		if err := rows.Scan(&m.ID, &m.SessionID, &m.FromCol, &m.FromRow, &m.ToCol, &m.ToRow, &m.Committed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return moves, nil
}

const statsQuery = `
	SELECT s.id, s.game_id, s.cols, s.rows,
	       COALESCE(SUM(CASE WHEN m.committed = 1 THEN 1 ELSE 0 END), 0),
	       COALESCE(SUM(CASE WHEN m.committed = 0 THEN 1 ELSE 0 END), 0),
	       s.started_at, MAX(m.created_at)
	FROM sessions s
	LEFT JOIN moves m ON m.session_id = s.id`

// SessionStats retrieves aggregated counts for one session.
func (s *Store) SessionStats(sessionID string) (*SessionStats, error) {
	row := s.db.QueryRow(statsQuery+" WHERE s.id = ? GROUP BY s.id", sessionID)

	st, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get session stats: %w", err)
	}
	return st, nil
}

// RecentSessions retrieves stats for the newest sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionStats, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(statsQuery+" GROUP BY s.id ORDER BY s.rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var result []SessionStats
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		result = append(result, *st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return result, nil
}

// ClearJournal deletes all sessions and moves.
func (s *Store) ClearJournal() error {
	if _, err := s.db.Exec("DELETE FROM moves; DELETE FROM sessions;"); err != nil {
		return fmt.Errorf("storage: cannot clear journal: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStats(sc scanner) (*SessionStats, error) {
	var st SessionStats
	var startedAt, lastMove any
	if err := sc.Scan(&st.SessionID, &st.GameID, &st.Cols, &st.Rows, &st.Committed, &st.Rejected, &startedAt, &lastMove); err != nil {
		return nil, err
	}
	st.StartedAt = parseTime(startedAt)
	st.LastMove = parseTime(lastMove)
	return &st, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
