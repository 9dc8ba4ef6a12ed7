package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrSessionNotFound is returned when a session ID has no row.
var ErrSessionNotFound = errors.New("storage: session not found")

// Session is one run of the engine.
type Session struct {
	SessionID  string
	StartedAt  time.Time
	EndedAt    *time.Time
	Source     string
	DeviceName *string
	Notes      *string
	MoveCount  int
}

// SessionRepository provides access to sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create starts a session and returns its ID. source names the input
// ("keyboard", "gocube", "simulate").
func (r *SessionRepository) Create(source, deviceName, notes string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	var deviceNamePtr, notesPtr *string
	if deviceName != "" {
		deviceNamePtr = &deviceName
	}
	if notes != "" {
		notesPtr = &notes
	}

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at, source, device_name, notes)
		VALUES (?, ?, ?, ?, ?)
	`, id, startedAt.Format(timeLayout), source, deviceNamePtr, notesPtr)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// End marks a session as finished.
func (r *SessionRepository) End(sessionID string) error {
	res, err := r.db.Exec(`
		UPDATE sessions SET ended_at = ? WHERE session_id = ?
	`, time.Now().UTC().Format(timeLayout), sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

const sessionColumns = `
	s.session_id, s.started_at, s.ended_at, s.source, s.device_name, s.notes,
	(SELECT COUNT(*) FROM moves m WHERE m.session_id = s.session_id)
`

// Get retrieves one session.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions s WHERE s.session_id = ?`, sessionID)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// List returns the most recent sessions first. limit <= 0 means all.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions s ORDER BY s.started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(sc scanner) (*Session, error) {
	var s Session
	var startedAt string
	var endedAt *string
	if err := sc.Scan(&s.SessionID, &startedAt, &endedAt, &s.Source, &s.DeviceName, &s.Notes, &s.MoveCount); err != nil {
		return nil, err
	}

	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}
	s.StartedAt = t

	if endedAt != nil {
		e, err := time.Parse(timeLayout, *endedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end time: %w", err)
		}
		s.EndedAt = &e
	}
	return &s, nil
}

// Duration returns how long the session ran, or zero if it has not ended.
func (s Session) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}
