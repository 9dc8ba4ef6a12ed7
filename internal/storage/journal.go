package storage

import (
	"fmt"
	"sync"
)

// Journal records one session. It is safe for concurrent use; the first
// write error is kept and reported by Close.
type Journal struct {
	db        *DB
	sessions  *SessionRepository
	moves     *MoveRepository
	sessionID string

	mu  sync.Mutex
	err error
}

// StartJournal opens a new session on db.
func StartJournal(db *DB, source, deviceName string) (*Journal, error) {
	sessions := NewSessionRepository(db)
	id, err := sessions.Create(source, deviceName, "")
	if err != nil {
		return nil, err
	}
	return &Journal{
		db:        db,
		sessions:  sessions,
		moves:     NewMoveRepository(db),
		sessionID: id,
	}, nil
}

// SessionID returns the journal's session.
func (j *Journal) SessionID() string {
	return j.sessionID
}

// Move records a completed move.
func (j *Journal) Move(m MoveRecord) {
	m.SessionID = j.sessionID
	_, err := j.moves.Create(m)
	j.keep(err)
}

// Drop records a dropped symbol.
func (j *Journal) Drop(d DropRecord) {
	d.SessionID = j.sessionID
	j.keep(j.moves.CreateDrop(d))
}

func (j *Journal) keep(err error) {
	if err == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err == nil {
		j.err = err
	}
}

// Close ends the session.
func (j *Journal) Close() error {
	endErr := j.sessions.End(j.sessionID)

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return fmt.Errorf("journal write failed: %w", j.err)
	}
	return endErr
}
