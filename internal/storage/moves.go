package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// MoveRecord is one completed layer rotation.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	Seq       uint64
	Symbol    string
	Axis      string
	Layer     int
	Members   int
	// Start is the engine clock offset when the move began.
	Start    time.Duration
	Duration time.Duration
}

// MoveRepository provides access to moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

const insertMove = `
	INSERT INTO moves (session_id, seq, symbol, axis, layer, members, start_ms, duration_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// Create records one move and returns its ID.
func (r *MoveRepository) Create(m MoveRecord) (int64, error) {
	result, err := r.db.Exec(insertMove,
		m.SessionID, m.Seq, m.Symbol, m.Axis, m.Layer, m.Members,
		m.Start.Milliseconds(), m.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}
	return id, nil
}

// CreateBatch records several moves in a single transaction.
func (r *MoveRepository) CreateBatch(moves []MoveRecord) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for _, m := range moves {
			_, err := tx.Exec(insertMove,
				m.SessionID, m.Seq, m.Symbol, m.Axis, m.Layer, m.Members,
				m.Start.Milliseconds(), m.Duration.Milliseconds())
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", m.Seq, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all moves of a session in play order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, seq, symbol, axis, layer, members, start_ms, duration_ms
		FROM moves
		WHERE session_id = ?
		ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		var startMs, durMs int64
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.Seq, &m.Symbol, &m.Axis, &m.Layer, &m.Members, &startMs, &durMs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		m.Start = time.Duration(startMs) * time.Millisecond
		m.Duration = time.Duration(durMs) * time.Millisecond
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// Count returns the number of moves in a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// DropRecord is one symbol that produced no move.
type DropRecord struct {
	SessionID string
	Symbol    string
	Reason    string
	At        time.Duration
}

// CreateDrop records a dropped symbol.
func (r *MoveRepository) CreateDrop(d DropRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO drops (session_id, symbol, reason, ts_ms) VALUES (?, ?, ?, ?)
	`, d.SessionID, d.Symbol, d.Reason, d.At.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to create drop: %w", err)
	}
	return nil
}

// DropCounts returns dropped symbols per reason for a session.
func (r *MoveRepository) DropCounts(sessionID string) (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT reason, COUNT(*) FROM drops WHERE session_id = ? GROUP BY reason
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count drops: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("failed to scan drop count: %w", err)
		}
		counts[reason] = n
	}
	return counts, rows.Err()
}
