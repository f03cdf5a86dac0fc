package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/talent-matcher/internal/interview"
	"github.com/jonathan/talent-matcher/internal/types"
)

// SaveSession inserts or updates an interview session. A session already
// stored as completed or failed is never overwritten; the write fails with an
// error matching interview.ErrSessionClosed.
func (s *Store) SaveSession(ctx context.Context, session *types.InterviewSession) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	id, err := uuid.Parse(session.ID)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", session.ID, err)
	}
	data, err := marshalDocument("session", session)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO interview_sessions (id, domain, difficulty, status, overall_score, session, created_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE
		 SET status = $4, overall_score = $5, session = $6, completed_at = $8
		 WHERE interview_sessions.status = 'active'`,
		id, session.Domain, session.Difficulty, string(session.Status), session.OverallScore,
		data, session.CreatedAt, session.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", session.ID, interview.ErrSessionClosed)
	}
	return nil
}

// GetSession retrieves an interview session; nil when none exists
func (s *Store) GetSession(ctx context.Context, id string) (*types.InterviewSession, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid session id %q: %w", id, err)
	}

	var data []byte
	err = s.pool.QueryRow(ctx,
		`SELECT session FROM interview_sessions WHERE id = $1`,
		parsed,
	).Scan(&data)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session types.InterviewSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &session, nil
}

// ListSessions returns recent sessions, optionally filtered by status
func (s *Store) ListSessions(ctx context.Context, status types.SessionStatus, limit int) ([]types.InterviewSession, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT session FROM interview_sessions
		 WHERE $1 = '' OR status = $1
		 ORDER BY created_at DESC LIMIT $2`,
		string(status), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []types.InterviewSession
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		var session types.InterviewSession
		if err := json.Unmarshal(data, &session); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
