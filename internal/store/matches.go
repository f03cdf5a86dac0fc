package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/talent-matcher/internal/types"
)

// SaveMatchRun stores a ranked recommendation list. profileID may be nil for
// profiles that were never stored.
func (s *Store) SaveMatchRun(ctx context.Context, profileID *uuid.UUID, kind types.OpportunityKind, results []types.MatchResult) (uuid.UUID, error) {
	if kind != types.KindJob && kind != types.KindCourse {
		return uuid.Nil, fmt.Errorf("unknown match kind %q", kind)
	}
	if results == nil {
		results = []types.MatchResult{}
	}
	data, err := marshalDocument("match results", results)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO match_runs (profile_id, kind, results)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		profileID, string(kind), data,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save %s matches: %w", kind, err)
	}
	return id, nil
}

// GetMatchRun retrieves a stored recommendation list; nil when none exists
func (s *Store) GetMatchRun(ctx context.Context, id uuid.UUID) (*MatchRun, error) {
	var run MatchRun
	var kind string
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, profile_id, kind, results, created_at FROM match_runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &run.ProfileID, &kind, &data, &run.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match run: %w", err)
	}
	run.Kind = types.OpportunityKind(kind)
	if err := json.Unmarshal(data, &run.Results); err != nil {
		return nil, fmt.Errorf("failed to decode match run %s: %w", id, err)
	}
	return &run, nil
}

// ListMatchRuns returns a profile's recommendation lists, newest first
func (s *Store) ListMatchRuns(ctx context.Context, profileID uuid.UUID, limit int) ([]MatchRun, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, profile_id, kind, results, created_at
		 FROM match_runs WHERE profile_id = $1 ORDER BY created_at DESC LIMIT $2`,
		profileID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list match runs: %w", err)
	}
	defer rows.Close()

	var runs []MatchRun
	for rows.Next() {
		var run MatchRun
		var kind string
		var data []byte
		if err := rows.Scan(&run.ID, &run.ProfileID, &kind, &data, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match run: %w", err)
		}
		run.Kind = types.OpportunityKind(kind)
		if err := json.Unmarshal(data, &run.Results); err != nil {
			return nil, fmt.Errorf("failed to decode match run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match runs: %w", err)
	}
	return runs, nil
}
