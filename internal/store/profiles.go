package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/talent-matcher/internal/types"
)

// SaveProfile stores a profile. When sourceHash is set, a profile extracted
// from the same document replaces the earlier one and keeps its ID.
func (s *Store) SaveProfile(ctx context.Context, profile *types.CandidateProfile, sourceHash string) (uuid.UUID, error) {
	if profile == nil {
		return uuid.Nil, fmt.Errorf("profile is required")
	}
	data, err := marshalDocument("profile", profile)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	if sourceHash == "" {
		err = s.pool.QueryRow(ctx,
			`INSERT INTO candidate_profiles (name, email, profile)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			profile.PersonalInfo.Name, normalizeEmail(profile.PersonalInfo.Email), data,
		).Scan(&id)
	} else {
		err = s.pool.QueryRow(ctx,
			`INSERT INTO candidate_profiles (name, email, source_hash, profile)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (source_hash) WHERE source_hash <> ''
			 DO UPDATE SET name = $1, email = $2, profile = $4, created_at = NOW()
			 RETURNING id`,
			profile.PersonalInfo.Name, normalizeEmail(profile.PersonalInfo.Email), sourceHash, data,
		).Scan(&id)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return id, nil
}

// GetProfile retrieves a profile by ID; it returns nil when none exists
func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*ProfileRecord, error) {
	var rec ProfileRecord
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, source_hash, profile, created_at
		 FROM candidate_profiles WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.Name, &rec.Email, &rec.SourceHash, &data, &rec.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if err := json.Unmarshal(data, &rec.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
	}
	return &rec, nil
}

// FindProfilesByEmail lists stored profiles for an email address, newest first
func (s *Store) FindProfilesByEmail(ctx context.Context, email string) ([]ProfileRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, source_hash, profile, created_at
		 FROM candidate_profiles WHERE email = $1 ORDER BY created_at DESC`,
		normalizeEmail(email),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}
	defer rows.Close()

	var records []ProfileRecord
	for rows.Next() {
		var rec ProfileRecord
		var data []byte
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.SourceHash, &data, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		if err := json.Unmarshal(data, &rec.Profile); err != nil {
			return nil, fmt.Errorf("failed to decode profile %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return records, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
