package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-matcher/internal/types"
)

// ProfileRecord is a stored candidate profile with its lookup columns
type ProfileRecord struct {
	ID         uuid.UUID              `json:"id"`
	Name       string                 `json:"name"`
	Email      string                 `json:"email"`
	SourceHash string                 `json:"source_hash,omitempty"`
	Profile    types.CandidateProfile `json:"profile"`
	CreatedAt  time.Time              `json:"created_at"`
}

// MatchRun is one stored recommendation list
type MatchRun struct {
	ID        uuid.UUID             `json:"id"`
	ProfileID *uuid.UUID            `json:"profile_id,omitempty"`
	Kind      types.OpportunityKind `json:"kind"`
	Results   []types.MatchResult   `json:"results"`
	CreatedAt time.Time             `json:"created_at"`
}
