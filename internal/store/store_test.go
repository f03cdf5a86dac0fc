package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/types"
)

func TestSchema_DefinesTables(t *testing.T) {
	schema := Schema()
	for _, table := range []string{"candidate_profiles", "match_runs", "interview_sessions"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, schema, "CHECK (status IN ('active', 'completed', 'failed'))")
}

func TestConnect_RequiresURL(t *testing.T) {
	_, err := Connect(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is required")
}

func TestMarshalDocument(t *testing.T) {
	data, err := marshalDocument("results", []types.MatchResult{{OpportunityID: "1", Score: 0.5}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"opportunity_id":"1"`)

	_, err = marshalDocument("bad", map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal bad")
}

func TestSaveMatchRun_RejectsUnknownKind(t *testing.T) {
	s := &Store{}
	_, err := s.SaveMatchRun(context.Background(), nil, types.OpportunityKind("gig"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown match kind")
}

func TestSaveSession_Validation(t *testing.T) {
	s := &Store{}
	require.Error(t, s.SaveSession(context.Background(), nil))

	err := s.SaveSession(context.Background(), &types.InterviewSession{ID: "not-a-uuid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid session id")

	_, err = s.GetSession(context.Background(), "nope")
	require.Error(t, err)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", normalizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "", normalizeEmail(""))
}
