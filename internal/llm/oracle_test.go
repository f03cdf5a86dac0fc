package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/types"
)

type fakeClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeClient) GetModel(tier ModelTier) string { return "fake" }
func (f *fakeClient) Close() error                   { return nil }

func TestClientOracle_Extract(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		wantErr  error
		wantJSON string
	}{
		{
			name:     "valid object",
			response: "```json\n{\"skills\": [\"Go\"]}\n```",
			wantJSON: `{"skills": ["Go"]}`,
		},
		{
			name:    "provider failure",
			err:     errors.New("connection refused"),
			wantErr: ErrOracleUnavailable,
		},
		{
			name:     "not json",
			response: "Sorry, I cannot help with that.",
			wantErr:  ErrParseFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := NewOracle(&fakeClient{response: tt.response, err: tt.err}, TierLite)
			raw, err := oracle.Extract(context.Background(), "prompt")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(raw))
		})
	}
}

func TestDisabledOracle(t *testing.T) {
	oracle := Disabled()

	_, err := oracle.Extract(context.Background(), "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOracleUnavailable)
	assert.NotErrorIs(t, err, ErrParseFailure)

	var oracleErr *OracleError
	require.ErrorAs(t, err, &oracleErr)
	assert.Equal(t, types.ErrorOracleUnavailable, oracleErr.Kind)

	assert.False(t, IsEnabled(oracle))
	assert.False(t, IsEnabled(nil))
	assert.True(t, IsEnabled(OracleFunc(func(context.Context, string) (json.RawMessage, error) { return nil, nil })))
}

func TestConnect_NoKeyIsDisabled(t *testing.T) {
	oracle, closeFn, err := Connect(context.Background(), DefaultConfig(), "", TierStandard)
	require.NoError(t, err)
	assert.False(t, IsEnabled(oracle))
	assert.NoError(t, closeFn())
}

func TestExtractInto(t *testing.T) {
	skillsSchema := `{"type": "array", "items": {"type": "string"}}`

	t.Run("decodes conforming output", func(t *testing.T) {
		oracle := OracleFunc(func(context.Context, string) (json.RawMessage, error) {
			return json.RawMessage(`["Go", "SQL"]`), nil
		})
		var skills []string
		require.NoError(t, ExtractInto(context.Background(), oracle, "p", skillsSchema, &skills))
		assert.Equal(t, []string{"Go", "SQL"}, skills)
	})

	t.Run("schema violation is a parse failure", func(t *testing.T) {
		oracle := OracleFunc(func(context.Context, string) (json.RawMessage, error) {
			return json.RawMessage(`{"skills": "Go"}`), nil
		})
		var skills []string
		err := ExtractInto(context.Background(), oracle, "p", skillsSchema, &skills)
		assert.ErrorIs(t, err, ErrParseFailure)
	})

	t.Run("oracle error passes through", func(t *testing.T) {
		var skills []string
		err := ExtractInto(context.Background(), Disabled(), "p", skillsSchema, &skills)
		assert.ErrorIs(t, err, ErrOracleUnavailable)
	})

	t.Run("nil oracle", func(t *testing.T) {
		var skills []string
		err := ExtractInto(context.Background(), nil, "p", "", &skills)
		assert.ErrorIs(t, err, ErrOracleUnavailable)
	})
}
