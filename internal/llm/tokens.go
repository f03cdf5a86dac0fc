package llm

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/jonathan/talent-matcher/internal/observability"
	tiktoken "github.com/pkoukk/tiktoken-go"
)

// fallbackEncoding approximates Gemini tokenization closely enough for budgeting
const fallbackEncoding = "cl100k_base"

var (
	loadEncoding = tiktoken.GetEncoding
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
	encodingErr  error
)

func getEncoding(ctx context.Context) (*tiktoken.Tiktoken, error) {
	encodingOnce.Do(func() {
		encoding, encodingErr = loadEncoding(fallbackEncoding)
		if encodingErr != nil {
			observability.LoggerFromContext(ctx).Warn("token encoding unavailable, using character estimate", slog.Any("error", encodingErr))
		}
	})
	return encoding, encodingErr
}

// CountTokens returns the token count of text, estimating ~4 characters per
// token when no encoding can be loaded.
func CountTokens(ctx context.Context, text string) int {
	enc, err := getEncoding(ctx)
	if err != nil {
		return (len(text) + 3) / 4
	}
	return len(enc.Encode(text, nil, nil))
}

// TruncateToTokens cuts text to at most budget tokens. A non-positive budget
// leaves the text untouched. A token boundary inside a multi-byte character
// drops the partial character.
func TruncateToTokens(ctx context.Context, text string, budget int) string {
	if budget <= 0 || text == "" {
		return text
	}

	enc, err := getEncoding(ctx)
	if err != nil {
		limit := budget * 4
		if len(text) <= limit {
			return text
		}
		return truncateRunes(text, limit)
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= budget {
		return text
	}
	return strings.ToValidUTF8(enc.Decode(tokens[:budget]), "")
}

// truncateRunes keeps whole runes within maxBytes
func truncateRunes(text string, maxBytes int) string {
	if len(text) <= maxBytes {
		return text
	}
	cut := 0
	for i := range text {
		if i > maxBytes {
			break
		}
		cut = i
	}
	return text[:cut]
}
