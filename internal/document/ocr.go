package document

import (
	"context"
	"strings"

	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/types"
)

// TextRecognizer reads text out of an embedded image. The OCR engine itself
// is an external collaborator injected with WithRecognizer.
type TextRecognizer interface {
	Recognize(ctx context.Context, image types.Image) (string, error)
}

// RecognizerFunc adapts a function to TextRecognizer
type RecognizerFunc func(ctx context.Context, image types.Image) (string, error)

// Recognize calls f(ctx, image)
func (f RecognizerFunc) Recognize(ctx context.Context, image types.Image) (string, error) {
	return f(ctx, image)
}

// recognizeImages runs OCR over every image that carries data. Per-image
// failures are logged and skipped. The cleaned text is stored on each image
// and the combined text is returned.
func recognizeImages(ctx context.Context, recognizer TextRecognizer, images []types.Image) string {
	if recognizer == nil {
		return ""
	}
	lg := observability.LoggerFromContext(ctx)

	var parts []string
	for i := range images {
		if len(images[i].Data) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			lg.Warn("ocr interrupted", "error", err)
			break
		}

		text, err := recognizer.Recognize(ctx, images[i])
		if err != nil {
			lg.Warn("ocr failed for image", "page", images[i].Page, "index", images[i].Index, "error", err)
			continue
		}
		cleaned := CleanOCRText(text)
		if cleaned == "" {
			continue
		}
		images[i].OCRText = cleaned
		parts = append(parts, cleaned)
	}
	return strings.Join(parts, "\n")
}
