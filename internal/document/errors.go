package document

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreadableDocument is returned when neither text nor OCR output could be obtained
	ErrUnreadableDocument = errors.New("unreadable document")
	// ErrUnsupportedFormat is returned for content types the extractor cannot convert
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// ExtractionError wraps a failure to read a specific document format
type ExtractionError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
