// Package document turns uploaded resume files into raw text, tables and
// OCR text. It carries no business logic.
package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/types"
)

// Extractor converts document bytes into a types.Document
type Extractor struct {
	recognizer TextRecognizer
}

// Option configures an Extractor
type Option func(*Extractor)

// WithRecognizer enables OCR of embedded images
func WithRecognizer(r TextRecognizer) Option {
	return func(e *Extractor) {
		e.recognizer = r
	}
}

// NewExtractor creates an Extractor. Without a recognizer images are
// inventoried but not read.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFile reads path and extracts it
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return e.Extract(ctx, data, filepath.Base(path))
}

// Extract detects the format of data and extracts text, tables, images and
// metadata. A document yielding neither text nor OCR text is rejected with
// ErrUnreadableDocument; any text at all, however sparse, is accepted.
func (e *Extractor) Extract(ctx context.Context, data []byte, filename string) (*types.Document, error) {
	lg := observability.LoggerFromContext(ctx)

	format, mime := Detect(data, filename)
	lg.Debug("detected document format", "format", format, "mime", mime, "bytes", len(data))

	raw, err := e.extractRaw(data, format)
	if err != nil {
		observability.DocumentsExtractedTotal.WithLabelValues(string(format), "error").Inc()
		return nil, err
	}

	doc := &types.Document{
		Text:     raw.Text,
		Tables:   raw.Tables,
		Images:   raw.Images,
		Metadata: raw.Metadata,
	}
	if doc.Tables == nil {
		doc.Tables = []types.Table{}
	}
	if doc.Images == nil {
		doc.Images = []types.Image{}
	}
	doc.Metadata.MIMEType = mime
	doc.Metadata.Pages = raw.Pages
	doc.Metadata.Hash = computeHash(data)

	doc.OCRText = recognizeImages(ctx, e.recognizer, doc.Images)
	doc.Structure = analyzeStructure(doc)

	if strings.TrimSpace(doc.Text) == "" && strings.TrimSpace(doc.OCRText) == "" {
		observability.DocumentsExtractedTotal.WithLabelValues(string(format), "unreadable").Inc()
		return nil, fmt.Errorf("%s %q: %w", format, filename, ErrUnreadableDocument)
	}

	observability.DocumentsExtractedTotal.WithLabelValues(string(format), "ok").Inc()
	lg.Info("document extracted",
		"format", format,
		"pages", doc.Structure.PageCount,
		"tables", len(doc.Tables),
		"images", doc.Structure.ImageCount,
		"has_ocr", doc.Structure.HasOCRContent)
	return doc, nil
}

func (e *Extractor) extractRaw(data []byte, format Format) (*rawContent, error) {
	switch format {
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX, FormatDOC, FormatODT, FormatRTF:
		return convertOffice(data, format)
	case FormatHTML:
		parsed, err := ParseHTML(string(data))
		if err != nil {
			return nil, &ExtractionError{Format: format, Message: "invalid markup", Cause: err}
		}
		raw := &rawContent{Text: parsed.Text, Pages: 1, Metadata: types.DocumentMetadata{Title: parsed.Title}}
		for i, grid := range parsed.Tables {
			if table, ok := NewTable(1, i, grid); ok {
				raw.Tables = append(raw.Tables, table)
			}
		}
		return raw, nil
	case FormatText:
		return &rawContent{Text: strings.ToValidUTF8(string(data), ""), Pages: 1}, nil
	default:
		return nil, &ExtractionError{Format: format, Message: "cannot extract text", Cause: ErrUnsupportedFormat}
	}
}
