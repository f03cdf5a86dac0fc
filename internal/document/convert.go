package document

import (
	"bytes"
	"strings"

	"code.sajari.com/docconv"

	"github.com/jonathan/talent-matcher/internal/types"
)

var docconvExtensions = map[Format]string{
	FormatDOCX: ".docx",
	FormatDOC:  ".doc",
	FormatODT:  ".odt",
	FormatRTF:  ".rtf",
}

// convertOffice converts word-processor formats to plain text with docconv.
// DOCX and ODT tables are also read as grids from the package XML.
func convertOffice(data []byte, format Format) (*rawContent, error) {
	ext, ok := docconvExtensions[format]
	if !ok {
		return nil, &ExtractionError{Format: format, Message: "no converter", Cause: ErrUnsupportedFormat}
	}

	resp, err := docconv.Convert(bytes.NewReader(data), docconv.MimeTypeByExtension(ext), true)
	if err != nil {
		return nil, &ExtractionError{Format: format, Message: "conversion failed", Cause: err}
	}

	raw := &rawContent{
		Text:     resp.Body,
		Pages:    1,
		Metadata: metadataFromMap(resp.Meta),
	}
	// Table structure is best effort; the converted text already carries the cells.
	if grids, err := officeTables(data, format); err == nil {
		for i, grid := range grids {
			if table, ok := NewTable(1, i, grid); ok {
				raw.Tables = append(raw.Tables, table)
			}
		}
	}
	return raw, nil
}

func metadataFromMap(meta map[string]string) types.DocumentMetadata {
	lookup := func(keys ...string) string {
		for _, key := range keys {
			for k, v := range meta {
				if strings.EqualFold(k, key) {
					return strings.TrimSpace(v)
				}
			}
		}
		return ""
	}
	return types.DocumentMetadata{
		Title:        lookup("Title"),
		Author:       lookup("Author", "Creator"),
		Creator:      lookup("Creator", "Application"),
		Producer:     lookup("Producer"),
		CreationDate: lookup("CreatedDate", "Created", "CreationDate"),
		ModDate:      lookup("ModifiedDate", "Modified", "ModDate"),
	}
}
