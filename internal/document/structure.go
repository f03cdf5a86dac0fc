package document

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// analyzeStructure summarizes the layout signals used for extraction routing.
// Text density is characters of main text per page.
func analyzeStructure(doc *types.Document) types.DocumentStructure {
	pages := doc.Metadata.Pages
	density := 0.0
	if pages > 0 {
		density = math.Round(float64(len([]rune(doc.Text)))/float64(pages)*100) / 100
	}
	return types.DocumentStructure{
		HasTables:     len(doc.Tables) > 0,
		HasImages:     len(doc.Images) > 0,
		HasOCRContent: strings.TrimSpace(doc.OCRText) != "",
		PageCount:     pages,
		TextDensity:   density,
		ImageCount:    len(doc.Images),
	}
}

// CombinedText joins every extraction source into one text: the main text,
// then table content, then OCR output, each under a section banner.
func CombinedText(doc *types.Document) string {
	if doc == nil {
		return ""
	}

	var parts []string
	if strings.TrimSpace(doc.Text) != "" {
		parts = append(parts, "=== MAIN DOCUMENT TEXT ===", doc.Text)
	}

	var tableParts []string
	for _, table := range doc.Tables {
		if table.Text != "" {
			tableParts = append(tableParts, fmt.Sprintf("Table from Page %d:", table.Page), table.Text)
		}
	}
	if len(tableParts) > 0 {
		parts = append(parts, "\n=== TABLE CONTENT ===")
		parts = append(parts, tableParts...)
	}

	if strings.TrimSpace(doc.OCRText) != "" {
		parts = append(parts, "\n=== OCR EXTRACTED TEXT ===", doc.OCRText)
	}
	return strings.Join(parts, "\n")
}

// ToJSON marshals the document (without image bytes) to pretty-printed JSON
func ToJSON(doc *types.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document to JSON: %w", err)
	}
	return data, nil
}
