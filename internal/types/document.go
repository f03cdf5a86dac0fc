// Package types provides type definitions for structured data used throughout the talent-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Document is the output of the document extractor
type Document struct {
	Text      string            `json:"text"`
	OCRText   string            `json:"ocr_text,omitempty"`
	Tables    []Table           `json:"tables"`
	Images    []Image           `json:"images"`
	Metadata  DocumentMetadata  `json:"metadata"`
	Structure DocumentStructure `json:"structure"`
}

// Table is a structured grid detected in a document. Headers is row 0 of the source grid.
type Table struct {
	Page    int                 `json:"page"`
	Index   int                 `json:"index"`
	Headers []string            `json:"headers"`
	Rows    [][]string          `json:"rows"`
	Text    string              `json:"table_text"`
	Records []map[string]string `json:"records,omitempty"`
}

// Image is an embedded image. Data is never serialized.
type Image struct {
	Page    int    `json:"page"`
	Index   int    `json:"index"`
	Format  string `json:"format,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Data    []byte `json:"-"`
	OCRText string `json:"ocr_text,omitempty"`
}

// DocumentMetadata describes the source file
type DocumentMetadata struct {
	MIMEType     string `json:"mime_type"`
	Pages        int    `json:"pages"`
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Creator      string `json:"creator,omitempty"`
	Producer     string `json:"producer,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
	ModDate      string `json:"modification_date,omitempty"`
	Hash         string `json:"hash"`
}

// DocumentStructure summarizes the layout signals used by extraction routing.
type DocumentStructure struct {
	HasTables     bool    `json:"has_tables"`
	HasImages     bool    `json:"has_images"`
	HasOCRContent bool    `json:"has_ocr_content"`
	PageCount     int     `json:"page_count"`
	TextDensity   float64 `json:"text_density"`
	ImageCount    int     `json:"image_count"`
}
