package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/talent-matcher/internal/types"
)

// maxImageBytes bounds the stream data kept per embedded image for OCR
const maxImageBytes = 8 << 20

// rawContent is the format-specific output before cleaning and structure analysis
type rawContent struct {
	Text     string
	Pages    int
	Tables   []types.Table
	Images   []types.Image
	Metadata types.DocumentMetadata
}

// extractPDF reads page text with "--- Page N ---" markers, tables laid out
// in aligned columns, the document info dictionary and embedded image XObjects.
func extractPDF(data []byte) (content *rawContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = &ExtractionError{Format: FormatPDF, Message: fmt.Sprintf("malformed PDF: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Format: FormatPDF, Message: "failed to open PDF", Cause: err}
	}

	content = &rawContent{Pages: reader.NumPage()}

	var sb strings.Builder
	for i := 1; i <= content.Pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := pageText(page)
		if err == nil && strings.TrimSpace(text) != "" {
			fmt.Fprintf(&sb, "--- Page %d ---\n%s\n", i, text)
		}

		index := 0
		for _, grid := range pageTables(page) {
			if table, ok := NewTable(i, index, grid); ok {
				content.Tables = append(content.Tables, table)
				index++
			}
		}

		content.Images = append(content.Images, pageImages(page, i)...)
	}
	content.Text = strings.TrimSpace(sb.String())

	info := reader.Trailer().Key("Info")
	if !info.IsNull() {
		content.Metadata = types.DocumentMetadata{
			Title:        info.Key("Title").Text(),
			Author:       info.Key("Author").Text(),
			Creator:      info.Key("Creator").Text(),
			Producer:     info.Key("Producer").Text(),
			CreationDate: info.Key("CreationDate").Text(),
			ModDate:      info.Key("ModDate").Text(),
		}
	}
	return content, nil
}

// pageText isolates per-page panics so one broken page does not lose the rest
func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page text: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}

func pageImages(page pdf.Page, pageNum int) []types.Image {
	xobjects := page.Resources().Key("XObject")
	if xobjects.IsNull() {
		return nil
	}

	var images []types.Image
	for _, name := range xobjects.Keys() {
		obj := xobjects.Key(name)
		if obj.Key("Subtype").Name() != "Image" {
			continue
		}
		images = append(images, types.Image{
			Page:   pageNum,
			Index:  len(images),
			Format: imageFormat(obj.Key("Filter")),
			Width:  int(obj.Key("Width").Int64()),
			Height: int(obj.Key("Height").Int64()),
			Data:   imageData(obj),
		})
	}
	return images
}

func imageFormat(filter pdf.Value) string {
	name := filter.Name()
	if filter.Kind() == pdf.Array && filter.Len() > 0 {
		name = filter.Index(filter.Len() - 1).Name()
	}
	switch name {
	case "DCTDecode":
		return "jpeg"
	case "JPXDecode":
		return "jpx"
	case "CCITTFaxDecode":
		return "ccitt"
	case "JBIG2Decode":
		return "jbig2"
	default:
		return "raw"
	}
}

// imageData returns the decoded stream, or nil when the stream uses a filter
// the PDF reader cannot decode.
func imageData(obj pdf.Value) (data []byte) {
	defer func() {
		if recover() != nil {
			data = nil
		}
	}()
	rc := obj.Reader()
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, maxImageBytes))
	if err != nil {
		return nil
	}
	return data
}
