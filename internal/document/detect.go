package document

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format is the document family the extractor dispatches on
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatDOC     Format = "doc"
	FormatODT     Format = "odt"
	FormatRTF     Format = "rtf"
	FormatHTML    Format = "html"
	FormatText    Format = "text"
	FormatUnknown Format = "unknown"
)

var mimeFormats = map[string]Format{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"application/msword":                      FormatDOC,
	"application/x-ole-storage":               FormatDOC,
	"application/vnd.oasis.opendocument.text": FormatODT,
	"text/rtf":                                FormatRTF,
	"application/rtf":                         FormatRTF,
	"text/html":                               FormatHTML,
	"text/plain":                              FormatText,
}

var extensionFormats = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".doc":  FormatDOC,
	".odt":  FormatODT,
	".rtf":  FormatRTF,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".txt":  FormatText,
	".md":   FormatText,
}

// Detect sniffs the content type of data. The filename extension is only
// consulted when sniffing is inconclusive (zip containers, generic text).
func Detect(data []byte, filename string) (Format, string) {
	mime := mimetype.Detect(data)
	for m := mime; m != nil; m = m.Parent() {
		base := strings.TrimSpace(strings.Split(m.String(), ";")[0])
		if format, ok := mimeFormats[base]; ok {
			if format == FormatText {
				if byExt, ok := extensionFormats[strings.ToLower(filepath.Ext(filename))]; ok && byExt != FormatPDF {
					return byExt, mime.String()
				}
			}
			return format, mime.String()
		}
	}

	if byExt, ok := extensionFormats[strings.ToLower(filepath.Ext(filename))]; ok && byExt != FormatPDF {
		return byExt, mime.String()
	}
	return FormatUnknown, mime.String()
}
