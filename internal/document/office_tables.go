package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// tableMarkup names the part and elements holding tables in a zipped office
// document. Element names are matched on their local part.
type tableMarkup struct {
	part  string
	table string
	row   string
	cell  string
	para  string
	// text limits character data to this element; empty accepts all text in a cell
	text string
}

var officeTableMarkup = map[Format]tableMarkup{
	FormatDOCX: {part: "word/document.xml", table: "tbl", row: "tr", cell: "tc", para: "p", text: "t"},
	FormatODT:  {part: "content.xml", table: "table", row: "table-row", cell: "table-cell", para: "p"},
}

// officeTables reads the table grids of a DOCX or ODT package. Nested tables
// are folded into the text of the enclosing cell.
func officeTables(data []byte, format Format) ([][][]string, error) {
	markup, ok := officeTableMarkup[format]
	if !ok {
		return nil, nil
	}
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s package: %w", format, err)
	}
	file, err := archive.Open(markup.part)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", markup.part, err)
	}
	defer file.Close()
	return readTables(file, markup)
}

func readTables(r io.Reader, markup tableMarkup) ([][][]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		tables [][][]string
		grid   [][]string
		row    []string
		cell   strings.Builder
		depth  int
		inText int
		inCell bool
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return tables, nil
		}
		if err != nil {
			return tables, fmt.Errorf("failed to read %s: %w", markup.part, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case markup.table:
				depth++
				if depth == 1 {
					grid = nil
				}
			case markup.row:
				if depth == 1 {
					row = nil
				}
			case markup.cell:
				if depth == 1 {
					cell.Reset()
					inCell = true
				}
			case markup.para:
				if inCell && cell.Len() > 0 {
					cell.WriteString(" ")
				}
			case markup.text:
				inText++
			}
		case xml.EndElement:
			switch t.Name.Local {
			case markup.table:
				if depth == 1 && len(grid) > 0 {
					tables = append(tables, grid)
				}
				depth = max(depth-1, 0)
			case markup.row:
				if depth == 1 {
					grid = append(grid, row)
				}
			case markup.cell:
				if depth == 1 {
					row = append(row, strings.Join(strings.Fields(cell.String()), " "))
					inCell = false
				}
			case markup.text:
				inText = max(inText-1, 0)
			}
		case xml.CharData:
			if inCell && (markup.text == "" || inText > 0) {
				cell.Write(t)
			}
		}
	}
}
