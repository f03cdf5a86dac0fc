package document

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// columnGapFactor is the horizontal gap, in multiples of the font size,
	// that separates two table cells on one visual row
	columnGapFactor = 1.5
	// columnAlignTolerance is how far, in points, a cell may start from the
	// column start of the table's first row
	columnAlignTolerance = 15.0
	defaultFontSize      = 10.0
)

// textFragment is a positioned run of text on a page
type textFragment struct {
	X, W     float64
	FontSize float64
	S        string
}

// rowCell is a cell on one visual row with its left edge
type rowCell struct {
	X    float64
	Text string
}

// pageTables detects tables on a page from text positions: consecutive rows
// split into the same number of aligned cells form one grid.
func pageTables(page pdf.Page) [][][]string {
	rows, err := pageRows(page)
	if err != nil {
		return nil
	}
	cells := make([][]rowCell, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, splitCells(row))
	}
	return detectTables(cells)
}

func pageRows(page pdf.Page) ([][]textFragment, error) {
	byRow, err := page.GetTextByRow()
	if err != nil {
		return nil, err
	}
	rows := make([][]textFragment, 0, len(byRow))
	for _, row := range byRow {
		fragments := make([]textFragment, 0, len(row.Content))
		for _, t := range row.Content {
			fragments = append(fragments, textFragment{X: t.X, W: t.W, FontSize: t.FontSize, S: t.S})
		}
		rows = append(rows, fragments)
	}
	return rows, nil
}

// splitCells joins fragments left to right and starts a new cell wherever
// the gap to the previous fragment is wider than a column gap
func splitCells(fragments []textFragment) []rowCell {
	sorted := make([]textFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var (
		cells   []rowCell
		current strings.Builder
		start   float64
		end     float64
		size    float64
	)
	flush := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			cells = append(cells, rowCell{X: start, Text: text})
		}
		current.Reset()
	}

	for i, f := range sorted {
		fontSize := f.FontSize
		if fontSize <= 0 {
			fontSize = defaultFontSize
		}
		width := f.W
		if width <= 0 {
			width = fontSize * 0.5 * float64(len([]rune(f.S)))
		}

		if i > 0 {
			gap := f.X - end
			switch {
			case gap >= math.Max(size, fontSize)*columnGapFactor:
				flush()
				start = f.X
			case gap > fontSize*0.15 && !strings.HasSuffix(current.String(), " "):
				current.WriteString(" ")
			}
		} else {
			start = f.X
		}
		current.WriteString(f.S)
		end = f.X + width
		size = fontSize
	}
	flush()
	return cells
}

// detectTables groups runs of at least two consecutive multi-cell rows with
// the same column count and aligned column starts
func detectTables(rows [][]rowCell) [][][]string {
	var (
		tables [][][]string
		run    [][]rowCell
	)
	closeRun := func() {
		if len(run) >= 2 {
			grid := make([][]string, 0, len(run))
			for _, row := range run {
				texts := make([]string, len(row))
				for i, cell := range row {
					texts[i] = cell.Text
				}
				grid = append(grid, texts)
			}
			tables = append(tables, grid)
		}
		run = nil
	}

	for _, row := range rows {
		if len(row) < 2 {
			closeRun()
			continue
		}
		if len(run) > 0 && !alignedWith(run[0], row) {
			closeRun()
		}
		run = append(run, row)
	}
	closeRun()
	return tables
}

func alignedWith(first, row []rowCell) bool {
	if len(first) != len(row) {
		return false
	}
	for i := range row {
		if math.Abs(first[i].X-row[i].X) > columnAlignTolerance {
			return false
		}
	}
	return true
}
