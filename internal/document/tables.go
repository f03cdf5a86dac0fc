package document

import (
	"strconv"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

// CleanTable drops rows with no content and collapses whitespace inside cells
func CleanTable(grid [][]string) [][]string {
	cleaned := make([][]string, 0, len(grid))
	for _, row := range grid {
		hasContent := false
		cleanedRow := make([]string, len(row))
		for i, cell := range row {
			cleanedRow[i] = anyWhitespace.ReplaceAllString(strings.TrimSpace(cell), " ")
			if cleanedRow[i] != "" {
				hasContent = true
			}
		}
		if hasContent {
			cleaned = append(cleaned, cleanedRow)
		}
	}
	return cleaned
}

// NewTable cleans a raw grid and builds a table from it. Row 0 becomes the
// header. It returns false when the grid has no non-empty rows.
func NewTable(page, index int, grid [][]string) (types.Table, bool) {
	cleaned := CleanTable(grid)
	if len(cleaned) == 0 {
		return types.Table{}, false
	}

	table := types.Table{
		Page:    page,
		Index:   index,
		Headers: cleaned[0],
		Rows:    cleaned[1:],
		Text:    TableText(cleaned),
	}
	table.Records = records(table.Headers, table.Rows)
	return table, true
}

// TableText renders a grid one row per line with non-empty cells joined by " | "
func TableText(grid [][]string) string {
	lines := make([]string, 0, len(grid))
	for _, row := range grid {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, " | "))
		}
	}
	return strings.Join(lines, "\n")
}

func records(headers []string, rows [][]string) []map[string]string {
	if len(rows) == 0 {
		return nil
	}
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]string, len(row))
		for i, cell := range row {
			key := ""
			if i < len(headers) {
				key = headers[i]
			}
			if key == "" {
				key = "column_" + strconv.Itoa(i)
			}
			record[key] = cell
		}
		out = append(out, record)
	}
	return out
}

