package document

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// glyphs lays s out one fragment per rune, 6pt wide, starting at x
func glyphs(x float64, s string) []textFragment {
	out := make([]textFragment, 0, len(s))
	for _, r := range s {
		out = append(out, textFragment{X: x, W: 6, FontSize: 10, S: string(r)})
		x += 6
	}
	return out
}

func row(parts ...any) []textFragment {
	var out []textFragment
	for i := 0; i+1 < len(parts); i += 2 {
		out = append(out, glyphs(parts[i].(float64), parts[i+1].(string))...)
	}
	return out
}

func TestSplitCells(t *testing.T) {
	tests := []struct {
		name      string
		fragments []textFragment
		expected  []rowCell
	}{
		{
			name:      "prose stays one cell",
			fragments: append(glyphs(50, "Led"), glyphs(70, "the team")...),
			expected:  []rowCell{{X: 50, Text: "Led the team"}},
		},
		{
			name:      "wide gaps split columns",
			fragments: row(50.0, "B.Tech", 200.0, "NIT Trichy", 350.0, "2018"),
			expected:  []rowCell{{X: 50, Text: "B.Tech"}, {X: 200, Text: "NIT Trichy"}, {X: 350, Text: "2018"}},
		},
		{
			name:      "unsorted fragments are ordered by position",
			fragments: append(glyphs(300, "2019"), glyphs(40, "MBA")...),
			expected:  []rowCell{{X: 40, Text: "MBA"}, {X: 300, Text: "2019"}},
		},
		{
			name:      "empty row",
			fragments: nil,
			expected:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitCells(tt.fragments))
		})
	}
}

func TestDetectTables(t *testing.T) {
	rows := [][]textFragment{
		glyphs(50, "EDUCATION"),
		row(50.0, "Degree", 200.0, "University", 350.0, "Year"),
		row(50.0, "B.Tech", 200.0, "NIT Trichy", 350.0, "2018"),
		row(52.0, "M.Tech", 203.0, "IIT Delhi", 349.0, "2020"),
		glyphs(50, "Built compilers and databases"),
		row(50.0, "Go", 300.0, "Expert"),
		glyphs(50, "Single line after a lone two-cell row"),
	}
	cells := make([][]rowCell, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, splitCells(r))
	}

	tables := detectTables(cells)
	require.Len(t, tables, 1, "a lone multi-cell row is not a table")
	assert.Equal(t, [][]string{
		{"Degree", "University", "Year"},
		{"B.Tech", "NIT Trichy", "2018"},
		{"M.Tech", "IIT Delhi", "2020"},
	}, tables[0])

	table, ok := NewTable(1, 0, tables[0])
	require.True(t, ok)
	assert.Equal(t, []string{"Degree", "University", "Year"}, table.Headers)
	assert.Equal(t, "NIT Trichy", table.Records[0]["University"])
}

func TestDetectTables_MisalignedRowsSplit(t *testing.T) {
	cells := [][]rowCell{
		{{X: 50, Text: "Skill"}, {X: 200, Text: "Level"}},
		{{X: 50, Text: "Go"}, {X: 200, Text: "Expert"}},
		{{X: 50, Text: "Name"}, {X: 400, Text: "Jane"}},
		{{X: 50, Text: "City"}, {X: 401, Text: "Austin"}},
	}
	tables := detectTables(cells)
	require.Len(t, tables, 2)
	assert.Equal(t, [][]string{{"Skill", "Level"}, {"Go", "Expert"}}, tables[0])
	assert.Equal(t, [][]string{{"Name", "Jane"}, {"City", "Austin"}}, tables[1])
}

const docxBody = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>EDUCATION</w:t></w:r></w:p>
<w:tbl>
  <w:tr>
    <w:tc><w:p><w:r><w:t>Degree</w:t></w:r></w:p></w:tc>
    <w:tc><w:p><w:r><w:t>University</w:t></w:r></w:p></w:tc>
  </w:tr>
  <w:tr>
    <w:tc><w:p><w:r><w:t>Master of</w:t></w:r><w:r><w:t xml:space="preserve"> Science</w:t></w:r></w:p></w:tc>
    <w:tc><w:p><w:r><w:t>Stanford</w:t></w:r></w:p><w:p><w:r><w:t>University</w:t></w:r></w:p></w:tc>
  </w:tr>
  <w:tr>
    <w:tc><w:tbl><w:tr><w:tc><w:p><w:r><w:t>nested</w:t></w:r></w:p></w:tc></w:tr></w:tbl></w:tc>
    <w:tc><w:p><w:r><w:t>MIT</w:t></w:r></w:p></w:tc>
  </w:tr>
</w:tbl>
</w:body>
</w:document>`

func zipPackage(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestOfficeTables_DOCX(t *testing.T) {
	data := zipPackage(t, map[string]string{"word/document.xml": docxBody})

	grids, err := officeTables(data, FormatDOCX)
	require.NoError(t, err)
	require.Len(t, grids, 1, "nested tables fold into their cell")
	assert.Equal(t, [][]string{
		{"Degree", "University"},
		{"Master of Science", "Stanford University"},
		{"nested", "MIT"},
	}, grids[0])
}

func TestOfficeTables_ODT(t *testing.T) {
	content := `<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
 xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:text>
<table:table table:name="Education">
  <table:table-column/>
  <table:table-row><table:table-cell><text:p>Degree</text:p></table:table-cell><table:table-cell><text:p>Year</text:p></table:table-cell></table:table-row>
  <table:table-row><table:table-cell><text:p>B.Sc <text:span>Physics</text:span></text:p></table:table-cell><table:table-cell><text:p>2016</text:p></table:table-cell></table:table-row>
</table:table>
</office:text></office:body></office:document-content>`
	data := zipPackage(t, map[string]string{"content.xml": content})

	grids, err := officeTables(data, FormatODT)
	require.NoError(t, err)
	require.Len(t, grids, 1)
	assert.Equal(t, [][]string{{"Degree", "Year"}, {"B.Sc Physics", "2016"}}, grids[0])
}

func TestOfficeTables_Errors(t *testing.T) {
	grids, err := officeTables([]byte("plain"), FormatRTF)
	require.NoError(t, err)
	assert.Nil(t, grids, "formats without a zipped package have no table markup")

	_, err = officeTables([]byte("not a zip"), FormatDOCX)
	require.Error(t, err)

	_, err = officeTables(zipPackage(t, map[string]string{"other.xml": "<a/>"}), FormatDOCX)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "word/document.xml"))
}
