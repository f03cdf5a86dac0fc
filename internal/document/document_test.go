package document

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/types"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		filename string
		expected Format
	}{
		{name: "pdf magic", data: []byte("%PDF-1.4\n1 0 obj\n"), filename: "resume.bin", expected: FormatPDF},
		{name: "html markup", data: []byte("<!DOCTYPE html><html><body><p>Hi</p></body></html>"), filename: "", expected: FormatHTML},
		{name: "plain text", data: []byte("Jane Doe\nSoftware Engineer\n"), filename: "resume.txt", expected: FormatText},
		{name: "markdown by extension", data: []byte("# Jane Doe\n"), filename: "resume.md", expected: FormatText},
		{name: "binary", data: []byte{0x00, 0x01, 0x02, 0xff, 0xfe}, filename: "resume.bin", expected: FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, mime := Detect(tt.data, tt.filename)
			assert.Equal(t, tt.expected, format)
			assert.NotEmpty(t, mime)
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "only whitespace", input: "   \n  \n  ", expected: ""},
		{name: "collapses spaces", input: "Line    with \t multiple   spaces", expected: "Line with multiple spaces"},
		{name: "normalizes line endings", input: "Line 1\r\nLine 2\rLine 3", expected: "Line 1\nLine 2\nLine 3"},
		{name: "caps blank lines", input: "Line 1\n\n\n\n\nLine 2", expected: "Line 1\n\nLine 2"},
		{name: "strips page markers", input: "--- Page 1 ---\nJane Doe\n--- Page 2 ---\nSkills", expected: "Jane Doe\n\nSkills"},
		{name: "form feed", input: "Page one\fPage two", expected: "Page one\nPage two"},
		{name: "normalizes bullets", input: "▪ Go\n◦ Python\n‣ SQL", expected: "• Go\n• Python\n• SQL"},
		{name: "normalizes dashes", input: "Jan 2020 – Present", expected: "Jan 2020 - Present"},
		{name: "splits merged words", input: "Senior EngineerGoogle", expected: "Senior Engineer Google"},
		{name: "splits year from word", input: "2019Present", expected: "2019 Present"},
		{name: "keeps mixed-case terms", input: "JavaScript, PostgreSQL and GitHub", expected: "JavaScript, PostgreSQL and GitHub"},
		{name: "keeps urls and emails", input: "linkedin.com/in/JaneDoe janeDoe@example.com", expected: "linkedin.com/in/JaneDoe janeDoe@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}

func TestCleanOCRText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "flattens whitespace", input: "Python\n\n  Java", expected: "Python Java"},
		{name: "drops pipe runs", input: "Skills ||| Python", expected: "Skills  Python"},
		{name: "drops underscore runs", input: "Name: _____ Jane", expected: "Name:  Jane"},
		{name: "collapses dots", input: "Education.......MIT", expected: "Education...MIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanOCRText(tt.input))
		})
	}
}

func TestStripSymbols(t *testing.T) {
	assert.Equal(t, "C++, C# and Go (2020)", StripSymbols("C++, C# and Go (2020)™"))
	assert.Equal(t, "jane@example.com +1 (555) 010-2000", StripSymbols("jane@example.com +1 (555) 010-2000"))
	assert.Equal(t, "José Müller", StripSymbols("José Müller★"))
	assert.Equal(t, "Python; Django; Kubernetes", StripSymbols("Python; Django; Kubernetes"))
	assert.Equal(t, "Percentage: 87.5%", StripSymbols("Percentage: 87.5%"))
}

func TestIsBulletLine(t *testing.T) {
	assert.True(t, IsBulletLine("• Built a parser"))
	assert.True(t, IsBulletLine("  - Item"))
	assert.False(t, IsBulletLine("Built a parser"))
}

func TestNewTable(t *testing.T) {
	t.Run("discards empty grid", func(t *testing.T) {
		_, ok := NewTable(1, 0, [][]string{{"", "  "}, {}})
		assert.False(t, ok)
	})

	t.Run("header and rows", func(t *testing.T) {
		grid := [][]string{
			{"Degree", "University", "Year"},
			{"", "", ""},
			{"B.Sc   Computer Science", " MIT ", "2020"},
		}
		table, ok := NewTable(2, 1, grid)
		require.True(t, ok)

		assert.Equal(t, 2, table.Page)
		assert.Equal(t, []string{"Degree", "University", "Year"}, table.Headers)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, []string{"B.Sc Computer Science", "MIT", "2020"}, table.Rows[0])
		assert.Equal(t, "Degree | University | Year\nB.Sc Computer Science | MIT | 2020", table.Text)
		require.Len(t, table.Records, 1)
		assert.Equal(t, "MIT", table.Records[0]["University"])
	})

	t.Run("header only", func(t *testing.T) {
		table, ok := NewTable(1, 0, [][]string{{"B.Sc Computer Science", "MIT", "2020"}})
		require.True(t, ok)
		assert.Empty(t, table.Rows)
		assert.Nil(t, table.Records)
	})

	t.Run("missing header cells get column keys", func(t *testing.T) {
		table, ok := NewTable(1, 0, [][]string{{"Degree"}, {"MBA", "Wharton"}})
		require.True(t, ok)
		assert.Equal(t, "Wharton", table.Records[0]["column_1"])
	})
}

func TestParseHTML(t *testing.T) {
	html := `<html><head><title>Jane Doe - Resume</title><script>var x = 1;</script></head>
<body>
<nav>Home | About</nav>
<h1>Jane Doe</h1>
<p>Backend engineer</p>
<ul><li>Go</li><li>Python</li></ul>
<table>
<tr><th>Degree</th><th>Institution</th></tr>
<tr><td>B.Sc Computer Science</td><td>MIT</td></tr>
</table>
</body></html>`

	content, err := ParseHTML(html)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe - Resume", content.Title)
	assert.Contains(t, content.Text, "Jane Doe\nBackend engineer\nGo\nPython")
	assert.NotContains(t, content.Text, "var x")
	assert.NotContains(t, content.Text, "Home | About")
	require.Len(t, content.Tables, 1)
	assert.Equal(t, []string{"B.Sc Computer Science", "MIT"}, content.Tables[0][1])
}

func TestExtractor_Extract(t *testing.T) {
	ctx := context.Background()

	t.Run("plain text", func(t *testing.T) {
		doc, err := NewExtractor().Extract(ctx, []byte("Jane Doe\njane@example.com\n"), "resume.txt")
		require.NoError(t, err)
		assert.Contains(t, doc.Text, "jane@example.com")
		assert.Equal(t, 1, doc.Structure.PageCount)
		assert.Len(t, doc.Metadata.Hash, 64)
		assert.NotNil(t, doc.Tables)
		assert.NotNil(t, doc.Images)
	})

	t.Run("html with table", func(t *testing.T) {
		html := "<html><body><p>Jane Doe</p><table><tr><th>Degree</th></tr><tr><td>MBA</td></tr></table></body></html>"
		doc, err := NewExtractor().Extract(ctx, []byte(html), "resume.html")
		require.NoError(t, err)
		assert.True(t, doc.Structure.HasTables)
		require.Len(t, doc.Tables, 1)
		assert.Equal(t, []string{"Degree"}, doc.Tables[0].Headers)
	})

	t.Run("empty document is unreadable", func(t *testing.T) {
		_, err := NewExtractor().Extract(ctx, []byte("   \n\n"), "resume.txt")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnreadableDocument))
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := NewExtractor().Extract(ctx, []byte{0x00, 0x01, 0x02, 0xff}, "resume.bin")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	})

	t.Run("malformed pdf", func(t *testing.T) {
		_, err := NewExtractor().Extract(ctx, []byte("%PDF-1.4\nnot really a pdf"), "resume.pdf")
		require.Error(t, err)
		var extractionErr *ExtractionError
		require.True(t, errors.As(err, &extractionErr))
		assert.Equal(t, FormatPDF, extractionErr.Format)
	})
}

func TestExtractor_ExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\nPython, SQL"), 0o644))

	doc, err := NewExtractor().ExtractFile(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "Python, SQL")

	_, err = NewExtractor().ExtractFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestRecognizeImages(t *testing.T) {
	images := []types.Image{
		{Page: 1, Index: 0, Data: []byte{1}},
		{Page: 1, Index: 1},
		{Page: 2, Index: 0, Data: []byte{2}},
		{Page: 2, Index: 1, Data: []byte{3}},
	}

	calls := 0
	recognizer := RecognizerFunc(func(_ context.Context, image types.Image) (string, error) {
		calls++
		switch image.Data[0] {
		case 1:
			return "Certified   Kubernetes\nAdministrator", nil
		case 2:
			return "", errors.New("blurry")
		default:
			return "B.Tech ..... IIT Delhi", nil
		}
	})

	text := recognizeImages(context.Background(), recognizer, images)

	assert.Equal(t, 3, calls)
	assert.Equal(t, "Certified Kubernetes Administrator\nB.Tech ... IIT Delhi", text)
	assert.Equal(t, "Certified Kubernetes Administrator", images[0].OCRText)
	assert.Empty(t, images[2].OCRText)

	assert.Empty(t, recognizeImages(context.Background(), nil, images))
}

func TestCombinedText(t *testing.T) {
	doc := &types.Document{
		Text:    "Jane Doe",
		Tables:  []types.Table{{Page: 1, Text: "Degree | MIT"}},
		OCRText: "AWS Certified",
	}

	combined := CombinedText(doc)
	mainIdx := strings.Index(combined, "=== MAIN DOCUMENT TEXT ===")
	tableIdx := strings.Index(combined, "=== TABLE CONTENT ===")
	ocrIdx := strings.Index(combined, "=== OCR EXTRACTED TEXT ===")

	assert.True(t, mainIdx >= 0 && mainIdx < tableIdx && tableIdx < ocrIdx)
	assert.Contains(t, combined, "Table from Page 1:\nDegree | MIT")
	assert.Empty(t, CombinedText(nil))
}

func TestToJSON_OmitsImageData(t *testing.T) {
	doc := &types.Document{Text: "x", Images: []types.Image{{Page: 1, Data: []byte("secret-bytes")}}}
	data, err := ToJSON(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-bytes")
}
