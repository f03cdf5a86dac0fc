package document

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const htmlNoiseSelector = "nav, footer, script, style, noscript, .ad, .advertisement, .ads, .cookie-banner, .popup"

const htmlBlockSelector = "p, li, h1, h2, h3, h4, h5, h6, tr, div, section, br, dt, dd"

// HTMLContent is the text and table grids parsed from an HTML document
type HTMLContent struct {
	Title  string
	Text   string
	Tables [][][]string
}

// ParseHTML removes noise elements, keeps block boundaries as line breaks and
// collects every <table> as a raw grid. Nested tables are read as part of
// their outer table only.
func ParseHTML(html string) (*HTMLContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(htmlNoiseSelector).Remove()

	content := &HTMLContent{Title: strings.TrimSpace(doc.Find("title").First().Text())}

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if table.ParentsFiltered("table").Length() > 0 {
			return
		}
		var grid [][]string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var row []string
			tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, cell.Text())
			})
			if len(row) > 0 {
				grid = append(grid, row)
			}
		})
		if len(grid) > 0 {
			content.Tables = append(content.Tables, grid)
		}
	})

	doc.Find("td, th").AppendHtml(" ")
	doc.Find(htmlBlockSelector).AppendHtml("\n")
	doc.Find("title").Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	content.Text = cleanWhitespace(body.Text())
	return content, nil
}

// cleanWhitespace trims every line and drops empty ones
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
