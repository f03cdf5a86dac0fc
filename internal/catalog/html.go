package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/jonathan/talent-matcher/internal/types"
)

// jobPostingLD is the subset of a schema.org JobPosting this package reads
type jobPostingLD struct {
	Type                  any             `json:"@type"`
	Title                 string          `json:"title"`
	Description           string          `json:"description"`
	Responsibilities      string          `json:"responsibilities"`
	Skills                json.RawMessage `json:"skills"`
	ValidThrough          string          `json:"validThrough"`
	EducationRequirements any             `json:"educationRequirements"`
	HiringOrganization    struct {
		Name string `json:"name"`
	} `json:"hiringOrganization"`
	JobLocation json.RawMessage `json:"jobLocation"`
	BaseSalary  json.RawMessage `json:"baseSalary"`
	Graph       []jobPostingLD  `json:"@graph"`
}

func (p jobPostingLD) isJobPosting() bool {
	switch t := p.Type.(type) {
	case string:
		return t == "JobPosting"
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

// ParseJobPostingHTML turns a job posting page into an opportunity. A
// schema.org JobPosting block is preferred; otherwise the page structure is
// read with board-specific selectors.
func ParseJobPostingHTML(html, postingURL string) (types.Opportunity, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return types.Opportunity{}, &Error{Source: postingURL, Message: "failed to parse HTML", Cause: err}
	}

	opp := types.Opportunity{Kind: types.KindJob, RequiredSkills: []string{}}
	if ld, ok := findJobPostingLD(doc); ok {
		applyLD(&opp, ld)
	}

	if opp.Title == "" {
		opp.Title = firstText(doc, "h1", ".job-title", ".posting-headline h2")
	}
	if opp.Title == "" {
		opp.Title, _ = doc.Find("meta[property='og:title']").Attr("content")
	}
	if opp.Title == "" {
		opp.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if opp.Organization == "" {
		opp.Organization, _ = doc.Find("meta[property='og:site_name']").Attr("content")
	}
	if opp.Organization == "" {
		opp.Organization = firstText(doc, ".company-name", ".company", "[data-company]")
	}
	if opp.Location == "" {
		opp.Location = firstText(doc, ".job-location", ".location", "[data-automation-id='locations']")
	}
	if opp.Responsibilities == "" {
		opp.Responsibilities = mainText(doc, DetectBoard(postingURL))
	}

	opp.Title = strings.TrimSpace(opp.Title)
	opp.Organization = strings.TrimSpace(opp.Organization)
	if opp.Title == "" {
		return types.Opportunity{}, &Error{Source: postingURL, Message: "posting has no title"}
	}

	if postingURL != "" {
		opp.ID = uuid.NewSHA1(catalogNamespace, []byte(postingURL)).String()
	} else {
		opp.ID = recordID("", types.KindJob, opp.Title, opp.Organization)
	}

	if err := Validate([]types.Opportunity{opp}); err != nil {
		return types.Opportunity{}, &Error{Source: postingURL, Message: "invalid posting", Cause: err}
	}
	return opp, nil
}

func findJobPostingLD(doc *goquery.Document) (jobPostingLD, bool) {
	var found jobPostingLD
	ok := false
	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := []byte(strings.TrimSpace(s.Text()))

		var candidates []jobPostingLD
		var single jobPostingLD
		if err := json.Unmarshal(raw, &single); err == nil {
			candidates = append(candidates, single)
			candidates = append(candidates, single.Graph...)
		} else if err := json.Unmarshal(raw, &candidates); err != nil {
			return true
		}

		for _, c := range candidates {
			if c.isJobPosting() {
				found, ok = c, true
				return false
			}
		}
		return true
	})
	return found, ok
}

func applyLD(opp *types.Opportunity, ld jobPostingLD) {
	opp.Title = ld.Title
	opp.Organization = ld.HiringOrganization.Name
	opp.Description = htmlToText(ld.Description)
	opp.Responsibilities = htmlToText(ld.Responsibilities)
	if opp.Responsibilities == "" {
		opp.Responsibilities = opp.Description
	}
	opp.Deadline = ld.ValidThrough
	opp.RequiredSkills = ldSkills(ld.Skills)
	opp.Location = ldLocation(ld.JobLocation)
	opp.Salary = ldSalary(ld.BaseSalary)
	if edu, ok := ld.EducationRequirements.(string); ok {
		opp.EducationLevel = educationFromLD(edu)
	}
}

// ldSkills accepts a list or a comma-separated string
func ldSkills(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var skills SkillList
	if err := json.Unmarshal(raw, &skills); err != nil {
		return []string{}
	}
	return nonNil(skills)
}

func ldLocation(raw json.RawMessage) string {
	type place struct {
		Address struct {
			Locality string `json:"addressLocality"`
			Region   string `json:"addressRegion"`
			Country  any    `json:"addressCountry"`
		} `json:"address"`
	}
	var places []place
	var single place
	if err := json.Unmarshal(raw, &single); err == nil {
		places = []place{single}
	} else if err := json.Unmarshal(raw, &places); err != nil {
		return ""
	}
	var out []string
	for _, p := range places {
		parts := make([]string, 0, 3)
		for _, v := range []string{p.Address.Locality, p.Address.Region} {
			if v != "" {
				parts = append(parts, v)
			}
		}
		if c, ok := p.Address.Country.(string); ok && c != "" {
			parts = append(parts, c)
		}
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, ", "))
		}
	}
	return strings.Join(out, "; ")
}

func ldSalary(raw json.RawMessage) string {
	var salary struct {
		Currency string `json:"currency"`
		Value    struct {
			Min      float64 `json:"minValue"`
			Max      float64 `json:"maxValue"`
			UnitText string  `json:"unitText"`
		} `json:"value"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &salary) != nil || salary.Value.Max == 0 {
		return ""
	}
	out := strings.TrimSpace(salary.Currency + " " + formatAmount(salary.Value.Min) + "-" + formatAmount(salary.Value.Max))
	if salary.Value.UnitText != "" {
		out += " per " + strings.ToLower(salary.Value.UnitText)
	}
	return out
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// educationFromLD maps schema.org credential categories onto catalog levels
func educationFromLD(value string) string {
	v := strings.ToLower(value)
	switch {
	case strings.Contains(v, "doctor"), strings.Contains(v, "phd"):
		return "doctorate"
	case strings.Contains(v, "master") || strings.Contains(v, "postgraduate"):
		return "masters"
	case strings.Contains(v, "bachelor"):
		return "bachelors"
	default:
		return ""
	}
}

func firstText(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return collapseLines(text)
		}
	}
	return ""
}

// mainText strips page furniture and reads the first matching content block,
// falling back to the body
func mainText(doc *goquery.Document, board Board) string {
	doc.Find(strings.Join(noiseSelectors(board), ", ")).Remove()
	for _, selector := range contentSelectors(board) {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return collapseLines(sel.First().Text())
		}
	}
	return collapseLines(doc.Find("body").Text())
}

// htmlToText renders an HTML fragment as plain text, one block per line
func htmlToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseLines(fragment)
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, li, div, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return collapseLines(doc.Text())
}

func collapseLines(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
