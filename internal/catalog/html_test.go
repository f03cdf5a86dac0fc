package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/types"
)

const jsonLDPosting = `
<html>
<head>
	<title>Careers | Acme</title>
	<script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@type": "JobPosting",
		"title": "Platform Engineer",
		"description": "<p>Run our <b>Kubernetes</b> fleet.</p><ul><li>Terraform</li><li>AWS</li></ul>",
		"skills": "Kubernetes, Terraform, AWS",
		"validThrough": "2026-12-31T00:00",
		"educationRequirements": "bachelor degree",
		"hiringOrganization": {"@type": "Organization", "name": "Acme"},
		"jobLocation": {"@type": "Place", "address": {"addressLocality": "Berlin", "addressCountry": "DE"}},
		"baseSalary": {"@type": "MonetaryAmount", "currency": "EUR", "value": {"minValue": 70000, "maxValue": 90000, "unitText": "YEAR"}}
	}
	</script>
</head>
<body><h1>Ignored heading</h1></body>
</html>`

func TestParseJobPostingHTML_JSONLD(t *testing.T) {
	opp, err := ParseJobPostingHTML(jsonLDPosting, "https://boards.greenhouse.io/acme/jobs/1")
	require.NoError(t, err)

	assert.Equal(t, types.KindJob, opp.Kind)
	assert.Equal(t, "Platform Engineer", opp.Title)
	assert.Equal(t, "Acme", opp.Organization)
	assert.Equal(t, []string{"Kubernetes", "Terraform", "AWS"}, opp.RequiredSkills)
	assert.Equal(t, "Berlin, DE", opp.Location)
	assert.Equal(t, "EUR 70000-90000 per year", opp.Salary)
	assert.Equal(t, "bachelors", opp.EducationLevel)
	assert.Equal(t, "2026-12-31T00:00", opp.Deadline)
	assert.Equal(t, "Run our Kubernetes fleet.\nTerraform\nAWS", opp.Description)
	assert.Equal(t, opp.Description, opp.Responsibilities)
	assert.Len(t, opp.ID, 36)
}

func TestParseJobPostingHTML_GraphLD(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
	{"@graph": [{"@type": "WebPage", "name": "Jobs"}, {"@type": ["JobPosting"], "title": "Data Engineer", "hiringOrganization": {"name": "Globex"}}]}
	</script></head><body></body></html>`

	opp, err := ParseJobPostingHTML(html, "https://example.com/jobs/2")
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", opp.Title)
	assert.Equal(t, "Globex", opp.Organization)
}

func TestParseJobPostingHTML_Fallback(t *testing.T) {
	html := `
	<html>
	<head>
		<title>Site title</title>
		<meta property="og:site_name" content="Initech">
	</head>
	<body>
		<nav>Home | Jobs</nav>
		<h1>Site Reliability Engineer</h1>
		<div class="location">Austin, TX</div>
		<div class="posting-page">
			<p>Keep production healthy.</p>
			<p>Go, Prometheus and Linux.</p>
			<div class="apply-section">Apply now</div>
		</div>
		<footer>Copyright</footer>
	</body>
	</html>`

	opp, err := ParseJobPostingHTML(html, "https://jobs.lever.co/initech/3")
	require.NoError(t, err)
	assert.Equal(t, "Site Reliability Engineer", opp.Title)
	assert.Equal(t, "Initech", opp.Organization)
	assert.Equal(t, "Austin, TX", opp.Location)
	assert.Contains(t, opp.Responsibilities, "Keep production healthy.")
	assert.Contains(t, opp.Responsibilities, "Go, Prometheus and Linux.")
	assert.NotContains(t, opp.Responsibilities, "Apply now")
	assert.NotContains(t, opp.Responsibilities, "Copyright")
	assert.Equal(t, []string{}, opp.RequiredSkills)
}

func TestParseJobPostingHTML_TitleFallbacks(t *testing.T) {
	ogOnly := `<html><head><meta property="og:title" content="QA Analyst"></head><body><p>x</p></body></html>`
	opp, err := ParseJobPostingHTML(ogOnly, "https://example.com/qa")
	require.NoError(t, err)
	assert.Equal(t, "QA Analyst", opp.Title)

	titleOnly := `<html><head><title> Support Engineer </title></head><body></body></html>`
	opp, err = ParseJobPostingHTML(titleOnly, "")
	require.NoError(t, err)
	assert.Equal(t, "Support Engineer", opp.Title)
	assert.NotEmpty(t, opp.ID)
}

func TestParseJobPostingHTML_NoTitle(t *testing.T) {
	_, err := ParseJobPostingHTML(`<html><body><p>nothing here</p></body></html>`, "https://example.com")
	var catErr *Error
	require.ErrorAs(t, err, &catErr)
	assert.Contains(t, err.Error(), "no title")
}

func TestParseJobPostingHTML_StableIDs(t *testing.T) {
	a, err := ParseJobPostingHTML(jsonLDPosting, "https://example.com/jobs/1")
	require.NoError(t, err)
	b, err := ParseJobPostingHTML(jsonLDPosting, "https://example.com/jobs/1")
	require.NoError(t, err)
	c, err := ParseJobPostingHTML(jsonLDPosting, "https://example.com/jobs/2")
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestDetectBoard(t *testing.T) {
	tests := []struct {
		url  string
		want Board
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", BoardGreenhouse},
		{"https://job-boards.greenhouse.io/acme/jobs/123", BoardGreenhouse},
		{"https://jobs.lever.co/acme/abc", BoardLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/1", BoardWorkday},
		{"https://acme.workday.com/jobs", BoardWorkday},
		{"https://example.com/careers", BoardUnknown},
		{"::not a url", BoardUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectBoard(tt.url))
		})
	}
}

func TestEducationFromLD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bachelor's degree", "bachelors"},
		{"postgraduate degree", "masters"},
		{"PhD", "doctorate"},
		{"high school", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, educationFromLD(tt.in))
		})
	}
}
