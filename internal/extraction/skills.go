package extraction

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/talent-matcher/internal/schemas"
)

// skillFamily is a group of skill names matched as whole words
type skillFamily struct {
	name          string
	terms         []string
	caseSensitive bool
}

var skillFamilies = []skillFamily{
	{name: "languages", terms: []string{"Python", "Java", "JavaScript", "TypeScript", "PHP", "Ruby", "Golang", "Kotlin", "Scala", "MATLAB", "Perl", "Lua", "Elixir", "Clojure", "Haskell", "VB.NET", "COBOL", "Fortran", "Solidity", "SQL"}},
	{name: "web", terms: []string{"HTML5", "HTML", "CSS3", "CSS", "SCSS", "Sass", "Bootstrap", "Tailwind", "React", "Angular", "Vue.js", "Svelte", "Next.js", "Nuxt.js", "Gatsby", "jQuery", "D3.js", "Three.js", "Redux"}},
	{name: "backend", terms: []string{"Node.js", "Express.js", "Django", "Flask", "FastAPI", "Spring Boot", "Laravel", "Symfony", "Ruby on Rails", "ASP.NET", "gRPC"}},
	{name: "databases", terms: []string{"MySQL", "PostgreSQL", "MongoDB", "Redis", "SQLite", "SQL Server", "MariaDB", "CouchDB", "Neo4j", "Elasticsearch", "DynamoDB", "Cassandra", "InfluxDB", "Snowflake", "BigQuery"}},
	{name: "cloud_devops", terms: []string{"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes", "Jenkins", "GitLab CI", "GitHub Actions", "Terraform", "Ansible", "Vagrant", "Kafka", "RabbitMQ", "Airflow", "Hadoop"}},
	{name: "data_ml", terms: []string{"Machine Learning", "Deep Learning", "Data Science", "Pandas", "NumPy", "Scikit-learn", "TensorFlow", "PyTorch", "Keras", "OpenCV", "NLTK", "spaCy", "Matplotlib", "Seaborn", "Plotly", "NLP", "Computer Vision", "LLM", "Tableau", "Power BI"}},
	{name: "mobile", terms: []string{"React Native", "Flutter", "Xamarin", "Cordova", "Android", "iOS", "Android Studio", "Xcode", "SwiftUI", "Jetpack Compose"}},
	{name: "tools", terms: []string{"Git", "GitHub", "GitLab", "Bitbucket", "SVN", "VS Code", "IntelliJ", "PyCharm", "WebStorm", "Vim", "Emacs", "Postman"}},
	{name: "testing", terms: []string{"Jest", "Mocha", "Cypress", "Selenium", "Playwright", "JUnit", "TestNG", "PyTest", "Unit Testing", "Integration Testing", "E2E Testing"}},
	{name: "methodologies", terms: []string{"Agile", "Scrum", "Kanban", "DevOps", "TDD", "BDD", "GraphQL", "Microservices", "Serverless", "API Design"}},
	{name: "os", terms: []string{"Linux", "Ubuntu", "CentOS", "RHEL", "Windows Server", "macOS", "Unix", "FreeBSD", "Debian"}},
	{name: "business_tools", terms: []string{"Jira", "Confluence", "Microsoft Office", "PowerPoint", "Google Workspace", "Figma", "Adobe Creative Suite"}},
	// Ordinary English words: only their capitalized spelling counts.
	{name: "ambiguous", caseSensitive: true, terms: []string{"Go", "Rust", "Swift", "Dart", "Spring", "Oracle", "Excel", "Word", "Less", "Chef", "Echo", "Gin", "Fiber", "Chai", "Atom", "Express", "AI", "REST", "Spark", "Helm", "Puppet", "Slack", "Notion", "Eclipse", "Phoenix", "Ionic", "Assembly", "Bash"}},
}

// symbolSkills end or start with punctuation, so \b cannot delimit them
var symbolSkills = []string{"C++", "C#", "F#", ".NET", "CI/CD"}

var (
	skillPatterns   = compileSkillFamilies(skillFamilies)
	canonicalSkills = buildCanonicalSkills(skillFamilies)
	skillItemSplit  = regexp.MustCompile(`[,;|•]`)
)

func compileSkillFamilies(families []skillFamily) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(families))
	for _, family := range families {
		terms := append([]string(nil), family.terms...)
		sort.SliceStable(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })

		alternatives := make([]string, 0, len(terms))
		for _, term := range terms {
			quoted := regexp.QuoteMeta(term)
			quoted = strings.ReplaceAll(quoted, `\.js`, `\.?\s?js`)
			quoted = strings.ReplaceAll(quoted, ` `, `\s+`)
			alternatives = append(alternatives, quoted)
		}

		flags := "(?i)"
		if family.caseSensitive {
			flags = ""
		}
		patterns = append(patterns, regexp.MustCompile(flags+`\b(?:`+strings.Join(alternatives, "|")+`)\b`))
	}
	return patterns
}

func buildCanonicalSkills(families []skillFamily) map[string]string {
	canonical := make(map[string]string)
	for _, family := range families {
		if family.caseSensitive {
			continue
		}
		for _, term := range family.terms {
			canonical[skillKey(term)] = term
		}
	}
	for _, term := range symbolSkills {
		canonical[skillKey(term)] = term
	}
	return canonical
}

// matchSkillTerms finds every known skill in text, in family order
func matchSkillTerms(text string) []string {
	var found []string
	for i, pattern := range skillPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if skillFamilies[i].caseSensitive {
				found = append(found, match)
				continue
			}
			if canonical, ok := canonicalSkills[skillKey(match)]; ok {
				found = append(found, canonical)
			} else {
				found = append(found, NormalizeSkillName(match))
			}
		}
	}
	lower := strings.ToLower(text)
	for _, term := range symbolSkills {
		if containsTerm(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	return found
}

// containsTerm reports whether term occurs in text without letters or digits
// directly on either side. Both arguments must already be lower-cased.
func containsTerm(text, term string) bool {
	for offset := 0; ; {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		if !isWordByte(text, start-1) && !isWordByte(text, end) {
			return true
		}
		offset = start + 1
	}
}

func isWordByte(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return false
	}
	r := rune(text[i])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// skillsSectionItems parses list items from a SKILLS section. "Label: a, b"
// lines drop the label. Items must be 3 to 49 characters and at most five words.
func skillsSectionItems(text string) []string {
	section := sections(text)["skills"]
	if section == "" {
		return nil
	}

	var items []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "•-* ")
		if idx := strings.Index(line, ":"); idx > 0 && len(strings.Fields(line[:idx])) <= 3 {
			line = line[idx+1:]
		}
		for _, item := range skillItemSplit.Split(line, -1) {
			item = strings.Trim(strings.TrimSpace(item), ".")
			if len(item) > 2 && len(item) < 50 && len(strings.Fields(item)) <= 5 {
				items = append(items, item)
			}
		}
	}
	return items
}

// patternSkills is the deterministic skill extractor: known skill names
// anywhere in the text plus items listed under a skills heading.
func patternSkills(text string) []string {
	found := matchSkillTerms(text)
	found = append(found, skillsSectionItems(text)...)
	return dedupeSkills(found)
}

func (p *Pipeline) extractSkills(ctx context.Context, r *run) {
	var strategies []Strategy[[]string]

	if r.enhanced != nil && len(r.enhanced.Skills) > 0 {
		strategies = append(strategies, Strategy[[]string]{
			Name: "enhancement",
			Try: func(context.Context) ([]string, error) {
				return dedupeSkills(r.enhanced.Skills), nil
			},
		})
	}

	if r.oracleUsable() {
		strategies = append(strategies, Strategy[[]string]{
			Name: "oracle",
			Try: func(ctx context.Context) ([]string, error) {
				var skills []string
				if err := p.askOracle(ctx, r, "extract-skills", schemas.Skills, r.in.CleanedText, &skills); err != nil {
					return nil, err
				}
				return dedupeSkills(append(skills, patternSkills(r.in.searchText())...)), nil
			},
		})
	}

	strategies = append(strategies, Strategy[[]string]{
		Name: "patterns",
		Try: func(context.Context) ([]string, error) {
			return patternSkills(r.in.searchText()), nil
		},
	})

	skills, source := runStrategies(ctx, r, StageSkills, strategies, nonEmpty[string])
	if skills == nil {
		skills = []string{}
	}
	r.profile.Skills = skills
	r.sources[StageSkills] = source
}
