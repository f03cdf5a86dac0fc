package extraction

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/talent-matcher/internal/document"
	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

const (
	nameSimilarityThreshold        = 0.7
	descriptionSimilarityThreshold = 0.8
	maxProjectNameWords            = 10
)

var (
	actionVerbPattern   = regexp.MustCompile(`(?i)^\s*(?:built|developed|created|designed|implemented|engineered|launched|architected|programmed|wrote)\s+(.+)$`)
	projectTitlePattern = regexp.MustCompile(`\b(?:[A-Z][\w-]*\s+){0,4}(?:Analyzer|Engine|Tool|System|Platform|App|Application|Tracker|Bot|Dashboard|Manager|Generator|Simulator|Framework|Library|Portal|Website|Extension|Pipeline|Assistant|Parser|Scraper|Game)\b`)
	githubRepoPattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/([\w-]+)/([\w.-]+)`)
	projectURLPattern   = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s,;|()]+|(?:github|gitlab)\.com/[\w-]+/[\w.-]+`)
	techLinePattern     = regexp.MustCompile(`(?i)^\s*(?:tech(?:nologies|nology| stack)?|tools|built with|stack)\s*:\s*(.+)$`)
)

// nameStopWords end a project name mined from an action-verb sentence
var nameStopWords = map[string]bool{
	"using": true, "with": true, "for": true, "that": true, "which": true, "to": true,
	"in": true, "on": true, "from": true, "by": true, "leveraging": true, "utilizing": true,
	"and": true, "where": true, "allowing": true, "enabling": true,
}

var nameArticles = map[string]bool{"a": true, "an": true, "the": true, "my": true, "our": true}

// projectBoilerplate marks education and employment lines that look like projects
var projectBoilerplate = []string{
	"university", "college", "bachelor", "master of", "degree", "gpa", "cgpa", "school",
	"responsible for", "years of experience", "work experience", "employment", "internship at",
	"certified", "certification", "curriculum", "coursework",
}

// sectionProjects parses the PROJECTS section. A plain line opens a project
// and the bullets under it describe it; a list made only of bullets yields
// one project per bullet.
func sectionProjects(text string) []types.Project {
	section := sections(text)["projects"]
	if section == "" {
		return nil
	}

	var (
		out        []types.Project
		current    *types.Project
		fromBullet bool
	)
	flush := func() {
		if current != nil {
			out = append(out, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		bullet := document.IsBulletLine(trimmed)
		content := strings.TrimSpace(strings.TrimLeft(trimmed, "•-*· "))

		if m := techLinePattern.FindStringSubmatch(content); m != nil && current != nil {
			current.Technologies = append(current.Technologies, splitList(m[1])...)
			continue
		}

		if bullet && current != nil && !fromBullet {
			appendDescription(current, content)
			continue
		}

		flush()
		project := projectFromLine(content)
		current = &project
		fromBullet = bullet
	}
	flush()
	return out
}

// projectFromLine splits "Name - description" or "Name: description" and
// picks out a URL and a date range
func projectFromLine(line string) types.Project {
	var project types.Project
	if url := projectURLPattern.FindString(line); url != "" {
		project.URL = normalizeProjectURL(url)
		line = strings.TrimSpace(strings.Replace(line, url, "", 1))
	}
	if loc := dateRangePattern.FindStringIndex(line); loc != nil {
		project.Duration = strings.TrimSpace(line[loc[0]:loc[1]])
		line = strings.TrimSpace(line[:loc[0]] + line[loc[1]:])
	}
	line = strings.Trim(line, " -|:,()")

	for _, sep := range []string{": ", " - ", " | ", " -- "} {
		if idx := strings.Index(line, sep); idx > 0 {
			project.Name = strings.Trim(line[:idx], " -|:,()")
			project.Description = strings.Trim(line[idx+len(sep):], " -|:,()")
			return project
		}
	}

	if m := actionVerbPattern.FindStringSubmatch(line); m != nil {
		project.Name = nameFromPhrase(m[1])
		project.Description = line
		return project
	}
	if len(strings.Fields(line)) <= maxProjectNameWords {
		project.Name = line
	} else {
		project.Name = strings.Join(strings.Fields(line)[:5], " ")
		project.Description = line
	}
	return project
}

func appendDescription(project *types.Project, text string) {
	if project.URL == "" {
		if url := projectURLPattern.FindString(text); url != "" {
			project.URL = normalizeProjectURL(url)
		}
	}
	if project.Description == "" {
		project.Description = text
		return
	}
	project.Description += "\n" + text
}

// actionVerbProjects mines "Built/Developed/Created ..." sentences
func actionVerbProjects(text string) []types.Project {
	var out []types.Project
	for _, line := range strings.Split(text, "\n") {
		content := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "•-*· "))
		m := actionVerbPattern.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		project := types.Project{Name: nameFromPhrase(m[1]), Description: content}
		if url := projectURLPattern.FindString(content); url != "" {
			project.URL = normalizeProjectURL(url)
		}
		out = append(out, project)
	}
	return out
}

// titlePatternProjects mines capitalized phrases ending in a product noun
// such as "Sentiment Analyzer" or "Recommendation Engine"
func titlePatternProjects(text string) []types.Project {
	var out []types.Project
	for _, line := range strings.Split(text, "\n") {
		content := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "•-*· "))
		for _, name := range projectTitlePattern.FindAllString(content, -1) {
			if len(strings.Fields(name)) < 2 {
				continue
			}
			out = append(out, types.Project{Name: strings.TrimSpace(name), Description: content})
		}
	}
	return out
}

// githubProjects turns repository links into projects named after the repository
func githubProjects(text string) []types.Project {
	var out []types.Project
	for _, line := range strings.Split(text, "\n") {
		for _, m := range githubRepoPattern.FindAllStringSubmatch(line, -1) {
			repo := strings.TrimSuffix(strings.TrimRight(m[2], "."), ".git")
			description := strings.TrimSpace(strings.Replace(line, m[0], "", 1))
			out = append(out, types.Project{
				Name:        repoDisplayName(repo),
				Description: strings.Trim(description, " -|:•"),
				URL:         "https://github.com/" + m[1] + "/" + repo,
			})
		}
	}
	return out
}

// nameFromPhrase takes the object of an action-verb sentence up to the first
// connective, without leading articles, and title-cases it
func nameFromPhrase(phrase string) string {
	var words []string
	for _, word := range strings.Fields(phrase) {
		bare := strings.ToLower(strings.Trim(word, ",.;:()"))
		if len(words) == 0 && nameArticles[bare] {
			continue
		}
		if nameStopWords[bare] || len(words) == 6 {
			break
		}
		words = append(words, titleWord(strings.Trim(word, ",.;:()")))
		if strings.ContainsAny(word, ",.;:") {
			break
		}
	}
	return strings.Join(words, " ")
}

func titleWord(word string) string {
	if word == "" || strings.ToUpper(word) == word {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func repoDisplayName(repo string) string {
	words := strings.FieldsFunc(repo, func(r rune) bool { return r == '-' || r == '_' || r == '.' })
	for i, word := range words {
		words[i] = titleWord(word)
	}
	return strings.Join(words, " ")
}

func normalizeProjectURL(url string) string {
	url = strings.TrimRight(url, ".")
	if !strings.HasPrefix(strings.ToLower(url), "http") {
		return "https://" + url
	}
	return url
}

func splitList(s string) []string {
	var out []string
	for _, item := range skillItemSplit.Split(s, -1) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// wordOverlap is the Jaccard similarity of the lower-cased word sets
func wordOverlap(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for word := range setA {
		if setB[word] {
			shared++
		}
	}
	return float64(shared) / float64(len(setA)+len(setB)-shared)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
	}) {
		set[word] = true
	}
	return set
}

func isBoilerplateProject(project types.Project) bool {
	name := strings.ToLower(project.Name)
	if len(name) < 3 || len(strings.Fields(name)) > maxProjectNameWords {
		return true
	}
	if !hasLetters(name) || dateRangePattern.MatchString(name) {
		return true
	}
	if _, heading := sectionHeadings[normalizeHeading(name)]; heading {
		return true
	}
	if projectTitlePattern.MatchString(project.Name) {
		return false
	}
	text := name + " " + strings.ToLower(project.Description)
	return containsAny(text, projectBoilerplate)
}

// finalizeProjects removes boilerplate and near-duplicates. A duplicate
// contributes its URL and technologies to the entry kept before it.
func finalizeProjects(projects []types.Project) []types.Project {
	out := make([]types.Project, 0, len(projects))
	for _, project := range projects {
		project.Name = strings.TrimSpace(project.Name)
		project.Description = strings.TrimSpace(project.Description)
		if isBoilerplateProject(project) {
			continue
		}

		duplicate := -1
		for i, kept := range out {
			if wordOverlap(kept.Name, project.Name) > nameSimilarityThreshold ||
				(kept.Description != "" && wordOverlap(kept.Description, project.Description) > descriptionSimilarityThreshold) {
				duplicate = i
				break
			}
		}
		if duplicate >= 0 {
			kept := &out[duplicate]
			if kept.URL == "" {
				kept.URL = project.URL
			}
			if kept.Duration == "" {
				kept.Duration = project.Duration
			}
			kept.Technologies = append(kept.Technologies, project.Technologies...)
			continue
		}
		out = append(out, project)
	}

	for i := range out {
		out[i].Technologies = dedupeSkills(append(out[i].Technologies, matchSkillTerms(out[i].Name+"\n"+out[i].Description)...))
	}
	return out
}

func (p *Pipeline) extractProjects(ctx context.Context, r *run) {
	var strategies []Strategy[[]types.Project]
	add := func(name string, mine func(string) []types.Project) {
		strategies = append(strategies, Strategy[[]types.Project]{
			Name: name,
			Try: func(context.Context) ([]types.Project, error) {
				return finalizeProjects(mine(r.in.CleanedText)), nil
			},
		})
	}

	if r.enhanced != nil && len(r.enhanced.Projects) > 0 {
		strategies = append(strategies, Strategy[[]types.Project]{
			Name: "enhancement",
			Try: func(context.Context) ([]types.Project, error) {
				return finalizeProjects(r.enhanced.Projects), nil
			},
		})
	}
	if r.oracleUsable() {
		strategies = append(strategies, Strategy[[]types.Project]{
			Name: "oracle",
			Try: func(ctx context.Context) ([]types.Project, error) {
				var projects []types.Project
				if err := p.askOracle(ctx, r, "extract-projects", schemas.Projects, r.in.CleanedText, &projects); err != nil {
					return nil, err
				}
				return finalizeProjects(projects), nil
			},
		})
	}
	add("section", sectionProjects)
	add("action_verb", actionVerbProjects)
	add("title_pattern", titlePatternProjects)
	add("github_url", githubProjects)

	projects, source := runStrategies(ctx, r, StageProjects, strategies, nonEmpty[types.Project])
	if projects == nil {
		projects = []types.Project{}
	}
	r.profile.Projects = projects
	r.sources[StageProjects] = source
}
