package extraction

import (
	"context"
	"sort"
	"strings"

	"github.com/jonathan/talent-matcher/internal/observability"
)

const unknownName = "Unknown"

// validate is the terminal stage. It guarantees a name, deduplicates skills
// and orders experience newest first with ongoing positions on top.
func (p *Pipeline) validate(ctx context.Context, r *run) {
	profile := r.profile

	if isPlaceholderName(profile.PersonalInfo.Name) {
		name := fallbackName(r.in.CleanedText)
		observability.LoggerFromContext(ctx).Debug("name recovered by validation", "name", name)
		profile.PersonalInfo.Name = name
	}

	profile.Skills = dedupeSkills(profile.Skills)

	now := p.now()
	sort.SliceStable(profile.Experience, func(i, j int) bool {
		return profile.Experience[i].EndDateKey(now).After(profile.Experience[j].EndDateKey(now))
	})

	for i := range profile.Experience {
		if profile.Experience[i].Technologies == nil {
			profile.Experience[i].Technologies = []string{}
		}
	}
	for i := range profile.Projects {
		if profile.Projects[i].Technologies == nil {
			profile.Projects[i].Technologies = []string{}
		}
	}
}

// fallbackName sniffs the top ten lines, then the line just above the first
// email address
func fallbackName(text string) string {
	if name := sniffName(text, 10); name != "" {
		return name
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !emailPattern.MatchString(line) {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			candidate := strings.TrimSpace(lines[j])
			if candidate == "" {
				continue
			}
			if looksLikeName(candidate) {
				return candidate
			}
			break
		}
		break
	}
	return unknownName
}
