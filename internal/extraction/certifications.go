package extraction

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

// certificationFloor is the count below which the oracle is also consulted
const certificationFloor = 3

var certificationPatterns = []struct {
	pattern *regexp.Regexp
	issuer  string
}{
	{regexp.MustCompile(`(?i)\b(?:AWS|Amazon)\s+(?:Certified|Certificate)[^\n,;|(]*`), "Amazon Web Services"},
	{regexp.MustCompile(`(?i)\b(?:Microsoft|Azure)\s+(?:Certified|Certificate)[^\n,;|(]*`), "Microsoft"},
	{regexp.MustCompile(`(?i)\b(?:Google|GCP)\s+(?:Cloud\s+)?(?:Certified|Certificate)[^\n,;|(]*`), "Google"},
	{regexp.MustCompile(`\b(?:PMP|Project Management Professional)\b`), "PMI"},
	{regexp.MustCompile(`\bCISSP\b`), "ISC2"},
	{regexp.MustCompile(`\b(?:CISA|CISM)\b`), "ISACA"},
	{regexp.MustCompile(`\bCEH\b`), "EC-Council"},
	{regexp.MustCompile(`(?i)\b(?:Certified\s+)?Scrum\s+Master\b`), "Scrum Alliance"},
	{regexp.MustCompile(`\b(?:CPA|Certified Public Accountant)\b`), "AICPA"},
	{regexp.MustCompile(`(?i)\b(?:Lean\s+)?Six\s+Sigma(?:\s+(?:Green|Black|Yellow)\s+Belt)?`), ""},
}

var certificationYear = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// patternCertifications finds well-known credentials and infers their issuer.
// Bare "Agile" or "Lean" mentions are not credentials.
func patternCertifications(text string) []types.Certification {
	var out []types.Certification
	for _, line := range strings.Split(text, "\n") {
		for _, cp := range certificationPatterns {
			for _, match := range cp.pattern.FindAllString(line, -1) {
				name := strings.Trim(certificationYear.ReplaceAllString(match, ""), " -:•.")
				if name == "" {
					continue
				}
				out = append(out, types.Certification{
					Name:   name,
					Issuer: cp.issuer,
					Date:   certificationYear.FindString(line),
				})
			}
		}
	}
	return dedupeCertifications(out)
}

// dedupeCertifications drops entries whose lower-cased name was already seen
func dedupeCertifications(certs []types.Certification) []types.Certification {
	out := make([]types.Certification, 0, len(certs))
	seen := make(map[string]bool, len(certs))
	for _, cert := range certs {
		cert.Name = strings.TrimSpace(cert.Name)
		key := strings.ToLower(cert.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cert)
	}
	return out
}

func (p *Pipeline) extractCertifications(ctx context.Context, r *run) {
	found := patternCertifications(r.in.searchText())

	var strategies []Strategy[[]types.Certification]
	if len(found) < certificationFloor && r.oracleUsable() {
		strategies = append(strategies, Strategy[[]types.Certification]{
			Name: "oracle",
			Try: func(ctx context.Context) ([]types.Certification, error) {
				var certs []types.Certification
				if err := p.askOracle(ctx, r, "extract-certifications", schemas.Certifications, r.in.CleanedText, &certs); err != nil {
					return nil, err
				}
				return dedupeCertifications(append(append([]types.Certification{}, found...), certs...)), nil
			},
		})
	}
	strategies = append(strategies, Strategy[[]types.Certification]{
		Name: "patterns",
		Try: func(context.Context) ([]types.Certification, error) {
			return found, nil
		},
	})

	certs, source := runStrategies(ctx, r, StageCertifications, strategies, nonEmpty[types.Certification])
	if certs == nil {
		certs = []types.Certification{}
	}
	r.profile.Certifications = certs
	r.sources[StageCertifications] = source
}
