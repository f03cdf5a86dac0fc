package catalog

import (
	"net/url"
	"strings"
)

// Board is a recognised job board
type Board string

const (
	// BoardGreenhouse is the Greenhouse ATS
	BoardGreenhouse Board = "greenhouse"
	// BoardLever is the Lever ATS
	BoardLever Board = "lever"
	// BoardWorkday is the Workday ATS
	BoardWorkday Board = "workday"
	// BoardUnknown is any other site
	BoardUnknown Board = "unknown"
)

// DetectBoard identifies the job board hosting a posting URL
func DetectBoard(postingURL string) Board {
	parsed, err := url.Parse(postingURL)
	if err != nil {
		return BoardUnknown
	}
	host := strings.ToLower(parsed.Host)
	switch {
	case strings.Contains(host, "greenhouse.io"):
		return BoardGreenhouse
	case strings.Contains(host, "lever.co"):
		return BoardLever
	case strings.Contains(host, "workday.com"), strings.Contains(host, "myworkdayjobs.com"):
		return BoardWorkday
	default:
		return BoardUnknown
	}
}

// contentSelectors lists where the posting body lives, most specific first
func contentSelectors(board Board) []string {
	generic := []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
	switch board {
	case BoardGreenhouse:
		return append([]string{".job__description.body", ".job__description", ".job-description__content", ".job-post-container"}, generic...)
	case BoardLever:
		return append([]string{".posting-page", ".section-wrapper.page-full-width", ".posting-description"}, generic...)
	case BoardWorkday:
		return append([]string{"[data-automation-id='jobDescription']", ".gwt-HTML"}, generic...)
	default:
		return generic
	}
}

// noiseSelectors lists page furniture stripped before reading the body
func noiseSelectors(board Board) []string {
	common := []string{
		"nav", "footer", "header", "script", "style", "noscript",
		".ad", ".advertisement", ".sidebar", ".popup",
		"form", "#application-form", ".application-form", ".apply-button-container",
		".voluntary-disclosure", ".eeo-statement", ".eeo-section", ".legal-disclosure",
		".social-share", ".share-buttons", ".cookie-banner", ".cookie-consent", ".gdpr-notice",
	}
	switch board {
	case BoardGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply")
	case BoardLever:
		return append(common, ".apply-section", ".lever-application-form", ".posting-apply")
	case BoardWorkday:
		return append(common, "[data-automation-id='applyButton']", ".application-section")
	default:
		return common
	}
}
