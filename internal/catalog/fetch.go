package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/types"
)

// DefaultFetchTimeout bounds a posting download
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is sent with posting requests
const DefaultUserAgent = "Mozilla/5.0 (compatible; TalentMatcher/1.0)"

// maxPostingBytes caps how much of a posting page is read
const maxPostingBytes = 5 << 20

// FetchOptions configures posting downloads
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	Client    *http.Client
}

// DefaultFetchOptions returns the standard timeout and user agent
func DefaultFetchOptions() *FetchOptions {
	return &FetchOptions{
		Timeout:   DefaultFetchTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// FetchJobPosting downloads a job posting page and parses it
func FetchJobPosting(ctx context.Context, postingURL string, opts *FetchOptions) (types.Opportunity, error) {
	html, err := fetchHTML(ctx, postingURL, opts)
	if err != nil {
		return types.Opportunity{}, err
	}
	opp, err := ParseJobPostingHTML(html, postingURL)
	if err != nil {
		return types.Opportunity{}, err
	}
	observability.LoggerFromContext(ctx).Info("job posting fetched",
		"url", postingURL, "board", DetectBoard(postingURL), "title", opp.Title)
	return opp, nil
}

func fetchHTML(ctx context.Context, postingURL string, opts *FetchOptions) (string, error) {
	if opts == nil {
		opts = DefaultFetchOptions()
	}

	parsed, err := url.Parse(postingURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &FetchError{URL: postingURL, Message: "invalid URL", Cause: err}
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, postingURL, nil)
	if err != nil {
		return "", &FetchError{URL: postingURL, Message: "failed to create request", Cause: err}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{URL: postingURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: postingURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPostingBytes))
	if err != nil {
		return "", &FetchError{URL: postingURL, Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}
