// Package catalog loads job and course catalogs and flattens them into
// validated opportunity records for the matching engine.
package catalog

import "fmt"

// Error is a catalog load or validation failure
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog error (%s): %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog error (%s): %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// FetchError is a failure retrieving a job posting over HTTP
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
