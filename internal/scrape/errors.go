package scrape

import "fmt"

// TransportError means the source could not be reached or its body could not be read.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError means the source answered with a non-2xx status.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// ParseError means the price table is missing from the document.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse table: %s: %v", e.Reason, e.Err)
	}
	return "parse table: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }
