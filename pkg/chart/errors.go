package chart

import (
	"errors"
	"fmt"
)

// ErrNoChart is returned when a response document has no top-level "chart" object
var ErrNoChart = errors.New("response has no chart object")

// ParseError reports birth date/time input that does not match the expected layout.
// It is raised before any request is made.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid birth date/time %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FetchError reports a failed request to the chart service: transport failures,
// timeouts, non-2xx responses and bodies that are not valid JSON.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chart service request to %s failed with status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("chart service request to %s failed: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IOError reports a failure persisting a response to disk
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("error writing %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
