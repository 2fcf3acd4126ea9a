package k8s

import "fmt"

// QueryError indicates that a cluster inventory fetch failed or returned
// data that could not be parsed. An empty item list is a valid result, not a
// QueryError.
type QueryError struct {
	Resource string
	Err      error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to get %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("failed to get %s; ensure a cluster context is selected", e.Resource)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ValidationError indicates invalid command input, detected before any
// cluster call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
