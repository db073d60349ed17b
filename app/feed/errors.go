package feed

import (
	"errors"
	"fmt"
)

// ErrBodyTooLarge is returned when a response exceeds the 10 MiB read limit.
var ErrBodyTooLarge = errors.New("response body exceeds 10 MiB")

// FetchError is returned by the Fetcher for any failure of one source.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %s", e.Status)
}
