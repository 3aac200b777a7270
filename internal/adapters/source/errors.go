package source

import (
	"errors"
	"fmt"
)

// ErrFetch is matched by every dataset retrieval failure.
var ErrFetch = errors.New("fetch dataset failed")

// FetchKind classifies a FetchError.
type FetchKind string

const (
	KindTransport FetchKind = "transport"
	KindStatus    FetchKind = "status"
	KindDecode    FetchKind = "decode"
)

// FetchError describes why the dataset could not be obtained.
type FetchError struct {
	URL        string
	Kind       FetchKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("%s: %s: unexpected status %d", ErrFetch, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %s: %v", ErrFetch, e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetch}
	}
	return []error{ErrFetch, e.Err}
}
