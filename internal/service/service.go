// Package service holds the browse use cases behind the shop and clinics
// listing pages. Each call fetches a fresh snapshot from the store and
// derives the requested view with the listing pipeline.
package service

import (
	"errors"
	"fmt"

	"bitary-listing-service/internal/store"
)

var (
	// ErrInvalidQuery marks criteria that failed to parse.
	ErrInvalidQuery = errors.New("service: invalid listing query")
	// ErrUpstream marks a failure to fetch the source collection. The
	// request can be retried as is.
	ErrUpstream = errors.New("service: upstream fetch failed")
	ErrNotFound = errors.New("service: not found")
)

// UpstreamError wraps a store failure. Transient reports whether the
// underlying cause looked temporary.
type UpstreamError struct {
	Op        string
	Transient bool
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("service: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() []error {
	return []error{ErrUpstream, e.Err}
}

// IsRetryable reports whether err is an upstream failure with a
// transient cause, so re-issuing the same request may succeed.
func IsRetryable(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr) && upErr.Transient
}

func upstream(op string, err error) error {
	return &UpstreamError{Op: op, Transient: store.IsTransient(err), Err: err}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
}
