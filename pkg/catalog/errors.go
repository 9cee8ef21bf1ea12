package catalog

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrEmptyBaseURL     = errors.New("empty base url")
	ErrInvalidBaseURL   = errors.New("invalid base url")
	ErrInvalidPage      = errors.New("page must be at least 1")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrTimeout          = errors.New("request timed out")
	ErrDecode           = errors.New("decode response")
	ErrPageOutOfRange   = errors.New("page out of range")
)

// StatusError is returned when the service responds with a non-2xx status.
type StatusError struct {
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnexpectedStatus, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// FetchError reports a failed page request.
type FetchError struct {
	Err  error
	Page int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Message returns a short description suitable for display.
func (e *FetchError) Message() string {
	return "Error fetching data: " + describe(e.Err)
}

// SuggestionError reports a failed suggestion request.
type SuggestionError struct {
	Err  error
	Term string
}

func (e *SuggestionError) Error() string {
	return fmt.Sprintf("fetch suggestions for %q: %v", e.Term, e.Err)
}

func (e *SuggestionError) Unwrap() error {
	return e.Err
}

// Message returns a short description suitable for display.
func (e *SuggestionError) Message() string {
	return "Error fetching suggestions: " + describe(e.Err)
}

func describe(err error) string {
	var statusErr *StatusError

	switch {
	case errors.Is(err, ErrInvalidPage):
		return "invalid page"
	case errors.Is(err, ErrPageOutOfRange):
		return "page out of range"
	case errors.Is(err, ErrTimeout):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.As(err, &statusErr):
		return "server responded " + statusErr.Status
	case errors.Is(err, ErrDecode):
		return "malformed response"
	}

	return "service unreachable"
}
