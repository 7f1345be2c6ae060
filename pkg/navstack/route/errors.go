package route

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is returned when a path does not fit a route's pattern.
	ErrNoMatch = errors.New("route: path does not match")

	// ErrUnknownRoute is returned when no route in a Table matches a path.
	ErrUnknownRoute = errors.New("route: unknown route")
)

// DecodeError reports a parameter that is missing or does not parse as its
// declared kind.
type DecodeError struct {
	Route string // Route screen name
	Param string // Parameter name
	Value string // Raw value, empty when missing
	Err   error  // Underlying cause
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("route %s: parameter %q (%q): %v", e.Route, e.Param, e.Value, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError checks if an error is a parameter decode failure.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// UnknownRouteError is returned by Table.Resolve when nothing matches.
type UnknownRouteError struct {
	Path       string
	Suggestion string // closest known screen name, empty if none is close
}

func (e *UnknownRouteError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("route: unknown route %q (did you mean %q?)", e.Path, e.Suggestion)
	}
	return fmt.Sprintf("route: unknown route %q", e.Path)
}

func (e *UnknownRouteError) Unwrap() error {
	return ErrUnknownRoute
}
