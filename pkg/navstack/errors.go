package navstack

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/navstack/pkg/navstack/route"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
)

// Sentinel errors re-exported for callers that only import this package.
var (
	ErrEmptyStack   = router.ErrEmptyStack
	ErrUnknownTab   = router.ErrUnknownTab
	ErrUnknownRoute = route.ErrUnknownRoute
)

// NavigationError reports a navigation request that could not be carried
// out, such as a deep link with malformed parameters. The stacks involved
// are left exactly as they were.
type NavigationError struct {
	Op  string // Operation that failed (e.g., "open_link", "select_tab")
	Err error  // Underlying error
}

func (e *NavigationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("navstack: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("navstack: %s", e.Op)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// NewNavigationError creates a new navigation error.
func NewNavigationError(op string, err error) *NavigationError {
	return &NavigationError{Op: op, Err: err}
}

// IsNavigationError checks if an error is a navigation error.
func IsNavigationError(err error) bool {
	var navErr *NavigationError
	return errors.As(err, &navErr)
}

// IsDecodeError checks if an error stems from a malformed route parameter.
func IsDecodeError(err error) bool {
	return route.IsDecodeError(err)
}
