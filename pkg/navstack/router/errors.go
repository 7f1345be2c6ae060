package router

import "errors"

var (
	// ErrEmptyStack is returned when a stack would be left with no entries.
	ErrEmptyStack = errors.New("router: stack must contain at least one configuration")

	// ErrUnknownTab is returned when bringing a tab that is not part of the
	// tab set to the front.
	ErrUnknownTab = errors.New("router: unknown tab")

	// ErrExit is returned by a ScreenFunc to stop Router.Run without error.
	ErrExit = errors.New("router: exit")
)
