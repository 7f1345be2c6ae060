package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/navstack/pkg/navstack/value"
)

// ScreenFunc runs the screen for the active entry.
// It navigates through the stack it is given and returns once it has done
// so. Returning ErrExit stops the router.
type ScreenFunc[C comparable] func(ctx context.Context, child Child[C], stack *Stack[C]) error

// Router drives a Stack: it repeatedly runs the screen registered for the
// active configuration's variant, letting each screen decide where to go
// next.
//
// Whole-stack replacements can be handed to a running router through its
// command mailbox. The mailbox holds one pending command; a newer one
// replaces an older one that has not been applied yet.
type Router[C comparable] struct {
	screens  map[string]ScreenFunc[C]
	stack    *Stack[C]
	commands *value.Mailbox[[]C]
	logger   *slog.Logger
}

// New creates a Router driving stack.
func New[C comparable](stack *Stack[C], opts ...Option) *Router[C] {
	o := buildOptions(opts)
	return &Router[C]{
		screens:  make(map[string]ScreenFunc[C]),
		stack:    stack,
		commands: value.NewMailbox[[]C](),
		logger:   o.logger,
	}
}

// Register adds a screen for the variant named tag.
func (r *Router[C]) Register(tag string, fn ScreenFunc[C]) *Router[C] {
	r.screens[tag] = fn
	return r
}

// RegisterVariant adds a screen for the variant of sample.
func (r *Router[C]) RegisterVariant(sample C, fn ScreenFunc[C]) *Router[C] {
	return r.Register(Tag(sample), fn)
}

// Commands returns the mailbox of pending whole-stack replacements.
func (r *Router[C]) Commands() *value.Mailbox[[]C] {
	return r.commands
}

// Reset queues a replacement of the whole stack, applied before the next
// screen runs. Returns true if it displaced a command not yet applied.
func (r *Router[C]) Reset(configs []C) bool {
	return r.commands.Send(configs)
}

// Run loops until a screen returns ErrExit, a screen fails, or ctx is done.
func (r *Router[C]) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if cmd, ok := r.commands.TryReceive(); ok {
			if err := r.stack.ResetTo(cmd); err != nil {
				return fmt.Errorf("router: reset: %w", err)
			}
			r.logger.Debug("Applied stack command", "size", len(cmd))
		}

		active := r.stack.Active()
		tag := Tag(active.Config)

		fn, ok := r.screens[tag]
		if !ok {
			return fmt.Errorf("router: screen %s not registered", tag)
		}

		err := fn(ctx, active, r.stack)
		if errors.Is(err, ErrExit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("router: screen %s error: %w", tag, err)
		}
	}
}

// Stack returns the stack the router drives.
func (r *Router[C]) Stack() *Stack[C] {
	return r.stack
}
