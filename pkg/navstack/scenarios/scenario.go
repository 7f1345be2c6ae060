// Package scenarios implements the demonstrated navigation flows on top of
// the router containers: a linear flow, typed argument passing, nested
// stacks, bottom tabs, modal overlays, initial-stack seeding and
// mid-stack replacement.
//
// Each scenario is a root component owning its stacks. Screen is the view
// model a render layer would draw; Walkthrough drives the scenario through
// a fixed script and reports every visible state.
package scenarios

import (
	"context"
	"fmt"
	"sort"

	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
)

// Screen is what a render layer draws for the active configuration.
type Screen struct {
	Title  string
	Button string
}

// Frame is the visible state after one walkthrough step.
type Frame struct {
	Action  string   // What was done to reach this state
	Stack   []string // Titles, root first
	Overlay string   // Title of the shown modal, empty when none
	Tabs    []string // Tab titles, nil outside tab scenarios
	Front   int      // Index of the front tab in Tabs
}

// Scenario is a self-contained navigation demo.
type Scenario interface {
	Name() string
	Walkthrough(ctx context.Context, emit func(Frame)) error
}

// Factory builds a fresh scenario.
type Factory func() (Scenario, error)

var registry = map[string]Factory{}

func register(name string, f Factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("scenarios: duplicate scenario %q", name))
	}
	registry[name] = f
}

// Names lists the registered scenarios alphabetically.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// New builds the scenario registered under name.
func New(name string) (Scenario, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("scenarios: unknown scenario %q", name)
	}
	return f()
}

// titles renders every entry of snap with title.
func titles[C comparable](snap router.Snapshot[C], title func(C) string) []string {
	out := make([]string, snap.Len())
	for i, c := range snap.Items {
		out[i] = title(c.Config)
	}
	return out
}

// step performs action and emits the resulting frame, stopping early when
// ctx is done.
func step(ctx context.Context, emit func(Frame), label string, action func() error, frame func() Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if action != nil {
		if err := action(); err != nil {
			return err
		}
	}
	f := frame()
	f.Action = label
	emit(f)
	return nil
}
