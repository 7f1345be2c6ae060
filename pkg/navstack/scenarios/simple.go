package scenarios

import (
	"context"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
)

// LinearConfig is a destination of the linear A → B → C → D flow shared by
// the simple and complex scenarios.
type LinearConfig interface{ isLinearConfig() }

type ScreenA struct{}
type ScreenB struct{ Title string }
type ScreenC struct{}
type ScreenD struct{}

func (ScreenA) isLinearConfig() {}
func (ScreenB) isLinearConfig() {}
func (ScreenC) isLinearConfig() {}
func (ScreenD) isLinearConfig() {}

func linearTitle(c LinearConfig) string {
	switch c := c.(type) {
	case ScreenA:
		return navstack.Localize("screen_a", nil)
	case ScreenB:
		return c.Title
	case ScreenC:
		return navstack.Localize("screen_c", nil)
	case ScreenD:
		return navstack.Localize("screen_d", nil)
	}
	return ""
}

func goTo(id string) string {
	return navstack.Localize("go_to", map[string]any{"Target": navstack.Localize(id, nil)})
}

// Simple is a single stack walked forward and back.
type Simple struct {
	stack *router.Stack[LinearConfig]
}

func init() {
	register("simple", func() (Scenario, error) { return NewSimple() })
}

// NewSimple creates the flow at screen A.
func NewSimple() (*Simple, error) {
	stack, err := router.NewStack([]LinearConfig{ScreenA{}}, router.WithName("simple"))
	if err != nil {
		return nil, err
	}
	return &Simple{stack: stack}, nil
}

func (s *Simple) Name() string { return "simple" }

// Stack exposes the underlying stack.
func (s *Simple) Stack() *router.Stack[LinearConfig] {
	return s.stack
}

// Screen returns the view model for the active screen.
func (s *Simple) Screen() Screen {
	c := s.stack.Active().Config
	switch c.(type) {
	case ScreenA:
		return Screen{Title: linearTitle(c), Button: goTo("screen_b")}
	case ScreenB:
		return Screen{Title: linearTitle(c), Button: goTo("screen_c")}
	case ScreenC:
		return Screen{Title: linearTitle(c), Button: goTo("screen_d")}
	default:
		return Screen{Title: linearTitle(c), Button: navstack.Localize("back", nil)}
	}
}

// Click performs the active screen's button action.
func (s *Simple) Click() {
	switch s.stack.Active().Config.(type) {
	case ScreenA:
		s.stack.Push(ScreenB{Title: navstack.Localize("screen_b", nil)})
	case ScreenB:
		s.stack.Push(ScreenC{})
	case ScreenC:
		s.stack.Push(ScreenD{})
	case ScreenD:
		s.stack.Pop()
	}
}

// Back pops the active screen; false at the root.
func (s *Simple) Back() bool {
	return s.stack.Pop()
}

func (s *Simple) frame() Frame {
	return Frame{Stack: titles(s.stack.Snapshot(), linearTitle)}
}

// Walkthrough goes A → B → C → D, then back twice.
func (s *Simple) Walkthrough(ctx context.Context, emit func(Frame)) error {
	steps := []struct {
		label  string
		action func() error
	}{
		{"start", nil},
		{s.Screen().Button, func() error { s.Click(); return nil }},
		{goTo("screen_c"), func() error { s.Click(); return nil }},
		{goTo("screen_d"), func() error { s.Click(); return nil }},
		{navstack.Localize("back", nil), func() error { s.Click(); return nil }},
		{navstack.Localize("back", nil), func() error { s.Back(); return nil }},
	}
	for _, st := range steps {
		if err := step(ctx, emit, st.label, st.action, s.frame); err != nil {
			return err
		}
	}
	return nil
}
