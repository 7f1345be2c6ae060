package scenarios

import (
	"context"
	"errors"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
)

// SeedMode selects how InitialStack installs its starting stack.
type SeedMode int

const (
	// SeedDirect creates the stack with all four screens.
	SeedDirect SeedMode = iota
	// SeedCommand starts at A and hands the full stack to the running
	// router through its command mailbox.
	SeedCommand
)

// InitialSeed is the stack InitialStack opens with.
func InitialSeed() []LinearConfig {
	return []LinearConfig{ScreenA{}, ScreenB{Title: navstack.Localize("screen_b", nil)}, ScreenC{}, ScreenD{}}
}

// InitialStack opens directly on D with A, B and C already underneath.
type InitialStack struct {
	mode   SeedMode
	router *router.Router[LinearConfig]
}

func init() {
	register("initial-stack", func() (Scenario, error) { return NewInitialStack(SeedDirect) })
	register("initial-stack-command", func() (Scenario, error) { return NewInitialStack(SeedCommand) })
	register("screen-replacing", func() (Scenario, error) { return NewScreenReplacing() })
}

// NewInitialStack creates the scenario. With SeedCommand the seed is
// queued and applied when the router starts.
func NewInitialStack(mode SeedMode) (*InitialStack, error) {
	seed := InitialSeed()
	if mode == SeedCommand {
		seed = seed[:1]
	}
	stack, err := router.NewStack(seed, router.WithName("initial_stack"))
	if err != nil {
		return nil, err
	}

	r := router.New(stack)
	if mode == SeedCommand {
		r.Reset(InitialSeed())
	}
	return &InitialStack{mode: mode, router: r}, nil
}

func (s *InitialStack) Name() string {
	if s.mode == SeedCommand {
		return "initial-stack-command"
	}
	return "initial-stack"
}

// Stack exposes the underlying stack.
func (s *InitialStack) Stack() *router.Stack[LinearConfig] {
	return s.router.Stack()
}

// Router exposes the router that drives the walkthrough.
func (s *InitialStack) Router() *router.Router[LinearConfig] {
	return s.router
}

// Walkthrough runs the router, backing out from D to A.
func (s *InitialStack) Walkthrough(ctx context.Context, emit func(Frame)) error {
	back := navstack.Localize("back", nil)
	label := "start"

	frame := func(stack *router.Stack[LinearConfig]) {
		emit(Frame{Action: label, Stack: titles(stack.Snapshot(), linearTitle)})
		label = back
	}
	pop := func(_ context.Context, _ router.Child[LinearConfig], stack *router.Stack[LinearConfig]) error {
		frame(stack)
		stack.Pop()
		return nil
	}

	s.router.
		RegisterVariant(ScreenD{}, pop).
		RegisterVariant(ScreenC{}, pop).
		RegisterVariant(ScreenB{}, pop).
		RegisterVariant(ScreenA{}, func(_ context.Context, _ router.Child[LinearConfig], stack *router.Stack[LinearConfig]) error {
			frame(stack)
			return router.ErrExit
		})

	return s.router.Run(ctx)
}

// ScreenReplacing walks A → B → C → D and then rewrites B in place from D.
type ScreenReplacing struct {
	stack *router.Stack[LinearConfig]
}

// NewScreenReplacing creates the scenario at screen A.
func NewScreenReplacing() (*ScreenReplacing, error) {
	stack, err := router.NewStack([]LinearConfig{ScreenA{}}, router.WithName("screen_replacing"))
	if err != nil {
		return nil, err
	}
	return &ScreenReplacing{stack: stack}, nil
}

func (s *ScreenReplacing) Name() string { return "screen-replacing" }

// Stack exposes the underlying stack.
func (s *ScreenReplacing) Stack() *router.Stack[LinearConfig] {
	return s.stack
}

// Screen returns the view model for the active screen.
func (s *ScreenReplacing) Screen() Screen {
	c := s.stack.Active().Config
	switch c.(type) {
	case ScreenA:
		return Screen{Title: linearTitle(c), Button: goTo("screen_b")}
	case ScreenB:
		return Screen{Title: linearTitle(c), Button: goTo("screen_c")}
	case ScreenC:
		return Screen{Title: linearTitle(c), Button: goTo("screen_d")}
	default:
		return Screen{Title: linearTitle(c), Button: navstack.Localize("replace_b", nil)}
	}
}

// Click performs the active screen's button action.
func (s *ScreenReplacing) Click() error {
	switch s.stack.Active().Config.(type) {
	case ScreenA:
		s.stack.Push(ScreenB{Title: navstack.Localize("initial_b", nil)})
	case ScreenB:
		s.stack.Push(ScreenC{})
	case ScreenC:
		s.stack.Push(ScreenD{})
	case ScreenD:
		return s.ReplaceB(navstack.Localize("replaced_b", nil))
	}
	return nil
}

// ReplaceB swaps every B under the active screen for one titled title.
func (s *ScreenReplacing) ReplaceB(title string) error {
	if s.stack.ReplaceVariant(ScreenB{Title: title}) == 0 {
		return navstack.NewNavigationError("replace_b", errors.New("no B on the stack"))
	}
	return nil
}

// Back pops the active screen.
func (s *ScreenReplacing) Back() bool {
	return s.stack.Pop()
}

func (s *ScreenReplacing) frame() Frame {
	return Frame{Stack: titles(s.stack.Snapshot(), linearTitle)}
}

// Walkthrough builds the stack, replaces B from D and backs down to it.
func (s *ScreenReplacing) Walkthrough(ctx context.Context, emit func(Frame)) error {
	back := navstack.Localize("back", nil)
	steps := []struct {
		label  string
		action func() error
	}{
		{"start", nil},
		{goTo("screen_b"), s.Click},
		{goTo("screen_c"), s.Click},
		{goTo("screen_d"), s.Click},
		{navstack.Localize("replace_b", nil), s.Click},
		{back, func() error { s.Back(); return nil }},
		{back, func() error { s.Back(); return nil }},
	}
	for _, st := range steps {
		if err := step(ctx, emit, st.label, st.action, s.frame); err != nil {
			return err
		}
	}
	return nil
}
