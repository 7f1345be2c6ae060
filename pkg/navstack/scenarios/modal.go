package scenarios

import (
	"context"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
)

// ModalConfig is a modal surface shown over the modal scenario's screen.
type ModalConfig interface{ isModalConfig() }

type BottomSheet struct{}
type Dialog struct{}

func (BottomSheet) isModalConfig() {}
func (Dialog) isModalConfig()      {}

func modalTitle(c ModalConfig) string {
	switch c.(type) {
	case BottomSheet:
		return navstack.Localize("bottom_sheet", nil)
	case Dialog:
		return navstack.Localize("dialog", nil)
	}
	return ""
}

// Modal shows a bottom sheet or a dialog over an unchanging main stack.
type Modal struct {
	stack   *router.Stack[LinearConfig]
	overlay *router.Overlay[ModalConfig]

	// sheetHidden is what a bottom sheet widget calls when swiped away.
	sheetHidden func()
}

func init() {
	register("modal", func() (Scenario, error) { return NewModal() })
}

// NewModal creates the scenario with no modal shown.
func NewModal() (*Modal, error) {
	stack, err := router.NewStack([]LinearConfig{ScreenA{}}, router.WithName("modal"))
	if err != nil {
		return nil, err
	}
	overlay := router.NewOverlay[ModalConfig](router.WithName("modal/overlay"))
	return &Modal{
		stack:       stack,
		overlay:     overlay,
		sheetHidden: overlay.Dismisser(),
	}, nil
}

func (m *Modal) Name() string { return "modal" }

// Overlay exposes the overlay slot.
func (m *Modal) Overlay() *router.Overlay[ModalConfig] {
	return m.overlay
}

// Stack exposes the main stack.
func (m *Modal) Stack() *router.Stack[LinearConfig] {
	return m.stack
}

func (m *Modal) ShowBottomSheet() { m.overlay.Activate(BottomSheet{}) }

func (m *Modal) ShowDialog() { m.overlay.Activate(Dialog{}) }

// Dismiss closes the modal from a button.
func (m *Modal) Dismiss() { m.overlay.Dismiss() }

// SheetHidden reports that the user swiped the sheet away.
func (m *Modal) SheetHidden() { m.sheetHidden() }

func (m *Modal) frame() Frame {
	f := Frame{Stack: titles(m.stack.Snapshot(), linearTitle)}
	if c, ok := m.overlay.Active(); ok {
		f.Overlay = modalTitle(c.Config)
	}
	return f
}

// Walkthrough opens and closes each modal through both dismissal paths.
func (m *Modal) Walkthrough(ctx context.Context, emit func(Frame)) error {
	steps := []struct {
		label  string
		action func() error
	}{
		{"start", nil},
		{navstack.Localize("bottom_sheet", nil), func() error { m.ShowBottomSheet(); return nil }},
		{"swipe", func() error { m.SheetHidden(); return nil }},
		{navstack.Localize("dialog", nil), func() error { m.ShowDialog(); return nil }},
		{navstack.Localize("bottom_sheet", nil), func() error { m.ShowBottomSheet(); return nil }},
		{"dismiss", func() error { m.Dismiss(); return nil }},
		{"dismiss", func() error { m.Dismiss(); return nil }},
	}
	for _, st := range steps {
		if err := step(ctx, emit, st.label, st.action, m.frame); err != nil {
			return err
		}
	}
	return nil
}
