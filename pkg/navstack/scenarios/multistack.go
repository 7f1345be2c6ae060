package scenarios

import (
	"context"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
)

// MainTab is one bottom navigation destination.
type MainTab string

const (
	TabHome     MainTab = "home"
	TabPayments MainTab = "payments"
	TabCatalog  MainTab = "catalog"
	TabProfile  MainTab = "profile"
)

// MainTabs lists the tabs in display order.
var MainTabs = []MainTab{TabHome, TabPayments, TabCatalog, TabProfile}

func (t MainTab) Title() string {
	return navstack.Localize("tab_"+string(t), nil)
}

// TabPage is a screen inside a tab; Depth 0 is the tab's root.
type TabPage struct {
	Tab   MainTab
	Depth int
}

func (p TabPage) title() string {
	if p.Depth == 0 {
		return p.Tab.Title()
	}
	return navstack.Localize("tab_detail", map[string]any{"Tab": p.Tab.Title(), "N": p.Depth})
}

// Multistack keeps one independent stack per bottom tab.
type Multistack struct {
	tabs *router.TabSet[MainTab, TabPage]
}

func init() {
	register("multistack", func() (Scenario, error) { return NewMultistack() })
}

// NewMultistack creates the scenario with Home in front.
func NewMultistack() (*Multistack, error) {
	decl := make([]router.Tab[MainTab, TabPage], 0, len(MainTabs))
	for _, t := range MainTabs {
		decl = append(decl, router.Tab[MainTab, TabPage]{ID: t, Root: TabPage{Tab: t}})
	}
	tabs, err := router.NewTabSet(decl, router.WithName("multistack"))
	if err != nil {
		return nil, err
	}
	return &Multistack{tabs: tabs}, nil
}

func (m *Multistack) Name() string { return "multistack" }

// Tabs exposes the underlying tab set.
func (m *Multistack) Tabs() *router.TabSet[MainTab, TabPage] {
	return m.tabs
}

// Select brings tab to the front.
func (m *Multistack) Select(tab MainTab) error {
	if err := m.tabs.BringToFront(tab); err != nil {
		return navstack.NewNavigationError("select_tab", err)
	}
	return nil
}

// OpenDetail pushes a detail page in the front tab.
func (m *Multistack) OpenDetail() {
	stack := m.tabs.FrontStack()
	active := stack.Active().Config
	stack.Push(TabPage{Tab: active.Tab, Depth: active.Depth + 1})
}

// Back pops within the front tab.
func (m *Multistack) Back() bool {
	return m.tabs.FrontStack().Pop()
}

// Close releases the tab stacks.
func (m *Multistack) Close() {
	m.tabs.Close()
}

func (m *Multistack) frame() Frame {
	snap := m.tabs.Snapshot()
	f := Frame{Stack: titles(snap.Stack, TabPage.title)}
	for i, t := range snap.Tabs {
		f.Tabs = append(f.Tabs, t.Title())
		if t == snap.Front {
			f.Front = i
		}
	}
	return f
}

// Walkthrough opens a catalog detail, visits payments and returns to the
// catalog with its detail still open.
func (m *Multistack) Walkthrough(ctx context.Context, emit func(Frame)) error {
	defer m.Close()

	steps := []struct {
		label  string
		action func() error
	}{
		{"start", nil},
		{TabCatalog.Title(), func() error { return m.Select(TabCatalog) }},
		{"detail", func() error { m.OpenDetail(); return nil }},
		{TabPayments.Title(), func() error { return m.Select(TabPayments) }},
		{TabCatalog.Title(), func() error { return m.Select(TabCatalog) }},
		{navstack.Localize("back", nil), func() error { m.Back(); return nil }},
	}
	for _, st := range steps {
		if err := step(ctx, emit, st.label, st.action, m.frame); err != nil {
			return err
		}
	}
	return nil
}
