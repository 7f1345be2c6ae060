package router

import (
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/navstack/pkg/navstack/value"
)

// Tab declares one destination of a TabSet and the root of its stack.
type Tab[T comparable, C comparable] struct {
	ID   T
	Root C
}

// TabSnapshot is an immutable view of a TabSet: the tab order, the front
// tab and the front tab's stack.
type TabSnapshot[T comparable, C comparable] struct {
	Tabs     []T
	Front    T
	Stack    Snapshot[C]
	Revision uint64
}

// TabSet is a fixed, ordered group of independent stacks. Exactly one tab
// is in front; switching tabs never changes any stack's contents.
type TabSet[T comparable, C comparable] struct {
	name   string
	logger *slog.Logger

	order  []T
	stacks map[T]*Stack[C]
	state  *value.Value[TabSnapshot[T, C]]

	cancels []func()
}

// NewTabSet creates a tab set with the first tab in front.
func NewTabSet[T comparable, C comparable](tabs []Tab[T, C], opts ...Option) (*TabSet[T, C], error) {
	if len(tabs) == 0 {
		return nil, ErrEmptyStack
	}
	o := buildOptions(append([]Option{WithName("tabs")}, opts...))

	ts := &TabSet[T, C]{
		name:   o.name,
		logger: o.logger,
		stacks: make(map[T]*Stack[C], len(tabs)),
	}

	for _, tab := range tabs {
		if _, dup := ts.stacks[tab.ID]; dup {
			return nil, fmt.Errorf("router: duplicate tab %v", tab.ID)
		}
		stack, err := NewStack([]C{tab.Root}, WithName(fmt.Sprintf("%s/%v", o.name, tab.ID)), WithLogger(o.logger))
		if err != nil {
			return nil, err
		}
		ts.order = append(ts.order, tab.ID)
		ts.stacks[tab.ID] = stack
	}

	front := ts.order[0]
	ts.state = value.NewValue(TabSnapshot[T, C]{
		Tabs:  ts.Tabs(),
		Front: front,
		Stack: ts.stacks[front].Snapshot(),
	})

	for _, id := range ts.order {
		ts.cancels = append(ts.cancels, ts.stacks[id].Subscribe(ts.follow(id)))
	}

	return ts, nil
}

// follow republishes stack changes while id is the front tab.
func (ts *TabSet[T, C]) follow(id T) func(Snapshot[C]) {
	return func(snap Snapshot[C]) {
		ts.state.Modify(func(cur TabSnapshot[T, C]) (TabSnapshot[T, C], bool) {
			if cur.Front != id || cur.Stack.Revision == snap.Revision {
				return cur, false
			}
			cur.Stack = snap
			cur.Revision++
			return cur, true
		})
	}
}

// BringToFront makes tab the visible one. Its stack is shown exactly as it
// was left.
func (ts *TabSet[T, C]) BringToFront(tab T) error {
	stack, ok := ts.stacks[tab]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownTab, tab)
	}

	_, changed := ts.state.Modify(func(cur TabSnapshot[T, C]) (TabSnapshot[T, C], bool) {
		if cur.Front == tab {
			return cur, false
		}
		return TabSnapshot[T, C]{
			Tabs:     cur.Tabs,
			Front:    tab,
			Stack:    stack.Snapshot(),
			Revision: cur.Revision + 1,
		}, true
	})
	if changed {
		ts.logger.Debug("Tab brought to front", "tabs", ts.name, "tab", fmt.Sprint(tab))
	}
	return nil
}

// Front returns the visible tab.
func (ts *TabSet[T, C]) Front() T {
	return ts.state.Get().Front
}

// FrontStack returns the visible tab's stack.
func (ts *TabSet[T, C]) FrontStack() *Stack[C] {
	return ts.stacks[ts.Front()]
}

// Stack returns the stack backing tab, or nil for an unknown tab.
func (ts *TabSet[T, C]) Stack(tab T) *Stack[C] {
	return ts.stacks[tab]
}

// Tabs returns the tabs in declaration order.
func (ts *TabSet[T, C]) Tabs() []T {
	out := make([]T, len(ts.order))
	copy(out, ts.order)
	return out
}

// Snapshot returns the current snapshot.
func (ts *TabSet[T, C]) Snapshot() TabSnapshot[T, C] {
	return ts.state.Get()
}

// Subscribe calls fn with the current snapshot and with every later one.
// Changes to stacks of tabs that are not in front are not published.
func (ts *TabSet[T, C]) Subscribe(fn func(TabSnapshot[T, C])) (cancel func()) {
	return ts.state.Subscribe(fn)
}

// Close detaches from the tab stacks and destroys their retained state.
func (ts *TabSet[T, C]) Close() {
	for _, cancel := range ts.cancels {
		cancel()
	}
	ts.cancels = nil
	for _, id := range ts.order {
		ts.stacks[id].Destroy()
	}
}
