package router

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/BrandonKowalski/navstack/pkg/navstack/instance"
	"github.com/BrandonKowalski/navstack/pkg/navstack/internal"
	"github.com/BrandonKowalski/navstack/pkg/navstack/value"
)

// Child is a single entry in a navigation stack.
// Key identifies the entry for as long as it stays on the stack, even when
// entries around it change.
type Child[C comparable] struct {
	Key    string
	Config C
}

// Snapshot is an immutable view of a stack. Items[0] is the root and the
// last item is the active screen.
type Snapshot[C comparable] struct {
	Items    []Child[C]
	Revision uint64
}

// Active returns the visible entry.
func (s Snapshot[C]) Active() Child[C] {
	if len(s.Items) == 0 {
		return Child[C]{}
	}
	return s.Items[len(s.Items)-1]
}

// Backstack returns every entry below the active one.
func (s Snapshot[C]) Backstack() []Child[C] {
	if len(s.Items) == 0 {
		return nil
	}
	return s.Items[:len(s.Items)-1]
}

// Configs returns the configurations in stack order.
func (s Snapshot[C]) Configs() []C {
	out := make([]C, len(s.Items))
	for i, c := range s.Items {
		out[i] = c.Config
	}
	return out
}

// Len returns the number of entries.
func (s Snapshot[C]) Len() int {
	return len(s.Items)
}

// Option configures a Stack.
type Option func(*options)

type options struct {
	name   string
	logger *slog.Logger
}

// WithName labels the stack in log output.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger overrides the internal logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func buildOptions(opts []Option) options {
	o := options{name: "stack"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = internal.GetInternalLogger()
	}
	return o
}

// Stack is the ordered sequence of screen configurations for one
// navigable region. It is never empty.
//
// Every change publishes exactly one Snapshot to subscribers before the
// method returns. Calls that leave the sequence as it was publish nothing.
type Stack[C comparable] struct {
	name   string
	logger *slog.Logger
	state  *value.Value[Snapshot[C]]

	mu      sync.Mutex
	keepers map[string]*instance.Keeper
}

// NewStack creates a stack seeded with initial, bottom first.
func NewStack[C comparable](initial []C, opts ...Option) (*Stack[C], error) {
	if len(initial) == 0 {
		return nil, ErrEmptyStack
	}
	o := buildOptions(opts)

	items := make([]Child[C], len(initial))
	for i, c := range initial {
		items[i] = Child[C]{Key: uuid.NewString(), Config: c}
	}

	return &Stack[C]{
		name:    o.name,
		logger:  o.logger,
		state:   value.NewValue(Snapshot[C]{Items: items}),
		keepers: make(map[string]*instance.Keeper),
	}, nil
}

// Push makes c the active screen.
func (s *Stack[C]) Push(c C) {
	s.transition("push", func(cur []C) []C {
		return append(cur, c)
	})
}

// Pop removes the active screen. The root is never popped: Pop on a
// single-entry stack does nothing and returns false.
func (s *Stack[C]) Pop() bool {
	return s.transition("pop", func(cur []C) []C {
		if len(cur) <= 1 {
			return cur
		}
		return cur[:len(cur)-1]
	})
}

// PopTo removes every entry above index i. Returns false if i is out of
// range or already the active index.
func (s *Stack[C]) PopTo(i int) bool {
	return s.transition("pop_to", func(cur []C) []C {
		if i < 0 || i >= len(cur) {
			return cur
		}
		return cur[:i+1]
	})
}

// PopWhile pops from the top while match holds for the active screen,
// stopping at the root. Returns the number of popped entries.
func (s *Stack[C]) PopWhile(match func(C) bool) int {
	popped := 0
	s.transition("pop_while", func(cur []C) []C {
		for len(cur) > 1 && match(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
			popped++
		}
		return cur
	})
	return popped
}

// Replace substitutes next for every entry matching match, keeping order
// and length. Returns the number of replaced entries.
func (s *Stack[C]) Replace(match func(C) bool, next C) int {
	replaced := 0
	s.transition("replace", func(cur []C) []C {
		for i, c := range cur {
			if match(c) {
				cur[i] = next
				replaced++
			}
		}
		return cur
	})
	return replaced
}

// ReplaceVariant replaces every entry of the same variant as next.
func (s *Stack[C]) ReplaceVariant(next C) int {
	return s.Replace(SameVariant(next), next)
}

// ResetTo discards the current entries and installs configs in a single
// transition. Entries equal to ones already on the stack keep their keys.
func (s *Stack[C]) ResetTo(configs []C) error {
	if len(configs) == 0 {
		return ErrEmptyStack
	}
	s.transition("reset", func([]C) []C {
		return slices.Clone(configs)
	})
	return nil
}

// BringToFront removes every entry of the same variant as c and pushes c.
// An equal entry keeps its key, so its retained state survives the move.
func (s *Stack[C]) BringToFront(c C) {
	same := SameVariant(c)
	s.transition("bring_to_front", func(cur []C) []C {
		out := cur[:0]
		for _, existing := range cur {
			if !same(existing) {
				out = append(out, existing)
			}
		}
		return append(out, c)
	})
}

// Navigate applies fn to a copy of the current configurations and installs
// the result in a single transition.
func (s *Stack[C]) Navigate(fn func([]C) []C) error {
	var err error
	s.transition("navigate", func(cur []C) []C {
		next := fn(cur)
		if len(next) == 0 {
			err = ErrEmptyStack
			return nil
		}
		return next
	})
	return err
}

// Active returns the visible entry.
func (s *Stack[C]) Active() Child[C] {
	return s.state.Get().Active()
}

// Configs returns the configurations in stack order.
func (s *Stack[C]) Configs() []C {
	return s.state.Get().Configs()
}

// Len returns the number of entries.
func (s *Stack[C]) Len() int {
	return s.state.Get().Len()
}

// Snapshot returns the current snapshot.
func (s *Stack[C]) Snapshot() Snapshot[C] {
	return s.state.Get()
}

// Subscribe calls fn with the current snapshot and with every later one.
func (s *Stack[C]) Subscribe(fn func(Snapshot[C])) (cancel func()) {
	return s.state.Subscribe(fn)
}

// Keeper returns the instance keeper owned by the entry with the given key,
// creating it on first use. Returns false once the entry has left the stack.
func (s *Stack[C]) Keeper(key string) (*instance.Keeper, bool) {
	present := false
	for _, c := range s.state.Get().Items {
		if c.Key == key {
			present = true
			break
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if k, ok := s.keepers[key]; ok {
		return k, !k.IsDestroyed()
	}
	if !present {
		return nil, false
	}
	k := instance.NewKeeper()
	s.keepers[key] = k
	return k, true
}

// ActiveKeeper returns the keeper of the active entry.
func (s *Stack[C]) ActiveKeeper() *instance.Keeper {
	k, _ := s.Keeper(s.Active().Key)
	return k
}

// Destroy tears down every entry's keeper. The stack itself stays usable.
func (s *Stack[C]) Destroy() {
	s.mu.Lock()
	keepers := s.keepers
	s.keepers = make(map[string]*instance.Keeper)
	s.mu.Unlock()

	for _, k := range keepers {
		k.Destroy()
	}
}

// transition runs fn against a private copy of the configurations and
// publishes the outcome. A nil or unchanged result publishes nothing.
func (s *Stack[C]) transition(op string, fn func([]C) []C) bool {
	var removed []*instance.Keeper

	snap, changed := s.state.Modify(func(cur Snapshot[C]) (Snapshot[C], bool) {
		next := fn(cur.Configs())
		if len(next) == 0 || slices.Equal(next, cur.Configs()) {
			return cur, false
		}

		items, gone := rekey(cur.Items, next)
		removed = s.detach(gone)
		return Snapshot[C]{Items: items, Revision: cur.Revision + 1}, true
	})
	if !changed {
		s.logger.Debug("Stack transition ignored", "stack", s.name, "op", op, "size", snap.Len())
		return false
	}

	s.logger.Debug("Stack transition",
		"stack", s.name,
		"op", op,
		"size", snap.Len(),
		"active", Tag(snap.Active().Config),
		"revision", snap.Revision,
	)

	// Topmost first, the order entries would have been popped in.
	for i := len(removed) - 1; i >= 0; i-- {
		removed[i].Destroy()
	}
	return true
}

// detach takes the keepers of entries that are leaving the stack out of the
// registry so nothing can reach them once the new snapshot is published.
func (s *Stack[C]) detach(keys []string) []*instance.Keeper {
	if len(keys) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*instance.Keeper
	for _, key := range keys {
		if k, ok := s.keepers[key]; ok {
			out = append(out, k)
			delete(s.keepers, key)
		}
	}
	return out
}

// rekey builds the entries for next. An entry keeps the key of the old
// entry at the same index when their configurations are equal; otherwise it
// takes the key of the first unclaimed old entry with an equal
// configuration, or a new one. It returns the new entries and the keys of
// old entries that were not reused.
func rekey[C comparable](old []Child[C], next []C) ([]Child[C], []string) {
	claimed := make([]bool, len(old))
	items := make([]Child[C], len(next))

	for i, c := range next {
		if i < len(old) && old[i].Config == c {
			claimed[i] = true
			items[i] = Child[C]{Key: old[i].Key, Config: c}
		}
	}

	for i, c := range next {
		if items[i].Key != "" {
			continue
		}
		key := ""
		for j, o := range old {
			if !claimed[j] && o.Config == c {
				claimed[j] = true
				key = o.Key
				break
			}
		}
		if key == "" {
			key = uuid.NewString()
		}
		items[i] = Child[C]{Key: key, Config: c}
	}

	var gone []string
	for j, o := range old {
		if !claimed[j] {
			gone = append(gone, o.Key)
		}
	}
	return items, gone
}
