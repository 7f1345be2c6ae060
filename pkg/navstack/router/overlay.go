package router

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/BrandonKowalski/navstack/pkg/navstack/instance"
	"github.com/BrandonKowalski/navstack/pkg/navstack/value"
)

// OverlaySnapshot is an immutable view of an overlay slot.
type OverlaySnapshot[C comparable] struct {
	Child    Child[C]
	Present  bool
	Revision uint64
}

// Overlay holds at most one modal configuration (dialog, bottom sheet)
// independently of any stack.
type Overlay[C comparable] struct {
	name   string
	logger *slog.Logger
	state  *value.Value[OverlaySnapshot[C]]

	mu     sync.Mutex
	keeper *instance.Keeper
}

// NewOverlay creates an empty overlay slot.
func NewOverlay[C comparable](opts ...Option) *Overlay[C] {
	o := buildOptions(append([]Option{WithName("overlay")}, opts...))
	return &Overlay[C]{
		name:   o.name,
		logger: o.logger,
		state:  value.NewValue(OverlaySnapshot[C]{}),
	}
}

// Activate shows c, replacing the current overlay if there is one.
// Activating the configuration already shown does nothing.
func (o *Overlay[C]) Activate(c C) {
	var (
		previous bool
		old      *instance.Keeper
	)

	_, changed := o.state.Modify(func(cur OverlaySnapshot[C]) (OverlaySnapshot[C], bool) {
		if cur.Present && cur.Child.Config == c {
			return cur, false
		}
		previous = cur.Present
		old = o.detachKeeper()
		return OverlaySnapshot[C]{
			Child:    Child[C]{Key: uuid.NewString(), Config: c},
			Present:  true,
			Revision: cur.Revision + 1,
		}, true
	})
	if !changed {
		return
	}

	o.logger.Debug("Overlay activated", "overlay", o.name, "config", Tag(c), "replaced", previous)
	if old != nil {
		old.Destroy()
	}
}

// Dismiss clears the slot. Dismissing an empty slot does nothing.
func (o *Overlay[C]) Dismiss() {
	var old *instance.Keeper

	_, changed := o.state.Modify(func(cur OverlaySnapshot[C]) (OverlaySnapshot[C], bool) {
		if !cur.Present {
			return cur, false
		}
		old = o.detachKeeper()
		return OverlaySnapshot[C]{Revision: cur.Revision + 1}, true
	})
	if !changed {
		return
	}

	o.logger.Debug("Overlay dismissed", "overlay", o.name)
	if old != nil {
		old.Destroy()
	}
}

// Dismisser returns Dismiss as a plain callback, for wiring to the UI's own
// close gestures. Both paths run the same transition.
func (o *Overlay[C]) Dismisser() func() {
	return o.Dismiss
}

// Active returns the shown overlay, if any.
func (o *Overlay[C]) Active() (Child[C], bool) {
	snap := o.state.Get()
	return snap.Child, snap.Present
}

// Snapshot returns the current snapshot.
func (o *Overlay[C]) Snapshot() OverlaySnapshot[C] {
	return o.state.Get()
}

// Subscribe calls fn with the current snapshot and with every later one.
func (o *Overlay[C]) Subscribe(fn func(OverlaySnapshot[C])) (cancel func()) {
	return o.state.Subscribe(fn)
}

// Keeper returns the keeper owned by the shown overlay, or nil when the
// slot is empty.
func (o *Overlay[C]) Keeper() *instance.Keeper {
	if _, ok := o.Active(); !ok {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.keeper == nil {
		o.keeper = instance.NewKeeper()
	}
	return o.keeper
}

func (o *Overlay[C]) detachKeeper() *instance.Keeper {
	o.mu.Lock()
	defer o.mu.Unlock()
	k := o.keeper
	o.keeper = nil
	return k
}
