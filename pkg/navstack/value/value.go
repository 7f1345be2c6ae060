// Package value provides observable state holders.
//
// A Value always has a current element. Subscribers receive that element
// immediately when they subscribe and then every later one, in publication
// order, before the outermost call that produced it returns.
package value

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/atomic"
)

// Value holds the latest immutable element of type T and notifies observers
// on every change.
//
// Value is safe for concurrent use, but ordering between observers is only
// guaranteed when a single goroutine performs all mutations. A publication
// made while another goroutine is delivering is handed to that goroutine.
type Value[T any] struct {
	mu        sync.Mutex
	current   T
	observers map[uint64]func(T)

	// Publications waiting for delivery, drained by the call that set
	// publishing.
	queue      []publication[T]
	publishing bool

	nextID   atomic.Uint64
	revision atomic.Uint64
}

type publication[T any] struct {
	value T
	ids   []uint64 // observers subscribed when value was stored
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current:   initial,
		observers: make(map[uint64]func(T)),
	}
}

// Get returns the current element.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Revision returns how many times the value has been published since creation.
func (v *Value[T]) Revision() uint64 {
	return v.revision.Load()
}

// Subscribe registers fn and calls it with the current element before
// returning. The returned cancel func detaches fn and may be called more
// than once.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	id := v.nextID.Inc()

	v.mu.Lock()
	v.observers[id] = fn
	current := v.current
	v.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.observers, id)
			v.mu.Unlock()
		})
	}
}

// Set replaces the current element and notifies every observer.
func (v *Value[T]) Set(next T) {
	v.Update(func(T) T { return next })
}

// Update computes the next element from the current one under the lock and
// publishes the result once.
func (v *Value[T]) Update(fn func(T) T) T {
	next, _ := v.Modify(func(cur T) (T, bool) { return fn(cur), true })
	return next
}

// Modify is Update with an opt-out: when fn reports false nothing is stored
// or published and the current element is returned unchanged.
//
// fn runs with the lock held and must not call back into v. Observers run
// after the lock is released, so they may publish again. Such a nested
// publication is queued and delivered once every observer has seen the
// element before it, so each observer receives elements in the order they
// were stored and ends on the current one.
func (v *Value[T]) Modify(fn func(T) (T, bool)) (T, bool) {
	v.mu.Lock()
	next, changed := fn(v.current)
	if !changed {
		cur := v.current
		v.mu.Unlock()
		return cur, false
	}
	v.current = next
	v.revision.Inc()
	v.queue = append(v.queue, publication[T]{value: next, ids: v.observerIDs()})

	if v.publishing {
		v.mu.Unlock()
		return next, true
	}
	v.publishing = true
	v.drain()
	v.publishing = false
	v.mu.Unlock()

	return next, true
}

// drain delivers queued publications. It must be called with v.mu held and
// returns with it held; the lock is released around each observer call.
// Observers cancelled in the meantime are skipped.
func (v *Value[T]) drain() {
	for len(v.queue) > 0 {
		p := v.queue[0]
		v.queue = v.queue[1:]

		for _, id := range p.ids {
			o, ok := v.observers[id]
			if !ok {
				continue
			}
			v.mu.Unlock()
			o(p.value)
			v.mu.Lock()
		}
	}
	v.queue = nil
}

// Watch returns a channel carrying the current element and then later ones.
// Slow readers only ever see the most recent element they have not read yet.
// The channel is closed when ctx is done.
func (v *Value[T]) Watch(ctx context.Context) <-chan T {
	box := NewMailbox[T]()
	out := make(chan T)

	cancel := v.Subscribe(func(t T) { box.Send(t) })

	go func() {
		defer close(out)
		defer box.Close()
		defer cancel()

		for {
			t, err := box.Receive(ctx)
			if err != nil {
				return
			}
			select {
			case out <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// observerIDs must be called with v.mu held. IDs are returned in
// subscription order.
func (v *Value[T]) observerIDs() []uint64 {
	ids := make([]uint64, 0, len(v.observers))
	for id := range v.observers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
