package value

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

// Mailbox is a single-slot handoff between one producer and one consumer.
// At most one message is pending; sending while a message is pending
// discards the older one.
type Mailbox[T any] struct {
	mu     sync.Mutex
	slot   chan T
	closed atomic.Bool
	done   chan struct{}
}

// NewMailbox creates an empty Mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{
		slot: make(chan T, 1),
		done: make(chan struct{}),
	}
}

// Send stores msg, discarding any message still pending.
// Returns true if a pending message was replaced.
// Send on a closed mailbox does nothing and returns false.
func (m *Mailbox[T]) Send(msg T) (replaced bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed.Load() {
		return false
	}

	select {
	case <-m.slot:
		replaced = true
	default:
	}

	m.slot <- msg
	return replaced
}

// Receive blocks until a message is available, the mailbox is closed or ctx
// is done.
func (m *Mailbox[T]) Receive(ctx context.Context) (T, error) {
	select {
	case msg := <-m.slot:
		return msg, nil
	default:
	}

	select {
	case msg := <-m.slot:
		return msg, nil
	case <-m.done:
		var zero T
		return zero, ErrClosed
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryReceive takes the pending message without blocking.
func (m *Mailbox[T]) TryReceive() (T, bool) {
	select {
	case msg := <-m.slot:
		return msg, true
	default:
		var zero T
		return zero, false
	}
}

// C exposes the slot for use in select statements.
func (m *Mailbox[T]) C() <-chan T {
	return m.slot
}

// Pending reports whether a message is waiting.
func (m *Mailbox[T]) Pending() bool {
	return len(m.slot) > 0
}

// Close stops the mailbox from accepting messages and wakes blocked
// receivers. A message already pending can still be taken with TryReceive.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed.CompareAndSwap(false, true) {
		close(m.done)
	}
}
