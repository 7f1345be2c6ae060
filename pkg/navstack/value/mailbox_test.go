package value

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMailboxOverwritesPending(t *testing.T) {
	m := NewMailbox[string]()

	require.False(t, m.Send("first"))
	require.True(t, m.Send("second"))
	require.True(t, m.Pending())

	got, ok := m.TryReceive()
	require.True(t, ok)
	require.Equal(t, "second", got)

	_, ok = m.TryReceive()
	require.False(t, ok)
}

func TestMailboxReceiveBlocksUntilSend(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	m := NewMailbox[int]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		m.Send(42)
	}()

	got, err := m.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, 42, got)
}

func TestMailboxReceiveHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := NewMailbox[int]().Receive(ctx)
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestMailboxClose(t *testing.T) {
	m := NewMailbox[int]()
	m.Close()
	m.Close()

	require.False(t, m.Send(1))

	_, err := m.Receive(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}
