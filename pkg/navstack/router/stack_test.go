package router

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/navstack/pkg/navstack/instance"
)

type screen interface{ isScreen() }

type screenA struct{}
type screenB struct{ Title string }
type screenC struct{}
type screenD struct{}

func (screenA) isScreen() {}
func (screenB) isScreen() {}
func (screenC) isScreen() {}
func (screenD) isScreen() {}

func newStack(t *testing.T, initial ...screen) *Stack[screen] {
	t.Helper()
	s, err := NewStack(initial)
	require.NoError(t, err)
	return s
}

func TestNewStackRejectsEmpty(t *testing.T) {
	_, err := NewStack[screen](nil)
	require.ErrorIs(t, err, ErrEmptyStack)
}

func TestPushGrowsByOne(t *testing.T) {
	for n := 0; n < 10; n++ {
		s := newStack(t, screenA{})
		var last screen = screenA{}
		for i := 0; i < n; i++ {
			last = screenB{Title: fmt.Sprint(i)}
			s.Push(last)
		}
		require.Equal(t, n+1, s.Len())
		require.Equal(t, last, s.Active().Config)
	}
}

func TestPopAtRootIsNoop(t *testing.T) {
	s := newStack(t, screenA{})

	published := 0
	s.Subscribe(func(Snapshot[screen]) { published++ })

	require.False(t, s.Pop())
	require.False(t, s.Pop())
	require.Equal(t, []screen{screenA{}}, s.Configs())
	require.Equal(t, 1, published)
}

func TestPushPopIsInverse(t *testing.T) {
	starts := [][]screen{
		{screenA{}},
		{screenA{}, screenB{Title: "x"}},
		{screenA{}, screenB{Title: "x"}, screenC{}, screenD{}},
	}
	for _, start := range starts {
		s := newStack(t, start...)
		before := s.Snapshot()

		s.Push(screenD{})
		require.True(t, s.Pop())

		after := s.Snapshot()
		require.Equal(t, before.Configs(), after.Configs())
		require.Equal(t, before.Items, after.Items, "keys survive a push/pop round trip")
	}
}

func TestLinearFlow(t *testing.T) {
	s := newStack(t, screenA{})

	s.Push(screenB{Title: "B"})
	require.Equal(t, screenB{Title: "B"}, s.Active().Config)
	s.Push(screenC{})
	require.Equal(t, screenC{}, s.Active().Config)
	s.Push(screenD{})
	require.Equal(t, screenD{}, s.Active().Config)

	require.True(t, s.Pop())
	require.Equal(t, screenC{}, s.Active().Config)
	require.True(t, s.Pop())
	require.Equal(t, screenB{Title: "B"}, s.Active().Config)
}

func TestReplaceVariantMidStack(t *testing.T) {
	s := newStack(t, screenA{}, screenB{Title: "initial B"}, screenC{}, screenD{})
	before := s.Snapshot()

	n := s.ReplaceVariant(screenB{Title: "replaced B"})
	require.Equal(t, 1, n)

	after := s.Snapshot()
	require.Equal(t, []screen{screenA{}, screenB{Title: "replaced B"}, screenC{}, screenD{}}, after.Configs())
	require.Equal(t, screenD{}, after.Active().Config)
	require.Equal(t, before.Active().Key, after.Active().Key)
	require.NotEqual(t, before.Items[1].Key, after.Items[1].Key)
}

func TestReplaceAllMatches(t *testing.T) {
	s := newStack(t, screenB{Title: "1"}, screenA{}, screenB{Title: "2"})

	n := s.Replace(HasTag[screen](Tag(screenB{})), screenB{Title: "z"})
	require.Equal(t, 2, n)
	require.Equal(t, []screen{screenB{Title: "z"}, screenA{}, screenB{Title: "z"}}, s.Configs())
}

func TestReplaceNoMatchLeavesStack(t *testing.T) {
	s := newStack(t, screenA{}, screenC{})
	rev := s.Snapshot().Revision

	require.Zero(t, s.ReplaceVariant(screenB{Title: "nobody"}))
	require.Equal(t, []screen{screenA{}, screenC{}}, s.Configs())
	require.Equal(t, rev, s.Snapshot().Revision)
}

func TestResetToIsSingleTransition(t *testing.T) {
	s := newStack(t, screenA{}, screenC{})

	var seen []Snapshot[screen]
	s.Subscribe(func(snap Snapshot[screen]) { seen = append(seen, snap) })

	target := []screen{screenA{}, screenB{Title: "B"}, screenC{}, screenD{}}
	require.NoError(t, s.ResetTo(target))

	require.Len(t, seen, 2)
	require.Equal(t, target, seen[1].Configs())
	require.Equal(t, screenD{}, seen[1].Active().Config)
	for _, snap := range seen {
		require.NotZero(t, snap.Len())
	}

	require.ErrorIs(t, s.ResetTo(nil), ErrEmptyStack)
	require.Equal(t, target, s.Configs())
}

func TestNavigateRejectsEmptyResult(t *testing.T) {
	s := newStack(t, screenA{})
	err := s.Navigate(func([]screen) []screen { return nil })
	require.ErrorIs(t, err, ErrEmptyStack)
	require.Equal(t, 1, s.Len())
}

func TestBringToFrontKeepsKey(t *testing.T) {
	s := newStack(t, screenA{}, screenC{}, screenD{})
	keyA := s.Snapshot().Items[0].Key

	s.BringToFront(screenA{})
	snap := s.Snapshot()
	require.Equal(t, []screen{screenC{}, screenD{}, screenA{}}, snap.Configs())
	require.Equal(t, keyA, snap.Active().Key)

	s.BringToFront(screenB{Title: "new"})
	require.Equal(t, screenB{Title: "new"}, s.Active().Config)
	require.Equal(t, 4, s.Len())
}

func TestPopToAndPopWhile(t *testing.T) {
	s := newStack(t, screenA{}, screenB{Title: "B"}, screenC{}, screenD{})

	require.True(t, s.PopTo(1))
	require.Equal(t, []screen{screenA{}, screenB{Title: "B"}}, s.Configs())
	require.False(t, s.PopTo(1))
	require.False(t, s.PopTo(7))

	s.Push(screenC{})
	s.Push(screenC{})
	require.Equal(t, 2, s.PopWhile(SameVariant[screen](screenC{})))
	require.Equal(t, 1, s.PopWhile(func(screen) bool { return true }))
	require.Equal(t, []screen{screenA{}}, s.Configs())
}

type destroyFlag struct{ destroyed bool }

func (d *destroyFlag) OnDestroy() { d.destroyed = true }

func TestKeeperDestroyedOnPop(t *testing.T) {
	s := newStack(t, screenA{})
	s.Push(screenB{Title: "B"})

	keyB := s.Active().Key
	k := s.ActiveKeeper()
	require.NotNil(t, k)
	state := instance.GetOrCreate(k, "state", func() *destroyFlag { return &destroyFlag{} })

	s.Push(screenC{})
	require.False(t, state.destroyed, "covered entries keep their state")

	s.Pop()
	again, ok := s.Keeper(s.Active().Key)
	require.True(t, ok)
	require.Same(t, k, again)

	s.Pop()
	require.True(t, state.destroyed)

	_, ok = s.Keeper(keyB)
	require.False(t, ok)
}

func TestTag(t *testing.T) {
	require.Equal(t, Tag(screenB{Title: "a"}), Tag(screenB{Title: "b"}))
	require.NotEqual(t, Tag(screenA{}), Tag(screenB{}))
	require.Equal(t, "", Tag(nil))
}

type named string

func (n named) Tag() string { return string(n) }

func TestTaggedOverridesType(t *testing.T) {
	require.Equal(t, "home", Tag(named("home")))
}

func TestObserverNavigationKeepsLaterObserversCurrent(t *testing.T) {
	s := newStack(t, screenA{})

	s.Subscribe(func(snap Snapshot[screen]) {
		if _, ok := snap.Active().Config.(screenB); ok {
			s.Push(screenC{})
		}
	})
	var seen [][]screen
	s.Subscribe(func(snap Snapshot[screen]) { seen = append(seen, snap.Configs()) })

	s.Push(screenB{Title: "B"})

	require.Equal(t, []screen{screenA{}, screenB{Title: "B"}, screenC{}}, s.Configs())
	require.Equal(t, [][]screen{
		{screenA{}},
		{screenA{}, screenB{Title: "B"}},
		{screenA{}, screenB{Title: "B"}, screenC{}},
	}, seen)
}

func TestReplaceKeepsKeysInPlace(t *testing.T) {
	s := newStack(t, screenA{}, screenB{Title: "x"}, screenC{}, screenB{Title: "y"})
	before := s.Snapshot()

	active := s.ActiveKeeper()
	state := instance.GetOrCreate(active, "state", func() *destroyFlag { return &destroyFlag{} })

	require.Equal(t, 2, s.ReplaceVariant(screenB{Title: "y"}))

	after := s.Snapshot()
	require.Equal(t, []screen{screenA{}, screenB{Title: "y"}, screenC{}, screenB{Title: "y"}}, after.Configs())
	require.Equal(t, before.Items[0].Key, after.Items[0].Key)
	require.Equal(t, before.Items[2].Key, after.Items[2].Key)
	require.Equal(t, before.Active().Key, after.Active().Key)
	require.NotEqual(t, before.Items[1].Key, after.Items[1].Key)
	require.NotEqual(t, after.Items[1].Key, after.Items[3].Key)

	require.Same(t, active, s.ActiveKeeper())
	require.False(t, state.destroyed)
}
