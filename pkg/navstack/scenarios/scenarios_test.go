package scenarios

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
)

func TestMain(m *testing.M) {
	navstack.SetLanguage("en")
	os.Exit(m.Run())
}

func collect(t *testing.T, s Scenario) []Frame {
	t.Helper()
	var frames []Frame
	require.NoError(t, s.Walkthrough(context.Background(), func(f Frame) { frames = append(frames, f) }))
	return frames
}

func TestSimpleFlow(t *testing.T) {
	s, err := NewSimple()
	require.NoError(t, err)

	require.Equal(t, Screen{Title: "A", Button: "Go to B"}, s.Screen())

	s.Click()
	require.Equal(t, ScreenB{Title: "B"}, s.Stack().Active().Config)
	s.Click()
	require.Equal(t, ScreenC{}, s.Stack().Active().Config)
	s.Click()
	require.Equal(t, ScreenD{}, s.Stack().Active().Config)
	require.Equal(t, "Back", s.Screen().Button)

	s.Click()
	require.Equal(t, ScreenC{}, s.Stack().Active().Config)
	require.True(t, s.Back())
	require.Equal(t, ScreenB{Title: "B"}, s.Stack().Active().Config)

	require.True(t, s.Back())
	require.False(t, s.Back())
	require.Equal(t, 1, s.Stack().Len())
}

func TestSimpleWalkthrough(t *testing.T) {
	s, err := NewSimple()
	require.NoError(t, err)

	frames := collect(t, s)
	require.Len(t, frames, 6)
	require.Equal(t, []string{"A"}, frames[0].Stack)
	require.Equal(t, []string{"A", "B", "C", "D"}, frames[3].Stack)
	require.Equal(t, []string{"A", "B"}, frames[5].Stack)
}

func TestScreenReplacing(t *testing.T) {
	s, err := NewScreenReplacing()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Click())
	}
	require.Equal(t,
		[]LinearConfig{ScreenA{}, ScreenB{Title: "initial B"}, ScreenC{}, ScreenD{}},
		s.Stack().Configs(),
	)
	require.Equal(t, "Replace B", s.Screen().Button)

	activeKey := s.Stack().Active().Key
	require.NoError(t, s.Click())
	require.Equal(t,
		[]LinearConfig{ScreenA{}, ScreenB{Title: "replaced B"}, ScreenC{}, ScreenD{}},
		s.Stack().Configs(),
	)
	require.Equal(t, activeKey, s.Stack().Active().Key)

	s.Back()
	s.Back()
	require.Equal(t, Screen{Title: "replaced B", Button: "Go to C"}, s.Screen())
}

func TestScreenReplacingWithoutB(t *testing.T) {
	s, err := NewScreenReplacing()
	require.NoError(t, err)

	err = s.ReplaceB("x")
	require.True(t, navstack.IsNavigationError(err))
	require.Equal(t, []LinearConfig{ScreenA{}}, s.Stack().Configs())
}

func TestInitialStackModes(t *testing.T) {
	for _, mode := range []SeedMode{SeedDirect, SeedCommand} {
		s, err := NewInitialStack(mode)
		require.NoError(t, err)

		var sizes []int
		cancel := s.Stack().Subscribe(func(snap router.Snapshot[LinearConfig]) { sizes = append(sizes, snap.Len()) })

		frames := collect(t, s)
		cancel()

		require.Len(t, frames, 4, s.Name())
		require.Equal(t, []string{"A", "B", "C", "D"}, frames[0].Stack)
		require.Equal(t, []string{"A"}, frames[3].Stack)

		if mode == SeedCommand {
			require.Equal(t, []int{1, 4, 3, 2, 1}, sizes, "seed lands in one transition")
		} else {
			require.Equal(t, []int{4, 3, 2, 1}, sizes)
		}
	}
}

func TestMultistackPreservesTabs(t *testing.T) {
	m, err := NewMultistack()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	require.NoError(t, m.Select(TabCatalog))
	m.OpenDetail()
	require.NoError(t, m.Select(TabPayments))
	require.Equal(t, []TabPage{{Tab: TabPayments}}, m.Tabs().FrontStack().Configs())

	require.NoError(t, m.Select(TabCatalog))
	require.Equal(t,
		[]TabPage{{Tab: TabCatalog}, {Tab: TabCatalog, Depth: 1}},
		m.Tabs().FrontStack().Configs(),
	)

	err = m.Select("settings")
	require.True(t, navstack.IsNavigationError(err))
	require.ErrorIs(t, err, navstack.ErrUnknownTab)
}

func TestMultistackWalkthrough(t *testing.T) {
	m, err := NewMultistack()
	require.NoError(t, err)

	frames := collect(t, m)
	require.Len(t, frames, 6)
	require.Equal(t, []string{"home", "payments", "catalog", "profile"}, frames[0].Tabs)
	require.Equal(t, 2, frames[4].Front)
	require.Equal(t, []string{"catalog", "catalog detail 1"}, frames[4].Stack)
	require.Equal(t, []string{"catalog"}, frames[5].Stack)
}

func TestModalDismissPathsConverge(t *testing.T) {
	m, err := NewModal()
	require.NoError(t, err)

	var present []bool
	m.Overlay().Subscribe(func(s router.OverlaySnapshot[ModalConfig]) { present = append(present, s.Present) })

	m.ShowBottomSheet()
	m.SheetHidden()
	m.ShowBottomSheet()
	m.Dismiss()
	m.Dismiss()

	require.Equal(t, []bool{false, true, false, true, false}, present)
	require.Equal(t, 1, m.Stack().Len(), "the main stack is never touched")
}

func TestModalWalkthrough(t *testing.T) {
	m, err := NewModal()
	require.NoError(t, err)

	frames := collect(t, m)
	require.Equal(t, "Bottom sheet", frames[1].Overlay)
	require.Empty(t, frames[2].Overlay)
	require.Equal(t, "Dialog", frames[3].Overlay)
	require.Equal(t, "Bottom sheet", frames[4].Overlay)
	require.Empty(t, frames[6].Overlay)
}

func TestNestedInnerStackLifetime(t *testing.T) {
	n, err := NewNested()
	require.NoError(t, err)
	require.Nil(t, n.Shop())
	require.False(t, n.OpenCart())

	n.LogIn("alice")
	shop := n.Shop()
	require.NotNil(t, shop)
	require.True(t, n.OpenCart())
	require.Equal(t, []ShopConfig{Products{}, Cart{}}, shop.Stack().Configs())
	require.Same(t, shop, n.Shop())

	require.True(t, n.Back())
	require.Equal(t, []ShopConfig{Products{}}, shop.Stack().Configs())
	require.Equal(t, Market{User: "alice"}, n.Stack().Active().Config)
	require.False(t, shop.Destroyed())

	require.True(t, n.Back())
	require.True(t, shop.Destroyed())
	require.Equal(t, Login{}, n.Stack().Active().Config)

	n.LogIn("alice")
	require.NotSame(t, shop, n.Shop(), "a new entry gets fresh state")
}

func TestNestedWalkthrough(t *testing.T) {
	n, err := NewNested()
	require.NoError(t, err)

	frames := collect(t, n)
	require.Len(t, frames, 5)
	require.Equal(t, []string{"Login", "Market of alice › Products › Cart"}, frames[2].Stack)
	require.Equal(t, []string{"Login"}, frames[4].Stack)
}

func TestRegistry(t *testing.T) {
	require.Equal(t, []string{
		"initial-stack",
		"initial-stack-command",
		"modal",
		"multiple-args",
		"multiple-args-encoded",
		"multistack",
		"nested",
		"screen-replacing",
		"simple",
	}, Names())

	for _, name := range Names() {
		s, err := New(name)
		require.NoError(t, err)
		require.Equal(t, name, s.Name())
	}

	_, err := New("nope")
	require.Error(t, err)
}
