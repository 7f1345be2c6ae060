package scenarios

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
)

func TestMultipleArgsRoundTrip(t *testing.T) {
	for _, mode := range []PassingMode{PassStructured, PassEncoded} {
		m, err := NewMultipleArgs(mode)
		require.NoError(t, err)

		in := m.Input()
		in.OnNameChanged("A/B?C")
		in.OnAgeChanged("30")
		in.OnSexChanged(Female)
		in.OnAdditionalInfoChanged("a=b&c")

		require.NoError(t, m.ShowDetails())
		require.Equal(t, UserDetails{Info: UserInfo{
			Name:           "A/B?C",
			Age:            30,
			Sex:            Female,
			AdditionalInfo: Some("a=b&c"),
		}}, m.Stack().Active().Config, m.Name())
		require.Equal(t, "A/B?C, 30, Female (a=b&c)", m.Screen().Title)
	}
}

func TestMultipleArgsAbsentAdditionalInfo(t *testing.T) {
	m, err := NewMultipleArgs(PassEncoded)
	require.NoError(t, err)
	m.Input().OnNameChanged("Bob")

	require.NoError(t, m.ShowDetails())
	details := m.Stack().Active().Config.(UserDetails)
	require.False(t, details.Info.AdditionalInfo.Valid)
	require.Equal(t, "Bob, 18, Male", m.Screen().Title)
}

func TestInputStateIgnoresBadAge(t *testing.T) {
	m, err := NewMultipleArgs(PassStructured)
	require.NoError(t, err)

	in := m.Input()
	var ages []int
	in.Subscribe(func(u UserInfo) { ages = append(ages, u.Age) })

	in.OnAgeChanged("3O")
	in.OnAgeChanged("")
	in.OnAgeChanged("42")

	require.Equal(t, []int{18, 42}, ages)
	require.Equal(t, 42, in.State().Age)
}

func TestInputStateSurvivesDetails(t *testing.T) {
	m, err := NewMultipleArgs(PassStructured)
	require.NoError(t, err)

	in := m.Input()
	in.OnNameChanged("Ann")
	require.NoError(t, m.ShowDetails())
	require.Same(t, in, m.Input())

	require.True(t, m.Back())
	require.Same(t, in, m.Input())
	require.Equal(t, "Ann", m.Input().State().Name)
	require.False(t, in.Destroyed())

	m.Stack().Destroy()
	require.True(t, in.Destroyed())
}

func TestOpenLink(t *testing.T) {
	m, err := NewMultipleArgs(PassEncoded)
	require.NoError(t, err)

	require.NoError(t, m.OpenLink("details/Ann,31,Female"))
	require.Equal(t, UserDetails{Info: UserInfo{Name: "Ann", Age: 31, Sex: Female}}, m.Stack().Active().Config)

	require.NoError(t, m.OpenLink("input"))
	require.Equal(t, []UserConfig{UserInput{}}, m.Stack().Configs())
}

func TestOpenLinkRejectsMalformed(t *testing.T) {
	m, err := NewMultipleArgs(PassEncoded)
	require.NoError(t, err)
	before := m.Stack().Snapshot()

	err = m.OpenLink("details/Ann,31,Robot")
	require.True(t, navstack.IsNavigationError(err))
	require.True(t, navstack.IsDecodeError(err))

	err = m.OpenLink("details/Ann,old,Male")
	require.True(t, navstack.IsDecodeError(err))

	err = m.OpenLink("detials/Ann,31,Male")
	require.ErrorIs(t, err, navstack.ErrUnknownRoute)
	require.False(t, navstack.IsDecodeError(err))

	require.Equal(t, before, m.Stack().Snapshot())
}

func TestMultipleArgsWalkthrough(t *testing.T) {
	m, err := NewMultipleArgs(PassEncoded)
	require.NoError(t, err)

	frames := collect(t, m)
	require.Len(t, frames, 7)
	require.Equal(t, []string{"Input", "A/B?C, 30, Female"}, frames[5].Stack)
	require.Equal(t, []string{"Input"}, frames[6].Stack)
	require.Equal(t, 30, m.Input().State().Age)
}

func TestEncodedEmptyAdditionalInfoStaysPresent(t *testing.T) {
	m, err := NewMultipleArgs(PassEncoded)
	require.NoError(t, err)
	m.Input().OnNameChanged("Bob")
	m.Input().OnAdditionalInfoChanged("")

	require.NoError(t, m.ShowDetails())
	details := m.Stack().Active().Config.(UserDetails)
	require.Equal(t, Some(""), details.Info.AdditionalInfo)
}
