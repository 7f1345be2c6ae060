package scenarios

import (
	"context"
	"fmt"
	"strconv"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/instance"
	"github.com/BrandonKowalski/navstack/pkg/navstack/route"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
	"github.com/BrandonKowalski/navstack/pkg/navstack/value"
)

// Sex is the enumeration carried by UserInfo.
type Sex int

const (
	Male Sex = iota
	Female
)

func (s Sex) String() string {
	switch s {
	case Male:
		return "Male"
	case Female:
		return "Female"
	default:
		return fmt.Sprintf("Sex(%d)", int(s))
	}
}

// ParseSex is the inverse of Sex.String.
func ParseSex(raw string) (Sex, error) {
	switch raw {
	case "Male":
		return Male, nil
	case "Female":
		return Female, nil
	}
	return 0, fmt.Errorf("unknown sex %q", raw)
}

// OptionalText is a string that may be absent. Absent differs from "".
type OptionalText struct {
	Text  string
	Valid bool
}

// Some wraps a present value.
func Some(text string) OptionalText {
	return OptionalText{Text: text, Valid: true}
}

// UserInfo is the parameter set passed from the input screen to the
// details screen.
type UserInfo struct {
	Name           string
	Age            int
	Sex            Sex
	AdditionalInfo OptionalText
}

// DetailsRoute is the encoded form of UserInfo.
var DetailsRoute = route.MustParse("details/{name},{age},{sex}?addInfo={addInfo}",
	route.String("name"),
	route.Int("age"),
	route.Enum("sex", Male.String(), Female.String()),
	route.OptionalString("addInfo"),
)

// EncodeUserInfo flattens info into route values.
func EncodeUserInfo(info UserInfo) route.Values {
	v := route.Values{
		"name": info.Name,
		"age":  strconv.Itoa(info.Age),
		"sex":  info.Sex.String(),
	}
	if info.AdditionalInfo.Valid {
		v["addInfo"] = info.AdditionalInfo.Text
	}
	return v
}

// DecodeUserInfo rebuilds UserInfo from matched route arguments.
func DecodeUserInfo(args route.Args) (UserInfo, error) {
	sex, err := ParseSex(args.Enum("sex"))
	if err != nil {
		return UserInfo{}, &route.DecodeError{Route: args.Route(), Param: "sex", Value: args.Enum("sex"), Err: err}
	}
	info := UserInfo{
		Name: args.String("name"),
		Age:  args.Int("age"),
		Sex:  sex,
	}
	if text, ok := args.Optional("addInfo"); ok {
		info.AdditionalInfo = Some(text)
	}
	return info, nil
}

// PassingMode selects how UserInfo reaches the details screen.
type PassingMode int

const (
	// PassStructured attaches UserInfo to the configuration itself.
	PassStructured PassingMode = iota
	// PassEncoded renders UserInfo as a DetailsRoute path and decodes it
	// at the destination.
	PassEncoded
)

// UserConfig is a destination of the MultipleArgs scenario.
type UserConfig interface{ isUserConfig() }

type UserInput struct{}
type UserDetails struct{ Info UserInfo }

func (UserInput) isUserConfig()   {}
func (UserDetails) isUserConfig() {}

// InputState is the form state of the input screen. It lives in the input
// entry's keeper and so survives navigating to the details and back.
type InputState struct {
	state     *value.Value[UserInfo]
	destroyed bool
}

const inputStateKey = "input_state"

func newInputState() *InputState {
	return &InputState{state: value.NewValue(UserInfo{Age: 18, Sex: Male})}
}

// State returns the current form contents.
func (s *InputState) State() UserInfo { return s.state.Get() }

// Subscribe observes form changes.
func (s *InputState) Subscribe(fn func(UserInfo)) func() { return s.state.Subscribe(fn) }

func (s *InputState) OnNameChanged(name string) {
	s.state.Update(func(u UserInfo) UserInfo { u.Name = name; return u })
}

// OnAgeChanged takes raw text input. Text that is not a number is ignored
// and the previous age is kept.
func (s *InputState) OnAgeChanged(raw string) {
	age, err := strconv.Atoi(raw)
	if err != nil {
		return
	}
	s.state.Update(func(u UserInfo) UserInfo { u.Age = age; return u })
}

func (s *InputState) OnSexChanged(sex Sex) {
	s.state.Update(func(u UserInfo) UserInfo { u.Sex = sex; return u })
}

func (s *InputState) OnAdditionalInfoChanged(text string) {
	s.state.Update(func(u UserInfo) UserInfo { u.AdditionalInfo = Some(text); return u })
}

func (s *InputState) OnDestroy() { s.destroyed = true }

// Destroyed reports whether the owning entry has left the stack.
func (s *InputState) Destroyed() bool { return s.destroyed }

// MultipleArgs passes a multi-field parameter set between two screens.
type MultipleArgs struct {
	mode  PassingMode
	stack *router.Stack[UserConfig]
	links *route.Table
}

func init() {
	register("multiple-args", func() (Scenario, error) { return NewMultipleArgs(PassStructured) })
	register("multiple-args-encoded", func() (Scenario, error) { return NewMultipleArgs(PassEncoded) })
}

// NewMultipleArgs creates the scenario at the input screen.
func NewMultipleArgs(mode PassingMode) (*MultipleArgs, error) {
	stack, err := router.NewStack([]UserConfig{UserInput{}}, router.WithName("multiple_args"))
	if err != nil {
		return nil, err
	}

	links := route.NewTable()
	if _, err := links.Add("input", "input"); err != nil {
		return nil, err
	}
	if _, err := links.Add("details", DetailsRoute.Pattern(), DetailsRoute.Params()...); err != nil {
		return nil, err
	}

	return &MultipleArgs{mode: mode, stack: stack, links: links}, nil
}

func (m *MultipleArgs) Name() string {
	if m.mode == PassEncoded {
		return "multiple-args-encoded"
	}
	return "multiple-args"
}

// Stack exposes the underlying stack.
func (m *MultipleArgs) Stack() *router.Stack[UserConfig] {
	return m.stack
}

// Input returns the form state of the input screen, which must be on the
// stack.
func (m *MultipleArgs) Input() *InputState {
	root := m.stack.Snapshot().Items[0]
	k, ok := m.stack.Keeper(root.Key)
	if !ok {
		return nil
	}
	return instance.GetOrCreate(k, inputStateKey, newInputState)
}

// ShowDetails navigates to the details screen with the form contents.
func (m *MultipleArgs) ShowDetails() error {
	info := m.Input().State()

	if m.mode == PassStructured {
		m.stack.Push(UserDetails{Info: info})
		return nil
	}

	path, err := DetailsRoute.Build(EncodeUserInfo(info))
	if err != nil {
		return navstack.NewNavigationError("show_details", err)
	}
	return m.OpenLink(path)
}

// OpenLink navigates to the destination a path names. The stack is left
// unchanged when the path is unknown or malformed.
func (m *MultipleArgs) OpenLink(path string) error {
	res, err := m.links.Resolve(path)
	if err != nil {
		return navstack.NewNavigationError("open_link", err)
	}

	switch res.Name {
	case "input":
		m.stack.PopTo(0)
	case "details":
		info, err := DecodeUserInfo(res.Args)
		if err != nil {
			return navstack.NewNavigationError("open_link", err)
		}
		m.stack.Push(UserDetails{Info: info})
	}
	return nil
}

// Back pops the details screen.
func (m *MultipleArgs) Back() bool {
	return m.stack.Pop()
}

// Screen returns the view model for the active screen.
func (m *MultipleArgs) Screen() Screen {
	return Screen{Title: m.title(m.stack.Active().Config)}
}

func (m *MultipleArgs) title(c UserConfig) string {
	switch c := c.(type) {
	case UserInput:
		return navstack.Localize("user_input", nil)
	case UserDetails:
		summary := navstack.Localize("user_details", map[string]any{
			"Name": c.Info.Name,
			"Age":  c.Info.Age,
			"Sex":  c.Info.Sex,
		})
		if c.Info.AdditionalInfo.Valid {
			summary += " (" + c.Info.AdditionalInfo.Text + ")"
		}
		return summary
	}
	return ""
}

func (m *MultipleArgs) frame() Frame {
	return Frame{Stack: titles(m.stack.Snapshot(), m.title)}
}

// Walkthrough fills the form, including an age typo that is ignored, shows
// the details and comes back to the preserved form.
func (m *MultipleArgs) Walkthrough(ctx context.Context, emit func(Frame)) error {
	in := m.Input()
	steps := []struct {
		label  string
		action func() error
	}{
		{"start", nil},
		{"name = A/B?C", func() error { in.OnNameChanged("A/B?C"); return nil }},
		{"age = 3O", func() error { in.OnAgeChanged("3O"); return nil }},
		{"age = 30", func() error { in.OnAgeChanged("30"); return nil }},
		{"sex = Female", func() error { in.OnSexChanged(Female); return nil }},
		{"details", m.ShowDetails},
		{navstack.Localize("back", nil), func() error { m.Back(); return nil }},
	}
	for _, st := range steps {
		if err := step(ctx, emit, st.label, st.action, m.frame); err != nil {
			return err
		}
	}
	return nil
}
