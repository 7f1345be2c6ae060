package scenarios

import (
	"context"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/instance"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
)

// MarketConfig is a destination of the outer stack of the nested scenario.
type MarketConfig interface{ isMarketConfig() }

type Login struct{}
type Market struct{ User string }

func (Login) isMarketConfig()  {}
func (Market) isMarketConfig() {}

// ShopConfig is a destination of the stack nested inside Market.
type ShopConfig interface{ isShopConfig() }

type Products struct{}
type Cart struct{}

func (Products) isShopConfig() {}
func (Cart) isShopConfig()     {}

// Shop owns the inner stack of a Market entry and lives exactly as long as
// that entry.
type Shop struct {
	stack     *router.Stack[ShopConfig]
	destroyed bool
}

const shopKey = "shop"

func newShop() *Shop {
	// A single-entry seed never fails.
	stack, _ := router.NewStack([]ShopConfig{Products{}}, router.WithName("nested/shop"))
	return &Shop{stack: stack}
}

// Stack exposes the inner stack.
func (s *Shop) Stack() *router.Stack[ShopConfig] {
	return s.stack
}

func (s *Shop) OnDestroy() {
	s.destroyed = true
	s.stack.Destroy()
}

// Destroyed reports whether the owning Market entry has left the stack.
func (s *Shop) Destroyed() bool { return s.destroyed }

// Nested is a login screen leading to a market that has its own stack.
type Nested struct {
	stack *router.Stack[MarketConfig]
}

func init() {
	register("nested", func() (Scenario, error) { return NewNested() })
}

// NewNested creates the scenario at the login screen.
func NewNested() (*Nested, error) {
	stack, err := router.NewStack([]MarketConfig{Login{}}, router.WithName("nested"))
	if err != nil {
		return nil, err
	}
	return &Nested{stack: stack}, nil
}

func (n *Nested) Name() string { return "nested" }

// Stack exposes the outer stack.
func (n *Nested) Stack() *router.Stack[MarketConfig] {
	return n.stack
}

// LogIn opens the market for user.
func (n *Nested) LogIn(user string) {
	n.stack.Push(Market{User: user})
}

// Shop returns the inner stack state of the active market, or nil when the
// login screen is showing.
func (n *Nested) Shop() *Shop {
	active := n.stack.Active()
	if _, ok := active.Config.(Market); !ok {
		return nil
	}
	k, ok := n.stack.Keeper(active.Key)
	if !ok {
		return nil
	}
	return instance.GetOrCreate(k, shopKey, newShop)
}

// OpenCart pushes the cart onto the market's inner stack.
func (n *Nested) OpenCart() bool {
	shop := n.Shop()
	if shop == nil {
		return false
	}
	shop.stack.Push(Cart{})
	return true
}

// Back pops the innermost stack that can pop.
func (n *Nested) Back() bool {
	if shop := n.Shop(); shop != nil && shop.stack.Pop() {
		return true
	}
	return n.stack.Pop()
}

func (n *Nested) title(c MarketConfig) string {
	switch c := c.(type) {
	case Login:
		return navstack.Localize("login", nil)
	case Market:
		return navstack.Localize("market", map[string]any{"User": c.User})
	}
	return ""
}

func shopTitle(c ShopConfig) string {
	switch c.(type) {
	case Products:
		return navstack.Localize("products", nil)
	case Cart:
		return navstack.Localize("cart", nil)
	}
	return ""
}

func (n *Nested) frame() Frame {
	out := titles(n.stack.Snapshot(), n.title)
	if shop := n.Shop(); shop != nil {
		for _, t := range titles(shop.stack.Snapshot(), shopTitle) {
			out[len(out)-1] += " › " + t
		}
	}
	return Frame{Stack: out}
}

// Walkthrough logs in, opens the cart, then backs out through both stacks.
func (n *Nested) Walkthrough(ctx context.Context, emit func(Frame)) error {
	back := navstack.Localize("back", nil)
	steps := []struct {
		label  string
		action func() error
	}{
		{"start", nil},
		{navstack.Localize("login", nil), func() error { n.LogIn("alice"); return nil }},
		{navstack.Localize("cart", nil), func() error { n.OpenCart(); return nil }},
		{back, func() error { n.Back(); return nil }},
		{back, func() error { n.Back(); return nil }},
	}
	for _, st := range steps {
		if err := step(ctx, emit, st.label, st.action, n.frame); err != nil {
			return err
		}
	}
	return nil
}
