// Package router provides navigation state containers: stacks of screen
// configurations, a modal overlay slot and tab sets of independent stacks.
//
// A configuration is any comparable value that identifies a destination
// and its parameters. Configurations of one region are usually a small
// closed set of struct types behind an interface, and a render layer
// switches on them exhaustively:
//
//	type Config interface{ isConfig() }
//
//	type ScreenA struct{}
//	type ScreenB struct{ Title string }
//
//	func (ScreenA) isConfig() {}
//	func (ScreenB) isConfig() {}
//
// # Stacks
//
// A Stack always holds at least one entry. The last entry is the active
// screen. Every change is published to subscribers as one immutable
// Snapshot, and new subscribers receive the current snapshot first.
//
//	stack, _ := router.NewStack([]Config{ScreenA{}})
//	stack.Push(ScreenB{Title: "B"})
//	stack.Pop()                               // false at the root
//	stack.ReplaceVariant(ScreenB{Title: "x"}) // every ScreenB, any payload
//	stack.ResetTo([]Config{ScreenA{}, ScreenB{Title: "B"}})
//
// Entries carry a Key that stays stable while the entry is on the stack.
// Each entry owns an instance.Keeper for retained state; the keeper is
// destroyed when the entry leaves the stack.
//
// # Overlays and tabs
//
// An Overlay holds zero or one modal configuration. Dismiss is the single
// transition for both programmatic and UI-driven dismissal.
//
// A TabSet owns one stack per tab. BringToFront switches the visible tab
// without touching any stack, so each tab's history survives switching.
//
// # Router
//
// Router runs the screen registered for the active configuration in a
// loop. Screens navigate through the stack they are handed:
//
//	r := router.New(stack)
//	r.RegisterVariant(ScreenA{}, func(ctx context.Context, c router.Child[Config], s *router.Stack[Config]) error {
//	    s.Push(ScreenB{Title: "B"})
//	    return nil
//	})
//	r.RegisterVariant(ScreenB{}, func(context.Context, router.Child[Config], *router.Stack[Config]) error {
//	    return router.ErrExit
//	})
//	err := r.Run(ctx)
package router
