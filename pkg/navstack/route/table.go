package route

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Resolved is the outcome of Table.Resolve.
type Resolved struct {
	Name string
	Args Args
}

// Table is an ordered set of named routes. The first route whose pattern
// fits a path wins.
type Table struct {
	routes map[string]*Route
	order  []string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{routes: make(map[string]*Route)}
}

// Add parses pattern and registers it under name.
func (t *Table) Add(name, pattern string, params ...Param) (*Route, error) {
	if _, dup := t.routes[name]; dup {
		return nil, fmt.Errorf("route: duplicate route name %q", name)
	}
	r, err := Parse(pattern, params...)
	if err != nil {
		return nil, err
	}
	t.routes[name] = r
	t.order = append(t.order, name)
	return r, nil
}

// Route returns the route registered under name.
func (t *Table) Route(name string) (*Route, bool) {
	r, ok := t.routes[name]
	return r, ok
}

// Names lists route names in registration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Build renders a path for the named route.
func (t *Table) Build(name string, values Values) (string, error) {
	r, ok := t.routes[name]
	if !ok {
		return "", &UnknownRouteError{Path: name, Suggestion: t.suggest(name)}
	}
	return r.Build(values)
}

// Resolve finds the route that fits path and decodes its parameters.
// Malformed parameters surface as *DecodeError; a path fitting no route
// yields an *UnknownRouteError naming the closest screen, if any.
func (t *Table) Resolve(path string) (Resolved, error) {
	for _, name := range t.order {
		args, err := t.routes[name].Match(path)
		if errors.Is(err, ErrNoMatch) {
			continue
		}
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Name: name, Args: args}, nil
	}

	return Resolved{}, &UnknownRouteError{Path: path, Suggestion: t.suggest(leadingSegment(path))}
}

// suggest returns the screen name closest to s when the edit distance is
// small relative to its length.
func (t *Table) suggest(s string) string {
	best, bestDist := "", -1
	for _, name := range t.order {
		screen := t.routes[name].Screen()
		if screen == "" {
			continue
		}
		d := levenshtein.ComputeDistance(strings.ToLower(s), strings.ToLower(screen))
		if bestDist < 0 || d < bestDist {
			best, bestDist = screen, d
		}
	}

	limit := max(2, len(best)/3)
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}

func leadingSegment(path string) string {
	end := strings.IndexAny(path, "/?,")
	if end < 0 {
		return path
	}
	return path[:end]
}
