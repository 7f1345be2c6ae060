// Package route encodes navigation parameters into path-like strings and
// decodes them back, for navigation that crosses a serialization boundary
// such as a deep link.
//
// A route pattern names its parameters in braces. Path parameters are
// required; query parameters may be nullable:
//
//	r, _ := route.Parse("details/{name},{age},{sex}?addInfo={addInfo}",
//	    route.String("name"),
//	    route.Int("age"),
//	    route.Enum("sex", "Male", "Female"),
//	    route.OptionalString("addInfo"),
//	)
//	path, _ := r.Build(route.Values{"name": "A/B?C", "age": "30", "sex": "Male"})
//	// details/A%2FB%3FC,30,Male
//	args, _ := r.Match(path)
//	args.String("name") // "A/B?C"
//
// Text is percent-encoded so reserved characters survive the trip, and
// decoding inverts encoding exactly.
//
// Every malformed required parameter fails Match with a *DecodeError,
// whatever its kind. Callers that treat a bad link as a programming error
// can use MustMatch.
package route

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Values holds raw parameter values for Build, keyed by parameter name.
// A nullable parameter is omitted by leaving it out. An empty value is
// encoded as "key=" and decodes as present and empty.
type Values map[string]string

// pathSeparators may follow a path placeholder.
const pathSeparators = "/,;"

type segment struct {
	literal string
	param   string // set for placeholders
}

// Route is a parsed pattern with its declared parameters.
type Route struct {
	pattern string
	screen  string

	path   []segment
	query  []segment // alternating key literal and placeholder pairs
	keys   map[string]string
	params map[string]Param
	order  []string

	matcher *regexp.Regexp
}

// Parse compiles pattern. Every placeholder must be declared in params and
// every declared parameter must appear in the pattern.
func Parse(pattern string, params ...Param) (*Route, error) {
	r := &Route{
		pattern: pattern,
		keys:    make(map[string]string),
		params:  make(map[string]Param, len(params)),
	}
	for _, p := range params {
		if _, dup := r.params[p.Name]; dup {
			return nil, fmt.Errorf("route %q: duplicate parameter %q", pattern, p.Name)
		}
		r.params[p.Name] = p
		r.order = append(r.order, p.Name)
	}

	pathPart, queryPart, hasQuery := strings.Cut(pattern, "?")

	var err error
	if r.path, err = splitPlaceholders(pathPart); err != nil {
		return nil, fmt.Errorf("route %q: %w", pattern, err)
	}
	r.screen = screenName(r.path)

	used := make(map[string]bool)
	for _, seg := range r.path {
		if seg.param == "" {
			continue
		}
		p, ok := r.params[seg.param]
		if !ok {
			return nil, fmt.Errorf("route %q: undeclared parameter %q", pattern, seg.param)
		}
		if p.Nullable {
			return nil, fmt.Errorf("route %q: nullable parameter %q must be a query parameter", pattern, p.Name)
		}
		if used[seg.param] {
			return nil, fmt.Errorf("route %q: parameter %q used twice", pattern, seg.param)
		}
		used[seg.param] = true
	}

	// A placeholder must end where its escaped value cannot: at the end of
	// the path or at a separator that PathEscape always escapes.
	for k, seg := range r.path {
		if seg.param == "" || k == len(r.path)-1 {
			continue
		}
		if lit := r.path[k+1].literal; !strings.ContainsRune(pathSeparators, rune(lit[0])) {
			return nil, fmt.Errorf("route %q: parameter %q must be followed by one of %q", pattern, seg.param, pathSeparators)
		}
	}

	if hasQuery {
		for _, pair := range strings.Split(queryPart, "&") {
			key, placeholder, ok := strings.Cut(pair, "=")
			name := strings.TrimSuffix(strings.TrimPrefix(placeholder, "{"), "}")
			if !ok || key == "" || placeholder != "{"+name+"}" || name == "" {
				return nil, fmt.Errorf("route %q: malformed query pair %q", pattern, pair)
			}
			if _, declared := r.params[name]; !declared {
				return nil, fmt.Errorf("route %q: undeclared parameter %q", pattern, name)
			}
			if used[name] {
				return nil, fmt.Errorf("route %q: parameter %q used twice", pattern, name)
			}
			used[name] = true
			r.keys[name] = key
			r.query = append(r.query, segment{literal: key}, segment{param: name})
		}
	}

	for _, name := range r.order {
		if !used[name] {
			return nil, fmt.Errorf("route %q: parameter %q missing from pattern", pattern, name)
		}
	}

	var expr strings.Builder
	expr.WriteString("^")
	for _, seg := range r.path {
		if seg.param != "" {
			expr.WriteString(`([^/,;?]*)`)
			continue
		}
		expr.WriteString(regexp.QuoteMeta(seg.literal))
	}
	expr.WriteString(`(?:\?(.*))?$`)
	r.matcher = regexp.MustCompile(expr.String())

	return r, nil
}

// MustParse is Parse that panics on an invalid pattern, for package-level
// route declarations.
func MustParse(pattern string, params ...Param) *Route {
	r, err := Parse(pattern, params...)
	if err != nil {
		panic(err)
	}
	return r
}

// Pattern returns the pattern the route was parsed from.
func (r *Route) Pattern() string {
	return r.pattern
}

// Screen returns the leading literal of the pattern, e.g. "details".
func (r *Route) Screen() string {
	return r.screen
}

// Params returns the declared parameters in declaration order.
func (r *Route) Params() []Param {
	out := make([]Param, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.params[name])
	}
	return out
}

// Build renders a concrete path from values. Required parameters must be
// present and well formed; nullable parameters missing from values are
// left out.
func (r *Route) Build(values Values) (string, error) {
	var b strings.Builder

	for _, seg := range r.path {
		if seg.param == "" {
			b.WriteString(seg.literal)
			continue
		}
		raw, ok := values[seg.param]
		if !ok {
			return "", &DecodeError{Route: r.screen, Param: seg.param, Err: fmt.Errorf("missing")}
		}
		if err := r.params[seg.param].check(raw); err != nil {
			return "", &DecodeError{Route: r.screen, Param: seg.param, Value: raw, Err: err}
		}
		b.WriteString(url.PathEscape(raw))
	}

	sep := "?"
	for i := 1; i < len(r.query); i += 2 {
		name := r.query[i].param
		raw, present := values[name]
		if !present {
			if r.params[name].Nullable {
				continue
			}
			return "", &DecodeError{Route: r.screen, Param: name, Err: fmt.Errorf("missing")}
		}
		if err := r.params[name].check(raw); err != nil {
			return "", &DecodeError{Route: r.screen, Param: name, Value: raw, Err: err}
		}
		b.WriteString(sep)
		b.WriteString(url.QueryEscape(r.query[i-1].literal))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(raw))
		sep = "&"
	}

	return b.String(), nil
}

// Match decodes path. It returns ErrNoMatch if the path has another shape
// and a *DecodeError if a parameter is malformed.
func (r *Route) Match(path string) (Args, error) {
	m := r.matcher.FindStringSubmatch(path)
	if m == nil {
		return Args{}, ErrNoMatch
	}

	args := Args{route: r.screen, values: make(map[string]string)}

	i := 1
	for _, seg := range r.path {
		if seg.param == "" {
			continue
		}
		raw, err := url.PathUnescape(m[i])
		i++
		if err != nil {
			return Args{}, &DecodeError{Route: r.screen, Param: seg.param, Value: m[i-1], Err: err}
		}
		if err := r.params[seg.param].check(raw); err != nil {
			return Args{}, &DecodeError{Route: r.screen, Param: seg.param, Value: raw, Err: err}
		}
		args.values[seg.param] = raw
	}

	query, err := url.ParseQuery(m[i])
	if err != nil {
		return Args{}, &DecodeError{Route: r.screen, Param: "?", Value: m[i], Err: err}
	}
	for name, key := range r.keys {
		p := r.params[name]
		vals, present := query[key]
		if !present {
			if !p.Nullable {
				return Args{}, &DecodeError{Route: r.screen, Param: name, Err: fmt.Errorf("missing")}
			}
			continue
		}
		raw := vals[0]
		if err := p.check(raw); err != nil {
			return Args{}, &DecodeError{Route: r.screen, Param: name, Value: raw, Err: err}
		}
		args.values[name] = raw
	}

	return args, nil
}

// MustMatch is Match that panics when the path is malformed.
func (r *Route) MustMatch(path string) Args {
	args, err := r.Match(path)
	if err != nil {
		panic(err)
	}
	return args
}

// Args are decoded parameters. They were validated by Match, so accessors
// return zero values only for names the route does not declare.
type Args struct {
	route  string
	values map[string]string
}

// String returns a text parameter.
func (a Args) String(name string) string {
	return a.values[name]
}

// Int returns an integer parameter.
func (a Args) Int(name string) int {
	n, _ := strconv.Atoi(a.values[name])
	return n
}

// Enum returns an enumeration parameter's raw value.
func (a Args) Enum(name string) string {
	return a.values[name]
}

// Optional returns a nullable parameter and whether it was present.
func (a Args) Optional(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Route returns the screen name of the route that produced a.
func (a Args) Route() string {
	return a.route
}

func splitPlaceholders(s string) ([]segment, error) {
	var out []segment
	for s != "" {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			if strings.IndexByte(s, '}') >= 0 {
				return nil, fmt.Errorf("unbalanced '}'")
			}
			out = append(out, segment{literal: s})
			break
		}
		if open > 0 {
			if strings.IndexByte(s[:open], '}') >= 0 {
				return nil, fmt.Errorf("unbalanced '}'")
			}
			out = append(out, segment{literal: s[:open]})
		}
		end := strings.IndexByte(s[open:], '}')
		if end < 0 {
			return nil, fmt.Errorf("unterminated placeholder")
		}
		name := s[open+1 : open+end]
		if name == "" {
			return nil, fmt.Errorf("empty placeholder")
		}
		if len(out) > 0 && out[len(out)-1].param != "" {
			return nil, fmt.Errorf("adjacent placeholders %q", name)
		}
		out = append(out, segment{param: name})
		s = s[open+end+1:]
	}
	return out, nil
}

func screenName(path []segment) string {
	if len(path) == 0 || path[0].param != "" {
		return ""
	}
	name, _, _ := strings.Cut(path[0].literal, "/")
	return name
}
