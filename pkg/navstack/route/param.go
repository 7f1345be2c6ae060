package route

import (
	"fmt"
	"slices"
	"strconv"
)

// Kind is the declared type of a route parameter.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Param declares one named parameter of a route.
type Param struct {
	Name     string
	Kind     Kind
	Nullable bool     // absent means "no value", distinct from ""
	Values   []string // allowed values for KindEnum
}

// String declares a required text parameter.
func String(name string) Param {
	return Param{Name: name, Kind: KindString}
}

// Int declares a required integer parameter.
func Int(name string) Param {
	return Param{Name: name, Kind: KindInt}
}

// Enum declares a required parameter restricted to values.
func Enum(name string, values ...string) Param {
	return Param{Name: name, Kind: KindEnum, Values: values}
}

// OptionalString declares a nullable text parameter.
func OptionalString(name string) Param {
	return Param{Name: name, Kind: KindString, Nullable: true}
}

// check validates a raw (already unescaped) value against the declaration.
func (p Param) check(raw string) error {
	switch p.Kind {
	case KindInt:
		if _, err := strconv.Atoi(raw); err != nil {
			return fmt.Errorf("not an integer: %w", err)
		}
	case KindEnum:
		if !slices.Contains(p.Values, raw) {
			return fmt.Errorf("not one of %v", p.Values)
		}
	}
	return nil
}
