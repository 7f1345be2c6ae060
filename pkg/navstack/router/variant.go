package router

import "reflect"

// Tagged is implemented by configurations that name their own variant.
// Configurations that don't implement it are identified by their Go type.
type Tagged interface {
	Tag() string
}

// Tag returns the variant name of c: Tagged.Tag() when implemented,
// otherwise the name of the dynamic type.
func Tag(c any) string {
	if t, ok := c.(Tagged); ok {
		return t.Tag()
	}
	rt := reflect.TypeOf(c)
	if rt == nil {
		return ""
	}
	return rt.String()
}

// SameVariant returns a predicate matching configurations of the same
// variant as c, regardless of their payload.
func SameVariant[C any](c C) func(C) bool {
	tag := Tag(c)
	return func(other C) bool {
		return Tag(other) == tag
	}
}

// HasTag returns a predicate matching configurations whose variant is tag.
func HasTag[C any](tag string) func(C) bool {
	return func(c C) bool {
		return Tag(c) == tag
	}
}
