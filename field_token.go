package yamltree

import (
	"reflect"
	"strings"
)

// FieldToken identifies a top-level struct field of T using its external key.
// Obtain it via FieldOf to ensure compile-time linkage to the struct field.
type FieldToken[T any] struct {
	key string
}

// Key returns the external key associated with this field token.
func (t FieldToken[T]) Key() string { return t.key }

// FieldPathToken identifies a nested struct field path of T. Produced by
// PathOf. Keys are top-level-first.
type FieldPathToken[T any] struct {
	keys []string
}

// Keys returns the key path segments.
func (t FieldPathToken[T]) Keys() []string { return append([]string(nil), t.keys...) }

// String joins the keys the way PresenceMap does.
func (t FieldPathToken[T]) String() string { return strings.Join(t.keys, ".") }

// FieldOf builds a FieldToken for a top-level field of T.
// The selector must return the address of a top-level field, e.g.:
//
//	FieldOf[Server](func(s *Server) *int { return &s.Port })
//
// This guarantees compile-time errors if the field is renamed/removed.
func FieldOf[T any, F any](selector func(*T) *F) FieldToken[T] {
	if selector == nil {
		panic("yamltree.FieldOf: selector must not be nil")
	}
	var zero T
	fp := reflect.ValueOf(selector(&zero)).Pointer()

	rv := reflect.ValueOf(&zero).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		fv := rv.Field(i)
		if fv.CanAddr() && fv.Addr().Pointer() == fp {
			name := ResolveStructKey(rt.Field(i))
			if name == "" || name == "-" {
				panic("yamltree.FieldOf: selected field is not exported or disabled")
			}
			return FieldToken[T]{key: name}
		}
	}
	panic("yamltree.FieldOf: selector must return address of a top-level field of T")
}

// PathOf builds a FieldPathToken for a nested field of T, e.g.:
//
//	PathOf[Config](func(c *Config) *int { return &c.Server.Port })
//
// Only descends through struct fields (non-pointer).
func PathOf[T any, F any](selector func(*T) *F) FieldPathToken[T] {
	if selector == nil {
		panic("yamltree.PathOf: selector must not be nil")
	}
	var zero T
	target := reflect.ValueOf(selector(&zero)).Pointer()
	keys, ok := findPathKeys(reflect.ValueOf(&zero).Elem(), target, 0)
	if !ok || len(keys) == 0 {
		panic("yamltree.PathOf: selector must address a nested struct field (non-pointer)")
	}
	return FieldPathToken[T]{keys: keys}
}

const _maxPathDepth = 32

func findPathKeys(v reflect.Value, target uintptr, depth int) ([]string, bool) {
	if depth > _maxPathDepth || v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		name := ResolveStructKey(sf)
		if fv.CanAddr() && fv.Addr().Pointer() == target && fv.Kind() != reflect.Struct {
			if name == "" || name == "-" {
				return nil, false
			}
			return []string{name}, true
		}
		if fv.Kind() == reflect.Struct {
			if rest, ok := findPathKeys(fv, target, depth+1); ok {
				if name == "" || name == "-" {
					return nil, false
				}
				return append([]string{name}, rest...), true
			}
		}
	}
	return nil, false
}
