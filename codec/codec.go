// Package codec converts between scalar text and Go types that have no
// natural YAML scalar form, such as time.Time and time.Duration.
package codec

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Codec performs the transformation between the wire representation (the
// text of a YAML scalar) and the domain representation B.
type Codec[B any] interface {
	Decode(ctx context.Context, text string) (B, error)
	Encode(ctx context.Context, b B) (string, error)
}

// Scalar is the type-erased form of a Codec stored in a Registry.
type Scalar interface {
	Type() reflect.Type
	DecodeAny(ctx context.Context, text string) (any, error)
	EncodeAny(ctx context.Context, v any) (string, error)
}

type erased[B any] struct{ c Codec[B] }

func (e erased[B]) Type() reflect.Type { return reflect.TypeFor[B]() }

func (e erased[B]) DecodeAny(ctx context.Context, text string) (any, error) {
	return e.c.Decode(ctx, text)
}

func (e erased[B]) EncodeAny(ctx context.Context, v any) (string, error) {
	b, ok := v.(B)
	if !ok {
		return "", fmt.Errorf("codec: expected %s, got %T", e.Type(), v)
	}
	return e.c.Encode(ctx, b)
}

// Erase wraps c so it can be stored in a Registry.
func Erase[B any](c Codec[B]) Scalar { return erased[B]{c: c} }

// Registry maps Go types to scalar codecs. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]Scalar
}

func NewRegistry() *Registry { return &Registry{byType: map[reflect.Type]Scalar{}} }

// Default returns a registry with the built-in time.Time and time.Duration
// codecs.
func Default() *Registry {
	r := NewRegistry()
	Register(r, TimeRFC3339())
	Register(r, Duration())
	return r
}

// Register adds or replaces the codec for B.
func Register[B any](r *Registry, c Codec[B]) {
	s := Erase(c)
	r.mu.Lock()
	r.byType[s.Type()] = s
	r.mu.Unlock()
}

// Lookup returns the codec registered for t.
func (r *Registry) Lookup(t reflect.Type) (Scalar, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	s, ok := r.byType[t]
	r.mu.RUnlock()
	return s, ok
}
