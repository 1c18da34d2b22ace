package yamltree

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// TypeRegistry maps interface types to the concrete types that may be stored
// in them, each under a serial name. It drives polymorphic encoding and
// decoding and is safe for concurrent use.
type TypeRegistry struct {
	mu     sync.RWMutex
	byName map[reflect.Type]map[string]reflect.Type
	byType map[reflect.Type]map[reflect.Type]string
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byName: map[reflect.Type]map[string]reflect.Type{},
		byType: map[reflect.Type]map[reflect.Type]string{},
	}
}

// RegisterType records T as an implementation of the interface I under name.
func RegisterType[I any, T any](r *TypeRegistry, name string) error {
	iface, concrete := reflect.TypeFor[I](), reflect.TypeFor[T]()
	if iface.Kind() != reflect.Interface {
		return fmt.Errorf("yamltree: %s is not an interface type", iface)
	}
	if !concrete.Implements(iface) {
		return fmt.Errorf("yamltree: %s does not implement %s", concrete, iface)
	}
	if name == "" {
		return fmt.Errorf("yamltree: empty type name for %s", concrete)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byName[iface][name]; ok && prev != concrete {
		return fmt.Errorf("yamltree: type name %q already used by %s", name, prev)
	}
	if r.byName[iface] == nil {
		r.byName[iface] = map[string]reflect.Type{}
		r.byType[iface] = map[reflect.Type]string{}
	}
	r.byName[iface][name] = concrete
	r.byType[iface][concrete] = name
	return nil
}

// MustRegisterType is RegisterType that panics on error.
func MustRegisterType[I any, T any](r *TypeRegistry, name string) {
	if err := RegisterType[I, T](r, name); err != nil {
		panic(err)
	}
}

func (r *TypeRegistry) has(iface reflect.Type) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	_, ok := r.byName[iface]
	r.mu.RUnlock()
	return ok
}

// NameOf returns the serial name of concrete within iface.
func (r *TypeRegistry) NameOf(iface, concrete reflect.Type) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	name, ok := r.byType[iface][concrete]
	r.mu.RUnlock()
	return name, ok
}

// Lookup returns the concrete type registered for name within iface.
func (r *TypeRegistry) Lookup(iface reflect.Type, name string) (reflect.Type, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	t, ok := r.byName[iface][name]
	r.mu.RUnlock()
	return t, ok
}

// Names returns the sorted serial names registered for iface.
func (r *TypeRegistry) Names(iface reflect.Type) []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := make([]string, 0, len(r.byName[iface]))
	for n := range r.byName[iface] {
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}
