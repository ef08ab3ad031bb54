package linr

import (
	"reflect"
	"sync"
)

// ParseFunc converts one field into a T.
//
// A ParseFunc must not panic. Returning an Error (or an error wrapping one)
// reports that code; any other error is reported as InvalidInput. The field
// is only valid for the duration of the call.
type ParseFunc[T any] func(field []byte) (T, error)

// Registry resolves a type to its parser: a registered override first, the
// built-in conversion otherwise. Never both.
type Registry struct {
	mu        sync.RWMutex
	overrides map[reflect.Type]any
}

// DefaultRegistry is used by readers and Parse calls given no registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry; every type resolves to its built-in.
func NewRegistry() *Registry {
	return &Registry{overrides: make(map[reflect.Type]any)}
}

// Clone returns a registry holding the same overrides. Later changes to
// either registry do not affect the other.
func (r *Registry) Clone() *Registry {
	r = orDefault(r)
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := NewRegistry()
	for t, fn := range r.overrides {
		c.overrides[t] = fn
	}
	return c
}

// Register installs fn as the parser for T in reg, replacing the built-in and
// any earlier override. A nil reg means DefaultRegistry; a nil fn removes the
// override.
func Register[T any](reg *Registry, fn ParseFunc[T]) {
	if fn == nil {
		Unregister[T](reg)
		return
	}
	reg = orDefault(reg)
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.overrides[reflect.TypeOf((*T)(nil)).Elem()] = fn
}

// Unregister removes the override for T, restoring the built-in.
func Unregister[T any](reg *Registry) {
	reg = orDefault(reg)
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.overrides, reflect.TypeOf((*T)(nil)).Elem())
}

// Overridden reports whether T has an override in reg.
func Overridden[T any](reg *Registry) bool {
	_, ok := lookup[T](orDefault(reg))
	return ok
}

// Supports reports whether T can be parsed with reg.
func Supports[T any](reg *Registry) bool {
	if Overridden[T](reg) {
		return true
	}
	return hasBuiltin[T]()
}

// Parse converts field into a T using reg (DefaultRegistry when nil).
func Parse[T any](reg *Registry, field []byte) Result[T] {
	if fn, ok := lookup[T](orDefault(reg)); ok {
		v, err := fn(field)
		if err != nil {
			return Fail[T](codeFor(err))
		}
		return Ok(v)
	}

	v, code := parseBuiltin[T](field)
	if code != 0 {
		return Fail[T](code)
	}
	return Ok(v)
}

// ParseString is Parse for string input.
func ParseString[T any](reg *Registry, s string) Result[T] {
	return Parse[T](reg, []byte(s))
}

func lookup[T any](reg *Registry) (ParseFunc[T], bool) {
	reg.mu.RLock()
	fn, ok := reg.overrides[reflect.TypeOf((*T)(nil)).Elem()]
	reg.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return fn.(ParseFunc[T]), true
}

func orDefault(reg *Registry) *Registry {
	if reg == nil {
		return DefaultRegistry
	}
	return reg
}
