package pure

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

// DependencyKey identifies a static dependency in a Registry.
//
// Keys are typically defined as package-level constants to avoid typos.
//
// Example:
//
//	const (
//	  KeyUserService pure.DependencyKey = "users"
//	  KeyAnalytics   pure.DependencyKey = "analytics"
//	)
type DependencyKey string

// Key converts a string into a DependencyKey.
func Key(name string) DependencyKey { return DependencyKey(name) }

// Registry provides static dependencies to a composition root.
//
// It is intentionally:
// - read-only
// - side effect free
// - consulted only when a resolver first runs
type Registry interface {
	Resolve(key DependencyKey) (val any, ok bool, err error)
}

// MapRegistry is a simple in-memory registry.
type MapRegistry struct {
	items map[DependencyKey]any
}

func NewMapRegistry() *MapRegistry {
	return &MapRegistry{items: map[DependencyKey]any{}}
}

// Provide stores a value under a key and returns the registry for chaining.
func (r *MapRegistry) Provide(key DependencyKey, val any) *MapRegistry {
	r.items[key] = val
	return r
}

// Resolve implements Registry and converts panics into errors.
func (r *MapRegistry) Resolve(key DependencyKey) (val any, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			val = nil
			ok = false
			err = errors.Wrapf(ErrRegistryPanic, "%v", rec)
		}
	}()

	v, ok := r.items[key]
	return v, ok, nil
}

// Get returns the value if present (no panic).
func (r *MapRegistry) Get(key DependencyKey) (any, bool) {
	v, ok := r.items[key]
	return v, ok
}

// MustGet returns the value or panics with a MissingDependencyError.
func (r *MapRegistry) MustGet(key DependencyKey) any {
	v, ok := r.items[key]
	if !ok {
		panic(MissingDependencyError{Key: key})
	}
	return v
}

// FromRegistry returns a dependency initializer that looks key up in reg and
// asserts it to D. Pass it to NewResolverE, NewFactoryE or NewConfiguratorE.
//
// The initializer fails with:
//   - MissingDependencyError if reg is nil or has no entry for key
//   - WrongTypeDependencyError if the entry is not a D
//   - the registry's own error, wrapped with the key
func FromRegistry[D any](reg Registry, key DependencyKey) func() (D, error) {
	return func() (D, error) {
		var zero D
		if reg == nil {
			return zero, MissingDependencyError{Key: key}
		}
		raw, ok, err := reg.Resolve(key)
		if err != nil {
			return zero, errors.Wrapf(err, "resolve %q", string(key))
		}
		if !ok {
			return zero, MissingDependencyError{Key: key}
		}
		d, ok := raw.(D)
		if !ok {
			gotType := "<nil>"
			if raw != nil {
				gotType = reflect.TypeOf(raw).String()
			}
			return zero, WrongTypeDependencyError{Key: key, GotType: gotType}
		}
		return d, nil
	}
}
