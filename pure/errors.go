package pure

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNilInitializer poisons a resolver that was created without an initializer.
	ErrNilInitializer = errors.New("pure: nil dependency initializer")

	// ErrInitializerPanic marks the error stored when an initializer panics.
	ErrInitializerPanic = errors.New("pure: dependency initializer panicked")

	// ErrInitializerExited marks the error stored when an initializer ends its
	// goroutine with runtime.Goexit instead of returning.
	ErrInitializerExited = errors.New("pure: dependency initializer exited without returning")

	// ErrNilConstructor is returned by Create when a factory has no construct function.
	ErrNilConstructor = errors.New("pure: nil construct function")

	// ErrNilMutator is returned by Configure when a configurator has no mutate function.
	ErrNilMutator = errors.New("pure: nil mutate function")

	// ErrNilFactory is returned when Create is called on a nil or zero-value factory.
	ErrNilFactory = errors.New("pure: nil factory")

	// ErrNilConfigurator is returned when Configure is called with a nil configurator.
	ErrNilConfigurator = errors.New("pure: nil configurator")

	// ErrStubEmpty is returned by a stub factory that was built without a module.
	ErrStubEmpty = errors.New("pure: stub factory has no module")

	// ErrStubDependency marks any attempt to read the dependency of a stub.
	ErrStubDependency = errors.New("pure: stub has no dependency")

	// ErrNoDependency is returned by DependencyOf for values that expose no dependency.
	ErrNoDependency = errors.New("pure: value does not expose a dependency")

	// ErrRegistryPanic is returned if a registry implementation panics internally.
	ErrRegistryPanic = errors.New("registry: panic during Resolve")
)

// InitializerError is the poisoning error stored by a Resolver whose
// initializer failed or panicked. Every subsequent Resolve returns the same
// *InitializerError.
type InitializerError struct {
	// Name is the resolver name given via WithName, if any.
	Name string

	// Cause is the error returned by the initializer, or the recovered panic.
	Cause error
}

// Error implements the error interface.
func (e *InitializerError) Error() string {
	// Example: pure: dependency "networking" failed: dial tcp: refused
	if e.Name == "" {
		return "pure: dependency failed: " + e.Cause.Error()
	}
	return "pure: dependency " + strconv.Quote(e.Name) + " failed: " + e.Cause.Error()
}

// Unwrap exposes the initializer's error.
func (e *InitializerError) Unwrap() error { return e.Cause }

// MissingDependencyError is returned when a registry has no entry for a key.
type MissingDependencyError struct{ Key DependencyKey }

// Error implements the error interface.
func (e MissingDependencyError) Error() string {
	// Example: pure: dependency "db" missing
	return "pure: dependency " + strconv.Quote(string(e.Key)) + " missing"
}

// WrongTypeDependencyError is returned when a registry entry exists but holds a
// value of a different type than requested.
type WrongTypeDependencyError struct {
	// Key is the dependency key requested.
	Key DependencyKey

	// GotType is reflect.TypeOf(raw).String() for the stored value.
	GotType string
}

// Error implements the error interface.
func (e WrongTypeDependencyError) Error() string {
	// Example: pure: dependency "db" has wrong type (*app.Logger)
	return "pure: dependency " + strconv.Quote(string(e.Key)) + " has wrong type (" + e.GotType + ")"
}
