package pure

import (
	"github.com/cockroachdb/errors"

	"github.com/sghaida/pure/internal/syncutils"
)

// stub is implemented by the test doubles so DependencyOf can refuse them.
type stub interface {
	isStub()
}

// StubFactory satisfies Factory without resolving any dependency. It returns
// whatever its closure produces and records the payloads it was called with.
//
// StubFactory has no Dependency method: a stub has no dependency to expose.
type StubFactory[P, M any] struct {
	fn func(P) M

	mu       syncutils.Mutex
	payloads []P
}

var _ Factory[Unit, int] = (*StubFactory[Unit, int])(nil)

// StubFactoryFunc returns a stub that builds modules with fn.
// A nil fn behaves like EmptyStubFactory.
func StubFactoryFunc[P, M any](fn func(payload P) M) *StubFactory[P, M] {
	return &StubFactory[P, M]{fn: fn}
}

// StubFactoryOf returns a stub that always returns module.
func StubFactoryOf[P, M any](module M) *StubFactory[P, M] {
	return StubFactoryFunc(func(P) M { return module })
}

// EmptyStubFactory returns a stub with no module; Create reports ErrStubEmpty.
func EmptyStubFactory[P, M any]() *StubFactory[P, M] {
	return &StubFactory[P, M]{}
}

// Create records payload and returns the stubbed module.
func (s *StubFactory[P, M]) Create(payload P) (M, error) {
	if s == nil {
		var zero M
		return zero, ErrNilFactory
	}
	s.mu.Lock()
	s.payloads = append(s.payloads, payload)
	fn := s.fn
	s.mu.Unlock()

	if fn == nil {
		var zero M
		return zero, ErrStubEmpty
	}
	return fn(payload), nil
}

// MustCreate is Create that panics on error.
func (s *StubFactory[P, M]) MustCreate(payload P) M {
	m, err := s.Create(payload)
	if err != nil {
		panic(err)
	}
	return m
}

// Payloads returns a copy of the payloads passed to Create, in call order.
func (s *StubFactory[P, M]) Payloads() []P {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]P(nil), s.payloads...)
}

// Calls returns the number of Create calls.
func (s *StubFactory[P, M]) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

func (s *StubFactory[P, M]) isStub() {}

// StubConfigurator satisfies Configurator without resolving any dependency.
// Configure hands the module and payload to the closure; the default closure
// does nothing.
type StubConfigurator[M, P any] struct {
	fn func(M, P)

	mu       syncutils.Mutex
	payloads []P
}

var _ Configurator[*int, Unit] = (*StubConfigurator[*int, Unit])(nil)

// NewStubConfigurator returns a stub that configures modules with fn.
// A nil fn is a no-op.
func NewStubConfigurator[M, P any](fn func(module M, payload P)) *StubConfigurator[M, P] {
	return &StubConfigurator[M, P]{fn: fn}
}

// Configure records payload and runs the stub closure.
func (s *StubConfigurator[M, P]) Configure(module M, payload P) error {
	if s == nil {
		return ErrNilConfigurator
	}
	s.mu.Lock()
	s.payloads = append(s.payloads, payload)
	fn := s.fn
	s.mu.Unlock()

	if fn != nil {
		fn(module, payload)
	}
	return nil
}

// Payloads returns a copy of the payloads passed to Configure, in call order.
func (s *StubConfigurator[M, P]) Payloads() []P {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]P(nil), s.payloads...)
}

// Calls returns the number of Configure calls.
func (s *StubConfigurator[M, P]) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

func (s *StubConfigurator[M, P]) isStub() {}

// DependencyOf returns the dependency held by a factory or configurator.
//
// It exists for code that only has the call-site interface in hand. Asking a
// stub for its dependency is a programming error and returns an assertion
// failure marked ErrStubDependency; values that hold no dependency of type D
// return ErrNoDependency.
func DependencyOf[D any](v any) (D, error) {
	var zero D
	switch p := v.(type) {
	case stub:
		return zero, errors.Mark(
			errors.AssertionFailedf("pure: %T is a stub and has no dependency", v),
			ErrStubDependency,
		)
	case DependencyProvider[D]:
		return p.Dependency()
	default:
		return zero, errors.Wrapf(ErrNoDependency, "%T", v)
	}
}
