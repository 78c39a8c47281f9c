package pure

// Factory is the call-site contract for constructing modules of type M from a
// per-call payload P. Production code depends on this interface so tests can
// substitute a StubFactory.
type Factory[P, M any] interface {
	Create(payload P) (M, error)
}

// DependencyProvider is implemented by factories and configurators that own a
// real dependency.
type DependencyProvider[D any] interface {
	Dependency() (D, error)
}

// ModuleFactory binds a memoized dependency to a construct function.
//
// The dependency initializer runs on the first Create and is reused by every
// later call. ModuleFactory holds no other state.
type ModuleFactory[D, P, M any] struct {
	resolver  *Resolver[D]
	construct func(D, P) M
}

var _ Factory[Unit, int] = (*ModuleFactory[Unit, Unit, int])(nil)
var _ DependencyProvider[Unit] = (*ModuleFactory[Unit, Unit, int])(nil)

// NewFactory creates a factory whose dependency is computed lazily by
// dependency.
func NewFactory[D, P, M any](construct func(D, P) M, dependency func() D, opts ...Option) *ModuleFactory[D, P, M] {
	return NewFactoryWithResolver(construct, NewResolver(dependency, opts...))
}

// NewFactoryE is NewFactory for a dependency initializer that can fail.
func NewFactoryE[D, P, M any](construct func(D, P) M, dependency func() (D, error), opts ...Option) *ModuleFactory[D, P, M] {
	return NewFactoryWithResolver(construct, NewResolverE(dependency, opts...))
}

// NewFactoryWithResolver creates a factory around a caller-built resolver.
// A nil resolver is treated as one with a nil initializer.
func NewFactoryWithResolver[D, P, M any](construct func(D, P) M, resolver *Resolver[D]) *ModuleFactory[D, P, M] {
	if resolver == nil {
		resolver = NewResolverE[D](nil)
	}
	return &ModuleFactory[D, P, M]{resolver: resolver, construct: construct}
}

// NewStaticFactory creates a factory for a module that needs no dependency.
func NewStaticFactory[P, M any](construct func(Unit, P) M) *ModuleFactory[Unit, P, M] {
	return NewFactoryWithResolver(construct, ResolvedValue(Unit{}))
}

// Create constructs a module from the memoized dependency and payload.
func (f *ModuleFactory[D, P, M]) Create(payload P) (M, error) {
	var zero M
	if f == nil {
		return zero, ErrNilFactory
	}
	if f.construct == nil {
		return zero, ErrNilConstructor
	}
	dep, err := f.resolver.Resolve()
	if err != nil {
		return zero, err
	}
	return f.construct(dep, payload), nil
}

// MustCreate is Create that panics on error.
func (f *ModuleFactory[D, P, M]) MustCreate(payload P) M {
	m, err := f.Create(payload)
	if err != nil {
		panic(err)
	}
	return m
}

// Dependency returns the memoized dependency, computing it if needed.
func (f *ModuleFactory[D, P, M]) Dependency() (D, error) {
	if f == nil {
		var zero D
		return zero, ErrNilFactory
	}
	return f.resolver.Resolve()
}

// Create builds a module from a factory that takes no payload.
func Create[M any](f Factory[Unit, M]) (M, error) {
	if f == nil {
		var zero M
		return zero, ErrNilFactory
	}
	return f.Create(Unit{})
}

// MustCreate is Create that panics on error.
func MustCreate[M any](f Factory[Unit, M]) M {
	m, err := Create(f)
	if err != nil {
		panic(err)
	}
	return m
}
