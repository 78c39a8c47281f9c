package pure

// GenericFactory creates modules typed only by the capability M the caller
// cares about. The dependency type is captured inside the factory's closure and
// does not appear in its type, so factories for different concrete modules
// behind one interface share a single type.
//
// The zero value is usable and reports ErrNilFactory from Create.
type GenericFactory[P, M any] struct {
	create func(P) (M, error)
}

var _ Factory[Unit, any] = GenericFactory[Unit, any]{}

// NewGenericFactory creates a GenericFactory from a construct function and a
// lazily computed dependency.
func NewGenericFactory[D, P, M any](construct func(D, P) M, dependency func() D, opts ...Option) GenericFactory[P, M] {
	return genericFactory(construct, NewResolver(dependency, opts...))
}

// NewGenericFactoryE is NewGenericFactory for a dependency initializer that can fail.
func NewGenericFactoryE[D, P, M any](construct func(D, P) M, dependency func() (D, error), opts ...Option) GenericFactory[P, M] {
	return genericFactory(construct, NewResolverE(dependency, opts...))
}

func genericFactory[D, P, M any](construct func(D, P) M, resolver *Resolver[D]) GenericFactory[P, M] {
	return GenericFactory[P, M]{
		create: func(payload P) (M, error) {
			var zero M
			if construct == nil {
				return zero, ErrNilConstructor
			}
			dep, err := resolver.Resolve()
			if err != nil {
				return zero, err
			}
			return construct(dep, payload), nil
		},
	}
}

// Create constructs a module with the given payload.
func (f GenericFactory[P, M]) Create(payload P) (M, error) {
	if f.create == nil {
		var zero M
		return zero, ErrNilFactory
	}
	return f.create(payload)
}

// MustCreate is Create that panics on error.
func (f GenericFactory[P, M]) MustCreate(payload P) M {
	m, err := f.Create(payload)
	if err != nil {
		panic(err)
	}
	return m
}
