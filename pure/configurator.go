package pure

// Configurator is the call-site contract for configuring an existing module M
// with a per-call payload P.
type Configurator[M, P any] interface {
	Configure(module M, payload P) error
}

// ModuleConfigurator binds a memoized dependency to a mutate function that
// configures an existing module in place.
type ModuleConfigurator[M, D, P any] struct {
	resolver *Resolver[D]
	mutate   func(M, D, P)
}

var _ Configurator[*int, Unit] = (*ModuleConfigurator[*int, Unit, Unit])(nil)
var _ DependencyProvider[Unit] = (*ModuleConfigurator[*int, Unit, Unit])(nil)

// NewConfigurator creates a configurator whose dependency is computed lazily.
//
// mutate is usually a method expression:
//
//	pure.NewConfigurator((*Cell).Configure, func() CellDependency { ... })
func NewConfigurator[M, D, P any](mutate func(M, D, P), dependency func() D, opts ...Option) *ModuleConfigurator[M, D, P] {
	return NewConfiguratorWithResolver(mutate, NewResolver(dependency, opts...))
}

// NewConfiguratorE is NewConfigurator for a dependency initializer that can fail.
func NewConfiguratorE[M, D, P any](mutate func(M, D, P), dependency func() (D, error), opts ...Option) *ModuleConfigurator[M, D, P] {
	return NewConfiguratorWithResolver(mutate, NewResolverE(dependency, opts...))
}

// NewConfiguratorWithResolver creates a configurator around a caller-built resolver.
func NewConfiguratorWithResolver[M, D, P any](mutate func(M, D, P), resolver *Resolver[D]) *ModuleConfigurator[M, D, P] {
	if resolver == nil {
		resolver = NewResolverE[D](nil)
	}
	return &ModuleConfigurator[M, D, P]{resolver: resolver, mutate: mutate}
}

// NewModuleConfigurator binds the module's own Configure method.
func NewModuleConfigurator[M ConfiguratorModule[D, P], D, P any](dependency func() D, opts ...Option) *ModuleConfigurator[M, D, P] {
	return NewConfigurator(func(m M, d D, p P) { m.Configure(d, p) }, dependency, opts...)
}

// NewStaticConfigurator creates a configurator for a module that needs no dependency.
func NewStaticConfigurator[M, P any](mutate func(M, Unit, P)) *ModuleConfigurator[M, Unit, P] {
	return NewConfiguratorWithResolver(mutate, ResolvedValue(Unit{}))
}

// Configure applies the memoized dependency and payload to module.
func (c *ModuleConfigurator[M, D, P]) Configure(module M, payload P) error {
	if c == nil {
		return ErrNilConfigurator
	}
	if c.mutate == nil {
		return ErrNilMutator
	}
	dep, err := c.resolver.Resolve()
	if err != nil {
		return err
	}
	c.mutate(module, dep, payload)
	return nil
}

// MustConfigure is Configure that panics on error.
func (c *ModuleConfigurator[M, D, P]) MustConfigure(module M, payload P) {
	if err := c.Configure(module, payload); err != nil {
		panic(err)
	}
}

// Dependency returns the memoized dependency, computing it if needed.
func (c *ModuleConfigurator[M, D, P]) Dependency() (D, error) {
	if c == nil {
		var zero D
		return zero, ErrNilConfigurator
	}
	return c.resolver.Resolve()
}

// Configure applies a configurator that takes no payload.
func Configure[M any](c Configurator[M, Unit], module M) error {
	if c == nil {
		return ErrNilConfigurator
	}
	return c.Configure(module, Unit{})
}

// MustConfigure is Configure that panics on error.
func MustConfigure[M any](c Configurator[M, Unit], module M) {
	if err := Configure(c, module); err != nil {
		panic(err)
	}
}
