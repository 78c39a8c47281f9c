package pure

// Unit is the "no data" type. A module whose dependency or payload is Unit can
// be built through the zero-argument forms (NewStaticFactory, Create,
// NewStaticConfigurator, Configure).
type Unit = struct{}

// ConfiguratorModule is implemented by modules that already exist and are
// configured in place with a dependency and a payload.
//
// Implementations are typically pointer types:
//
//	func (c *Cell) Configure(dependency CellDependency, payload CellPayload) { ... }
type ConfiguratorModule[D, P any] interface {
	Configure(dependency D, payload P)
}

// Loaded returns a construct function that ignores the dependency and payload
// and defers construction to load. It is the default-construction strategy for
// modules whose instances come from somewhere else (a template, a pool, a
// loader) and are configured afterwards.
func Loaded[D, P, M any](load func() M) func(D, P) M {
	return func(D, P) M { return load() }
}
