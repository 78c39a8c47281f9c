package pure_test

// Dependency is the static dependency used by the fixtures.
type Dependency struct {
	Networking string
}

// Payload is the runtime payload used by the fixtures.
type Payload struct {
	ID int
}

// FactoryFixture is a constructible module that keeps what it was built with.
type FactoryFixture[D, P any] struct {
	Dependency D
	Payload    P
}

func NewFactoryFixture[D, P any](dependency D, payload P) *FactoryFixture[D, P] {
	return &FactoryFixture[D, P]{Dependency: dependency, Payload: payload}
}

// ConfiguratorFixture is a configurable module that keeps what it was last
// configured with.
type ConfiguratorFixture[D, P any] struct {
	Dependency *D
	Payload    *P
	Configured int
}

func (f *ConfiguratorFixture[D, P]) Configure(dependency D, payload P) {
	f.Dependency = &dependency
	f.Payload = &payload
	f.Configured++
}

// Greeter is the capability used by the generic factory tests.
type Greeter interface {
	Greet() string
}

type englishGreeter struct{ name string }

func (g englishGreeter) Greet() string { return "hello " + g.name }

type frenchGreeter struct{ name string }

func (g frenchGreeter) Greet() string { return "bonjour " + g.name }
