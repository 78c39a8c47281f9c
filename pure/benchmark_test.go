package pure_test

import (
	"testing"

	"github.com/sghaida/pure/pure"
)

/*
   Shared helpers (NOT counted in benchmarks)
*/

func newBenchFactory() *pure.ModuleFactory[Dependency, Payload, *FactoryFixture[Dependency, Payload]] {
	return pure.NewFactory(NewFactoryFixture[Dependency, Payload], func() Dependency {
		return Dependency{Networking: "bench"}
	})
}

func newBenchConfigurator() *pure.ModuleConfigurator[*ConfiguratorFixture[Dependency, Payload], Dependency, Payload] {
	return pure.NewConfigurator((*ConfiguratorFixture[Dependency, Payload]).Configure, func() Dependency {
		return Dependency{Networking: "bench"}
	})
}

/*
   Benchmarks
*/

func BenchmarkResolver_Resolved(b *testing.B) {
	r := pure.NewResolver(func() Dependency { return Dependency{Networking: "bench"} })
	_, _ = r.Resolve()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Resolve()
	}
}

func BenchmarkResolver_ResolvedParallel(b *testing.B) {
	r := pure.NewResolver(func() Dependency { return Dependency{Networking: "bench"} })
	_, _ = r.Resolve()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = r.Resolve()
		}
	})
}

func BenchmarkResolver_FirstResolve(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r := pure.NewResolver(func() Dependency { return Dependency{Networking: "bench"} })
		_, _ = r.Resolve()
	}
}

func BenchmarkFactory_Create(b *testing.B) {
	f := newBenchFactory()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Create(Payload{ID: i})
	}
}

func BenchmarkGenericFactory_Create(b *testing.B) {
	f := pure.NewGenericFactory(func(d Dependency, p Payload) any {
		return NewFactoryFixture(d, p)
	}, func() Dependency { return Dependency{Networking: "bench"} })

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Create(Payload{ID: i})
	}
}

func BenchmarkConfigurator_Configure(b *testing.B) {
	c := newBenchConfigurator()
	m := &ConfiguratorFixture[Dependency, Payload]{}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Configure(m, Payload{ID: i})
	}
}

func BenchmarkStubFactory_Create(b *testing.B) {
	fixed := NewFactoryFixture(Dependency{}, Payload{})
	f := pure.StubFactoryOf[Payload](fixed)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Create(Payload{ID: i})
	}
}
