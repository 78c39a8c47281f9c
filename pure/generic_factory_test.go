package pure_test

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/sghaida/pure/pure"
)

type greeterDependency struct {
	Name string
}

// TestGenericFactory_ErasesDependencyType verifies factories for different
// concrete modules and dependencies share one type.
func TestGenericFactory_ErasesDependencyType(t *testing.T) {
	t.Parallel()

	english := pure.NewGenericFactory(func(d greeterDependency, _ pure.Unit) Greeter {
		return englishGreeter{name: d.Name}
	}, func() greeterDependency { return greeterDependency{Name: "ada"} })

	french := pure.NewGenericFactory(func(name string, _ pure.Unit) Greeter {
		return frenchGreeter{name: name}
	}, func() string { return "grace" })

	factories := []pure.GenericFactory[pure.Unit, Greeter]{english, french}
	var got []string
	for _, f := range factories {
		g, err := pure.Create(f)
		require.NoError(t, err)
		got = append(got, g.Greet())
	}
	assert.Equal(t, []string{"hello ada", "bonjour grace"}, got)
}

// TestGenericFactory_InitializesOnce verifies the captured resolver memoizes
// under concurrent creates.
func TestGenericFactory_InitializesOnce(t *testing.T) {
	t.Parallel()

	calls := atomic.NewInt64(0)
	factory := pure.NewGenericFactory(func(d Dependency, p Payload) any {
		return NewFactoryFixture(d, p)
	}, func() Dependency {
		calls.Inc()
		return Dependency{Networking: "A"}
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			m := factory.MustCreate(Payload{ID: id})
			fixture, ok := m.(*FactoryFixture[Dependency, Payload])
			assert.True(t, ok)
			assert.Equal(t, id, fixture.Payload.ID)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
}

// TestGenericFactory_Errors covers the zero value, nil construct and poisoning.
func TestGenericFactory_Errors(t *testing.T) {
	t.Parallel()

	var zero pure.GenericFactory[Payload, Greeter]
	_, err := zero.Create(Payload{})
	assert.True(t, errors.Is(err, pure.ErrNilFactory))
	assert.Panics(t, func() { _ = zero.MustCreate(Payload{}) })

	nilConstruct := pure.NewGenericFactory[Dependency, Payload, Greeter](nil, func() Dependency { return Dependency{} })
	_, err = nilConstruct.Create(Payload{})
	assert.True(t, errors.Is(err, pure.ErrNilConstructor))

	cause := errors.New("unreachable")
	poisoned := pure.NewGenericFactoryE(func(d Dependency, _ Payload) Greeter {
		return englishGreeter{name: d.Networking}
	}, func() (Dependency, error) { return Dependency{}, cause }, pure.WithName("greeter"))
	_, err = poisoned.Create(Payload{})
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), `"greeter"`)
}
