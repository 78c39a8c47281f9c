// Package pure provides factories and configurators that build application
// modules from a static dependency and a per-call payload.
//
// A module is anything with a construct function func(D, P) M (built fresh)
// or a mutate function func(M, D, P) (configured in place):
//
//   - D, the dependency: services and settings resolved once, usually in the
//     composition root, and shared by every module the factory builds.
//   - P, the payload: runtime data supplied on every Create/Configure call.
//
// Every ModuleFactory, ModuleConfigurator and GenericFactory owns one Resolver,
// a memoizing cell that runs the dependency initializer at most once even
// when many goroutines call Create or Configure concurrently. A failing
// initializer poisons the resolver: every caller sees the same error and the
// initializer is not retried.
//
// Call sites depend on the Factory and Configurator interfaces. Tests replace
// them with StubFactory and StubConfigurator, which never resolve a dependency.
//
// There is no container, no reflection and no automatic graph resolution.
// Wiring stays in your composition root (main/bootstrap):
//
//	users := NewUserService()
//	rows := pure.NewConfigurator((*UserRow).Configure, func() RowDependency {
//		return RowDependency{Users: users}
//	})
//	lists := pure.NewFactory(NewUserList, func() ListDependency {
//		return ListDependency{Users: users, Rows: rows}
//	})
//	list, err := lists.Create(ListPayload{Page: 1})
//
// Modules that need no dependency or payload use Unit together with
// NewStaticFactory, NewStaticConfigurator, Create and Configure.
//
// Import
//
//	"github.com/sghaida/pure/pure"
package pure
