// Command puregen generates per-module factory and configurator declarations.
//
// Go cannot attach a Factory type to a module type, so call sites would have to
// spell out pure.Factory[Payload, *Module] and composition roots would repeat
// the dependency and payload types at every pure.NewFactory call. puregen reads
// a small spec listing each module once and emits named declarations instead.
//
// Spec (YAML or JSON)
//
//	package: app
//	modules:
//	  - name: UserList
//	    type: "*UserListHandler"
//	    dependency: UserListDependency   # omitted => pure.Unit
//	    payload: UserListPayload         # omitted => pure.Unit
//	    constructor: NewUserListHandler  # func(UserListDependency, UserListPayload) *UserListHandler
//	  - name: UserRow
//	    type: "*UserRow"
//	    dependency: UserRowDependency
//	    payload: UserRowPayload
//	    configure: Configure             # (*UserRow).Configure(UserRowDependency, UserRowPayload)
//
// What puregen generates
//
// For a module with a constructor:
//
//   - <Name>Factory, an alias of pure.Factory[Payload, Type] for call sites
//   - New<Name>Factory(dependency, opts...) for the composition root
//     (New<Name>Factory() when the module has no dependency)
//   - Stub<Name>Factory(fn) for tests
//
// For a module with a configure method, the same three declarations with
// Configurator in place of Factory.
//
// Imports
//
// The generated file imports the pure package plus whichever imports of the
// owner file (the file carrying the go:generate directive) the spec's type
// expressions refer to.
//
// Typical go:generate usage
//
//	//go:generate go run ../../cmd/puregen --spec modules.yaml --out modules.gen.go
//
// Then:
//
//	go generate ./...
//
// Exit codes: 0 on success, 1 when generation fails, 2 on usage errors.
package main
