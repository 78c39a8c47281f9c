// Package pure is the root of a small library for building application
// modules from a static dependency and a per-call payload, with explicit
// wiring in a composition root.
//
// See subpackages:
//   - pure: factories, configurators, the memoizing resolver, stubs and the registry
//   - cmd/puregen: generates per-module factory and configurator declarations
//   - examples/app: a user directory wired end to end, runnable from examples/app/main
//   - examples/config: koanf-backed configuration for the example
//   - internal/syncutils: mutex that switches to go-deadlock under the deadlock build tag
package pure
