package pure

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/sghaida/pure/internal/syncutils"
)

// Resolver memoizes a dependency-producing initializer.
//
// The initializer runs at most once per Resolver, no matter how many
// goroutines call Resolve concurrently. Callers that race the first evaluation
// block on the resolver's mutex until it finishes and then observe the same
// result. Once computed, Resolve is a lock-free read.
//
// Failure policy: poison and fail fast. If the initializer returns an error,
// panics or exits its goroutine with runtime.Goexit, the resolver stores an *InitializerError and returns it from every
// later Resolve. The initializer is never retried, so its side effects happen
// at most once even on the failure path.
//
// An initializer must not call Resolve on its own resolver; doing so deadlocks.
// Build with the deadlock tag to have go-deadlock report it.
type Resolver[D any] struct {
	mu   syncutils.Mutex
	done atomic.Bool

	initializer func() (D, error)
	value       D
	err         error

	name   string
	logger *zap.Logger
}

// NewResolver wraps an infallible initializer. A panic inside initializer
// poisons the resolver.
func NewResolver[D any](initializer func() D, opts ...Option) *Resolver[D] {
	var wrapped func() (D, error)
	if initializer != nil {
		wrapped = func() (D, error) { return initializer(), nil }
	}
	return NewResolverE(wrapped, opts...)
}

// NewResolverE wraps an initializer that can fail.
func NewResolverE[D any](initializer func() (D, error), opts ...Option) *Resolver[D] {
	o := newOptions(opts)
	return &Resolver[D]{
		initializer: initializer,
		name:        o.name,
		logger:      o.logger,
	}
}

// ResolvedValue returns a resolver whose slot is already computed.
func ResolvedValue[D any](value D) *Resolver[D] {
	r := &Resolver[D]{value: value, logger: zap.NewNop()}
	r.done.Store(true)
	return r
}

// Resolve returns the memoized dependency, running the initializer on first use.
func (r *Resolver[D]) Resolve() (D, error) {
	if r.done.Load() {
		return r.value, r.err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// The check and the computation share one critical section.
	if !r.done.Load() {
		r.evaluate()
	}
	return r.value, r.err
}

// MustResolve returns the dependency or panics with the poisoning error.
func (r *Resolver[D]) MustResolve() D {
	v, err := r.Resolve()
	if err != nil {
		panic(err)
	}
	return v
}

// Resolved reports whether the slot has been computed (successfully or not).
func (r *Resolver[D]) Resolved() bool { return r.done.Load() }

// evaluate runs the initializer once and publishes the slot. It is only
// called with r.mu held.
//
// The slot is written from a deferred call so that every way out of the
// initializer marks it computed: a return, a panic, or runtime.Goexit (as
// t.FailNow does). Only a normal return can store a value.
func (r *Resolver[D]) evaluate() {
	start := time.Now()

	var (
		value    D
		err      error
		returned bool
	)
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Mark(errors.Newf("pure: dependency initializer panicked: %v", rec), ErrInitializerPanic)
		} else if !returned {
			err = ErrInitializerExited
		}

		if err != nil {
			var zero D
			value = zero
			err = &InitializerError{Name: r.name, Cause: err}
			r.logger.Error("dependency poisoned", zap.String("dependency", r.name), zap.Error(err))
		} else {
			r.logger.Debug("dependency resolved",
				zap.String("dependency", r.name),
				zap.Duration("took", time.Since(start)),
			)
		}

		r.value, r.err = value, err
		r.initializer = nil
		r.done.Store(true)
	}()

	if r.initializer == nil {
		err, returned = ErrNilInitializer, true
		return
	}
	value, err = r.initializer()
	returned = true
}
