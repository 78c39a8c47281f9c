package pure

import (
	"go.uber.org/zap"
)

// Option configures a Resolver and, through it, the Factory or Configurator
// that owns it.
type Option func(*options)

type options struct {
	name   string
	logger *zap.Logger
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithName labels the dependency in errors and log entries.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger that records when the dependency is computed or
// poisoned. A nil logger keeps the no-op default.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
