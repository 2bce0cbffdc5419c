package stablevec

import (
	"log/slog"

	"github.com/hupe1980/stablevec/internal/freelist"
)

// FreeListPolicy selects the order in which freed slots are reused.
type FreeListPolicy = freelist.Policy

const (
	// FreeListStack reuses the most recently freed slot first (default).
	// Arbitrary-index insertion into a hole is linear in the number of holes.
	FreeListStack = freelist.PolicyStack
	// FreeListIndexed keeps the LIFO order of FreeListStack but indexes the
	// free list, making arbitrary-index insertion into a hole constant time.
	FreeListIndexed = freelist.PolicyIndexed
	// FreeListLowest reuses the lowest free slot first.
	FreeListLowest = freelist.PolicyLowest
)

type options struct {
	policy           FreeListPolicy
	capacity         int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an OptionVec.
type Option func(*options)

// WithFreeListPolicy configures the slot reuse discipline.
//
// The policy only changes which free slot the next insertion receives; every
// operation keeps its contract. InsertAt always expects the head of
// AvailableInsertionIndices, whatever the policy.
func WithFreeListPolicy(p FreeListPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithCapacity preallocates the backing array.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = max(n, 0)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := stablevec.NewJSONLogger(slog.LevelDebug)
//	v := stablevec.New[int, string](stablevec.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		policy:           FreeListStack,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
