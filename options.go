package bitgrid

import (
	"log/slog"

	"github.com/hupe1980/bitgrid/codec"
	"github.com/hupe1980/bitgrid/journal"
	"github.com/hupe1980/bitgrid/snapshot"
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	journalPath      string
	journalOptions   []func(*journal.Options)
	snapshotStore    snapshot.Store
}

// Option configures Engine constructor behavior.
type Option func(*options)

// WithCodec configures the codec used for snapshot label sections.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithJournal configures the move journal for durability and replay.
// The journal is immutable after engine creation - it cannot be
// enabled or disabled at runtime.
//
// Example:
//
//	eng, _ := bitgrid.New(
//	    bitgrid.WithJournal("./journal", func(o *journal.Options) {
//	        o.Compress = true
//	        o.SyncOnAppend = true
//	    }),
//	)
func WithJournal(path string, optFns ...func(*journal.Options)) Option {
	return func(o *options) {
		o.journalPath = path
		o.journalOptions = optFns
	}
}

// WithSnapshotStore configures the store used by Save and Load.
// Pass a snapshot.MemoryStore, snapshot.LocalStore, or one of the
// object-storage backends (snapshot/s3, snapshot/minio).
func WithSnapshotStore(store snapshot.Store) Option {
	return func(o *options) {
		o.snapshotStore = store
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &bitgrid.BasicMetricsCollector{}
//	eng, _ := bitgrid.New(bitgrid.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Sets: %d, Avg latency: %dns\n", stats.SetCount, stats.SetAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := bitgrid.NewJSONLogger(slog.LevelInfo)
//	eng, _ := bitgrid.New(bitgrid.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
