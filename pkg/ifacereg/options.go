package ifacereg

import (
	"log/slog"

	"github.com/randalmurphal/ifacereg/pkg/ifacereg/journal"
	"github.com/randalmurphal/ifacereg/pkg/ifacereg/observability"
)

// Option configures a Registry at construction.
type Option func(*Registry)

// WithLogger attaches a structured logger. Reconciliations log at Info,
// traversals and collection rebuilds at Debug. Default: no logging.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	r := ifacereg.NewRegistry(ifacereg.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics attaches a metrics recorder. Use
// observability.NewMetricsRecorder() for OpenTelemetry metrics.
// Default: no-op.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(r *Registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithJournal attaches a membership journal. One entry is appended per
// generation bump, while the active-set guard is held — a slow store
// extends the traversal stall accordingly. Append errors are logged and
// never surface to callers. Default: no journal.
func WithJournal(store journal.Store) Option {
	return func(r *Registry) {
		r.journal = store
	}
}
