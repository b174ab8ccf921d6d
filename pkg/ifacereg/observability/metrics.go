package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records registry and collection metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordReconciliation records a reconciliation that changed membership.
	RecordReconciliation(ctx context.Context, added, removed int, generation uint64)

	// RecordTraversal records a completed registry traversal.
	RecordTraversal(ctx context.Context, visited int, cancelled bool, duration time.Duration)

	// RecordRebuild records a collection cache rebuild.
	RecordRebuild(ctx context.Context, capability string, size int, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	reconciliations  metric.Int64Counter
	objectsAdded     metric.Int64Counter
	objectsRemoved   metric.Int64Counter
	traversals       metric.Int64Counter
	traversalVisited metric.Int64Histogram
	rebuilds         metric.Int64Counter
	collectionSize   metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("ifacereg")

	reconciliations, err := meter.Int64Counter("ifacereg.registry.reconciliations",
		metric.WithDescription("Number of reconciliations that changed membership"),
	)
	if err != nil {
		return nil, err
	}

	objectsAdded, err := meter.Int64Counter("ifacereg.registry.objects.added",
		metric.WithDescription("Number of objects added to the active set"),
	)
	if err != nil {
		return nil, err
	}

	objectsRemoved, err := meter.Int64Counter("ifacereg.registry.objects.removed",
		metric.WithDescription("Number of objects removed from the active set"),
	)
	if err != nil {
		return nil, err
	}

	traversals, err := meter.Int64Counter("ifacereg.registry.traversals",
		metric.WithDescription("Number of registry traversals"),
	)
	if err != nil {
		return nil, err
	}

	traversalVisited, err := meter.Int64Histogram("ifacereg.registry.traversal.visited",
		metric.WithDescription("Objects visited per traversal"),
	)
	if err != nil {
		return nil, err
	}

	rebuilds, err := meter.Int64Counter("ifacereg.collection.rebuilds",
		metric.WithDescription("Number of collection cache rebuilds"),
	)
	if err != nil {
		return nil, err
	}

	collectionSize, err := meter.Int64Histogram("ifacereg.collection.size",
		metric.WithDescription("Collection size after rebuild"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		reconciliations:  reconciliations,
		objectsAdded:     objectsAdded,
		objectsRemoved:   objectsRemoved,
		traversals:       traversals,
		traversalVisited: traversalVisited,
		rebuilds:         rebuilds,
		collectionSize:   collectionSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		return NoopMetrics{}
	}
	return m
}

// RecordReconciliation implements MetricsRecorder.
func (m *otelMetrics) RecordReconciliation(ctx context.Context, added, removed int, generation uint64) {
	m.reconciliations.Add(ctx, 1)
	if added > 0 {
		m.objectsAdded.Add(ctx, int64(added))
	}
	if removed > 0 {
		m.objectsRemoved.Add(ctx, int64(removed))
	}
}

// RecordTraversal implements MetricsRecorder.
func (m *otelMetrics) RecordTraversal(ctx context.Context, visited int, cancelled bool, duration time.Duration) {
	m.traversals.Add(ctx, 1,
		metric.WithAttributes(attribute.Bool("cancelled", cancelled)),
	)
	m.traversalVisited.Record(ctx, int64(visited))
}

// RecordRebuild implements MetricsRecorder.
func (m *otelMetrics) RecordRebuild(ctx context.Context, capability string, size int, duration time.Duration) {
	m.rebuilds.Add(ctx, 1,
		metric.WithAttributes(attribute.String("capability", capability)),
	)
	m.collectionSize.Record(ctx, int64(size),
		metric.WithAttributes(attribute.String("capability", capability)),
	)
}
