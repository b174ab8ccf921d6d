package observability

import (
	"context"
	"time"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordReconciliation does nothing.
func (NoopMetrics) RecordReconciliation(_ context.Context, _, _ int, _ uint64) {}

// RecordTraversal does nothing.
func (NoopMetrics) RecordTraversal(_ context.Context, _ int, _ bool, _ time.Duration) {}

// RecordRebuild does nothing.
func (NoopMetrics) RecordRebuild(_ context.Context, _ string, _ int, _ time.Duration) {}
