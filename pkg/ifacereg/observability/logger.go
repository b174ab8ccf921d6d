// Package observability provides structured logging and metrics for
// ifacereg registries: reconciliation outcomes, traversal stats, and
// collection rebuilds.
//
// Logging uses slog (Go stdlib); metrics use OpenTelemetry behind the
// MetricsRecorder interface, with a no-op implementation when disabled.
package observability

import (
	"log/slog"
)

// LogReconciliation logs a reconciliation that changed membership.
func LogReconciliation(logger *slog.Logger, added, removed, active int, generation uint64) {
	if logger == nil {
		return
	}
	logger.Info("registry reconciled",
		slog.Int("added", added),
		slog.Int("removed", removed),
		slog.Int("active", active),
		slog.Uint64("generation", generation),
	)
}

// LogTraversal logs a completed registry traversal.
func LogTraversal(logger *slog.Logger, visited int, cancelled bool) {
	if logger == nil {
		return
	}
	logger.Debug("registry traversed",
		slog.Int("visited", visited),
		slog.Bool("cancelled", cancelled),
	)
}

// LogRebuild logs a collection cache rebuild.
func LogRebuild(logger *slog.Logger, capability string, size int, generation uint64) {
	if logger == nil {
		return
	}
	logger.Debug("collection rebuilt",
		slog.String("capability", capability),
		slog.Int("size", size),
		slog.Uint64("generation", generation),
	)
}

// LogJournalError logs a failed journal append (non-fatal).
func LogJournalError(logger *slog.Logger, generation uint64, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal append failed",
		slog.Uint64("generation", generation),
		slog.String("error", err.Error()),
	)
}
