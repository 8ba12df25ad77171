// Package slog provides logging decorators for formulary services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/formulary"
)

// Ensure LoggingExplainer implements formulary.Explainer.
var _ formulary.Explainer = (*LoggingExplainer)(nil)

// LoggingExplainer wraps an Explainer with logging.
type LoggingExplainer struct {
	next   formulary.Explainer
	logger *slog.Logger
}

// NewLoggingExplainer creates a new LoggingExplainer.
func NewLoggingExplainer(next formulary.Explainer, logger *slog.Logger) *LoggingExplainer {
	return &LoggingExplainer{next: next, logger: logger}
}

// Explain delegates to the wrapped explainer and logs the call. The formula
// is logged by length only.
func (e *LoggingExplainer) Explain(ctx context.Context, formula string) (explanation string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("explain",
			"formula_len", len(formula),
			"explanation_len", len(explanation),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Explain(ctx, formula)
}
