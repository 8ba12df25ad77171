package mock

import (
	"context"

	"github.com/fwojciec/formulary"
)

var _ formulary.Explainer = (*Explainer)(nil)

// Explainer is a mock implementation of formulary.Explainer.
type Explainer struct {
	ExplainFn func(ctx context.Context, formula string) (string, error)
}

func (e *Explainer) Explain(ctx context.Context, formula string) (string, error) {
	return e.ExplainFn(ctx, formula)
}
