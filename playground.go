package formulary

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ExplainStatus is the lifecycle state of an explain request.
type ExplainStatus string

// ExplainStatus constants.
const (
	ExplainIdle     ExplainStatus = "idle"
	ExplainPending  ExplainStatus = "pending"
	ExplainResolved ExplainStatus = "resolved"
	ExplainFailed   ExplainStatus = "failed"
)

// ExplainRequest is one invocation of the explainer.
type ExplainRequest struct {
	ID          string        `json:"id"`
	Formula     string        `json:"formula"`
	Status      ExplainStatus `json:"status"`
	Explanation string        `json:"explanation,omitempty"`
}

// Done reports whether the request reached a terminal state.
func (r ExplainRequest) Done() bool {
	return r.Status == ExplainResolved || r.Status == ExplainFailed
}

// DefaultFormula is the formula the playground opens with.
const DefaultFormula = "=SUM(C1:C4)"

// DefaultResult is the pre-authored result shown for DefaultFormula.
const DefaultResult = "770"

// SampleSheet is the small grid displayed next to the playground formula.
var SampleSheet = SampleData{
	Headers: []string{"A", "B", "C", "D"},
	Rows: [][]string{
		{"1", "Product A", "150", "0.1"},
		{"2", "Product B", "200", "0.15"},
		{"3", "Product C", "120", "0.05"},
		{"4", "Product D", "300", "0.2"},
	},
}

// Playground tracks the explain request currently displayed to a user.
//
// Starting a request clears the previous explanation immediately. A result
// is only applied if it belongs to the current request, so a late answer to
// a superseded request is never shown as current.
type Playground struct {
	explainer Explainer

	mu      sync.Mutex
	current ExplainRequest
}

// NewPlayground returns a Playground using e. A nil e disables explanations.
func NewPlayground(e Explainer) *Playground {
	return &Playground{
		explainer: e,
		current:   ExplainRequest{Status: ExplainIdle},
	}
}

// Current returns the request currently displayed.
func (p *Playground) Current() ExplainRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Start begins a new request for formula and makes it current.
// Returns false, leaving state untouched, if formula cannot be explained.
func (p *Playground) Start(formula string) (ExplainRequest, bool) {
	if !CanExplain(formula) {
		return ExplainRequest{}, false
	}

	req := ExplainRequest{
		ID:      uuid.NewString(),
		Formula: formula,
		Status:  ExplainPending,
	}

	p.mu.Lock()
	p.current = req
	p.mu.Unlock()

	return req, true
}

// Complete calls the explainer for req and returns it in a terminal state.
// Failures are replaced with FallbackExplanation. Complete does not touch
// the playground state and is safe to run off the event loop.
func (p *Playground) Complete(ctx context.Context, req ExplainRequest) ExplainRequest {
	if p.explainer == nil {
		req.Status = ExplainResolved
		req.Explanation = DisabledExplanation
		return req
	}

	text, err := p.explainer.Explain(ctx, req.Formula)
	if err != nil {
		req.Status = ExplainFailed
		req.Explanation = FallbackExplanation
		return req
	}

	req.Status = ExplainResolved
	req.Explanation = text
	return req
}

// Finish applies a completed request. It reports false and does nothing if
// done is not the current request.
func (p *Playground) Finish(done ExplainRequest) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current.ID != done.ID || p.current.Done() {
		return false
	}
	p.current = done
	return true
}

// Explain runs a full request for formula synchronously.
// It returns false if formula cannot be explained.
func (p *Playground) Explain(ctx context.Context, formula string) (ExplainRequest, bool) {
	req, ok := p.Start(formula)
	if !ok {
		return ExplainRequest{}, false
	}
	done := p.Complete(ctx, req)
	p.Finish(done)
	return done, true
}
