package formulary

import (
	"context"
	"strings"
)

// Explainer produces a plain-English explanation of a formula.
type Explainer interface {
	// Explain explains formula.
	// Returns EINVALID if formula is empty.
	Explain(ctx context.Context, formula string) (string, error)
}

// FallbackExplanation is shown in place of any explainer failure.
const FallbackExplanation = "Sorry, I was unable to explain that formula. Please check your API key and try again."

// DisabledExplanation is shown when no explainer is configured.
const DisabledExplanation = "AI features are disabled. Please configure your Gemini API key."

// CanExplain reports whether formula is eligible for explanation.
// An empty formula disables the explain action.
func CanExplain(formula string) bool {
	return strings.TrimSpace(formula) != ""
}

// TokenCounter counts model tokens in text.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
