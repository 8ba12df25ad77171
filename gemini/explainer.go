// Package gemini provides formula explanations backed by Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/formulary"
	"google.golang.org/genai"
)

// Model is the Gemini model used for explanations.
const Model = "gemini-2.5-flash"

const promptTemplate = `You are an expert Microsoft Excel user. Explain the following Excel formula in a clear, concise, and easy-to-understand way for a user who might be a beginner.

Formula: %FORMULA%

Your explanation should include:
1. **Purpose**: A one-sentence summary of what the formula does.
2. **Breakdown**: Explain each function and argument step-by-step.
3. **Example**: Briefly describe how it works with sample data.

Keep the tone friendly and encouraging. Do not use markdown formatting.`

// Ensure Explainer implements formulary.Explainer at compile time.
var _ formulary.Explainer = (*Explainer)(nil)

// Explainer implements formulary.Explainer using Google Gemini.
type Explainer struct {
	client *genai.Client
}

// NewExplainer creates a new Explainer.
func NewExplainer(client *genai.Client) *Explainer {
	return &Explainer{client: client}
}

// Explain returns a beginner-friendly plain-text explanation of formula.
func (e *Explainer) Explain(ctx context.Context, formula string) (string, error) {
	if !formulary.CanExplain(formula) {
		return "", formulary.Errorf(formulary.EINVALID, "formula required")
	}
	if e.client == nil {
		return "", formulary.Errorf(formulary.EINTERNAL, "gemini client not configured")
	}

	result, err := e.client.Models.GenerateContent(ctx, Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildPrompt(formula)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", formulary.Errorf(formulary.EINTERNAL, "gemini returned nil result")
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", formulary.Errorf(formulary.EINTERNAL, "gemini returned an empty explanation")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for explanation calls.
func BuildConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.5),
		TopP:            genai.Ptr[float32](1),
		TopK:            genai.Ptr[float32](32),
		MaxOutputTokens: 256,
	}
}

// BuildPrompt embeds formula verbatim in the tutor prompt.
func BuildPrompt(formula string) string {
	return strings.Replace(promptTemplate, "%FORMULA%", formula, 1)
}
