package gemini

import (
	"context"

	"github.com/fwojciec/formulary"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ formulary.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens locally, without calling the API.
// The tokenizer model is downloaded and cached on first use.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, formulary.Errorf(formulary.EINTERNAL, "tokenizer for %s unavailable: %v", model, err)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// Model returns the model the counter was created for.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens counts the tokens text would use as a single user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if tc.tok == nil {
		return 0, formulary.Errorf(formulary.EINTERNAL, "token counter not initialized")
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, formulary.Errorf(formulary.EINTERNAL, "failed to count tokens: %v", err)
	}
	return int(result.TotalTokens), nil
}
