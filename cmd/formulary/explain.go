package main

import (
	"fmt"

	"github.com/fwojciec/formulary"
	"github.com/fwojciec/formulary/gemini"
)

// Run executes the explain command.
func (c *ExplainCmd) Run(deps *Dependencies) error {
	if !formulary.CanExplain(c.Formula) {
		fmt.Fprintln(deps.Stderr, "error: formula is empty")
		return formulary.Errorf(formulary.EINVALID, "formula is empty")
	}

	if c.DryRun {
		prompt := gemini.BuildPrompt(c.Formula)
		n, err := deps.Tokens.CountTokens(deps.Ctx, prompt)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", formulary.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, prompt)
		fmt.Fprintf(deps.Stdout, "\nmodel: %s\ntokens: %d\n", gemini.Model, n)
		return nil
	}

	req, _ := formulary.NewPlayground(deps.Explainer).Explain(deps.Ctx, c.Formula)
	if req.Status == formulary.ExplainFailed {
		fmt.Fprintln(deps.Stderr, req.Explanation)
		return ErrReported
	}

	fmt.Fprintln(deps.Stdout, req.Explanation)
	return nil
}
