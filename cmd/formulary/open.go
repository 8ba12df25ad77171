package main

import (
	"fmt"

	"github.com/fwojciec/formulary"
	"github.com/fwojciec/formulary/tui"
)

// Run executes the open command.
func (c *OpenCmd) Run(deps *Dependencies) error {
	r := formulary.Resolve(deps.Catalog, formulary.ParseRoute(c.Fragment))

	switch r.View {
	case formulary.ViewFunction:
		return (&ShowCmd{Name: r.ID}).Run(deps)
	case formulary.ViewGuide:
		return (&GuideCmd{ID: r.ID}).Run(deps)
	case formulary.ViewPlayground:
		fmt.Fprintln(deps.Stdout, tui.Sheet(formulary.SampleSheet))
		fmt.Fprintf(deps.Stdout, "\n%s  =>  %s\n", formulary.DefaultFormula, formulary.DefaultResult)
		return nil
	default:
		return (&SearchCmd{}).Run(deps)
	}
}
