package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/formulary"
)

// Run executes the guides command.
func (c *GuidesCmd) Run(deps *Dependencies) error {
	for _, g := range deps.Catalog.Guides() {
		fmt.Fprintf(deps.Stdout, "%-20s  %-12s  %s\n", g.ID, g.Category, g.Title)
	}
	return nil
}

// Run executes the guide command.
func (c *GuideCmd) Run(deps *Dependencies) error {
	g, ok := deps.Catalog.FindGuide(c.ID)
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: guide %q not found. Use 'formulary guides' to see available guides.\n", c.ID)
		return formulary.Errorf(formulary.ENOTFOUND, "guide %q not found", c.ID)
	}

	w := deps.Stdout
	fmt.Fprintf(w, "%s\n%s\n\n", g.Title, g.ShortDescription)
	for _, b := range formulary.ParseGuideContent(g.Content) {
		switch b.Kind {
		case formulary.BlockHeading2:
			fmt.Fprintf(w, "%s\n%s\n", b.Text, strings.Repeat("=", len(b.Text)))
		case formulary.BlockHeading3:
			fmt.Fprintf(w, "%s\n%s\n", b.Text, strings.Repeat("-", len(b.Text)))
		case formulary.BlockCode:
			fmt.Fprintf(w, "    %s\n", b.Text)
		case formulary.BlockBreak:
			fmt.Fprintln(w)
		default:
			fmt.Fprintln(w, b.Text)
		}
	}
	return nil
}
