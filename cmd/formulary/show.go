package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/formulary"
	"github.com/fwojciec/formulary/tui"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	f, ok := deps.Catalog.FindFunction(c.Name)
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: function %q not found. Use 'formulary search' to find functions.\n", c.Name)
		return formulary.Errorf(formulary.ENOTFOUND, "function %q not found", c.Name)
	}

	w := deps.Stdout
	bookmarked := ""
	if deps.Bookmarks.Bookmarks().Has(f.Name) {
		bookmarked = "  ★ bookmarked"
	}
	fmt.Fprintf(w, "%s  (%s, %s)%s\n", f.Name, f.Category, f.Difficulty, bookmarked)
	fmt.Fprintf(w, "%s\n\n", f.ShortDescription)
	fmt.Fprintf(w, "Syntax:\n  %s\n\n", f.Syntax)

	if len(f.Arguments) > 0 {
		fmt.Fprintln(w, "Arguments:")
		for _, a := range f.Arguments {
			req := "optional"
			if a.Required {
				req = "required"
			}
			fmt.Fprintf(w, "  %s (%s, %s): %s\n", a.Name, a.Type, req, a.Description)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Returns:\n  %s: %s\n\n", f.Returns.Type, f.Returns.Description)

	if len(f.Examples) > 0 {
		fmt.Fprintln(w, "Examples:")
		for _, ex := range f.Examples {
			fmt.Fprintf(w, "  %s\n", ex.Description)
			if ex.Data != nil {
				fmt.Fprintln(w, tui.Sheet(*ex.Data))
			}
			fmt.Fprintf(w, "  %s  =>  %s\n\n", ex.Formula, ex.Result)
		}
	}

	if len(f.CommonErrors) > 0 {
		fmt.Fprintln(w, "Common errors:")
		for _, ce := range f.CommonErrors {
			fmt.Fprintf(w, "  %s  %s\n", ce.ErrorCode, ce.Description)
		}
		fmt.Fprintln(w)
	}

	printList(deps, "Pitfalls", f.Pitfalls)
	printList(deps, "Notes", f.Notes)

	fmt.Fprintf(w, "Introduced: %s\n", f.VersionIntroduced)
	if len(f.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(f.Tags, ", "))
	}

	if links := formulary.ResolveRelated(deps.Catalog.Functions(), f); len(links) > 0 {
		names := make([]string, 0, len(links))
		for _, l := range links {
			if l.Found {
				names = append(names, l.Name)
			} else {
				names = append(names, l.Name+" (not in catalog)")
			}
		}
		fmt.Fprintf(w, "Related: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func printList(deps *Dependencies, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(deps.Stdout, "%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(deps.Stdout, "  - %s\n", it)
	}
	fmt.Fprintln(deps.Stdout)
}
