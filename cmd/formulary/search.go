package main

import (
	"fmt"

	"github.com/fwojciec/formulary"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	state := formulary.FilterState{
		SearchText:    c.Query,
		BookmarksOnly: c.Bookmarked,
	}
	if c.Category != "" {
		state.Category = &c.Category
	}

	fns := formulary.FilterFunctions(deps.Catalog.Functions(), deps.Bookmarks.Bookmarks(), state)
	if len(fns) == 0 {
		fmt.Fprintln(deps.Stdout, "No functions found.")
		return nil
	}

	printFunctions(deps, fns)
	return nil
}

func printFunctions(deps *Dependencies, fns []*formulary.Function) {
	bookmarks := deps.Bookmarks.Bookmarks()
	for _, f := range fns {
		star := " "
		if bookmarks.Has(f.Name) {
			star = "★"
		}
		fmt.Fprintf(deps.Stdout, "%s %-10s  %-18s  %s\n", star, f.Name, f.Category, f.ShortDescription)
	}
}

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	for _, category := range deps.Catalog.Categories() {
		fmt.Fprintln(deps.Stdout, category)
	}
	return nil
}
