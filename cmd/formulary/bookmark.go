package main

import (
	"fmt"

	"github.com/fwojciec/formulary"
)

// Run executes the bookmark command.
func (c *BookmarkCmd) Run(deps *Dependencies) error {
	f, ok := deps.Catalog.FindFunction(c.Name)
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: function %q not found. Use 'formulary search' to find functions.\n", c.Name)
		return formulary.Errorf(formulary.ENOTFOUND, "function %q not found", c.Name)
	}

	set := deps.Bookmarks.ToggleBookmark(deps.Ctx, f.Name)
	if set.Has(f.Name) {
		fmt.Fprintf(deps.Stdout, "Bookmarked %s\n", f.Name)
	} else {
		fmt.Fprintf(deps.Stdout, "Removed bookmark %s\n", f.Name)
	}
	return nil
}

// Run executes the bookmarks command.
func (c *BookmarksCmd) Run(deps *Dependencies) error {
	fns := formulary.FilterFunctions(deps.Catalog.Functions(), deps.Bookmarks.Bookmarks(),
		formulary.FilterState{BookmarksOnly: true})
	if len(fns) == 0 {
		fmt.Fprintln(deps.Stdout, "No bookmarks yet. Use 'formulary bookmark <name>' to add one.")
		return nil
	}

	printFunctions(deps, fns)
	return nil
}
