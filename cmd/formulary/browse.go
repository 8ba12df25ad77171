package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/formulary/tui"
)

// Run executes the browse command.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	m := tui.New(tui.Config{
		Catalog:   deps.Catalog,
		Bookmarks: deps.Bookmarks,
		Explainer: deps.Explainer,
		Fragment:  c.Fragment,
	})

	p := tea.NewProgram(m,
		tea.WithContext(deps.Ctx),
		tea.WithOutput(deps.Stdout),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
