package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/fwojciec/formulary"
)

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	Back       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	Pane       key.Binding
	Category   key.Binding
	Bookmarked key.Binding
	Bookmark   key.Binding
	Playground key.Binding
	Explain    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Pane:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "functions/guides")),
		Category:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "category")),
		Bookmarked: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bookmarked only")),
		Bookmark:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmark")),
		Playground: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "playground")),
		Explain:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "explain")),
	}
}

// viewKeys adapts the bindings active in one view to help.KeyMap.
type viewKeys []key.Binding

func (k viewKeys) ShortHelp() []key.Binding  { return k }
func (k viewKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k} }

func (k keyMap) forView(v formulary.View) viewKeys {
	switch v {
	case formulary.ViewFunction:
		return viewKeys{k.Up, k.Down, k.Open, k.Bookmark, k.Playground, k.Back, k.Quit}
	case formulary.ViewGuide:
		return viewKeys{k.Up, k.Down, k.Back, k.Quit}
	case formulary.ViewPlayground:
		return viewKeys{k.Explain, k.Back, k.ForceQuit}
	default:
		return viewKeys{k.Up, k.Down, k.Open, k.Pane, k.Category, k.Bookmarked, k.Playground, k.ForceQuit}
	}
}
