// Package tui provides an interactive terminal browser for the formula
// catalog.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/formulary"
	"github.com/fwojciec/formulary/debounce"
)

// DefaultSearchDelay is the quiet period before a search query is applied.
const DefaultSearchDelay = 300 * time.Millisecond

// DefaultExplainTimeout bounds one explain call.
const DefaultExplainTimeout = 30 * time.Second

// Config configures a Model.
type Config struct {
	Catalog   formulary.Catalog
	Bookmarks formulary.BookmarkService

	// Explainer is optional; nil disables explanations.
	Explainer formulary.Explainer

	// Fragment is the initial location, e.g. "function/SUM".
	Fragment string

	// SearchDelay overrides DefaultSearchDelay.
	SearchDelay time.Duration

	// Clock overrides the debounce clock.
	Clock debounce.Clock
}

type pane int

const (
	paneFunctions pane = iota
	paneGuides
)

// searchSettledMsg carries a query once typing has paused.
type searchSettledMsg struct {
	query string
}

// explainDoneMsg carries a completed explain request.
type explainDoneMsg struct {
	req formulary.ExplainRequest
}

// Model is the bubbletea model for the browser.
type Model struct {
	catalog    formulary.Catalog
	bookmarks  formulary.BookmarkService
	playground *formulary.Playground
	search     *debounce.Debouncer[string]
	settled    chan string

	route       formulary.Route
	filter      formulary.FilterState
	categoryIdx int
	results     []*formulary.Function
	pane        pane
	cursor      int
	guideCursor int
	related     int
	scroll      int

	input   textinput.Model
	formula textinput.Model
	help    help.Model
	keys    keyMap

	width    int
	quitting bool
}

// New creates a Model.
func New(cfg Config) Model {
	delay := cfg.SearchDelay
	if delay == 0 {
		delay = DefaultSearchDelay
	}

	settled := make(chan string, 1)
	var opts []debounce.Option
	if cfg.Clock != nil {
		opts = append(opts, debounce.WithClock(cfg.Clock))
	}
	search := debounce.New(delay, func(q string) { deliver(settled, q) }, opts...)

	input := textinput.New()
	input.Placeholder = "Search functions by name, description or tag"
	input.Prompt = "Search: "
	input.Focus()

	formula := textinput.New()
	formula.Prompt = "Formula: "
	formula.SetValue(formulary.DefaultFormula)

	m := Model{
		catalog:     cfg.Catalog,
		bookmarks:   cfg.Bookmarks,
		playground:  formulary.NewPlayground(cfg.Explainer),
		search:      search,
		settled:     settled,
		route:       formulary.HomeRoute,
		categoryIdx: -1,
		input:       input,
		formula:     formula,
		help:        help.New(),
		keys:        defaultKeyMap(),
	}
	m.refresh()
	m = m.navigate(formulary.ParseRoute(cfg.Fragment))
	return m
}

// deliver hands q to the event loop, replacing any query not yet picked up.
func deliver(ch chan string, q string) {
	for {
		select {
		case ch <- q:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Route returns the current route.
func (m Model) Route() formulary.Route {
	return m.route
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForSearch())
}

func (m Model) waitForSearch() tea.Cmd {
	ch := m.settled
	return func() tea.Msg {
		return searchSettledMsg{query: <-ch}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case searchSettledMsg:
		// A query cleared or abandoned after it settled no longer matches the input.
		if m.route.View == formulary.ViewHome && msg.query == m.input.Value() {
			m.filter.SearchText = msg.query
			m.refresh()
		}
		return m, m.waitForSearch()

	case explainDoneMsg:
		m.playground.Finish(msg.req)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}
		switch m.route.View {
		case formulary.ViewFunction:
			return m.updateFunction(msg)
		case formulary.ViewGuide:
			return m.updateGuide(msg)
		case formulary.ViewPlayground:
			return m.updatePlayground(msg)
		default:
			return m.updateHome(msg)
		}
	}

	var cmd tea.Cmd
	if m.route.View == formulary.ViewPlayground {
		m.formula, cmd = m.formula.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.search.Stop()
	m.quitting = true
	return m, tea.Quit
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Pane):
		if m.pane == paneFunctions {
			m.pane = paneGuides
		} else {
			m.pane = paneFunctions
		}
	case key.Matches(msg, m.keys.Category):
		m.cycleCategory()
	case key.Matches(msg, m.keys.Bookmarked):
		m.filter.BookmarksOnly = !m.filter.BookmarksOnly
		m.refresh()
	case key.Matches(msg, m.keys.Playground):
		return m.navigate(formulary.Route{View: formulary.ViewPlayground}), nil
	case key.Matches(msg, m.keys.Back):
		m.cancelSearch()
		m.input.SetValue("")
		m.filter.SearchText = ""
		m.refresh()
	case key.Matches(msg, m.keys.Open):
		return m.openSelection(), nil
	default:
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != before {
			m.search.Push(v)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) openSelection() Model {
	if m.pane == paneGuides {
		guides := m.catalog.Guides()
		if m.guideCursor < len(guides) {
			return m.navigate(formulary.Route{View: formulary.ViewGuide, ID: guides[m.guideCursor].ID})
		}
		return m
	}
	if m.cursor < len(m.results) {
		return m.navigate(formulary.Route{View: formulary.ViewFunction, ID: m.results[m.cursor].Name})
	}
	return m
}

func (m Model) updateFunction(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f, ok := m.catalog.FindFunction(m.route.ID)
	if !ok {
		return m.navigate(formulary.HomeRoute), nil
	}
	links := formulary.ResolveRelated(m.catalog.Functions(), f)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		return m.navigate(formulary.HomeRoute), nil
	case key.Matches(msg, m.keys.Bookmark):
		m.bookmarks.ToggleBookmark(context.Background(), f.Name)
	case key.Matches(msg, m.keys.Playground):
		return m.navigate(formulary.Route{View: formulary.ViewPlayground}), nil
	case key.Matches(msg, m.keys.Up):
		if m.related > 0 {
			m.related--
		}
	case key.Matches(msg, m.keys.Down):
		if m.related < len(links)-1 {
			m.related++
		}
	case key.Matches(msg, m.keys.Open):
		// Dangling related names are shown but cannot be followed.
		if m.related < len(links) && links[m.related].Found {
			return m.navigate(formulary.Route{View: formulary.ViewFunction, ID: links[m.related].Name}), nil
		}
	}
	return m, nil
}

func (m Model) updateGuide(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		return m.navigate(formulary.HomeRoute), nil
	case key.Matches(msg, m.keys.Up):
		if m.scroll > 0 {
			m.scroll--
		}
	case key.Matches(msg, m.keys.Down):
		m.scroll++
	}
	return m, nil
}

func (m Model) updatePlayground(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.navigate(formulary.HomeRoute), nil
	case key.Matches(msg, m.keys.Explain):
		req, ok := m.playground.Start(m.formula.Value())
		if !ok {
			return m, nil
		}
		return m, m.explain(req)
	}
	var cmd tea.Cmd
	m.formula, cmd = m.formula.Update(msg)
	return m, cmd
}

func (m Model) explain(req formulary.ExplainRequest) tea.Cmd {
	pg := m.playground
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultExplainTimeout)
		defer cancel()
		return explainDoneMsg{req: pg.Complete(ctx, req)}
	}
}

// navigate resolves r against the catalog and switches to it. Leaving a view
// resets the search state.
func (m Model) navigate(r formulary.Route) Model {
	r = formulary.Resolve(m.catalog, r)
	if r.View != m.route.View {
		m.cancelSearch()
		m.input.SetValue("")
		m.filter = formulary.FilterState{}
		m.categoryIdx = -1
		m.cursor = 0
		m.refresh()
	}
	m.route = r
	m.related = 0
	m.scroll = 0

	if r.View == formulary.ViewPlayground {
		m.input.Blur()
		m.formula.Focus()
	} else {
		m.formula.Blur()
		m.input.Focus()
	}
	return m
}

// cancelSearch drops a pending query as well as one settled but not yet applied.
func (m *Model) cancelSearch() {
	m.search.Cancel()
	select {
	case <-m.settled:
	default:
	}
}

func (m *Model) refresh() {
	m.results = formulary.FilterFunctions(m.catalog.Functions(), m.bookmarks.Bookmarks(), m.filter)
	if m.cursor >= len(m.results) {
		m.cursor = max(len(m.results)-1, 0)
	}
}

func (m *Model) moveCursor(delta int) {
	if m.pane == paneGuides {
		m.guideCursor = clamp(m.guideCursor+delta, len(m.catalog.Guides()))
		return
	}
	m.cursor = clamp(m.cursor+delta, len(m.results))
}

// cycleCategory steps through All and then each category in order.
func (m *Model) cycleCategory() {
	categories := m.catalog.Categories()
	m.categoryIdx++
	if m.categoryIdx >= len(categories) {
		m.categoryIdx = -1
	}
	if m.categoryIdx < 0 {
		m.filter.Category = nil
	} else {
		c := categories[m.categoryIdx]
		m.filter.Category = &c
	}
	m.refresh()
}

func clamp(i, n int) int {
	if i < 0 || n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
