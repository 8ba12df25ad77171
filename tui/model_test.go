package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/formulary"
	"github.com/fwojciec/formulary/bookmark"
	"github.com/fwojciec/formulary/mock"
	"github.com/fwojciec/formulary/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, cfg Config) Model {
	t.Helper()

	catalog, err := yaml.Load()
	require.NoError(t, err)

	var mu sync.Mutex
	data := map[string][]byte{}
	kv := &mock.KVStore{
		GetFn: func(_ context.Context, key string) ([]byte, error) {
			mu.Lock()
			defer mu.Unlock()
			v, ok := data[key]
			if !ok {
				return nil, formulary.Errorf(formulary.ENOTFOUND, "no %s", key)
			}
			return v, nil
		},
		PutFn: func(_ context.Context, key string, value []byte) error {
			mu.Lock()
			defer mu.Unlock()
			data[key] = value
			return nil
		},
	}
	store := bookmark.NewStore(kv, nil)
	store.Load(context.Background())

	cfg.Catalog = catalog
	cfg.Bookmarks = store
	m := New(cfg)
	t.Cleanup(m.search.Stop)
	return m
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// settle types q into the search box and delivers it as settled.
func settle(t *testing.T, m Model, q string) Model {
	t.Helper()
	m.input.SetValue(q)
	return send(t, m, searchSettledMsg{query: q})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func names(fns []*formulary.Function) []string {
	out := make([]string, 0, len(fns))
	for _, f := range fns {
		out = append(out, f.Name)
	}
	return out
}

func TestModel_Home(t *testing.T) {
	t.Parallel()

	t.Run("lists every function initially", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{})

		assert.Equal(t, formulary.HomeRoute, m.Route())
		assert.Len(t, m.results, 22)
		assert.Contains(t, m.View(), "22 functions")
	})

	t.Run("applies settled search queries", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{})
		m = settle(t, m, "lookup")

		assert.Equal(t, "lookup", m.filter.SearchText)
		assert.Contains(t, names(m.results), "XLOOKUP")
		assert.Contains(t, names(m.results), "VLOOKUP")
		assert.NotContains(t, names(m.results), "SUM")
	})

	t.Run("debounces typing before filtering", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{SearchDelay: 50 * time.Millisecond})
		m = send(t, m, runes("x"), runes("l"), runes("o"))

		assert.Equal(t, "xlo", m.input.Value())
		assert.Empty(t, m.filter.SearchText)
		assert.Len(t, m.results, 22)

		msg := m.waitForSearch()()
		assert.Equal(t, searchSettledMsg{query: "xlo"}, msg)

		m = send(t, m, msg)
		assert.Equal(t, []string{"XLOOKUP"}, names(m.results))
	})

	t.Run("shows an empty state when nothing matches", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{})
		m = settle(t, m, "zzzz-not-a-function")

		assert.Empty(t, m.results)
		assert.Contains(t, m.View(), "No functions found.")
	})

	t.Run("cycles categories and wraps back to all", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{})
		categories := m.catalog.Categories()
		ctrlT := tea.KeyMsg{Type: tea.KeyCtrlT}

		m = send(t, m, ctrlT)
		require.NotNil(t, m.filter.Category)
		assert.Equal(t, categories[0], *m.filter.Category)
		for _, f := range m.results {
			assert.Equal(t, categories[0], f.Category)
		}

		for range categories {
			m = send(t, m, ctrlT)
		}
		assert.Nil(t, m.filter.Category)
		assert.Len(t, m.results, 22)
	})

	t.Run("filters to bookmarked functions", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{})
		m.bookmarks.ToggleBookmark(context.Background(), "IF")

		m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})
		assert.Equal(t, []string{"IF"}, names(m.results))

		m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})
		assert.Len(t, m.results, 22)
	})

	t.Run("drops a settled query after escape clears the input", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{SearchDelay: time.Hour})
		m = send(t, m, runes("x"), runes("l"), runes("o"))
		m.search.Flush()
		require.Len(t, m.settled, 1)

		m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		assert.Empty(t, m.settled)

		// A value already taken off the channel is rejected by Update.
		m = send(t, m, searchSettledMsg{query: "xlo"})

		assert.Empty(t, m.input.Value())
		assert.Empty(t, m.filter.SearchText)
		assert.Len(t, m.results, 22)
	})

	t.Run("drops a settled query after leaving home", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{SearchDelay: time.Hour})
		m = send(t, m, runes("x"), runes("l"), runes("o"))
		m.search.Flush()
		require.Len(t, m.settled, 1)

		m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlP}, tea.KeyMsg{Type: tea.KeyEsc})
		require.Equal(t, formulary.HomeRoute, m.Route())
		assert.Empty(t, m.settled)

		m = send(t, m, searchSettledMsg{query: "xlo"})

		assert.Empty(t, m.filter.SearchText)
		assert.Len(t, m.results, 22)
	})

	t.Run("escape clears the query", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{})
		m.input.SetValue("sum")
		m = send(t, m, searchSettledMsg{query: "sum"}, tea.KeyMsg{Type: tea.KeyEsc})

		assert.Empty(t, m.input.Value())
		assert.Empty(t, m.filter.SearchText)
		assert.Len(t, m.results, 22)
	})

	t.Run("opens the selected function", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{})
		m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

		assert.Equal(t, formulary.Route{View: formulary.ViewFunction, ID: "AVERAGE"}, m.Route())
	})

	t.Run("opens the selected guide", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{})
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})

		assert.Equal(t, formulary.Route{View: formulary.ViewGuide, ID: "getting-started"}, m.Route())
		assert.Contains(t, m.View(), "Getting Started")
	})
}

func TestModel_Navigation(t *testing.T) {
	t.Parallel()

	t.Run("starts at the initial fragment", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{Fragment: "function/xlookup"})

		assert.Equal(t, formulary.Route{View: formulary.ViewFunction, ID: "XLOOKUP"}, m.Route())
	})

	t.Run("falls back home for unknown fragments", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{Fragment: "function/NOPE"})

		assert.Equal(t, formulary.HomeRoute, m.Route())
	})

	t.Run("resets the filter when returning home", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{})
		m.input.SetValue("f")
		m = send(t, m,
			tea.KeyMsg{Type: tea.KeyCtrlT},
			searchSettledMsg{query: "f"},
			tea.KeyMsg{Type: tea.KeyEnter},
		)
		require.Equal(t, formulary.ViewFunction, m.Route().View)

		m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

		assert.Equal(t, formulary.HomeRoute, m.Route())
		assert.Empty(t, m.input.Value())
		assert.Equal(t, formulary.FilterState{}, m.filter)
		assert.Len(t, m.results, 22)
	})

	t.Run("ignores searches settling outside home", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{Fragment: "playground"})
		m = send(t, m, searchSettledMsg{query: "sum"})

		assert.Empty(t, m.filter.SearchText)
	})

	t.Run("quitting stops the debouncer", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{})
		m = send(t, m, runes("s"))
		require.True(t, m.search.Pending())

		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		m = next.(Model)

		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
		assert.False(t, m.search.Pending())
		assert.Empty(t, m.View())
	})
}

func TestModel_Function(t *testing.T) {
	t.Parallel()

	t.Run("toggles the bookmark", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{Fragment: "function/SUM"})
		assert.Contains(t, m.View(), "not bookmarked")

		m = send(t, m, runes("b"))
		assert.True(t, m.bookmarks.Bookmarks().Has("SUM"))
		assert.Contains(t, m.View(), "★ bookmarked")

		m = send(t, m, runes("b"))
		assert.False(t, m.bookmarks.Bookmarks().Has("SUM"))
	})

	t.Run("follows related functions", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{Fragment: "function/SUM"})
		m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		assert.Equal(t, formulary.Route{View: formulary.ViewFunction, ID: "SUMIF"}, m.Route())
	})

	t.Run("does not follow dangling related names", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{Fragment: "function/AVERAGE"})
		assert.Contains(t, m.View(), "AVERAGEA (not in catalog)")

		m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		assert.Equal(t, formulary.Route{View: formulary.ViewFunction, ID: "AVERAGE"}, m.Route())
	})

	t.Run("renders detail sections", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{Fragment: "function/SUM"})
		view := m.View()

		assert.Contains(t, view, "SUM(number1, [number2], ...)")
		assert.Contains(t, view, "=SUM(A1:A3)")
		assert.Contains(t, view, "Related functions")
	})
}

func TestModel_Playground(t *testing.T) {
	t.Parallel()

	t.Run("shows the sample sheet and result", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{Fragment: "playground"})
		view := m.View()

		assert.Contains(t, view, formulary.DefaultResult)
		assert.Contains(t, view, "Press enter to explain")
	})

	t.Run("explains the formula", func(t *testing.T) {
		t.Parallel()

		var got string
		explainer := &mock.Explainer{
			ExplainFn: func(_ context.Context, formula string) (string, error) {
				got = formula
				return "Adds C1 through C4.", nil
			},
		}
		m := newModel(t, Config{Fragment: "playground", Explainer: explainer})

		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = next.(Model)
		require.NotNil(t, cmd)
		assert.Equal(t, formulary.ExplainPending, m.playground.Current().Status)
		assert.Contains(t, m.View(), "Explaining…")

		m = send(t, m, cmd())

		assert.Equal(t, formulary.DefaultFormula, got)
		assert.Equal(t, formulary.ExplainResolved, m.playground.Current().Status)
		assert.Contains(t, m.View(), "Adds C1 through C4.")
	})

	t.Run("shows the fallback on failure", func(t *testing.T) {
		t.Parallel()

		explainer := &mock.Explainer{
			ExplainFn: func(context.Context, string) (string, error) {
				return "", errors.New("boom")
			},
		}
		m := newModel(t, Config{Fragment: "playground", Explainer: explainer})

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		m = send(t, m, cmd())

		assert.Equal(t, formulary.ExplainFailed, m.playground.Current().Status)
		assert.Contains(t, m.View(), "unable to explain")
	})

	t.Run("reports disabled explanations without an explainer", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{Fragment: "playground"})

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		m = send(t, m, cmd())

		assert.Equal(t, formulary.DisabledExplanation, m.playground.Current().Explanation)
	})

	t.Run("does not explain a blank formula", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, Config{Fragment: "playground"})
		m.formula.SetValue("   ")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Nil(t, cmd)
		assert.Contains(t, m.View(), "Enter a formula")
	})
}

func TestRenderBlocks(t *testing.T) {
	t.Parallel()

	lines := RenderBlocks(formulary.ParseGuideContent("## Title\ntext\n\n`=A1`"))

	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Title")
	assert.Equal(t, "text", lines[1])
	assert.Empty(t, lines[2])
	assert.Contains(t, lines[3], "=A1")
}
