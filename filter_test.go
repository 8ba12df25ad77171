package formulary_test

import (
	"testing"

	"github.com/fwojciec/formulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFunctions() []*formulary.Function {
	return []*formulary.Function{
		{Name: "SUM", Category: "Math & Trig", ShortDescription: "Adds all the numbers in a range of cells.", Tags: []string{"math", "addition"}},
		{Name: "AVERAGE", Category: "Math & Trig", ShortDescription: "Returns the average of its arguments.", Tags: []string{"mean", "statistics"}},
		{Name: "IF", Category: "Logical", ShortDescription: "Checks whether a condition is met.", Tags: []string{"condition"}},
		{Name: "VLOOKUP", Category: "Lookup & Reference", ShortDescription: "Looks for a value in the leftmost column.", Tags: []string{"lookup", "vertical"}},
		{Name: "XLOOKUP", Category: "Lookup & Reference", ShortDescription: "A modern replacement.", Tags: []string{"lookup", "modern"}},
	}
}

func names(fns []*formulary.Function) []string {
	out := make([]string, 0, len(fns))
	for _, f := range fns {
		out = append(out, f.Name)
	}
	return out
}

func ptr(s string) *string { return &s }

func TestFilterFunctions(t *testing.T) {
	t.Parallel()

	t.Run("zero state returns whole catalog in order", func(t *testing.T) {
		t.Parallel()

		fns := testFunctions()

		result := formulary.FilterFunctions(fns, formulary.BookmarkSet{}, formulary.FilterState{})

		assert.Equal(t, names(fns), names(result))
	})

	t.Run("bookmarks only keeps bookmarked names", func(t *testing.T) {
		t.Parallel()

		fns := []*formulary.Function{{Name: "SUM"}, {Name: "AVERAGE"}, {Name: "VLOOKUP"}}
		bookmarks := formulary.NewBookmarkSet("SUM")

		result := formulary.FilterFunctions(fns, bookmarks, formulary.FilterState{BookmarksOnly: true})

		assert.Equal(t, []string{"SUM"}, names(result))
	})

	t.Run("bookmark membership is case-sensitive", func(t *testing.T) {
		t.Parallel()

		bookmarks := formulary.NewBookmarkSet("sum")

		result := formulary.FilterFunctions(testFunctions(), bookmarks, formulary.FilterState{BookmarksOnly: true})

		assert.Empty(t, result)
	})

	t.Run("category matches exactly", func(t *testing.T) {
		t.Parallel()

		result := formulary.FilterFunctions(testFunctions(), formulary.BookmarkSet{}, formulary.FilterState{Category: ptr("Math & Trig")})
		assert.Equal(t, []string{"SUM", "AVERAGE"}, names(result))

		result = formulary.FilterFunctions(testFunctions(), formulary.BookmarkSet{}, formulary.FilterState{Category: ptr("math & trig")})
		assert.Empty(t, result)
	})

	t.Run("search matches tags in catalog order", func(t *testing.T) {
		t.Parallel()

		result := formulary.FilterFunctions(testFunctions(), formulary.BookmarkSet{}, formulary.FilterState{SearchText: "look"})

		assert.Equal(t, []string{"VLOOKUP", "XLOOKUP"}, names(result))
	})

	t.Run("search is case-insensitive and trimmed", func(t *testing.T) {
		t.Parallel()

		result := formulary.FilterFunctions(testFunctions(), formulary.BookmarkSet{}, formulary.FilterState{SearchText: "  ADDS "})

		assert.Equal(t, []string{"SUM"}, names(result))
	})

	t.Run("search matches short description", func(t *testing.T) {
		t.Parallel()

		result := formulary.FilterFunctions(testFunctions(), formulary.BookmarkSet{}, formulary.FilterState{SearchText: "condition is met"})

		assert.Equal(t, []string{"IF"}, names(result))
	})

	t.Run("whitespace search is identity", func(t *testing.T) {
		t.Parallel()

		fns := testFunctions()
		withEmpty := formulary.FilterFunctions(fns, formulary.BookmarkSet{}, formulary.FilterState{SearchText: "   "})
		without := formulary.FilterFunctions(fns, formulary.BookmarkSet{}, formulary.FilterState{})

		assert.Equal(t, names(without), names(withEmpty))
	})

	t.Run("predicates combine as conjunction", func(t *testing.T) {
		t.Parallel()

		bookmarks := formulary.NewBookmarkSet("SUM", "VLOOKUP", "XLOOKUP")
		state := formulary.FilterState{
			SearchText:    "modern",
			Category:      ptr("Lookup & Reference"),
			BookmarksOnly: true,
		}

		result := formulary.FilterFunctions(testFunctions(), bookmarks, state)

		require.Len(t, result, 1)
		assert.Equal(t, "XLOOKUP", result[0].Name)
	})

	t.Run("no match returns empty non-nil slice", func(t *testing.T) {
		t.Parallel()

		result := formulary.FilterFunctions(testFunctions(), formulary.BookmarkSet{}, formulary.FilterState{SearchText: "zzz"})

		require.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("every result satisfies each active predicate", func(t *testing.T) {
		t.Parallel()

		fns := testFunctions()
		bookmarks := formulary.NewBookmarkSet("SUM", "AVERAGE", "IF")
		states := []formulary.FilterState{
			{SearchText: "a"},
			{Category: ptr("Math & Trig"), SearchText: "s"},
			{BookmarksOnly: true, SearchText: "i"},
			{BookmarksOnly: true, Category: ptr("Logical")},
		}

		for _, state := range states {
			result := formulary.FilterFunctions(fns, bookmarks, state)
			assert.LessOrEqual(t, len(result), len(fns))
			for _, f := range result {
				if state.BookmarksOnly {
					assert.True(t, bookmarks.Has(f.Name))
				}
				if state.Category != nil {
					assert.Equal(t, *state.Category, f.Category)
				}
				single := formulary.FilterFunctions([]*formulary.Function{f}, formulary.BookmarkSet{}, formulary.FilterState{SearchText: state.SearchText})
				assert.Len(t, single, 1)
			}
		}
	})
}

func TestCategories(t *testing.T) {
	t.Parallel()

	t.Run("returns distinct categories sorted", func(t *testing.T) {
		t.Parallel()

		categories := formulary.Categories(testFunctions())

		assert.Equal(t, []string{"Logical", "Lookup & Reference", "Math & Trig"}, categories)
	})

	t.Run("empty catalog has no categories", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, formulary.Categories(nil))
	})
}

func TestFindFunction(t *testing.T) {
	t.Parallel()

	t.Run("matches ignoring case", func(t *testing.T) {
		t.Parallel()

		f, ok := formulary.FindFunction(testFunctions(), "vlookup")

		require.True(t, ok)
		assert.Equal(t, "VLOOKUP", f.Name)
	})

	t.Run("reports not found", func(t *testing.T) {
		t.Parallel()

		f, ok := formulary.FindFunction(testFunctions(), "HLOOKUP")

		assert.False(t, ok)
		assert.Nil(t, f)
	})
}

func TestResolveRelated(t *testing.T) {
	t.Parallel()

	t.Run("marks dangling names as not found", func(t *testing.T) {
		t.Parallel()

		fns := testFunctions()
		f := &formulary.Function{Name: "XLOOKUP", RelatedFunctions: []string{"VLOOKUP", "FILTER", "if"}}

		links := formulary.ResolveRelated(fns, f)

		assert.Equal(t, []formulary.RelatedLink{
			{Name: "VLOOKUP", Found: true},
			{Name: "FILTER", Found: false},
			{Name: "if", Found: true},
		}, links)
	})

	t.Run("returns nil without related functions", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, formulary.ResolveRelated(testFunctions(), &formulary.Function{Name: "SUM"}))
		assert.Nil(t, formulary.ResolveRelated(testFunctions(), nil))
	})
}

func TestDifficulty_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, formulary.Beginner.Valid())
	assert.True(t, formulary.Intermediate.Valid())
	assert.True(t, formulary.Advanced.Valid())
	assert.False(t, formulary.Difficulty("Expert").Valid())
	assert.False(t, formulary.Difficulty("").Valid())
}
