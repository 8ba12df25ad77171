package formulary

import (
	"sort"
	"strings"
)

// FilterState is the transient search state of the function list.
// A nil Category means no category filter.
type FilterState struct {
	SearchText    string  `json:"searchText"`
	Category      *string `json:"category"`
	BookmarksOnly bool    `json:"bookmarksOnly"`
}

// FilterFunctions returns the functions matching every active predicate of
// state, in catalog order. It never mutates fns and returns an empty, non-nil
// slice when nothing matches.
//
// Predicates are applied as a conjunction: bookmark membership, then exact
// category equality, then a case-insensitive substring match of the trimmed
// search text against name, short description, or any tag. Empty search text
// matches everything.
func FilterFunctions(fns []*Function, bookmarks BookmarkSet, state FilterState) []*Function {
	term := strings.ToLower(strings.TrimSpace(state.SearchText))

	results := make([]*Function, 0, len(fns))
	for _, f := range fns {
		if state.BookmarksOnly && !bookmarks.Has(f.Name) {
			continue
		}
		if state.Category != nil && f.Category != *state.Category {
			continue
		}
		if term != "" && !matchesTerm(f, term) {
			continue
		}
		results = append(results, f)
	}
	return results
}

// matchesTerm reports whether the lowercase term occurs in the function's
// name, short description, or one of its tags.
func matchesTerm(f *Function, term string) bool {
	if strings.Contains(strings.ToLower(f.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(f.ShortDescription), term) {
		return true
	}
	for _, tag := range f.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Categories returns the distinct categories of fns sorted lexicographically.
func Categories(fns []*Function) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, f := range fns {
		if _, ok := seen[f.Category]; ok {
			continue
		}
		seen[f.Category] = struct{}{}
		categories = append(categories, f.Category)
	}
	sort.Strings(categories)
	return categories
}

// FindFunction returns the function whose name equals name ignoring case.
func FindFunction(fns []*Function, name string) (*Function, bool) {
	for _, f := range fns {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return nil, false
}
