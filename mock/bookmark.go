package mock

import (
	"context"

	"github.com/fwojciec/formulary"
)

var _ formulary.BookmarkService = (*BookmarkService)(nil)

// BookmarkService is a mock implementation of formulary.BookmarkService.
type BookmarkService struct {
	BookmarksFn      func() formulary.BookmarkSet
	ToggleBookmarkFn func(ctx context.Context, name string) formulary.BookmarkSet
}

func (s *BookmarkService) Bookmarks() formulary.BookmarkSet {
	return s.BookmarksFn()
}

func (s *BookmarkService) ToggleBookmark(ctx context.Context, name string) formulary.BookmarkSet {
	return s.ToggleBookmarkFn(ctx, name)
}
