package services

import (
	"context"
	"sort"
	"sync"

	"news-reader/apiclient"
)

type BookmarkAPI interface {
	AddBookmark(ctx context.Context, newsID string) error
	RemoveBookmark(ctx context.Context, newsID string) error
}

// BookmarkSet mirrors the server's bookmark list for one session. It is
// rebuilt on every page load and updated optimistically on toggle.
type BookmarkSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewBookmarkSet() *BookmarkSet {
	return &BookmarkSet{ids: map[string]struct{}{}}
}

func (b *BookmarkSet) Reset(ids []string) {
	next := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}
	b.mu.Lock()
	b.ids = next
	b.mu.Unlock()
}

func (b *BookmarkSet) Has(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.ids[id]
	return ok
}

func (b *BookmarkSet) IDs() []string {
	b.mu.Lock()
	out := make([]string, 0, len(b.ids))
	for id := range b.ids {
		out = append(out, id)
	}
	b.mu.Unlock()
	sort.Strings(out)
	return out
}

func (b *BookmarkSet) set(id string, on bool) {
	b.mu.Lock()
	if on {
		b.ids[id] = struct{}{}
	} else {
		delete(b.ids, id)
	}
	b.mu.Unlock()
}

// Toggle flips id locally, then tells the server. A 409 on add means the
// server already has it and counts as success. Any other failure restores
// the previous membership. It returns the membership after the call.
func (b *BookmarkSet) Toggle(ctx context.Context, api BookmarkAPI, id string) (bool, error) {
	wasSaved := b.Has(id)
	want := !wasSaved
	b.set(id, want)

	var err error
	if want {
		err = api.AddBookmark(ctx, id)
		if apiclient.IsConflict(err) {
			err = nil
		}
	} else {
		err = api.RemoveBookmark(ctx, id)
	}
	if err != nil {
		b.set(id, wasSaved)
		return wasSaved, err
	}
	return want, nil
}
