// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import "sync"

// BookmarkStore keeps an append-only bookmark list per book.
//
// It does not check that a book exists; the [Service] does that first.
type BookmarkStore struct {
	mu        sync.RWMutex
	bookmarks map[string][]Bookmark
}

func newBookmarkStore() *BookmarkStore {
	return &BookmarkStore{bookmarks: make(map[string][]Bookmark)}
}

// Append adds a bookmark to the end of its book's list.
func (store *BookmarkStore) Append(bookmark Bookmark) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.bookmarks[bookmark.BookID] = append(store.bookmarks[bookmark.BookID], bookmark)
}

// ListFor returns a copy of the book's bookmarks in insertion order.
// Unknown or empty books yield an empty, non-nil slice.
func (store *BookmarkStore) ListFor(bookID string) []Bookmark {
	store.mu.RLock()
	defer store.mu.RUnlock()

	list := store.bookmarks[bookID]
	out := make([]Bookmark, len(list))
	copy(out, list)
	return out
}
