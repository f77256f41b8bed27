// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

// # Catalog Store

// CatalogStore holds book metadata keyed by book ID.
//
// It is only written while the shelf is being built and is safe for
// concurrent reads afterwards.
type CatalogStore struct {
	books map[string]Book
	order []string
}

func newCatalogStore() *CatalogStore {
	return &CatalogStore{books: make(map[string]Book)}
}

// add registers a book. Callers guarantee the ID is new.
func (store *CatalogStore) add(book Book) {
	store.books[book.ID] = book
	store.order = append(store.order, book.ID)
}

// Get returns the book with the given ID.
func (store *CatalogStore) Get(bookID string) (Book, bool) {
	book, ok := store.books[bookID]
	return book, ok
}

// Contains reports whether the catalog knows bookID.
func (store *CatalogStore) Contains(bookID string) bool {
	_, ok := store.books[bookID]
	return ok
}

// All returns every book in insertion order.
func (store *CatalogStore) All() []Book {
	books := make([]Book, 0, len(store.order))
	for _, id := range store.order {
		books = append(books, store.books[id])
	}
	return books
}

// Len is the catalog size.
func (store *CatalogStore) Len() int {
	return len(store.order)
}

// # Chapter Store

// ChapterStore holds chapter text keyed by book ID, indexed by chapter number - 1.
type ChapterStore struct {
	chapters map[string][]Chapter
}

func newChapterStore() *ChapterStore {
	return &ChapterStore{chapters: make(map[string][]Chapter)}
}

func (store *ChapterStore) set(bookID string, chapters []Chapter) {
	store.chapters[bookID] = chapters
}

// ChaptersFor returns all chapters of a book in chapter order.
func (store *ChapterStore) ChaptersFor(bookID string) ([]Chapter, bool) {
	chapters, ok := store.chapters[bookID]
	if !ok {
		return nil, false
	}
	out := make([]Chapter, len(chapters))
	copy(out, chapters)
	return out, true
}

// ChapterAt returns chapter n of a book. Unknown books and n outside
// 1..len are both reported as absent.
func (store *ChapterStore) ChapterAt(bookID string, n int) (Chapter, bool) {
	chapters, ok := store.chapters[bookID]
	if !ok || n < 1 || n > len(chapters) {
		return Chapter{}, false
	}
	return chapters[n-1], true
}
