// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/shelf"
)

// fakeClock is a settable clock for streak and timestamp tests.
type fakeClock struct {
	now time.Time
}

func (clock *fakeClock) Now() time.Time { return clock.now }

func (clock *fakeClock) advanceDays(days int) { clock.now = clock.now.AddDate(0, 0, days) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// book is a minimal catalog entry with generated chapters.
func book(id, title, author, category string, chapters int) shelf.CatalogEntry {
	return shelf.CatalogEntry{Book: shelf.Book{
		ID:            id,
		Title:         title,
		Author:        author,
		Category:      category,
		TotalChapters: chapters,
	}}
}

// newShelf builds a shelf over entries, defaulting to the demo catalog.
func newShelf(t *testing.T, clock *fakeClock, entries ...shelf.CatalogEntry) *shelf.Shelf {
	t.Helper()
	if len(entries) == 0 {
		entries = shelf.DemoCatalog()
	}
	s, err := shelf.New(entries, shelf.WithClock(clock.Now))
	require.NoError(t, err)
	return s
}

func newService(t *testing.T, clock *fakeClock, entries ...shelf.CatalogEntry) *shelf.Service {
	t.Helper()
	return shelf.NewService(newShelf(t, clock, entries...), discardLogger())
}
