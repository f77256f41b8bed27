// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// # Shelf State

// Shelf bundles the four stores. Build one with [New] and hand it to [NewService].
type Shelf struct {
	Catalog   *CatalogStore
	Chapters  *ChapterStore
	Bookmarks *BookmarkStore
	Progress  *ProgressTracker

	clock func() time.Time
}

// Option customises a [Shelf].
type Option func(*Shelf)

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(shelf *Shelf) {
		shelf.clock = clock
	}
}

// CatalogEntry is one book plus, optionally, its chapter text.
// Books without chapters get generated placeholder text.
type CatalogEntry struct {
	Book     `yaml:",inline"`
	Chapters []ChapterSeed `yaml:"chapters,omitempty"`
}

// ChapterSeed is explicit chapter text in a catalog file.
type ChapterSeed struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

/*
New builds a shelf from catalog entries.

Description: Every book gets its chapters (given or generated), an empty
bookmark list, and a default progress record at chapter 1, page 1.

Returns:
  - *Shelf: The populated shelf
  - error: Duplicate or empty IDs, non-positive chapter counts, or a chapter list
    that disagrees with total_chapters
*/
func New(entries []CatalogEntry, opts ...Option) (*Shelf, error) {
	shelf := &Shelf{
		Catalog:   newCatalogStore(),
		Chapters:  newChapterStore(),
		Bookmarks: newBookmarkStore(),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(shelf)
	}
	shelf.Progress = newProgressTracker(shelf.clock)

	for i, entry := range entries {
		book := entry.Book
		if book.TotalChapters == 0 {
			book.TotalChapters = len(entry.Chapters)
		}

		if err := checkEntry(book, entry.Chapters); err != nil {
			return nil, fmt.Errorf("shelf: catalog entry %d: %w", i, err)
		}
		if shelf.Catalog.Contains(book.ID) {
			return nil, fmt.Errorf("shelf: catalog entry %d: duplicate book id %q", i, book.ID)
		}

		shelf.Catalog.add(book)
		shelf.Chapters.set(book.ID, buildChapters(book, entry.Chapters))
		shelf.Progress.seed(book.ID)
	}

	return shelf, nil
}

// Now reads the shelf clock.
func (shelf *Shelf) Now() time.Time {
	return shelf.clock()
}

func checkEntry(book Book, chapters []ChapterSeed) error {
	switch {
	case strings.TrimSpace(book.ID) == "":
		return errors.New("book id is required")
	case book.TotalChapters < 1:
		return fmt.Errorf("book %q: total_chapters must be positive", book.ID)
	case len(chapters) > 0 && len(chapters) != book.TotalChapters:
		return fmt.Errorf("book %q: %d chapters listed but total_chapters is %d", book.ID, len(chapters), book.TotalChapters)
	}
	return nil
}

// # Chapter Generation

const placeholderText = "This is the content of chapter %d. In this chapter we explore the related themes and ideas in depth.\n\n" +
	"Detailed analysis and worked examples help the reader grasp the core concepts.\n\n" +
	"The chapter closes with case studies and practical advice for applying the ideas to real situations."

func buildChapters(book Book, seeds []ChapterSeed) []Chapter {
	chapters := make([]Chapter, book.TotalChapters)

	// Placeholder word counts are pseudo-random but stable per book ID.
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(book.ID))
	rng := rand.New(rand.NewPCG(hash.Sum64(), uint64(book.TotalChapters)))

	for i := range chapters {
		n := i + 1
		chapter := Chapter{BookID: book.ID, ChapterNumber: n}

		if len(seeds) > 0 {
			chapter.Title = seeds[i].Title
			chapter.Content = seeds[i].Content
			chapter.WordCount = len(strings.Fields(seeds[i].Content))
		} else {
			chapter.Title = fmt.Sprintf("Chapter %d", n)
			chapter.Content = fmt.Sprintf(placeholderText, n)
			chapter.WordCount = 1000 + rng.IntN(2000)
		}

		chapters[i] = chapter
	}
	return chapters
}

// # Catalog Sources

type catalogFile struct {
	Books []CatalogEntry `yaml:"books"`
}

// LoadCatalog reads catalog entries from a YAML file of the form
//
//	books:
//	  - id: book_001
//	    title: ...
//	    total_chapters: 3
//	    chapters:            # optional
//	      - title: ...
//	        content: ...
func LoadCatalog(path string) ([]CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shelf: read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("shelf: parse catalog %s: %w", path, err)
	}
	if len(file.Books) == 0 {
		return nil, fmt.Errorf("shelf: catalog %s lists no books", path)
	}

	return file.Books, nil
}

// DemoCatalog is the built-in catalog used when no file is configured.
func DemoCatalog() []CatalogEntry {
	return []CatalogEntry{
		{Book: Book{
			ID:            "book_001",
			Title:         "Professional JavaScript for Web Developers",
			Author:        "Nicholas C. Zakas",
			Description:   "An authoritative guide to the core concepts and advanced features of the JavaScript language",
			TotalChapters: 25,
			Category:      "Technology",
			CoverURL:      "https://example.com/covers/js_advanced.jpg",
		}},
		{Book: Book{
			ID:            "book_002",
			Title:         "Sapiens: A Brief History of Humankind",
			Author:        "Yuval Noah Harari",
			Description:   "The story of humankind from the first signs of life a hundred thousand years ago to the interplay of capital and technology in the 21st century",
			TotalChapters: 20,
			Category:      "History",
			CoverURL:      "https://example.com/covers/sapiens.jpg",
		}},
		{Book: Book{
			ID:            "book_003",
			Title:         "One Hundred Years of Solitude",
			Author:        "Gabriel García Márquez",
			Description:   "The landmark of magical realism, following seven generations of the Buendía family",
			TotalChapters: 20,
			Category:      "Literature",
			CoverURL:      "https://example.com/covers/one_hundred_years.jpg",
		}},
	}
}

// ResolveCatalog loads path when it is set and falls back to [DemoCatalog].
func ResolveCatalog(path string) ([]CatalogEntry, error) {
	if path == "" {
		return DemoCatalog(), nil
	}
	return LoadCatalog(path)
}
