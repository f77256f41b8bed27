// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package shelf is the in-memory bookshelf: a fixed catalog of books, their
chapter text, the reader's bookmarks, and per-book reading progress.

Core Responsibility:

  - Catalog & Chapters: Read-only after the shelf is built.
  - Bookmarks: Append-only, per-book, returned in insertion order.
  - Progress: One record per book, merged in place on every update.

All state hangs off a [Shelf] value owned by the entry point, so tests can
build as many isolated shelves as they need. The [Service] layers the seven
bookshelf operations on top of it; the HTTP and MCP transports call the
Service and never touch the stores directly.
*/
package shelf

import (
	"time"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
)

// # Core Entities

// Book is one catalog entry. It never changes after the shelf is built.
type Book struct {
	ID            string `json:"id"                 yaml:"id"`
	Title         string `json:"title"              yaml:"title"`
	Author        string `json:"author"             yaml:"author"`
	Description   string `json:"description"        yaml:"description"`
	Category      string `json:"category"           yaml:"category"`
	TotalChapters int    `json:"totalChapters"      yaml:"total_chapters"`
	CoverURL      string `json:"coverUrl,omitempty" yaml:"cover_url"`
}

// Chapter is the text of one chapter, numbered from 1.
type Chapter struct {
	BookID        string `json:"bookId"`
	ChapterNumber int    `json:"chapterNumber"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	WordCount     int    `json:"wordCount"`
}

// Bookmark marks a page inside a book.
type Bookmark struct {
	ID            string    `json:"id"`
	BookID        string    `json:"bookId"`
	ChapterNumber int       `json:"chapterNumber"`
	PageNumber    int       `json:"pageNumber"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ReadingProgress is the reader's position in one book.
//
// CompletedChapters is strictly ascending with no duplicates.
type ReadingProgress struct {
	BookID            string        `json:"bookId"`
	CurrentChapter    int           `json:"currentChapter"`
	CurrentPage       int           `json:"currentPage"`
	CompletedChapters []int         `json:"completedChapters"`
	LastReadAt        time.Time     `json:"lastReadAt"`
	TotalReadingTime  time.Duration `json:"-"`
}

// # Search Options

// SearchType selects the single book field a search query is matched against.
type SearchType string

const (
	SearchByTitle    SearchType = "title"
	SearchByAuthor   SearchType = "author"
	SearchByCategory SearchType = "category"
)

// IsValid reports whether t is a recognised [SearchType].
func (t SearchType) IsValid() bool {
	switch t {
	case SearchByTitle, SearchByAuthor, SearchByCategory:
		return true
	}
	return false
}

const (
	// DefaultSearchLimit applies when no limit is given.
	DefaultSearchLimit = 10
	// MaxSearchLimit is the largest limit a caller may ask for.
	MaxSearchLimit = 50
)

// SearchOptions configures SearchBooks. The zero value searches titles with
// [DefaultSearchLimit].
type SearchOptions struct {
	Type  SearchType
	Limit int
}

// withDefaults fills unset fields.
func (o SearchOptions) withDefaults() SearchOptions {
	if o.Type == "" {
		o.Type = SearchByTitle
	}
	if o.Limit <= 0 {
		o.Limit = DefaultSearchLimit
	}
	return o
}

// field returns the book attribute o.Type selects.
func (o SearchOptions) field(book Book) string {
	switch o.Type {
	case SearchByAuthor:
		return book.Author
	case SearchByCategory:
		return book.Category
	default:
		return book.Title
	}
}

// # Outcomes

// The only two failures the bookshelf knows. Both are data-shaped: they
// marshal to {"code": "NOT_FOUND", "error": "..."}.
var (
	ErrBookNotFound    = apperr.NotFound("book")
	ErrChapterNotFound = apperr.NotFound("chapter")
)

// # Field Identifiers

const (
	FieldBookID        = "bookId"
	FieldChapterNumber = "chapterNumber"
	FieldPageNumber    = "pageNumber"
	FieldQuery         = "query"
	FieldSearchType    = "searchType"
	FieldLimit         = "limit"
	FieldNote          = "note"
	FieldMarkCompleted = "markChapterCompleted"
	FieldUserID        = "userId"
)
