// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/pkg/id"
	"github.com/taibuivan/bookshelf/pkg/pointer"
	"github.com/taibuivan/bookshelf/pkg/slice"
)

const (
	msgBookmarkAdded   = "bookmark added"
	msgProgressUpdated = "reading progress updated"

	bookmarkIDPrefix = "bm"
)

// # Service Layer

// Service runs the bookshelf operations against a [Shelf].
//
// Every operation returns either a result or one of [ErrBookNotFound] and
// [ErrChapterNotFound]. Parameters are assumed to be validated by the caller.
type Service struct {
	shelf  *Shelf
	logger *slog.Logger
}

// NewService constructs a new [Service] over the given shelf.
func NewService(shelf *Shelf, logger *slog.Logger) *Service {
	return &Service{
		shelf:  shelf,
		logger: logger,
	}
}

// # Discovery

/*
SearchBooks finds books whose selected field contains query.

Description: Matching is a case-insensitive substring test after Unicode
normalisation. Results keep catalog order and stop at opts.Limit. An empty
query matches every book.

Parameters:
  - context: context.Context
  - query: string
  - opts: SearchOptions (zero value searches titles, limit 10)

Returns:
  - *SearchResult: Matched books and their count
  - error: Always nil
*/
func (service *Service) SearchBooks(context context.Context, query string, opts SearchOptions) (*SearchResult, error) {
	opts = opts.withDefaults()
	needle := fold(query)

	books := make([]Book, 0, min(opts.Limit, service.shelf.Catalog.Len()))
	for _, book := range service.shelf.Catalog.All() {
		if len(books) >= opts.Limit {
			break
		}
		if strings.Contains(fold(opts.field(book)), needle) {
			books = append(books, book)
		}
	}

	return &SearchResult{Total: len(books), Books: books}, nil
}

/*
GetBookContent returns the text of one chapter.

Returns:
  - *ContentResult: Chapter text, word count, and book title
  - error: ErrBookNotFound, or ErrChapterNotFound for a number outside 1..totalChapters
*/
func (service *Service) GetBookContent(context context.Context, bookID string, chapterNumber int) (*ContentResult, error) {
	book, ok := service.shelf.Catalog.Get(bookID)
	if !ok {
		return nil, ErrBookNotFound
	}

	chapter, ok := service.shelf.Chapters.ChapterAt(bookID, chapterNumber)
	if !ok {
		return nil, ErrChapterNotFound
	}

	return &ContentResult{
		BookID:        book.ID,
		BookTitle:     book.Title,
		ChapterNumber: chapter.ChapterNumber,
		ChapterTitle:  chapter.Title,
		Content:       chapter.Content,
		WordCount:     chapter.WordCount,
	}, nil
}

// # Bookmarks

/*
AddBookmark records a page in a book.

Parameters:
  - context: context.Context
  - bookID: string
  - chapterNumber: int (1..totalChapters)
  - pageNumber: int (>= 1)
  - note: string (optional)

Returns:
  - *BookmarkAdded: The new bookmark ID
  - error: ErrBookNotFound, ErrChapterNotFound, or an internal error if no ID could be generated
*/
func (service *Service) AddBookmark(context context.Context, bookID string, chapterNumber, pageNumber int, note string) (*BookmarkAdded, error) {
	if _, err := service.requireChapter(bookID, chapterNumber); err != nil {
		return nil, err
	}

	bookmarkID, err := id.Generate(bookmarkIDPrefix)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.shelf.Bookmarks.Append(Bookmark{
		ID:            bookmarkID,
		BookID:        bookID,
		ChapterNumber: chapterNumber,
		PageNumber:    pageNumber,
		Note:          note,
		CreatedAt:     service.shelf.Now(),
	})

	service.logger.InfoContext(context, "bookmark_added",
		slog.String("bookmark_id", bookmarkID),
		slog.String("book_id", bookID),
		slog.Int("chapter", chapterNumber),
		slog.Int("page", pageNumber),
	)

	return &BookmarkAdded{Success: true, BookmarkID: bookmarkID, Message: msgBookmarkAdded}, nil
}

/*
GetBookmarks lists a book's bookmarks, oldest first.

Returns:
  - *BookmarkList: Possibly empty, never nil on success
  - error: ErrBookNotFound
*/
func (service *Service) GetBookmarks(context context.Context, bookID string) (*BookmarkList, error) {
	book, ok := service.shelf.Catalog.Get(bookID)
	if !ok {
		return nil, ErrBookNotFound
	}

	return &BookmarkList{
		BookID:    book.ID,
		BookTitle: book.Title,
		Bookmarks: service.shelf.Bookmarks.ListFor(bookID),
	}, nil
}

// # Reading Progress

// GetReadingProgress summarises where the reader is in a book.
func (service *Service) GetReadingProgress(context context.Context, bookID string) (*ProgressResult, error) {
	book, ok := service.shelf.Catalog.Get(bookID)
	if !ok {
		return nil, ErrBookNotFound
	}

	record, ok := service.shelf.Progress.Get(bookID)
	if !ok {
		return defaultProgress(book), nil
	}
	return summarise(book, record), nil
}

/*
UpdateReadingProgress moves the reader to a chapter and page.

Description: The current chapter, page, and lastReadAt are overwritten. When
markCompleted is set the chapter is also added to the completed set, which
is idempotent.

Returns:
  - *ProgressUpdate: The merged summary
  - error: ErrBookNotFound, or ErrChapterNotFound for a chapter beyond the book
*/
func (service *Service) UpdateReadingProgress(context context.Context, bookID string, chapterNumber, pageNumber int, markCompleted bool) (*ProgressUpdate, error) {
	book, err := service.requireChapter(bookID, chapterNumber)
	if err != nil {
		return nil, err
	}

	record := service.shelf.Progress.Upsert(bookID, chapterNumber, pageNumber, markCompleted)

	service.logger.InfoContext(context, "reading_progress_updated",
		slog.String("book_id", bookID),
		slog.Int("chapter", chapterNumber),
		slog.Int("page", pageNumber),
		slog.Bool("completed", markCompleted),
	)

	return &ProgressUpdate{
		Success:        true,
		ProgressResult: *summarise(book, record),
		Message:        msgProgressUpdated,
	}, nil
}

/*
GetReadingStats aggregates progress over the whole shelf.

Description: A book is completed when every one of its chapters is in the
completed set. userID is accepted for compatibility and ignored; the shelf
has a single implicit reader.
*/
func (service *Service) GetReadingStats(context context.Context, userID string) (*ReadingStats, error) {
	records := service.shelf.Progress.All()

	completed := slice.Filter(records, func(record ReadingProgress) bool {
		book, ok := service.shelf.Catalog.Get(record.BookID)
		return ok && len(record.CompletedChapters) == book.TotalChapters
	})

	totalTime := slice.Reduce(records, int64(0), func(sum int64, record ReadingProgress) int64 {
		return sum + int64(record.TotalReadingTime.Seconds())
	})

	return &ReadingStats{
		TotalBooks:       service.shelf.Catalog.Len(),
		CompletedBooks:   len(completed),
		TotalReadingTime: totalTime,
		CurrentStreak:    currentStreak(service.shelf.Progress.ActiveDays(), service.shelf.Now()),
	}, nil
}

// # Snapshots

// BookList returns the whole catalog.
func (service *Service) BookList(context context.Context) *BookList {
	return &BookList{Books: service.shelf.Catalog.All()}
}

// ProgressSummary returns one progress line per tracked book.
func (service *Service) ProgressSummary(context context.Context) *ProgressSummary {
	records := service.shelf.Progress.All()

	entries := slice.Map(records, func(record ReadingProgress) ProgressSummaryEntry {
		book, _ := service.shelf.Catalog.Get(record.BookID)
		return ProgressSummaryEntry{
			BookID:         record.BookID,
			BookTitle:      book.Title,
			CurrentChapter: record.CurrentChapter,
			Progress:       formatPercent(len(record.CompletedChapters), book.TotalChapters),
		}
	})
	if entries == nil {
		entries = []ProgressSummaryEntry{}
	}

	return &ProgressSummary{Progress: entries}
}

// # Helpers

// requireChapter resolves a book and checks that chapterNumber exists in it.
func (service *Service) requireChapter(bookID string, chapterNumber int) (Book, error) {
	book, ok := service.shelf.Catalog.Get(bookID)
	if !ok {
		return Book{}, ErrBookNotFound
	}
	if chapterNumber < 1 || chapterNumber > book.TotalChapters {
		return Book{}, ErrChapterNotFound
	}
	return book, nil
}

func summarise(book Book, record ReadingProgress) *ProgressResult {
	completed := len(record.CompletedChapters)
	return &ProgressResult{
		BookID:             book.ID,
		BookTitle:          book.Title,
		CurrentChapter:     record.CurrentChapter,
		CurrentPage:        record.CurrentPage,
		CompletedChapters:  completed,
		TotalChapters:      book.TotalChapters,
		ProgressPercentage: percentage(completed, book.TotalChapters),
		LastReadAt:         pointer.To(record.LastReadAt),
		TotalReadingTime:   int64(record.TotalReadingTime.Seconds()),
	}
}

func defaultProgress(book Book) *ProgressResult {
	return &ProgressResult{
		BookID:         book.ID,
		BookTitle:      book.Title,
		CurrentChapter: 1,
		CurrentPage:    1,
		TotalChapters:  book.TotalChapters,
	}
}

// percentage is round(100 * completed / total).
func percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// fold prepares a string for case-insensitive comparison.
// A Caser is stateful, so each call builds its own.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
