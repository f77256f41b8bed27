// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"fmt"
	"time"
)

// # Operation Results

// SearchResult is the outcome of SearchBooks.
type SearchResult struct {
	Total int    `json:"total"`
	Books []Book `json:"books"`
}

// ContentResult is one chapter with its book title.
type ContentResult struct {
	BookID        string `json:"bookId"`
	BookTitle     string `json:"bookTitle"`
	ChapterNumber int    `json:"chapterNumber"`
	ChapterTitle  string `json:"chapterTitle"`
	Content       string `json:"content"`
	WordCount     int    `json:"wordCount"`
}

// BookmarkAdded confirms a new bookmark.
type BookmarkAdded struct {
	Success    bool   `json:"success"`
	BookmarkID string `json:"bookmarkId"`
	Message    string `json:"message"`
}

// BookmarkList is every bookmark of one book, oldest first.
type BookmarkList struct {
	BookID    string     `json:"bookId"`
	BookTitle string     `json:"bookTitle"`
	Bookmarks []Bookmark `json:"bookmarks"`
}

// ProgressResult summarises a book's reading progress.
//
// CompletedChapters is a count here, not the list. TotalReadingTime is in seconds.
type ProgressResult struct {
	BookID             string     `json:"bookId"`
	BookTitle          string     `json:"bookTitle"`
	CurrentChapter     int        `json:"currentChapter"`
	CurrentPage        int        `json:"currentPage"`
	CompletedChapters  int        `json:"completedChapters"`
	TotalChapters      int        `json:"totalChapters"`
	ProgressPercentage int        `json:"progressPercentage"`
	LastReadAt         *time.Time `json:"lastReadAt"`
	TotalReadingTime   int64      `json:"totalReadingTime"`
}

// ProgressUpdate is a [ProgressResult] plus a confirmation.
type ProgressUpdate struct {
	Success bool `json:"success"`
	ProgressResult
	Message string `json:"message"`
}

// ReadingStats aggregates progress across the whole shelf.
type ReadingStats struct {
	TotalBooks       int   `json:"totalBooks"`
	CompletedBooks   int   `json:"completedBooks"`
	TotalReadingTime int64 `json:"totalReadingTime"`
	CurrentStreak    int   `json:"currentStreak"`
}

// # Snapshots

// BookList is the full catalog snapshot.
type BookList struct {
	Books []Book `json:"books"`
}

// ProgressSummaryEntry is one line of the progress snapshot.
type ProgressSummaryEntry struct {
	BookID         string `json:"bookId"`
	BookTitle      string `json:"bookTitle"`
	CurrentChapter int    `json:"currentChapter"`
	Progress       string `json:"progress"`
}

// ProgressSummary is the per-book progress snapshot.
type ProgressSummary struct {
	Progress []ProgressSummaryEntry `json:"progress"`
}

// formatPercent renders completed/total with one decimal, e.g. "33.3%".
func formatPercent(completed, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(completed)/float64(total))
}
