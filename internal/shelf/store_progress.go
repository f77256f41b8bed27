// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"slices"
	"sync"
	"time"
)

// ProgressTracker owns one [ReadingProgress] record per book and the set of
// calendar days on which progress was written.
type ProgressTracker struct {
	mu         sync.RWMutex
	records    map[string]*ReadingProgress
	order      []string
	activeDays map[string]struct{}
	clock      func() time.Time
}

func newProgressTracker(clock func() time.Time) *ProgressTracker {
	return &ProgressTracker{
		records:    make(map[string]*ReadingProgress),
		activeDays: make(map[string]struct{}),
		clock:      clock,
	}
}

// seed materialises the default record (chapter 1, page 1, nothing completed).
// Seeding is not reading activity and does not count towards streaks.
func (tracker *ProgressTracker) seed(bookID string) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	tracker.insert(&ReadingProgress{
		BookID:            bookID,
		CurrentChapter:    1,
		CurrentPage:       1,
		CompletedChapters: []int{},
		LastReadAt:        tracker.clock(),
	})
}

func (tracker *ProgressTracker) insert(record *ReadingProgress) {
	if _, exists := tracker.records[record.BookID]; !exists {
		tracker.order = append(tracker.order, record.BookID)
	}
	tracker.records[record.BookID] = record
}

// Get returns a copy of the book's record.
func (tracker *ProgressTracker) Get(bookID string) (ReadingProgress, bool) {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()

	record, ok := tracker.records[bookID]
	if !ok {
		return ReadingProgress{}, false
	}
	return record.clone(), true
}

// All returns copies of every record in creation order.
func (tracker *ProgressTracker) All() []ReadingProgress {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()

	records := make([]ReadingProgress, 0, len(tracker.order))
	for _, id := range tracker.order {
		records = append(records, tracker.records[id].clone())
	}
	return records
}

/*
Upsert writes the reader's position for a book and returns the merged record.

Description: A missing record is created at the given position with nothing
completed. An existing record has its chapter, page, and lastReadAt
overwritten in place. In both cases, when markCompleted is set, the chapter
is then added to CompletedChapters if absent, keeping the list ascending, so
a record created by this call can receive its first completion in the same
call. TotalReadingTime is never touched.
*/
func (tracker *ProgressTracker) Upsert(bookID string, chapterNumber, pageNumber int, markCompleted bool) ReadingProgress {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	now := tracker.clock()

	record, ok := tracker.records[bookID]
	if !ok {
		record = &ReadingProgress{
			BookID:            bookID,
			CurrentChapter:    chapterNumber,
			CurrentPage:       pageNumber,
			CompletedChapters: []int{},
			LastReadAt:        now,
		}
		tracker.insert(record)
	} else {
		record.CurrentChapter = chapterNumber
		record.CurrentPage = pageNumber
		record.LastReadAt = now
	}

	if markCompleted {
		if i, found := slices.BinarySearch(record.CompletedChapters, chapterNumber); !found {
			record.CompletedChapters = slices.Insert(record.CompletedChapters, i, chapterNumber)
		}
	}

	tracker.activeDays[now.Format(time.DateOnly)] = struct{}{}

	return record.clone()
}

// ActiveDays returns the days (YYYY-MM-DD) with at least one Upsert, ascending.
func (tracker *ProgressTracker) ActiveDays() []string {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()

	days := make([]string, 0, len(tracker.activeDays))
	for day := range tracker.activeDays {
		days = append(days, day)
	}
	slices.Sort(days)
	return days
}

func (p *ReadingProgress) clone() ReadingProgress {
	out := *p
	out.CompletedChapters = slices.Clone(p.CompletedChapters)
	if out.CompletedChapters == nil {
		out.CompletedChapters = []int{}
	}
	return out
}
