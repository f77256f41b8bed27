// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/shelf"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	return shelf.NewHandler(newService(t, newClock())).Routes()
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

// decodeData unwraps the {"data": ...} envelope.
func decodeData[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	return envelope.Data
}

type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details []struct {
		Field string `json:"field"`
	} `json:"details"`
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	return body
}

/*
TestHandler_SearchBooks covers defaults and query validation.
*/
func TestHandler_SearchBooks(t *testing.T) {
	router := newRouter(t)

	recorder := do(t, router, http.MethodGet, "/books?q=SOLITUDE", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	result := decodeData[shelf.SearchResult](t, recorder)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "book_003", result.Books[0].ID)

	recorder = do(t, router, http.MethodGet, "/books?q=a&type=category&limit=1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	result = decodeData[shelf.SearchResult](t, recorder)
	assert.Equal(t, 1, result.Total)

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"bad type", "?q=x&type=isbn", "type"},
		{"limit too high", "?q=x&limit=51", "limit"},
		{"limit too low", "?q=x&limit=0", "limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(t, router, http.MethodGet, "/books"+tt.query, "")
			require.Equal(t, http.StatusBadRequest, recorder.Code)

			body := decodeError(t, recorder)
			assert.Equal(t, "VALIDATION_ERROR", body.Code)
			require.Len(t, body.Details, 1)
			assert.Equal(t, tt.field, body.Details[0].Field)
		})
	}
}

func TestHandler_GetBookContent(t *testing.T) {
	router := newRouter(t)

	recorder := do(t, router, http.MethodGet, "/books/book_002/chapters/20", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	content := decodeData[shelf.ContentResult](t, recorder)
	assert.Equal(t, 20, content.ChapterNumber)
	assert.Equal(t, "Chapter 20", content.ChapterTitle)

	tests := []struct {
		name   string
		target string
		status int
		code   string
		error  string
	}{
		{"chapter past end", "/books/book_002/chapters/21", http.StatusNotFound, "NOT_FOUND", "chapter not found"},
		{"unknown book", "/books/nope/chapters/21", http.StatusNotFound, "NOT_FOUND", "book not found"},
		{"chapter zero", "/books/book_002/chapters/0", http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed"},
		{"not a number", "/books/book_002/chapters/abc", http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(t, router, http.MethodGet, tt.target, "")
			require.Equal(t, tt.status, recorder.Code)

			body := decodeError(t, recorder)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.error, body.Error)
		})
	}
}

/*
TestHandler_Bookmarks posts a bookmark and lists it back.
*/
func TestHandler_Bookmarks(t *testing.T) {
	router := newRouter(t)

	recorder := do(t, router, http.MethodPost, "/books/book_001/bookmarks",
		`{"chapterNumber": 4, "pageNumber": 88, "note": "closures"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	added := decodeData[shelf.BookmarkAdded](t, recorder)
	assert.True(t, added.Success)

	recorder = do(t, router, http.MethodGet, "/books/book_001/bookmarks", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	list := decodeData[shelf.BookmarkList](t, recorder)
	require.Len(t, list.Bookmarks, 1)
	assert.Equal(t, added.BookmarkID, list.Bookmarks[0].ID)
	assert.Equal(t, "closures", list.Bookmarks[0].Note)

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"unknown book", "/books/nope/bookmarks", `{"chapterNumber": 1, "pageNumber": 1}`, http.StatusNotFound},
		{"page zero", "/books/book_001/bookmarks", `{"chapterNumber": 1, "pageNumber": 0}`, http.StatusBadRequest},
		{"unknown field", "/books/book_001/bookmarks", `{"chapter": 1}`, http.StatusBadRequest},
		{"malformed", "/books/book_001/bookmarks", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(t, router, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

/*
TestHandler_Progress updates progress over HTTP and reads stats and snapshots.
*/
func TestHandler_Progress(t *testing.T) {
	router := newRouter(t)

	recorder := do(t, router, http.MethodGet, "/books/book_003/progress", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	progress := decodeData[shelf.ProgressResult](t, recorder)
	assert.Equal(t, 1, progress.CurrentChapter)
	assert.Equal(t, 20, progress.TotalChapters)

	recorder = do(t, router, http.MethodPut, "/books/book_003/progress",
		`{"chapterNumber": 2, "pageNumber": 14, "markChapterCompleted": true}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	update := decodeData[shelf.ProgressUpdate](t, recorder)
	assert.True(t, update.Success)
	assert.Equal(t, 2, update.CurrentChapter)
	assert.Equal(t, 14, update.CurrentPage)
	assert.Equal(t, 5, update.ProgressPercentage)

	recorder = do(t, router, http.MethodPut, "/books/book_003/progress", `{"chapterNumber": 99, "pageNumber": 1}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = do(t, router, http.MethodGet, "/stats?user_id=someone", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	stats := decodeData[shelf.ReadingStats](t, recorder)
	assert.Equal(t, 3, stats.TotalBooks)
	assert.Equal(t, 1, stats.CurrentStreak)

	recorder = do(t, router, http.MethodGet, "/resources/books", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, decodeData[shelf.BookList](t, recorder).Books, 3)

	recorder = do(t, router, http.MethodGet, "/resources/progress", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	summary := decodeData[shelf.ProgressSummary](t, recorder)
	require.Len(t, summary.Progress, 3)
	assert.Equal(t, "5.0%", summary.Progress[2].Progress)
}
