// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/bookshelf/internal/platform/request"
	"github.com/taibuivan/bookshelf/internal/platform/respond"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
)

// # Handler Implementation

// Handler exposes the bookshelf [Service] over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new shelf [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the bookshelf router, mounted under /api/v1.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/books", handler.SearchBooks)
	router.Route("/books/{bookID}", func(book chi.Router) {
		book.Get("/chapters/{number}", handler.GetBookContent)
		book.Get("/bookmarks", handler.GetBookmarks)
		book.Post("/bookmarks", handler.AddBookmark)
		book.Get("/progress", handler.GetReadingProgress)
		book.Put("/progress", handler.UpdateReadingProgress)
	})

	router.Get("/stats", handler.GetReadingStats)

	// Read-only snapshots
	router.Get("/resources/books", handler.BookList)
	router.Get("/resources/progress", handler.ProgressSummary)

	return router
}

// # Discovery

// searchQuery mirrors the query string of GET /books.
type searchQuery struct {
	Query string `json:"q"`
	Type  string `json:"type"  validate:"omitempty,oneof=title author category"`
	Limit int    `json:"limit" validate:"min=1,max=50"`
}

/*
GET /api/v1/books.

Description: Case-insensitive substring search over one book field.

Request:
  - q: string (empty matches everything)
  - type: title | author | category (default title)
  - limit: int 1..50 (default 10)

Response:
  - 200: SearchResult
  - 400: ErrValidation: Bad type or limit
*/
func (handler *Handler) SearchBooks(writer http.ResponseWriter, request *http.Request) {
	input := searchQuery{
		Query: requestutil.Query(request, "q"),
		Type:  requestutil.Query(request, "type"),
		Limit: requestutil.QueryInt(request, "limit", DefaultSearchLimit),
	}
	if err := validate.Struct(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.SearchBooks(request.Context(), input.Query, SearchOptions{
		Type:  SearchType(input.Type),
		Limit: input.Limit,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/books/{bookID}/chapters/{number}.

Response:
  - 200: ContentResult
  - 400: ErrValidation: number is not a positive integer
  - 404: book not found / chapter not found
*/
func (handler *Handler) GetBookContent(writer http.ResponseWriter, request *http.Request) {
	number, err := requestutil.IntParam(request, "number")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Min(FieldChapterNumber, number, 1)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetBookContent(request.Context(), requestutil.Param(request, "bookID"), number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// # Bookmarks

// addBookmarkRequest is the inbound body of POST /bookmarks.
type addBookmarkRequest struct {
	ChapterNumber int    `json:"chapterNumber" validate:"min=1"`
	PageNumber    int    `json:"pageNumber"    validate:"min=1"`
	Note          string `json:"note"          validate:"max=1000"`
}

/*
POST /api/v1/books/{bookID}/bookmarks.

Request:
  - body: addBookmarkRequest

Response:
  - 201: BookmarkAdded
  - 400: ErrInvalidJSON/Validation
  - 404: book not found / chapter not found
*/
func (handler *Handler) AddBookmark(writer http.ResponseWriter, request *http.Request) {
	var input addBookmarkRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.AddBookmark(request.Context(), requestutil.Param(request, "bookID"), input.ChapterNumber, input.PageNumber, input.Note)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

// GetBookmarks handles GET /api/v1/books/{bookID}/bookmarks.
func (handler *Handler) GetBookmarks(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.GetBookmarks(request.Context(), requestutil.Param(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// # Reading Progress

// GetReadingProgress handles GET /api/v1/books/{bookID}/progress.
func (handler *Handler) GetReadingProgress(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.GetReadingProgress(request.Context(), requestutil.Param(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// updateProgressRequest is the inbound body of PUT /progress.
type updateProgressRequest struct {
	ChapterNumber        int  `json:"chapterNumber"        validate:"min=1"`
	PageNumber           int  `json:"pageNumber"           validate:"min=1"`
	MarkChapterCompleted bool `json:"markChapterCompleted"`
}

/*
PUT /api/v1/books/{bookID}/progress.

Description: Moves the reader and optionally completes the chapter.

Response:
  - 200: ProgressUpdate
  - 400: ErrInvalidJSON/Validation
  - 404: book not found / chapter not found
*/
func (handler *Handler) UpdateReadingProgress(writer http.ResponseWriter, request *http.Request) {
	var input updateProgressRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.UpdateReadingProgress(request.Context(), requestutil.Param(request, "bookID"),
		input.ChapterNumber, input.PageNumber, input.MarkChapterCompleted)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// GetReadingStats handles GET /api/v1/stats. The user_id query is accepted and ignored.
func (handler *Handler) GetReadingStats(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.GetReadingStats(request.Context(), requestutil.Query(request, "user_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// # Snapshots

// BookList handles GET /api/v1/resources/books.
func (handler *Handler) BookList(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.BookList(request.Context()))
}

// ProgressSummary handles GET /api/v1/resources/progress.
func (handler *Handler) ProgressSummary(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.ProgressSummary(request.Context()))
}
