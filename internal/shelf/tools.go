// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
)

// Tool names as advertised to MCP clients.
const (
	ToolSearchBooks           = "search_books"
	ToolGetBookContent        = "get_book_content"
	ToolAddBookmark           = "add_bookmark"
	ToolGetBookmarks          = "get_bookmarks"
	ToolGetReadingProgress    = "get_reading_progress"
	ToolUpdateReadingProgress = "update_reading_progress"
	ToolGetReadingStats       = "get_reading_stats"
)

// # Tool Handler

// ToolHandler exposes the bookshelf [Service] as MCP tools.
//
// Results are indented JSON text. Not-found outcomes are ordinary results
// shaped {"code": "NOT_FOUND", "error": "..."}; only bad arguments and
// internal failures are flagged as tool errors.
type ToolHandler struct {
	service *Service
}

// NewToolHandler constructs a new [ToolHandler].
func NewToolHandler(service *Service) *ToolHandler {
	return &ToolHandler{service: service}
}

// Tools returns every bookshelf tool paired with its handler.
func (handler *ToolHandler) Tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool(ToolSearchBooks,
				mcp.WithDescription("Search books by keyword, matching title, author, or category"),
				mcp.WithString(FieldQuery, mcp.Required(), mcp.Description("Search keyword")),
				mcp.WithString(FieldSearchType,
					mcp.Description("Field to match against"),
					mcp.Enum(string(SearchByTitle), string(SearchByAuthor), string(SearchByCategory)),
					mcp.DefaultString(string(SearchByTitle)),
				),
				mcp.WithNumber(FieldLimit,
					mcp.Description("Maximum number of results"),
					mcp.Min(1), mcp.Max(MaxSearchLimit), mcp.DefaultNumber(DefaultSearchLimit),
				),
			),
			Handler: handler.SearchBooks,
		},
		{
			Tool: mcp.NewTool(ToolGetBookContent,
				mcp.WithDescription("Get the text of one chapter of a book"),
				mcp.WithString(FieldBookID, mcp.Required(), mcp.Description("Book ID")),
				mcp.WithNumber(FieldChapterNumber, mcp.Required(), mcp.Min(1), mcp.Description("Chapter number, starting at 1")),
			),
			Handler: handler.GetBookContent,
		},
		{
			Tool: mcp.NewTool(ToolAddBookmark,
				mcp.WithDescription("Add a bookmark at a chapter and page"),
				mcp.WithString(FieldBookID, mcp.Required(), mcp.Description("Book ID")),
				mcp.WithNumber(FieldChapterNumber, mcp.Required(), mcp.Min(1), mcp.Description("Chapter number")),
				mcp.WithNumber(FieldPageNumber, mcp.Required(), mcp.Min(1), mcp.Description("Page number")),
				mcp.WithString(FieldNote, mcp.Description("Optional note")),
			),
			Handler: handler.AddBookmark,
		},
		{
			Tool: mcp.NewTool(ToolGetBookmarks,
				mcp.WithDescription("List every bookmark of a book"),
				mcp.WithString(FieldBookID, mcp.Required(), mcp.Description("Book ID")),
			),
			Handler: handler.GetBookmarks,
		},
		{
			Tool: mcp.NewTool(ToolGetReadingProgress,
				mcp.WithDescription("Get the reading progress of a book"),
				mcp.WithString(FieldBookID, mcp.Required(), mcp.Description("Book ID")),
			),
			Handler: handler.GetReadingProgress,
		},
		{
			Tool: mcp.NewTool(ToolUpdateReadingProgress,
				mcp.WithDescription("Update the reading progress of a book"),
				mcp.WithString(FieldBookID, mcp.Required(), mcp.Description("Book ID")),
				mcp.WithNumber(FieldChapterNumber, mcp.Required(), mcp.Min(1), mcp.Description("Current chapter")),
				mcp.WithNumber(FieldPageNumber, mcp.Required(), mcp.Min(1), mcp.Description("Current page")),
				mcp.WithBoolean(FieldMarkCompleted, mcp.Description("Mark the chapter as completed"), mcp.DefaultBool(false)),
			),
			Handler: handler.UpdateReadingProgress,
		},
		{
			Tool: mcp.NewTool(ToolGetReadingStats,
				mcp.WithDescription("Get aggregate reading statistics"),
				mcp.WithString(FieldUserID, mcp.Description("User ID (optional)")),
			),
			Handler: handler.GetReadingStats,
		},
	}
}

// # Tools

// SearchBooks handles the search_books tool.
func (handler *ToolHandler) SearchBooks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString(FieldQuery)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	searchType := req.GetString(FieldSearchType, string(SearchByTitle))
	limit := req.GetInt(FieldLimit, DefaultSearchLimit)

	validator := &validate.Validator{}
	validator.OneOf(FieldSearchType, searchType, string(SearchByTitle), string(SearchByAuthor), string(SearchByCategory)).
		Range(FieldLimit, limit, 1, MaxSearchLimit)
	if err := validator.Err(); err != nil {
		return errorResult(err)
	}

	return toolResult(handler.service.SearchBooks(ctx, query, SearchOptions{
		Type:  SearchType(searchType),
		Limit: limit,
	}))
}

// GetBookContent handles the get_book_content tool.
func (handler *ToolHandler) GetBookContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bookID, err := req.RequireString(FieldBookID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chapterNumber, err := req.RequireInt(FieldChapterNumber)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	validator := &validate.Validator{}
	validator.Required(FieldBookID, bookID).Min(FieldChapterNumber, chapterNumber, 1)
	if err := validator.Err(); err != nil {
		return errorResult(err)
	}

	return toolResult(handler.service.GetBookContent(ctx, bookID, chapterNumber))
}

// AddBookmark handles the add_bookmark tool.
func (handler *ToolHandler) AddBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bookID, err := req.RequireString(FieldBookID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chapterNumber, err := req.RequireInt(FieldChapterNumber)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pageNumber, err := req.RequireInt(FieldPageNumber)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := addBookmarkRequest{
		ChapterNumber: chapterNumber,
		PageNumber:    pageNumber,
		Note:          req.GetString(FieldNote, ""),
	}
	if err := validate.Struct(input); err != nil {
		return errorResult(err)
	}

	return toolResult(handler.service.AddBookmark(ctx, bookID, input.ChapterNumber, input.PageNumber, input.Note))
}

// GetBookmarks handles the get_bookmarks tool.
func (handler *ToolHandler) GetBookmarks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bookID, err := req.RequireString(FieldBookID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolResult(handler.service.GetBookmarks(ctx, bookID))
}

// GetReadingProgress handles the get_reading_progress tool.
func (handler *ToolHandler) GetReadingProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bookID, err := req.RequireString(FieldBookID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolResult(handler.service.GetReadingProgress(ctx, bookID))
}

// UpdateReadingProgress handles the update_reading_progress tool.
func (handler *ToolHandler) UpdateReadingProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bookID, err := req.RequireString(FieldBookID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chapterNumber, err := req.RequireInt(FieldChapterNumber)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pageNumber, err := req.RequireInt(FieldPageNumber)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := updateProgressRequest{
		ChapterNumber:        chapterNumber,
		PageNumber:           pageNumber,
		MarkChapterCompleted: req.GetBool(FieldMarkCompleted, false),
	}
	if err := validate.Struct(input); err != nil {
		return errorResult(err)
	}

	return toolResult(handler.service.UpdateReadingProgress(ctx, bookID, input.ChapterNumber, input.PageNumber, input.MarkChapterCompleted))
}

// GetReadingStats handles the get_reading_stats tool.
func (handler *ToolHandler) GetReadingStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(handler.service.GetReadingStats(ctx, req.GetString(FieldUserID, "")))
}

// # Helpers

// toolResult renders a service outcome as indented JSON text.
func toolResult[T any](result *T, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(result, false)
}

/*
errorResult renders a failure as JSON text.

Not-found errors become an ordinary result carrying the error payload.
Validation errors are flagged as tool errors with the same payload. Anything
else is an internal failure and only its generic message leaves the process.
*/
func errorResult(err error) (*mcp.CallToolResult, error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	notFound := errors.Is(err, ErrBookNotFound) || errors.Is(err, ErrChapterNotFound)
	return jsonResult(appError, !notFound)
}

func jsonResult(payload any, isError bool) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	if isError {
		return mcp.NewToolResultError(string(data)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
