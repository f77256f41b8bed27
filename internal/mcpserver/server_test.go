// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mcpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/mcpserver"
	"github.com/taibuivan/bookshelf/internal/shelf"
)

func newServer(t *testing.T) (*mcpserver.Server, *shelf.Service) {
	t.Helper()

	bookshelf, err := shelf.New(shelf.DemoCatalog())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := shelf.NewService(bookshelf, logger)
	return mcpserver.New(service, logger), service
}

func resourceText(t *testing.T, contents []mcp.ResourceContents) (string, string) {
	t.Helper()

	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)
	return text.URI, text.Text
}

func TestServer_BookListResource(t *testing.T) {
	server, _ := newServer(t)
	require.NotNil(t, server.MCP())

	contents, err := server.ReadBookList(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)

	uri, text := resourceText(t, contents)
	assert.Equal(t, mcpserver.ResourceBookList, uri)

	var books []shelf.Book
	require.NoError(t, json.Unmarshal([]byte(text), &books))
	require.Len(t, books, 3)
	assert.Equal(t, "book_001", books[0].ID)
}

/*
TestServer_ProgressResource checks that the snapshot is recomputed on each read.
*/
func TestServer_ProgressResource(t *testing.T) {
	server, service := newServer(t)
	ctx := context.Background()

	_, err := service.UpdateReadingProgress(ctx, "book_003", 2, 1, true)
	require.NoError(t, err)

	contents, err := server.ReadProgressSummary(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)

	uri, text := resourceText(t, contents)
	assert.Equal(t, mcpserver.ResourceProgressSummary, uri)

	var entries []shelf.ProgressSummaryEntry
	require.NoError(t, json.Unmarshal([]byte(text), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "book_003", entries[2].BookID)
	assert.Equal(t, 2, entries[2].CurrentChapter)
	assert.Equal(t, "5.0%", entries[2].Progress)
}

func promptText(t *testing.T, result *mcp.GetPromptResult) string {
	t.Helper()

	require.Len(t, result.Messages, 1)
	assert.Equal(t, mcp.RoleUser, result.Messages[0].Role)
	text, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServer_Prompts(t *testing.T) {
	server, service := newServer(t)
	ctx := context.Background()

	_, err := service.AddBookmark(ctx, "book_001", 3, 17, "prototype chains")
	require.NoError(t, err)

	result, err := server.RecommendationPrompt(ctx, mcp.GetPromptRequest{})
	require.NoError(t, err)
	text := promptText(t, result)
	assert.Contains(t, text, "recommend the next book")
	assert.Contains(t, text, "Statistics: 3 books, 0 completed")
	assert.Contains(t, text, "One Hundred Years of Solitude (book_003): chapter 1, 0.0% complete")
	assert.NotContains(t, text, "prototype chains")

	result, err = server.SummaryPrompt(ctx, mcp.GetPromptRequest{})
	require.NoError(t, err)
	text = promptText(t, result)
	assert.Contains(t, text, "reading summary report")
	assert.Contains(t, text, "chapter 3 page 17: prototype chains")
}
