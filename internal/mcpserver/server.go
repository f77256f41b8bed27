// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mcpserver exposes the bookshelf over the Model Context Protocol.

It registers the shelf tools, two read-only resources (the book list and the
progress summary), and two prompts that ask an assistant for a
recommendation or a reading report seeded with the current shelf state.

The server speaks MCP over stdio, so nothing else may write to stdout.
*/
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/internal/shelf"
)

const (
	ResourceBookList        = "bookshelf://books"
	ResourceProgressSummary = "bookshelf://progress"

	PromptRecommendation = "reading_recommendation"
	PromptSummary        = "reading_summary"

	mimeJSON = "application/json"
)

// # Server

// Server is the bookshelf MCP endpoint.
type Server struct {
	mcp     *server.MCPServer
	service *shelf.Service
	log     *slog.Logger
}

// New builds the MCP server with every tool, resource, and prompt registered.
func New(service *shelf.Service, log *slog.Logger) *Server {
	s := &Server{
		service: service,
		log:     log,
		mcp: server.NewMCPServer(constants.AppName, constants.AppVersion,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithPromptCapabilities(false),
			server.WithRecovery(),
		),
	}

	s.mcp.AddTools(shelf.NewToolHandler(service).Tools()...)

	s.mcp.AddResource(
		mcp.NewResource(ResourceBookList, "book_list",
			mcp.WithResourceDescription("Every book on the shelf"),
			mcp.WithMIMEType(mimeJSON),
		),
		s.ReadBookList,
	)
	s.mcp.AddResource(
		mcp.NewResource(ResourceProgressSummary, "reading_progress_summary",
			mcp.WithResourceDescription("Reading progress per book"),
			mcp.WithMIMEType(mimeJSON),
		),
		s.ReadProgressSummary,
	)

	s.mcp.AddPrompt(
		mcp.NewPrompt(PromptRecommendation,
			mcp.WithPromptDescription("Recommend the next book from reading history"),
		),
		s.RecommendationPrompt,
	)
	s.mcp.AddPrompt(
		mcp.NewPrompt(PromptSummary,
			mcp.WithPromptDescription("Write a reading summary report"),
		),
		s.SummaryPrompt,
	)

	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ServeStdio speaks MCP on in/out until ctx is cancelled or in closes.
// Transport errors go to the structured logger.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelError))

	s.log.Info("mcp_server_listening", slog.String("transport", "stdio"))
	return stdio.Listen(ctx, in, out)
}

// # Resources

// ReadBookList serves the book_list resource.
func (s *Server) ReadBookList(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents(ResourceBookList, s.service.BookList(ctx).Books)
}

// ReadProgressSummary serves the reading_progress_summary resource.
func (s *Server) ReadProgressSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents(ResourceProgressSummary, s.service.ProgressSummary(ctx).Progress)
}

func jsonContents(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcpserver: encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: mimeJSON, Text: string(data)},
	}, nil
}

// # Prompts

const recommendationText = `Based on my current reading progress and the chapters I have completed, recommend the next book I should read. Consider:
1. The books I am reading now and how far along I am
2. How many chapters I have completed
3. The categories and themes of the books
4. My reading time statistics`

const summaryText = `Write a reading summary report for me, covering:
1. The books I am reading and my progress in each
2. The bookmarks and notes I have added
3. My reading statistics
4. Suggestions for reading more effectively`

// RecommendationPrompt serves the reading_recommendation prompt.
func (s *Server) RecommendationPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return s.prompt(ctx, "Recommend the next book", recommendationText, false)
}

// SummaryPrompt serves the reading_summary prompt.
func (s *Server) SummaryPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return s.prompt(ctx, "Reading summary report", summaryText, true)
}

// prompt appends the live shelf state to the instruction text.
func (s *Server) prompt(ctx context.Context, description, instruction string, withBookmarks bool) (*mcp.GetPromptResult, error) {
	var text strings.Builder
	text.WriteString(instruction)

	stats, err := s.service.GetReadingStats(ctx, "")
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&text, "\n\nStatistics: %d books, %d completed, current streak %d days.\n",
		stats.TotalBooks, stats.CompletedBooks, stats.CurrentStreak)

	text.WriteString("\nProgress:\n")
	for _, entry := range s.service.ProgressSummary(ctx).Progress {
		fmt.Fprintf(&text, "- %s (%s): chapter %d, %s complete\n", entry.BookTitle, entry.BookID, entry.CurrentChapter, entry.Progress)
	}

	if withBookmarks {
		text.WriteString("\nBookmarks:\n")
		for _, book := range s.service.BookList(ctx).Books {
			list, err := s.service.GetBookmarks(ctx, book.ID)
			if err != nil {
				return nil, err
			}
			for _, bookmark := range list.Bookmarks {
				fmt.Fprintf(&text, "- %s, chapter %d page %d", book.Title, bookmark.ChapterNumber, bookmark.PageNumber)
				if bookmark.Note != "" {
					fmt.Fprintf(&text, ": %s", bookmark.Note)
				}
				text.WriteString("\n")
			}
		}
	}

	return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text.String())),
	}), nil
}
