package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App) *MCPServer {
	mcpServer := server.NewMCPServer(
		"ytscribe-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_youtube_transcript",
		mcp.WithDescription("Extract the timestamped transcript of a YouTube video from its captions. Fails if the video has no captions."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or video ID"),
			mcp.Required(),
		),
	), s.handleGetTranscript)

	s.mcpServer.AddTool(mcp.NewTool("summarize_youtube_video",
		mcp.WithDescription("Extract a YouTube video's transcript and return a short summary of it. Uses the configured language model when available, otherwise an extractive summary."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or video ID"),
			mcp.Required(),
		),
	), s.handleSummarize)
}

// handleGetTranscript implements the get_youtube_transcript tool
func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	result, err := s.app.ExtractTranscript(ctx, ParseArg(url))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("transcript extraction failed", err), nil
	}

	var buf strings.Builder
	if result.Title != "" {
		buf.WriteString(fmt.Sprintf("Title: %s\n\n", result.Title))
	}
	for _, seg := range result.Segments {
		buf.WriteString(fmt.Sprintf("[%s] %s\n", DisplayTimestamp(seg.Timestamp), seg.Text))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(buf.String())},
	}, nil
}

// handleSummarize implements the summarize_youtube_video tool
func (s *MCPServer) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	result, err := s.app.ExtractTranscript(ctx, ParseArg(url))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("transcript extraction failed", err), nil
	}

	summary := s.app.Summarize(ctx, result)

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(summary)},
	}, nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httpServer.Start(addr)
	}

	// Default to stdio transport
	return server.ServeStdio(s.mcpServer)
}
