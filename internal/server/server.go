// Package server exposes window title resolution as MCP tools.
package server

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/wintitle/internal/version"
	"github.com/mj1618/wintitle/internal/windowinfo"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// Server wraps the MCP server with the window info provider and cache.
type Server struct {
	provider   *windowinfo.Provider
	providerMu sync.Mutex
	cache      *ListCache
	logger     *slog.Logger
	mcp        *mcpserver.MCPServer
}

// New creates and configures an MCP server with all wintitle tools.
func New(provider *windowinfo.Provider, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		provider: provider,
		cache:    NewListCache(cfg.CacheTTL),
		logger:   logger,
	}

	s.mcp = mcpserver.NewMCPServer(
		"wintitle",
		version.Version,
	)

	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		addr := fmt.Sprintf(":%d", cfg.Port)
		s.logger.Info("serving MCP over streamable HTTP", "addr", addr)
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// list_windows
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List top-level windows with their titles. Titles the direct window-text call cannot read are resolved through the accessibility tree."),
			mcp.WithBoolean("all", mcp.Description("Include invisible windows")),
			mcp.WithNumber("pid", mcp.Description("Filter by process ID")),
			mcp.WithString("class", mcp.Description("Filter by window class substring")),
			mcp.WithString("title", mcp.Description("Filter by title substring")),
			mcp.WithBoolean("refresh", mcp.Description("Drop cached listings before listing")),
		),
		s.handleListWindows,
	)

	// window_title
	s.mcp.AddTool(
		mcp.NewTool("window_title",
			mcp.WithDescription("Resolve the title of one window handle (decimal or 0x-prefixed hex)"),
			mcp.WithString("handle", mcp.Description("Window handle, e.g. 0x20304"), mcp.Required()),
			mcp.WithBoolean("accessibility_only", mcp.Description("Skip the direct window-text call")),
		),
		s.handleWindowTitle,
	)
}
