// Package mcp implements a Model Context Protocol server exposing the
// snippet consistency checker as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"snipref/internal/checker"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "snipref"
	// serverVersion is the MCP server implementation version.
	serverVersion = "1.0.0"

	// toolCount is the expected number of registered tools.
	toolCount = 2
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// CheckerConfig is the run configuration for tool-invoked checks.
	// The zero value selects the checker defaults.
	CheckerConfig checker.Config
}

// Server wraps the MCP SDK server with snipref tool registrations.
type Server struct {
	inner *mcpsdk.Server
	cfg   checker.Config
	mu    sync.RWMutex
	tools []string
}

// NewServer creates a new MCP server with all snipref tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	cfg := deps.CheckerConfig
	if cfg.IdentifierPattern == "" {
		cfg = checker.DefaultConfig()
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		opts,
	)

	srv := &Server{
		inner: inner,
		cfg:   cfg,
		tools: make([]string, 0, toolCount),
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio transport. It blocks until the
// context is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It
// blocks until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// registerTools adds all snipref MCP tools to the server.
func (s *Server) registerTools() {
	s.registerCheckTool()
	s.registerCheckPathTool()
}

func (s *Server) registerCheckTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameCheck,
		Description: checkToolDescription,
	}, s.handleCheck)

	s.trackTool(ToolNameCheck)
}

func (s *Server) registerCheckPathTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameCheckPath,
		Description: checkPathToolDescription,
	}, s.handleCheckPath)

	s.trackTool(ToolNameCheckPath)
}

// trackTool records a registered tool name for listing.
func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}
