// ABOUTME: MCP server exposing the rotation engine to AI agents
// ABOUTME: Agents drive the ticker the same way the desktop shell would

package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/harper/newsticker/internal/engine"
)

// Server wraps the MCP server with the engine it operates on.
type Server struct {
	mcpServer *server.MCPServer
	engine    *engine.Engine
}

// NewServer creates an MCP server bound to eng. The caller is responsible for
// running the engine; the server only issues operations against it.
func NewServer(eng *engine.Engine) *Server {
	s := &Server{
		engine: eng,
	}

	s.mcpServer = server.NewMCPServer(
		"newsticker",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
