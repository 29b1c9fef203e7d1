// Package mcpserver exposes quill's rewrite operations as MCP tools, so an
// editor with an MCP client can rewrite selections without shelling out.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server is the quill MCP server. It serves the tools of one Service.
type Server struct {
	server *mcp.Server
}

// New creates a Server with every tool of svc registered.
func New(svc Service, version string) *Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "quill",
		Version: version,
	}, nil)

	for _, t := range svc.tools() {
		server.AddTool(t.def, t.handler)
	}

	return &Server{server: server}
}

// Serve runs the server on transport until ctx is cancelled or the client
// disconnects. `quill serve` passes an mcp.StdioTransport.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}
