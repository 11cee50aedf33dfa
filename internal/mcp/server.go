// Package mcp exposes the assistant's long-term memory over the Model
// Context Protocol, so external AI tools can remember and recall facts.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MemoryStore is the slice of the long-term store the MCP tools need.
type MemoryStore interface {
	Add(ctx context.Context, text string) error
	Search(ctx context.Context, query string, k int) ([]string, error)
	Count() (int, error)
}

// Server wires the memory tools into an MCP stdio server.
type Server struct {
	store MemoryStore
	mcp   *server.MCPServer
}

// NewServer creates the server and registers the tools.
func NewServer(store MemoryStore, version string) *Server {
	s := &Server{
		store: store,
		mcp:   server.NewMCPServer("nexcai", version),
	}

	s.mcp.AddTool(mcp.NewTool("remember",
		mcp.WithDescription("Store a fact about the user in long-term memory. The memory filter decides whether it is worth keeping; near-duplicates are skipped."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The fact to store, e.g. \"I live in Munich.\""),
		),
	), s.handleRemember)

	s.mcp.AddTool(mcp.NewTool("recall",
		mcp.WithDescription("Retrieve the stored facts most relevant to a query."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("What to look for, e.g. \"where does the user live?\""),
		),
		mcp.WithNumber("top_k",
			mcp.Description("Maximum number of facts to return (default 3)."),
		),
	), s.handleRecall)

	return s
}

// Serve runs the server over stdio until the client disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
