package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleRemember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: content"), nil
	}

	before, countErr := s.store.Count()
	if countErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store memory: %v", countErr)), nil
	}

	if addErr := s.store.Add(ctx, content); addErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store memory: %v", addErr)), nil
	}

	// Add silently skips non-memorable text and near-duplicates, so
	// the count tells us whether anything was actually written.
	after, countErr := s.store.Count()
	if countErr == nil && after == before {
		return mcp.NewToolResultText("Not stored (not memorable, or a near-duplicate of an existing memory)."), nil
	}
	return mcp.NewToolResultText("Remembered."), nil
}

func (s *Server) handleRecall(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	topK := req.GetInt("top_k", 3)

	facts, searchErr := s.store.Search(ctx, query, topK)
	if searchErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", searchErr)), nil
	}

	if len(facts) == 0 {
		return mcp.NewToolResultText("No results found."), nil
	}

	var sb strings.Builder
	for _, fact := range facts {
		fmt.Fprintf(&sb, "- %s\n", fact)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
