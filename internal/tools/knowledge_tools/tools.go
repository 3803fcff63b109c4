package knowledge_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/frontdesk/internal/knowledge"
	"github.com/teemow/frontdesk/internal/server"
	"github.com/teemow/frontdesk/internal/tools/common"
)

// RegisterKnowledgeTools registers document search and reload tools with the MCP server
func RegisterKnowledgeTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchTool := mcp.NewTool("search_documents",
		mcp.WithDescription("Search the business document corpus by keyword overlap. Returns the best-matching documents in full."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text query. Short words (3 characters or fewer) are ignored."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of documents to return (default: 3)"),
		),
	)

	s.AddTool(searchTool, common.InstrumentedToolHandler("search_documents", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchDocuments(ctx, request, sc)
		}))

	reloadTool := mcp.NewTool("reload_documents",
		mcp.WithDescription("Reload the document corpus from disk. Searches started before the reload keep their snapshot."),
	)

	s.AddTool(reloadTool, common.InstrumentedToolHandler("reload_documents", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReloadDocuments(ctx, request, sc)
		}))

	return nil
}

func handleSearchDocuments(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	store := sc.KnowledgeStore()
	if store == nil {
		return mcp.NewToolResultError("no document corpus is configured"), nil
	}

	limit := knowledge.DefaultLimit
	if limitVal, ok := args["limit"].(float64); ok && limitVal > 0 {
		limit = int(limitVal)
	}

	matches := store.Corpus().Search(query, limit)
	return mcp.NewToolResultText(formatMatches(query, matches)), nil
}

// formatMatches renders search results as readable text. An empty result
// is a normal outcome, not an error.
func formatMatches(query string, matches []knowledge.Match) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No documents matched %q.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d document(s) matched %q:\n\n", len(matches), query)
	for _, m := range matches {
		fmt.Fprintf(&b, "--- %s (score %d) ---\n%s\n\n", m.Document.Filename, m.Score, m.Document.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

func handleReloadDocuments(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	store := sc.KnowledgeStore()
	if store == nil {
		return mcp.NewToolResultError("no document corpus is configured"), nil
	}

	corpus, err := store.Reload()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to reload documents: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reloaded %d document(s).", corpus.Len())), nil
}
