package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/frontdesk/internal/server"
)

// RegisterKnowledgeResources registers the document corpus resources.
// The corpus index lists all loaded documents; individual documents are
// addressable by filename.
func RegisterKnowledgeResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	indexResource := mcp.NewResource(
		"knowledge://corpus",
		"Document Corpus Index",
		mcp.WithResourceDescription("Index of the business documents loaded into the knowledge base"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(indexResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleCorpusIndex(ctx, request, sc)
	})

	documentTemplate := mcp.NewResourceTemplate(
		"knowledge://documents/{filename}",
		"Business Document",
		mcp.WithTemplateDescription("Full text of a single document from the knowledge base"),
		mcp.WithTemplateMIMEType("text/plain"),
	)

	s.AddResourceTemplate(documentTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleDocument(ctx, request, sc)
	})

	return nil
}

func handleCorpusIndex(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	store := sc.KnowledgeStore()
	if store == nil {
		return nil, fmt.Errorf("no document corpus is configured")
	}

	docs := store.Corpus().Documents()
	index := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		index = append(index, map[string]interface{}{
			"filename": doc.Filename,
			"uri":      "knowledge://documents/" + doc.Filename,
			"length":   len(doc.Text),
		})
	}

	jsonData, err := json.MarshalIndent(map[string]interface{}{
		"documents": index,
		"count":     len(index),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal corpus index: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

func handleDocument(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	store := sc.KnowledgeStore()
	if store == nil {
		return nil, fmt.Errorf("no document corpus is configured")
	}

	filename := strings.TrimPrefix(request.Params.URI, "knowledge://documents/")
	if filename == "" || filename == request.Params.URI {
		return nil, fmt.Errorf("invalid document URI: %s", request.Params.URI)
	}

	for _, doc := range store.Corpus().Documents() {
		if doc.Filename == filename {
			return []mcp.ResourceContents{
				&mcp.TextResourceContents{
					URI:      request.Params.URI,
					MIMEType: "text/plain",
					Text:     doc.Text,
				},
			}, nil
		}
	}

	return nil, fmt.Errorf("document not found: %s", filename)
}
