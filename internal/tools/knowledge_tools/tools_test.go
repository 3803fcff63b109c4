package knowledge_tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/frontdesk/internal/knowledge"
	"github.com/teemow/frontdesk/internal/server"
)

func newKnowledgeContext(t *testing.T, docs map[string]string) *server.ServerContext {
	t.Helper()

	dir := t.TempDir()
	for name, text := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	sc, err := server.NewServerContext(context.Background(), server.Config{KnowledgeDir: dir})
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func searchRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "search_documents",
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected non-empty result content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestHandleSearchDocuments_RanksByOverlap(t *testing.T) {
	sc := newKnowledgeContext(t, map[string]string{
		"refund-policy.md": "Refunds are issued to the original payment method within five business days.",
		"shipping.md":      "Orders ship within two business days.",
	})

	result, err := handleSearchDocuments(context.Background(), searchRequest(map[string]interface{}{
		"query": "refund payment method",
	}), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "refund-policy.md") {
		t.Errorf("expected refund-policy.md in results, got %q", text)
	}
	if strings.Index(text, "refund-policy.md") > strings.Index(text, "shipping.md") && strings.Contains(text, "shipping.md") {
		t.Errorf("refund-policy.md should rank before shipping.md, got %q", text)
	}
}

func TestHandleSearchDocuments_NoMatchesIsNotAnError(t *testing.T) {
	sc := newKnowledgeContext(t, map[string]string{
		"refund-policy.md": "Refunds are issued within five business days.",
	})

	result, err := handleSearchDocuments(context.Background(), searchRequest(map[string]interface{}{
		"query": "quantum entanglement",
	}), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Error("empty search results should not be an error result")
	}
	if !strings.Contains(resultText(t, result), "No documents matched") {
		t.Errorf("expected no-match message, got %q", resultText(t, result))
	}
}

func TestHandleSearchDocuments_MissingQuery(t *testing.T) {
	sc := newKnowledgeContext(t, map[string]string{
		"faq.md": "billing questions",
	})

	result, err := handleSearchDocuments(context.Background(), searchRequest(map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing query")
	}
}

func TestHandleSearchDocuments_NoCorpusConfigured(t *testing.T) {
	sc, err := server.NewServerContext(context.Background(), server.Config{})
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	defer func() { _ = sc.Shutdown() }()

	result, err := handleSearchDocuments(context.Background(), searchRequest(map[string]interface{}{
		"query": "refund",
	}), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result when no corpus is configured")
	}
}

func TestHandleReloadDocuments_PicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "one.md"), []byte("first document"), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := server.NewServerContext(context.Background(), server.Config{KnowledgeDir: dir})
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	defer func() { _ = sc.Shutdown() }()

	if err := os.WriteFile(filepath.Join(dir, "two.md"), []byte("second document"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := handleReloadDocuments(context.Background(), mcp.CallToolRequest{}, sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resultText(t, result), "Reloaded 2 document(s)") {
		t.Errorf("expected reload count of 2, got %q", resultText(t, result))
	}
}

func TestFormatMatches(t *testing.T) {
	matches := []knowledge.Match{
		{Document: knowledge.DocumentRecord{Filename: "a.md", Text: "alpha"}, Score: 2},
		{Document: knowledge.DocumentRecord{Filename: "b.md", Text: "beta"}, Score: 1},
	}

	out := formatMatches("alpha beta", matches)
	if !strings.Contains(out, "a.md (score 2)") {
		t.Errorf("expected scored header for a.md, got %q", out)
	}
	if !strings.Contains(out, "alpha") || !strings.Contains(out, "beta") {
		t.Errorf("expected full document text in output, got %q", out)
	}
}
