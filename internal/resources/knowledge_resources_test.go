package resources

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/frontdesk/internal/server"
)

func newCorpusContext(t *testing.T) *server.ServerContext {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "refund-policy.md"),
		[]byte("Refunds are issued within five business days."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shipping.txt"),
		[]byte("Orders ship within two business days."), 0o644))

	sc, err := server.NewServerContext(context.Background(), server.Config{KnowledgeDir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func readRequest(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func TestHandleCorpusIndex(t *testing.T) {
	sc := newCorpusContext(t)

	contents, err := handleCorpusIndex(context.Background(), readRequest("knowledge://corpus"), sc)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)

	var index struct {
		Count     int `json:"count"`
		Documents []struct {
			Filename string `json:"filename"`
			URI      string `json:"uri"`
		} `json:"documents"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &index))
	assert.Equal(t, 2, index.Count)
	assert.Equal(t, "knowledge://documents/refund-policy.md", index.Documents[0].URI)
}

func TestHandleDocument(t *testing.T) {
	sc := newCorpusContext(t)

	contents, err := handleDocument(context.Background(),
		readRequest("knowledge://documents/refund-policy.md"), sc)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Refunds are issued")
}

func TestHandleDocument_NotFound(t *testing.T) {
	sc := newCorpusContext(t)

	_, err := handleDocument(context.Background(),
		readRequest("knowledge://documents/missing.md"), sc)
	assert.Error(t, err)
}

func TestHandleCorpusIndex_NoCorpus(t *testing.T) {
	sc, err := server.NewServerContext(context.Background(), server.Config{})
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	_, err = handleCorpusIndex(context.Background(), readRequest("knowledge://corpus"), sc)
	assert.Error(t, err)
}
