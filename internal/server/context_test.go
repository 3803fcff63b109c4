package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/frontdesk/internal/delivery"
	"github.com/teemow/frontdesk/internal/schedule"
)

func writeDoc(t *testing.T, dir, name, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
}

func TestNewServerContext_Defaults(t *testing.T) {
	sc, err := NewServerContext(context.Background(), Config{})
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.Equal(t, "primary", sc.CalendarID())
	require.NotNil(t, sc.HomeZone())
	assert.Equal(t, schedule.DefaultHomeOffset, sc.HomeZone().Offset())
	assert.Nil(t, sc.KnowledgeStore())
	assert.Nil(t, sc.AIProvider())
}

func TestNewServerContext_LoadsKnowledgeDir(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "faq.md", "frequently asked questions about billing")

	sc, err := NewServerContext(context.Background(), Config{KnowledgeDir: dir})
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	require.NotNil(t, sc.KnowledgeStore())
	assert.Equal(t, 1, sc.KnowledgeStore().Corpus().Len())
}

func TestNewServerContext_BadKnowledgeDir(t *testing.T) {
	_, err := NewServerContext(context.Background(), Config{
		KnowledgeDir: filepath.Join(t.TempDir(), "does-not-exist"),
	})
	assert.Error(t, err)
}

func TestServerContext_Shutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background(), Config{})
	require.NoError(t, err)

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())

	// Shutdown is idempotent
	require.NoError(t, sc.Shutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Error("context should be cancelled after shutdown")
	}
}

func TestOrchestratorForAccount_AlwaysHasInlineTerminal(t *testing.T) {
	sc, err := NewServerContext(context.Background(), Config{})
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	// No Google tokens exist in the test environment, so the doc and
	// mail channels are unbacked. Delivery must still land inline.
	orch := sc.OrchestratorForAccount("default")
	require.NotNil(t, orch)

	outcome, err := orch.Deliver(context.Background(), delivery.Payload{
		Topic:   "spring promotion",
		Content: "Two for one on all plans.",
	})
	require.NoError(t, err)
	assert.Equal(t, delivery.ChannelInline, outcome.Channel)
	assert.True(t, outcome.Degraded)
}
