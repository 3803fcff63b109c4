package collateral_tools

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/frontdesk/internal/delivery"
	"github.com/teemow/frontdesk/internal/instrumentation"
	"github.com/teemow/frontdesk/internal/server"
)

func TestHandleGenerateCollateral_MissingTopic(t *testing.T) {
	sc, err := server.NewServerContext(context.Background(), server.Config{})
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	defer func() { _ = sc.Shutdown() }()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "generate_collateral",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := handleGenerateCollateral(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing topic")
	}
}

func TestHandleGenerateCollateral_NoAIProvider(t *testing.T) {
	sc, err := server.NewServerContext(context.Background(), server.Config{})
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	defer func() { _ = sc.Shutdown() }()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "generate_collateral",
			Arguments: map[string]interface{}{
				"topic": "spring promotion",
			},
		},
	}

	result, err := handleGenerateCollateral(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result when AI is not configured")
	}
}

func TestFormatOutcome_CloudDoc(t *testing.T) {
	out := formatOutcome("spring promotion", &delivery.Outcome{
		Channel:   delivery.ChannelCloudDoc,
		Reference: "https://docs.google.com/document/d/abc",
	})

	if !strings.Contains(out, "published as a document") {
		t.Errorf("expected document wording, got %q", out)
	}
	if !strings.Contains(out, "https://docs.google.com/document/d/abc") {
		t.Errorf("expected document link, got %q", out)
	}
	if strings.Contains(out, "degraded") {
		t.Errorf("non-degraded outcome should not mention degradation, got %q", out)
	}
}

func TestFormatOutcome_Email(t *testing.T) {
	out := formatOutcome("spring promotion", &delivery.Outcome{
		Channel:   delivery.ChannelEmail,
		Reference: "msg-18c2a",
	})

	if !strings.Contains(out, "sent by email (message msg-18c2a)") {
		t.Errorf("expected email wording with the message ID, got %q", out)
	}
	if strings.Count(out, "message") != 1 {
		t.Errorf("message ID should be phrased exactly once, got %q", out)
	}
}

func TestRecordCompletionMetrics(t *testing.T) {
	ctx := context.Background()

	// Nil metrics and uninitialized instruments are both no-ops.
	recordCompletionMetrics(ctx, nil, "gpt-4o-mini", time.Second, nil)
	recordCompletionMetrics(ctx, &instrumentation.Metrics{}, "gpt-4o-mini", time.Second, nil)
	recordCompletionMetrics(ctx, &instrumentation.Metrics{}, "gpt-4o-mini", time.Second, errors.New("rate limited"))
}

func TestFormatOutcome_DegradedToInline(t *testing.T) {
	out := formatOutcome("spring promotion", &delivery.Outcome{
		Channel:   delivery.ChannelInline,
		Reference: "Two for one on all plans this spring.",
		Degraded:  true,
		Attempts: []delivery.Attempt{
			{Channel: delivery.ChannelCloudDoc, Err: "drive unavailable"},
			{Channel: delivery.ChannelEmail, Err: "no recipient"},
		},
	})

	if !strings.Contains(out, "Two for one on all plans this spring.") {
		t.Errorf("expected inline content, got %q", out)
	}
	if !strings.Contains(out, "delivery degraded") {
		t.Errorf("expected degradation note, got %q", out)
	}
	if !strings.Contains(out, "cloud_doc failed: drive unavailable") {
		t.Errorf("expected failed attempt detail, got %q", out)
	}
}
