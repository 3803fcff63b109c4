package collateral_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/frontdesk/internal/ai"
	"github.com/teemow/frontdesk/internal/delivery"
	"github.com/teemow/frontdesk/internal/instrumentation"
	"github.com/teemow/frontdesk/internal/knowledge"
	"github.com/teemow/frontdesk/internal/server"
	"github.com/teemow/frontdesk/internal/tools/common"
)

// contextDocuments is how many corpus matches ground the prompt.
const contextDocuments = 2

// RegisterCollateralTools registers the collateral generation tool with the MCP server
func RegisterCollateralTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	generateTool := mcp.NewTool("generate_collateral",
		mcp.WithDescription("Generate marketing collateral for a topic using the business document corpus as context, then deliver it as a cloud document, by email, or inline as a last resort."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("What the collateral is about, e.g. 'spring promotion for returning customers'"),
		),
		mcp.WithString("format",
			mcp.Description("Collateral format, e.g. 'one-page flyer', 'email newsletter' (default: 'one-page flyer')"),
		),
		mcp.WithString("recipient_email",
			mcp.Description("Email address to send the collateral to when document hosting fails"),
		),
	)

	s.AddTool(generateTool, common.InstrumentedToolHandler("generate_collateral", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGenerateCollateral(ctx, request, sc)
		}))

	return nil
}

func handleGenerateCollateral(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	topic, ok := args["topic"].(string)
	if !ok || topic == "" {
		return mcp.NewToolResultError("topic is required"), nil
	}

	format, _ := args["format"].(string)
	recipient, _ := args["recipient_email"].(string)

	provider := sc.AIProvider()
	if provider == nil {
		return mcp.NewToolResultError("AI generation is not configured; set OPENAI_API_KEY"), nil
	}

	// Ground the prompt in the best-matching corpus documents. A missing
	// corpus or an empty match set degrades to an uncontexted prompt.
	var matches []knowledge.Match
	if store := sc.KnowledgeStore(); store != nil {
		matches = store.Corpus().Search(topic, contextDocuments)
	}

	prompt := ai.BuildCollateralPrompt(topic, format, matches)
	completionStart := time.Now()
	content, err := provider.Complete(ctx, ai.CollateralSystemPrompt, prompt)
	recordCompletionMetrics(ctx, sc.Metrics(), provider.Model(), time.Since(completionStart), err)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to generate collateral: %v", err)), nil
	}

	orchestrator := sc.OrchestratorForAccount(account)
	outcome, err := orchestrator.Deliver(ctx, delivery.Payload{
		Topic:     topic,
		Content:   content,
		Recipient: recipient,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Generated collateral but all delivery channels failed: %v", err)), nil
	}

	recordDeliveryMetrics(ctx, sc.Metrics(), outcome)

	return mcp.NewToolResultText(formatOutcome(topic, outcome)), nil
}

func recordCompletionMetrics(ctx context.Context, metrics *instrumentation.Metrics, model string, duration time.Duration, err error) {
	if metrics == nil {
		return
	}
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	metrics.RecordAICompletion(ctx, model, status, duration)
}

func recordDeliveryMetrics(ctx context.Context, metrics *instrumentation.Metrics, outcome *delivery.Outcome) {
	if metrics == nil {
		return
	}
	for _, attempt := range outcome.Attempts {
		metrics.RecordDeliveryAttempt(ctx, attempt.Channel, instrumentation.DeliveryResultFailure)
	}
	metrics.RecordDeliveryAttempt(ctx, outcome.Channel, instrumentation.DeliveryResultSuccess)
}

// formatOutcome renders the delivery outcome, naming the channel that
// won and any channels that failed before it.
func formatOutcome(topic string, outcome *delivery.Outcome) string {
	var b strings.Builder

	switch outcome.Channel {
	case delivery.ChannelCloudDoc:
		fmt.Fprintf(&b, "Collateral for %q published as a document:\n%s", topic, outcome.Reference)
	case delivery.ChannelEmail:
		fmt.Fprintf(&b, "Collateral for %q sent by email (message %s).", topic, outcome.Reference)
	default:
		fmt.Fprintf(&b, "Collateral for %q (inline delivery):\n\n%s", topic, outcome.Reference)
	}

	if outcome.Degraded {
		b.WriteString("\n\nNote: delivery degraded.")
		for _, attempt := range outcome.Attempts {
			fmt.Fprintf(&b, "\n  %s failed: %s", attempt.Channel, attempt.Err)
		}
	}

	return b.String()
}
