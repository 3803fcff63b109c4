package schedule_tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/frontdesk/internal/schedule"
	"github.com/teemow/frontdesk/internal/server"
	"github.com/teemow/frontdesk/internal/tools/common"
)

// RegisterAvailabilityTools registers the availability checking tool with the MCP server
func RegisterAvailabilityTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	checkAvailabilityTool := mcp.NewTool("check_availability",
		mcp.WithDescription("List free 30-minute appointment slots within business hours (09:00-17:00) for a given day. Times are interpreted in the business's home time zone."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("The day to check, e.g. '2026-03-14'. A date-time is accepted and truncated to its day."),
		),
	)

	s.AddTool(checkAvailabilityTool, common.InstrumentedToolHandlerWithService(
		"check_availability", "calendar", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCheckAvailability(ctx, request, sc)
		}))

	return nil
}

func handleCheckAvailability(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	dateStr, ok := args["date"].(string)
	if !ok || dateStr == "" {
		return mcp.NewToolResultError("date is required"), nil
	}

	zone := sc.HomeZone()
	day, err := zone.Normalize(dateStr)
	if err != nil {
		if errors.Is(err, schedule.ErrMalformedInput) {
			return mcp.NewToolResultError(fmt.Sprintf("Could not understand date %q. Use a format like '2026-03-14'.", dateStr)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Invalid date: %v", err)), nil
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Busy intervals are fetched fresh per request; slots are never cached.
	dayStart := zone.StartOfDay(day)
	dayEnd := dayStart.Add(24 * time.Hour)
	busy, err := client.ListBusy(ctx, sc.CalendarID(), dayStart, dayEnd, zone.Location())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read calendar: %v", err)), nil
	}

	slots := schedule.FreeSlots(zone, day, busy)
	return mcp.NewToolResultText(formatAvailability(zone, day, slots)), nil
}

// formatAvailability renders the free slots for a day as readable text.
func formatAvailability(zone *schedule.HomeZone, day time.Time, slots []schedule.Slot) string {
	date := zone.StartOfDay(day).Format("2006-01-02")

	if len(slots) == 0 {
		return fmt.Sprintf("No free slots on %s within business hours (09:00-17:00).", date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Free 30-minute slots on %s (%s):\n", date, zone.Offset())
	for _, slot := range slots {
		fmt.Fprintf(&b, "  %s - %s\n",
			slot.Start.Format("15:04"),
			slot.End(schedule.DefaultSlotLength).Format("15:04"))
	}
	fmt.Fprintf(&b, "\n%d slot(s) available.", len(slots))
	return b.String()
}
