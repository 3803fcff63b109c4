package schedule_tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/frontdesk/internal/calendar"
	"github.com/teemow/frontdesk/internal/schedule"
	"github.com/teemow/frontdesk/internal/server"
	"github.com/teemow/frontdesk/internal/tools/common"
)

// RegisterBookingTools registers the appointment booking tool with the MCP server
func RegisterBookingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	bookAppointmentTool := mcp.NewTool("book_appointment",
		mcp.WithDescription("Book an appointment on the calendar. The slot is checked against existing events first; overlapping requests are rejected. Times are interpreted in the business's home time zone."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Appointment title"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time, e.g. '2026-03-14T10:00'. Offset or Z suffixes are ignored; the wall-clock time is taken as home-zone time."),
		),
		mcp.WithString("end",
			mcp.Description("End time. Defaults to start plus duration_minutes (or 30 minutes)."),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Description("Appointment length in minutes when no end is given (default: 30)"),
		),
		mcp.WithString("attendee_email",
			mcp.Description("Optional attendee to invite"),
		),
		mcp.WithString("description",
			mcp.Description("Optional event description"),
		),
	)

	s.AddTool(bookAppointmentTool, common.InstrumentedToolHandlerWithService(
		"book_appointment", "calendar", "insert", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleBookAppointment(ctx, request, sc)
		}))

	return nil
}

// bookingRequest is the parsed, normalized form of a booking call.
type bookingRequest struct {
	Title         string
	Description   string
	AttendeeEmail string
	Start         time.Time
	End           time.Time
}

// parseBookingArgs validates and normalizes the booking arguments.
// Returns a user-facing message when the input is unusable.
func parseBookingArgs(zone *schedule.HomeZone, args map[string]interface{}) (*bookingRequest, string) {
	title, ok := args["title"].(string)
	if !ok || title == "" {
		return nil, "title is required"
	}

	startStr, ok := args["start"].(string)
	if !ok || startStr == "" {
		return nil, "start is required"
	}

	start, err := zone.Normalize(startStr)
	if err != nil {
		if errors.Is(err, schedule.ErrMalformedInput) {
			return nil, fmt.Sprintf("Could not understand start time %q. Use a format like '2026-03-14T10:00'.", startStr)
		}
		return nil, fmt.Sprintf("Invalid start time: %v", err)
	}

	var end time.Time
	if endStr, ok := args["end"].(string); ok && endStr != "" {
		end, err = zone.Normalize(endStr)
		if err != nil {
			if errors.Is(err, schedule.ErrMalformedInput) {
				return nil, fmt.Sprintf("Could not understand end time %q. Use a format like '2026-03-14T10:30'.", endStr)
			}
			return nil, fmt.Sprintf("Invalid end time: %v", err)
		}
	} else {
		duration := schedule.DefaultDuration
		if minutes, ok := args["duration_minutes"].(float64); ok && minutes > 0 {
			duration = time.Duration(minutes) * time.Minute
		}
		end = start.Add(duration)
	}

	if !end.After(start) {
		return nil, "end must be after start"
	}

	req := &bookingRequest{
		Title: title,
		Start: start,
		End:   end,
	}
	if desc, ok := args["description"].(string); ok {
		req.Description = desc
	}
	if attendee, ok := args["attendee_email"].(string); ok {
		req.AttendeeEmail = attendee
	}
	return req, ""
}

func handleBookAppointment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	zone := sc.HomeZone()
	booking, msg := parseBookingArgs(zone, args)
	if msg != "" {
		return mcp.NewToolResultError(msg), nil
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// The conflict check runs against a fresh busy list on every booking;
	// the window spans the full days the appointment touches so all-day
	// events on those dates are seen.
	windowStart := zone.StartOfDay(booking.Start)
	windowEnd := zone.StartOfDay(booking.End).Add(24 * time.Hour)
	busy, err := client.ListBusy(ctx, sc.CalendarID(), windowStart, windowEnd, zone.Location())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read calendar: %v", err)), nil
	}

	proposed := schedule.Interval{Start: booking.Start, End: booking.End}
	if schedule.WouldConflict(zone, proposed, busy) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"The requested slot %s - %s conflicts with an existing event. Use check_availability to find a free slot.",
			booking.Start.Format("2006-01-02 15:04"),
			booking.End.Format("15:04"))), nil
	}

	// The normalized times carry the home-zone offset in their RFC3339
	// form; no event time zone is sent because the fixed-offset zone has
	// no IANA name.
	event, err := client.InsertEvent(ctx, sc.CalendarID(), calendar.AppointmentInput{
		Title:         booking.Title,
		Description:   booking.Description,
		Start:         booking.Start,
		End:           booking.End,
		AttendeeEmail: booking.AttendeeEmail,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
	}

	result := fmt.Sprintf("Booked %q on %s from %s to %s.",
		booking.Title,
		booking.Start.Format("2006-01-02"),
		booking.Start.Format("15:04"),
		booking.End.Format("15:04"))
	if event.HTMLLink != "" {
		result += fmt.Sprintf("\nEvent: %s", event.HTMLLink)
	}
	return mcp.NewToolResultText(result), nil
}
