// Package schedule_tools provides MCP tools for calendar availability
// and appointment booking.
//
// Tools:
//   - check_availability: list free 30-minute slots for a business day
//   - book_appointment: create a calendar event after a conflict check
//
// All naive timestamps are interpreted in the server's home zone; inputs
// carrying a UTC or offset marker are reinterpreted as home-zone
// wall-clock time before any slot or conflict arithmetic runs.
package schedule_tools
