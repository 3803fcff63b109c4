package calendar

import (
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/teemow/frontdesk/internal/schedule"
)

// AppointmentInput is the input for creating an appointment event.
type AppointmentInput struct {
	Title         string
	Description   string
	Start         time.Time
	End           time.Time
	// TimeZone is an optional IANA zone name for the event. When empty
	// the field is omitted and the RFC3339 offsets stand alone.
	TimeZone      string
	AttendeeEmail string
}

// EventRef identifies a created event in the external calendar.
type EventRef struct {
	ID       string
	HTMLLink string
	Summary  string
	Start    time.Time
	End      time.Time
}

// toBusyInterval converts a Google Calendar event into a busy interval.
// Date-only events become all-day intervals anchored at midnight of
// their date in the given location; ok is false when the event carries
// no usable time at all.
func toBusyInterval(event *gcal.Event, loc *time.Location) (schedule.BusyInterval, bool) {
	interval := schedule.BusyInterval{Label: event.Summary}

	if event.Start == nil {
		return interval, false
	}

	switch {
	case event.Start.DateTime != "":
		start, err := time.Parse(time.RFC3339, event.Start.DateTime)
		if err != nil {
			return interval, false
		}
		interval.Start = start

		if event.End != nil && event.End.DateTime != "" {
			if end, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
				interval.End = end
			}
		}
		if interval.End.IsZero() {
			interval.End = interval.Start.Add(schedule.DefaultDuration)
		}

	case event.Start.Date != "":
		start, err := time.ParseInLocation("2006-01-02", event.Start.Date, loc)
		if err != nil {
			return interval, false
		}
		interval.Start = start
		interval.End = start.AddDate(0, 0, 1)
		interval.AllDay = true

	default:
		return interval, false
	}

	return interval, true
}

// buildEvent converts an AppointmentInput into a Google Calendar event.
// TimeZone is only forwarded when set: the API expects an IANA zone name
// there, and the RFC3339 DateTime already carries the correct offset.
func buildEvent(input AppointmentInput) *gcal.Event {
	event := &gcal.Event{
		Summary:     input.Title,
		Description: input.Description,
		Start: &gcal.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
		},
		End: &gcal.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
		},
	}

	if input.TimeZone != "" {
		event.Start.TimeZone = input.TimeZone
		event.End.TimeZone = input.TimeZone
	}

	if input.AttendeeEmail != "" {
		event.Attendees = []*gcal.EventAttendee{
			{Email: input.AttendeeEmail},
		}
	}

	return event
}

// toEventRef converts a created Google Calendar event into an EventRef.
func toEventRef(event *gcal.Event) EventRef {
	ref := EventRef{
		ID:       event.Id,
		HTMLLink: event.HtmlLink,
		Summary:  event.Summary,
	}

	if event.Start != nil && event.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
			ref.Start = t
		}
	}
	if event.End != nil && event.End.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
			ref.End = t
		}
	}

	return ref
}
