package schedule

import "time"

// Business hours and slot granularity for availability computation.
// Overridable per server via Config; these are the defaults observed in
// production configurations.
const (
	DefaultBusinessStartHour = 9
	DefaultBusinessEndHour   = 17
	DefaultSlotLength        = 30 * time.Minute
	DefaultDuration          = 30 * time.Minute
)

// BusyInterval is an occupied range on the calendar.
//
// All-day events carry only a date; AllDay marks them and Start holds
// midnight home time of that date. For conflict purposes an all-day
// interval covers its entire calendar date.
type BusyInterval struct {
	Start  time.Time
	End    time.Time
	AllDay bool
	Label  string
}

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Slot is a 30-minute-aligned candidate appointment start within
// business hours. Slots are computed per request and never stored.
type Slot struct {
	Start time.Time
}

// End returns the slot's end instant for the given slot length.
func (s Slot) End(length time.Duration) time.Time {
	return s.Start.Add(length)
}
