package schedule

import "time"

// Hours describes the bookable window within a day, in home-zone hours.
type Hours struct {
	StartHour int
	EndHour   int
}

// DefaultHours is the 09:00–17:00 business-hours window.
var DefaultHours = Hours{StartHour: DefaultBusinessStartHour, EndHour: DefaultBusinessEndHour}

// FreeSlots computes the ordered free 30-minute slots on the calendar
// day containing day, within business hours in the home zone.
//
// A candidate is excluded when it lies inside some busy interval under
// half-open semantics [start, end), or when an all-day busy interval
// shares its calendar date. The result is recomputed fresh on every
// call; an empty busy set yields one slot per tick (16 for 09:00–17:00).
func FreeSlots(zone *HomeZone, day time.Time, busy []BusyInterval) []Slot {
	return FreeSlotsWithin(zone, day, busy, DefaultHours, DefaultSlotLength)
}

// FreeSlotsWithin is FreeSlots with an explicit hours window and slot length.
func FreeSlotsWithin(zone *HomeZone, day time.Time, busy []BusyInterval, hours Hours, slotLength time.Duration) []Slot {
	start := zone.StartOfDay(day).Add(time.Duration(hours.StartHour) * time.Hour)
	end := zone.StartOfDay(day).Add(time.Duration(hours.EndHour) * time.Hour)

	var slots []Slot
	for t := start; t.Before(end); t = t.Add(slotLength) {
		if !covered(zone, t, busy) {
			slots = append(slots, Slot{Start: t})
		}
	}
	return slots
}

// covered reports whether a candidate instant falls inside any busy
// interval.
func covered(zone *HomeZone, t time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		if b.AllDay {
			if zone.SameDate(t, b.Start) {
				return true
			}
			continue
		}
		if !t.Before(b.Start) && t.Before(b.End) {
			return true
		}
	}
	return false
}
