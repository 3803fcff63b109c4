package schedule

import "errors"

// ErrConflict is reported when a proposed booking overlaps an existing
// event. It is a normal, non-fatal condition distinct from an upstream
// transport failure: the booking is simply not performed.
var ErrConflict = errors.New("proposed appointment conflicts with an existing event")

// WouldConflict reports whether the proposed interval overlaps any busy
// interval under half-open semantics:
//
//	proposed.Start < busy.End && proposed.End > busy.Start
//
// Adjacent bookings (one ending exactly when the next starts) do not
// conflict. An all-day busy interval conflicts with any proposal sharing
// its calendar date, including proposals that cross midnight into that
// date: all-day intervals span [midnight, midnight+24h), so the interval
// check covers them too.
func WouldConflict(zone *HomeZone, proposed Interval, busy []BusyInterval) bool {
	for _, b := range busy {
		if b.AllDay && zone.SameDate(proposed.Start, b.Start) {
			return true
		}
		if proposed.Start.Before(b.End) && proposed.End.After(b.Start) {
			return true
		}
	}
	return false
}
