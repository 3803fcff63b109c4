// Package schedule implements the availability and booking engine:
// home-zone time normalization, free-slot computation, and conflict
// detection against busy intervals fetched from an external calendar.
//
// All scheduling arithmetic is anchored to a single fixed-offset home
// zone. Client-supplied timestamps are interpreted as wall-clock time in
// that zone regardless of any offset marker they carry, so the calendar
// API and the caller can never disagree about the zone.
//
// Example usage:
//
//	zone := schedule.MustHomeZone("+05:30")
//	day, err := zone.Normalize("2024-03-01")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	slots := schedule.FreeSlots(day, busy)
package schedule
