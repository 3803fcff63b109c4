package schedule

import (
	"testing"
	"time"
)

func homeTime(t *testing.T, zone *HomeZone, value string) time.Time {
	t.Helper()
	ts, err := zone.Normalize(value)
	if err != nil {
		t.Fatalf("Normalize(%q): %v", value, err)
	}
	return ts
}

func TestFreeSlotsEmptyBusySet(t *testing.T) {
	zone := MustHomeZone("+05:30")
	day := homeTime(t, zone, "2024-03-01")

	slots := FreeSlots(zone, day, nil)

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots for an empty day, got %d", len(slots))
	}

	// 09:00, 09:30, ..., 16:30 home time, in increasing order.
	for i, slot := range slots {
		want := homeTime(t, zone, "2024-03-01T09:00:00").Add(time.Duration(i) * 30 * time.Minute)
		if !slot.Start.Equal(want) {
			t.Errorf("slot %d = %s, want %s", i, slot.Start, want)
		}
	}
}

func TestFreeSlotsExcludesBusyRange(t *testing.T) {
	zone := MustHomeZone("+05:30")
	day := homeTime(t, zone, "2024-03-01")

	busy := []BusyInterval{
		{
			Start: homeTime(t, zone, "2024-03-01T10:00:00"),
			End:   homeTime(t, zone, "2024-03-01T11:00:00"),
			Label: "standup",
		},
	}

	slots := FreeSlots(zone, day, busy)

	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}

	for _, slot := range slots {
		inBusy := !slot.Start.Before(busy[0].Start) && slot.Start.Before(busy[0].End)
		if inBusy {
			t.Errorf("slot %s falls inside busy interval", slot.Start)
		}
	}

	// Half-open semantics: the 11:00 tick (== busy end) must be free.
	eleven := homeTime(t, zone, "2024-03-01T11:00:00")
	found := false
	for _, slot := range slots {
		if slot.Start.Equal(eleven) {
			found = true
		}
	}
	if !found {
		t.Error("slot at busy-interval end was excluded; [start, end) must not cover its end")
	}
}

func TestFreeSlotsAllDayEvent(t *testing.T) {
	zone := MustHomeZone("+05:30")
	day := homeTime(t, zone, "2024-03-01")

	busy := []BusyInterval{
		{
			Start:  homeTime(t, zone, "2024-03-01"),
			AllDay: true,
			Label:  "public holiday",
		},
	}

	if slots := FreeSlots(zone, day, busy); len(slots) != 0 {
		t.Fatalf("expected no slots on an all-day busy date, got %d", len(slots))
	}

	// The neighbouring day is unaffected.
	next := homeTime(t, zone, "2024-03-02")
	if slots := FreeSlots(zone, next, busy); len(slots) != 16 {
		t.Fatalf("expected 16 slots on the following day, got %d", len(slots))
	}
}

func TestFreeSlotsBusyInUTC(t *testing.T) {
	// Busy intervals arrive from the calendar API in UTC; comparison
	// must happen in the same normalized instant space.
	zone := MustHomeZone("+05:30")
	day := homeTime(t, zone, "2024-03-01")

	busy := []BusyInterval{
		{
			// 09:00–10:00 home time expressed in UTC.
			Start: time.Date(2024, 3, 1, 3, 30, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 1, 4, 30, 0, 0, time.UTC),
		},
	}

	slots := FreeSlots(zone, day, busy)
	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}
	if slots[0].Start.Hour() != 10 {
		t.Errorf("first free slot = %s, want 10:00 home time", slots[0].Start)
	}
}

func TestFreeSlotsWithinCustomWindow(t *testing.T) {
	zone := MustHomeZone("+00:00")
	day := homeTime(t, zone, "2024-03-01")

	slots := FreeSlotsWithin(zone, day, nil, Hours{StartHour: 10, EndHour: 12}, time.Hour)
	if len(slots) != 2 {
		t.Fatalf("expected 2 hourly slots in a 10–12 window, got %d", len(slots))
	}
}
