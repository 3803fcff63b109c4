package schedule

import (
	"testing"
	"time"
)

func TestWouldConflict(t *testing.T) {
	zone := MustHomeZone("+05:30")

	at := func(value string) time.Time {
		return homeTime(t, zone, value)
	}

	tests := []struct {
		name     string
		proposed Interval
		busy     []BusyInterval
		want     bool
	}{
		{
			name:     "overlapping interval conflicts",
			proposed: Interval{Start: at("2024-03-01T10:00:00"), End: at("2024-03-01T10:30:00")},
			busy: []BusyInterval{
				{Start: at("2024-03-01T10:15:00"), End: at("2024-03-01T10:45:00")},
			},
			want: true,
		},
		{
			name:     "adjacent interval does not conflict",
			proposed: Interval{Start: at("2024-03-01T10:00:00"), End: at("2024-03-01T10:30:00")},
			busy: []BusyInterval{
				{Start: at("2024-03-01T10:30:00"), End: at("2024-03-01T11:00:00")},
			},
			want: false,
		},
		{
			name:     "proposal contained in busy interval",
			proposed: Interval{Start: at("2024-03-01T10:00:00"), End: at("2024-03-01T10:30:00")},
			busy: []BusyInterval{
				{Start: at("2024-03-01T09:00:00"), End: at("2024-03-01T12:00:00")},
			},
			want: true,
		},
		{
			name:     "busy interval contained in proposal",
			proposed: Interval{Start: at("2024-03-01T09:00:00"), End: at("2024-03-01T12:00:00")},
			busy: []BusyInterval{
				{Start: at("2024-03-01T10:00:00"), End: at("2024-03-01T10:15:00")},
			},
			want: true,
		},
		{
			name:     "no busy intervals",
			proposed: Interval{Start: at("2024-03-01T10:00:00"), End: at("2024-03-01T10:30:00")},
			want:     false,
		},
		{
			name:     "all-day event conflicts on its date",
			proposed: Interval{Start: at("2024-03-01T10:00:00"), End: at("2024-03-01T10:30:00")},
			busy: []BusyInterval{
				{Start: at("2024-03-01"), AllDay: true},
			},
			want: true,
		},
		{
			name:     "all-day event does not conflict on another date",
			proposed: Interval{Start: at("2024-03-02T10:00:00"), End: at("2024-03-02T10:30:00")},
			busy: []BusyInterval{
				{Start: at("2024-03-01"), AllDay: true},
			},
			want: false,
		},
		{
			name:     "proposal crossing midnight into an all-day date conflicts",
			proposed: Interval{Start: at("2024-03-01T23:30:00"), End: at("2024-03-02T00:30:00")},
			busy: []BusyInterval{
				{Start: at("2024-03-02"), End: at("2024-03-03"), AllDay: true},
			},
			want: true,
		},
		{
			name:     "proposal ending at midnight of an all-day date does not conflict",
			proposed: Interval{Start: at("2024-03-01T23:00:00"), End: at("2024-03-02T00:00:00")},
			busy: []BusyInterval{
				{Start: at("2024-03-02"), End: at("2024-03-03"), AllDay: true},
			},
			want: false,
		},
		{
			name:     "busy on a different day",
			proposed: Interval{Start: at("2024-03-01T10:00:00"), End: at("2024-03-01T10:30:00")},
			busy: []BusyInterval{
				{Start: at("2024-03-02T10:00:00"), End: at("2024-03-02T10:30:00")},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WouldConflict(zone, tt.proposed, tt.busy)
			if got != tt.want {
				t.Errorf("WouldConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}
