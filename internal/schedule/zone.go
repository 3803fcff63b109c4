package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedInput is returned when an input string cannot be parsed as
// a date or date-time at all. Callers must treat it as "no usable
// instant" and report it; it never escapes a tool boundary as a panic.
var ErrMalformedInput = errors.New("malformed date/time input")

// DefaultHomeOffset is the home-zone offset used when none is configured.
const DefaultHomeOffset = "+05:30"

var offsetPattern = regexp.MustCompile(`^([+-])(\d{2}):(\d{2})$`)

// HomeZone anchors all scheduling arithmetic to a single fixed UTC
// offset. It deliberately has no DST rules: appointments are wall-clock
// commitments in the service's home zone.
type HomeZone struct {
	loc    *time.Location
	offset string
}

// NewHomeZone parses an offset of the form "+05:30" or "-08:00" into a
// fixed-offset home zone.
func NewHomeZone(offset string) (*HomeZone, error) {
	m := offsetPattern.FindStringSubmatch(strings.TrimSpace(offset))
	if m == nil {
		return nil, fmt.Errorf("invalid home zone offset %q (expected ±HH:MM)", offset)
	}

	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("invalid home zone offset %q: out of range", offset)
	}

	seconds := hours*3600 + minutes*60
	if m[1] == "-" {
		seconds = -seconds
	}

	name := "UTC" + m[1] + m[2] + ":" + m[3]
	return &HomeZone{
		loc:    time.FixedZone(name, seconds),
		offset: m[1] + m[2] + ":" + m[3],
	}, nil
}

// MustHomeZone is like NewHomeZone but panics on a bad offset. Intended
// for constants and tests.
func MustHomeZone(offset string) *HomeZone {
	z, err := NewHomeZone(offset)
	if err != nil {
		panic(err)
	}
	return z
}

// Location returns the fixed-offset location of the home zone.
func (z *HomeZone) Location() *time.Location {
	return z.loc
}

// Offset returns the offset the zone was created from, e.g. "+05:30".
func (z *HomeZone) Offset() string {
	return z.offset
}

// naiveLayouts are tried against inputs after any offset marker has been
// stripped. Date-only inputs normalize to midnight home time.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// trailingOffset matches a UTC marker or numeric offset at the end of a
// timestamp ("Z", "+05:30", "-0800", "+05").
var trailingOffset = regexp.MustCompile(`(?i)(z|[+-]\d{2}(:?\d{2})?)$`)

// Normalize converts an arbitrary date or date-time string into an
// instant in the home zone.
//
// Any offset or UTC marker present in the input is stripped and replaced
// with the home offset: all client-supplied times are treated as
// wall-clock time in the home zone however they are marked. A bare date
// normalizes to 00:00:00 home time. Returns ErrMalformedInput when the
// string parses as neither.
func (z *HomeZone) Normalize(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrMalformedInput)
	}

	// Strip a trailing zone marker, but never the date itself: a bare
	// date like 2024-03-01 must not lose its day component.
	if len(s) > len("2006-01-02") {
		s = trailingOffset.ReplaceAllString(s, "")
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, z.loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedInput, input)
}

// SameDate reports whether two instants fall on the same calendar date
// in the home zone.
func (z *HomeZone) SameDate(a, b time.Time) bool {
	ay, am, ad := a.In(z.loc).Date()
	by, bm, bd := b.In(z.loc).Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns midnight home time of the instant's calendar date.
func (z *HomeZone) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(z.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, z.loc)
}
