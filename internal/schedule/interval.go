package schedule

import (
	"fmt"
	"time"
)

const (
	dayLayout  = "2006-01-02"
	timeLayout = "15:04"
)

// Interval is a half-open time range [Start, End) expressed in minutes
// of the day.  The end instant itself is not occupied, so back-to-back
// entries (one ending 10:00, the next starting 10:00) do not conflict.
type Interval struct {
	Start int // minutes from midnight, inclusive
	End   int // minutes from midnight, exclusive
}

// Overlaps reports whether two half-open intervals intersect:
// a.Start < b.End && a.End > b.Start.  Touching endpoints are not an
// overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// ParseMinutes converts a 24-hour "HH:MM" wall-clock string into minutes
// of the day.  Comparing minutes rather than the raw strings is what
// keeps "9:00" from sorting after "10:00".
func ParseMinutes(s string) (int, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad time %q", ErrInvalidRange, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes renders minutes of the day back into "HH:MM".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseInterval builds an Interval from "HH:MM" bounds, rejecting
// malformed times and empty or negative ranges.
func ParseInterval(startTime, endTime string) (Interval, error) {
	start, err := ParseMinutes(startTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseMinutes(endTime)
	if err != nil {
		return Interval{}, err
	}
	if end <= start {
		return Interval{}, fmt.Errorf("%w: start %s not before end %s", ErrInvalidRange, startTime, endTime)
	}
	return Interval{Start: start, End: end}, nil
}

// ParseDay validates a "YYYY-MM-DD" calendar day and returns it
// normalized to the same layout.  All dates are wall-clock in a single
// timezone; there is no cross-zone arithmetic anywhere in the engine.
func ParseDay(s string) (string, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: bad date %q", ErrInvalidRange, s)
	}
	return t.Format(dayLayout), nil
}
