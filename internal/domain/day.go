package domain

import (
	"fmt"
	"time"
)

// DayKey is a calendar day with a well-defined ordering and equality. It is
// deliberately not a time.Time so that map keys and comparisons never depend
// on wall-clock location or monotonic-clock state. Its string form is
// zero-padded ISO YYYY-MM-DD, so sorting the string forms agrees with
// chronological order.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf truncates an instant to its calendar day in the instant's location.
func DayOf(t time.Time) DayKey {
	return DayKey{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (DayKey, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return DayKey{}, fmt.Errorf("invalid day %q: %w", s, err)
	}

	return DayOf(t), nil
}

// Time returns the start of the day in the local calendar.
func (d DayKey) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

func (d DayKey) Before(other DayKey) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}

	return d.Day < other.Day
}

func (d DayKey) After(other DayKey) bool { return other.Before(d) }

// InRange reports whether d falls within [start, end] inclusive.
func (d DayKey) InRange(start, end DayKey) bool {
	return !d.Before(start) && !d.After(end)
}

func (d DayKey) IsZero() bool { return d == DayKey{} }

func (d DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText makes DayKey usable as a JSON object key.
func (d DayKey) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DayKey) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}
