package opname

import (
	"strconv"
	"strings"
	"time"
)

// ParseTimestamp parses the form's fixed DD/MM/YYYY HH:mm:ss format into an
// instant. The day-first order is a fixed locale convention and is never
// auto-detected. A missing time part defaults to midnight. Malformed input
// returns ok=false instead of an error so one bad row never aborts a batch.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	datePart := s
	timePart := "00:00:00"
	if idx := strings.IndexByte(s, ' '); idx >= 0 {
		datePart = s[:idx]
		timePart = strings.TrimSpace(s[idx+1:])
	}

	day, month, year, ok := splitDate(datePart)
	if !ok {
		return time.Time{}, false
	}
	hour, minute, second, ok := splitClock(timePart)
	if !ok {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)

	// time.Date normalizes out-of-range components (32/13/2024 rolls over
	// into the next month); a round-trip mismatch means the input was bogus.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, false
	}

	return t, true
}

func splitDate(s string) (day, month, year int, ok bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 {
		return 0, 0, 0, false
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 {
		return 0, 0, 0, false
	}
	year, err = strconv.Atoi(parts[2])
	if err != nil || year < 1 {
		return 0, 0, 0, false
	}

	return day, month, year, true
}

func splitClock(s string) (hour, minute, second int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, 0, 0, false
		}
		switch i {
		case 0:
			hour = n
		case 1:
			minute = n
		case 2:
			second = n
		}
	}

	return hour, minute, second, true
}
