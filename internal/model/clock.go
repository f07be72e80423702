package model

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the ISO 8601 calendar date format used for
	// data_appuntamento.
	DateLayout = "2006-01-02"
	// ClockLayout is the 24-hour wall clock format used for ora_inizio and
	// ora_fine.
	ClockLayout = "15:04"
)

// ParseDate validates a YYYY-MM-DD date string.
func ParseDate(raw string) error {
	t, err := time.Parse(DateLayout, raw)
	if err != nil || t.Format(DateLayout) != raw {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return nil
}

// ParseClock validates an HH:MM time-of-day string. The round-trip check
// rejects non-zero-padded hours like "9:30": the column is TEXT and every
// comparison downstream is lexicographic, so the stored form must be
// exactly two digits, colon, two digits.
func ParseClock(raw string) error {
	t, err := time.Parse(ClockLayout, raw)
	if err != nil || t.Format(ClockLayout) != raw {
		return fmt.Errorf("invalid time %q, want HH:MM", raw)
	}
	return nil
}

// AddMinutes returns the clock value minutes after start, e.g.
// AddMinutes("09:00", 60) == "10:00". Results past midnight wrap.
func AddMinutes(start string, minutes int) (string, error) {
	t, err := time.Parse(ClockLayout, start)
	if err != nil {
		return "", fmt.Errorf("invalid time %q, want HH:MM", start)
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format(ClockLayout), nil
}

// ClockMinutes returns the number of minutes between two clock values.
func ClockMinutes(start, end string) (int, error) {
	s, err := time.Parse(ClockLayout, start)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", start)
	}
	e, err := time.Parse(ClockLayout, end)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", end)
	}
	return int(e.Sub(s) / time.Minute), nil
}

// ClockAfter reports whether end is strictly later in the day than start.
// HH:MM strings compare lexicographically, which is how the store compares
// them too.
func ClockAfter(end, start string) bool {
	return end > start
}

// Today returns the current UTC date in DateLayout.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
