/*
calendar.go - Day-level date utilities

PURPOSE:
  ISO date parsing, day arithmetic, and closed-interval overlap used by
  the lead-time planning views. All dates are UTC midnight; there is no
  timezone or DST handling anywhere in this package.

DEGRADATION POLICY:
  Invalid input never panics and never errors. Parsing returns
  (zero time, false); arithmetic on a zero time returns a zero time;
  OverlapDays treats any invalid endpoint as "no overlap".

SEE ALSO:
  - month.go: Month value type and sequences
*/
package calendar

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// ISO DATE PARSING
// =============================================================================

// ParseISODate parses "YYYY-MM-DD" into a UTC-midnight time.
// All three components must be present and non-zero. Dates that do not
// exist on the calendar ("2025-02-30") are rejected.
func ParseISODate(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year == 0 || month == 0 || day == 0 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components; a round-trip mismatch
	// means the input named a day that does not exist.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// =============================================================================
// DAY ARITHMETIC
// =============================================================================

// AddDays returns date offset by n whole days. Month and year boundaries
// roll over via UTC calendar arithmetic. A zero input stays zero.
func AddDays(date time.Time, n int) time.Time {
	if date.IsZero() {
		return time.Time{}
	}
	return date.AddDate(0, 0, n)
}

// DaysBetween returns the number of whole days from start to end,
// rounded to the nearest integer. Both endpoints must be valid.
func DaysBetween(start, end time.Time) (int, bool) {
	if start.IsZero() || end.IsZero() {
		return 0, false
	}
	return int(math.Round(end.Sub(start).Hours() / 24)), true
}

// =============================================================================
// INTERVAL OVERLAP
// =============================================================================

// OverlapDays returns the inclusive day-count overlap of the closed
// intervals [startA, endA] and [startB, endB]. Any invalid endpoint
// yields 0 rather than propagating a failure.
func OverlapDays(startA, endA, startB, endB time.Time) int {
	if startA.IsZero() || endA.IsZero() || startB.IsZero() || endB.IsZero() {
		return 0
	}

	start := startA
	if startB.After(start) {
		start = startB
	}
	end := endA
	if endB.Before(end) {
		end = endB
	}
	if end.Before(start) {
		return 0
	}

	days, ok := DaysBetween(start, end)
	if !ok {
		return 0
	}
	return days + 1 // both endpoints count
}
