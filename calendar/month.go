/*
Package calendar provides the date and month primitives for the planning engine.

PURPOSE:
  Everything in the dashboard is keyed by calendar months ("2025-11") or
  whole UTC days. This package owns those two concepts so the projection
  engine never touches a raw time.Time for month arithmetic.

KEY CONCEPTS IN THIS FILE (month.go):
  - Month: An immutable year/month value (the "YYYY-MM" key in documents)
  - MonthSequence: Deterministic generation of consecutive months

DESIGN PRINCIPLES:
  1. Immutability: Month is a value type; Add returns a new Month
  2. Determinism: Sequences never skip or duplicate months, including
     across year boundaries
  3. Degradation: Parsing never panics; invalid input yields (zero, false)

USAGE:
  start, ok := calendar.ParseMonth("2025-11")
  months := calendar.MonthSequence(start, 4)
  // ["2025-11", "2025-12", "2026-01", "2026-02"]

SEE ALSO:
  - calendar.go: Day-level utilities (ISO parsing, interval overlap)
*/
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// MONTH - Immutable year/month value
// =============================================================================

// Month identifies a calendar month. The zero value is not a valid month;
// use ParseMonth or NewMonth.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth builds a Month from a year and a 1-12 month.
func NewMonth(year int, month time.Month) Month {
	return Month{Year: year, Month: month}
}

// ParseMonth parses a "YYYY-MM" key. Returns (zero, false) for anything
// that is not a well-formed month.
func ParseMonth(s string) (Month, bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Month{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year <= 0 {
		return Month{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return Month{}, false
	}
	return Month{Year: year, Month: time.Month(month)}, true
}

// CurrentMonth returns the current UTC month.
func CurrentMonth() Month {
	now := time.Now().UTC()
	return Month{Year: now.Year(), Month: now.Month()}
}

// index maps a month to a single integer so arithmetic and comparison
// share one definition.
func (m Month) index() int { return m.Year*12 + int(m.Month) - 1 }

// Add returns the month n months after m (n may be negative).
func (m Month) Add(n int) Month {
	idx := m.index() + n
	year := idx / 12
	month := idx%12 + 1
	if month <= 0 {
		year--
		month += 12
	}
	return Month{Year: year, Month: time.Month(month)}
}

// Comparison
func (m Month) Before(other Month) bool { return m.index() < other.index() }
func (m Month) After(other Month) bool  { return m.index() > other.index() }
func (m Month) Equal(other Month) bool  { return m.index() == other.index() }

// IsZero reports whether m is the zero value (no month set).
func (m Month) IsZero() bool { return m.Year == 0 && m.Month == 0 }

// FirstDay returns the first day of the month at UTC midnight.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// String renders the canonical "YYYY-MM" key.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// =============================================================================
// MONTH SEQUENCE - Deterministic horizon generation
// =============================================================================

// MonthSequence returns exactly n consecutive months starting at start.
// The result is strictly increasing and never skips a calendar month.
// n <= 0 yields an empty slice.
func MonthSequence(start Month, n int) []Month {
	if n <= 0 {
		return nil
	}
	months := make([]Month, n)
	for i := 0; i < n; i++ {
		months[i] = start.Add(i)
	}
	return months
}
