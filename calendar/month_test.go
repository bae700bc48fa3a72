package calendar_test

import (
	"testing"
	"time"

	"github.com/warp/cashplan/calendar"
)

func TestParseMonth_ValidKey(t *testing.T) {
	m, ok := calendar.ParseMonth("2025-11")
	if !ok {
		t.Fatal("expected 2025-11 to parse")
	}
	if m.Year != 2025 || m.Month != time.November {
		t.Errorf("got %v", m)
	}
	if m.String() != "2025-11" {
		t.Errorf("round trip: got %q", m.String())
	}
}

func TestParseMonth_Invalid(t *testing.T) {
	invalid := []string{"", "2025", "2025-13", "2025-00", "abcd-ef", "2025-11-01", "-03"}
	for _, s := range invalid {
		if _, ok := calendar.ParseMonth(s); ok {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestMonthAdd_YearRollover(t *testing.T) {
	// GIVEN: November 2025
	// WHEN: Adding months past the year boundary
	// THEN: Years roll over without skipping months
	m := calendar.NewMonth(2025, time.November)

	if got := m.Add(2).String(); got != "2026-01" {
		t.Errorf("Add(2): got %s", got)
	}
	if got := m.Add(14).String(); got != "2027-01" {
		t.Errorf("Add(14): got %s", got)
	}
	if got := m.Add(-11).String(); got != "2024-12" {
		t.Errorf("Add(-11): got %s", got)
	}
}

func TestMonthSequence_Deterministic(t *testing.T) {
	// GIVEN: start=2025-11, horizon=4
	// THEN: Exactly four consecutive months, crossing the year boundary
	start, _ := calendar.ParseMonth("2025-11")
	months := calendar.MonthSequence(start, 4)

	want := []string{"2025-11", "2025-12", "2026-01", "2026-02"}
	if len(months) != len(want) {
		t.Fatalf("expected %d months, got %d", len(want), len(months))
	}
	for i, w := range want {
		if months[i].String() != w {
			t.Errorf("months[%d] = %s, want %s", i, months[i], w)
		}
	}

	// Strictly increasing, no skips
	for i := 1; i < len(months); i++ {
		if !months[i-1].Before(months[i]) {
			t.Errorf("sequence not increasing at %d", i)
		}
		if !months[i-1].Add(1).Equal(months[i]) {
			t.Errorf("sequence skips a month at %d", i)
		}
	}
}

func TestMonthSequence_EmptyForNonPositive(t *testing.T) {
	start := calendar.NewMonth(2025, time.January)
	if got := calendar.MonthSequence(start, 0); len(got) != 0 {
		t.Errorf("expected empty sequence for n=0, got %d", len(got))
	}
	if got := calendar.MonthSequence(start, -3); len(got) != 0 {
		t.Errorf("expected empty sequence for n<0, got %d", len(got))
	}
}

func TestMonthFirstDay_UTCMidnight(t *testing.T) {
	m := calendar.NewMonth(2026, time.February)
	d := m.FirstDay()
	if d != time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("got %v", d)
	}
}
