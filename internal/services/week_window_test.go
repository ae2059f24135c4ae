package services

import (
	"testing"
	"time"
)

func TestWeekWindowPlainWeek(t *testing.T) {
	start := mustParseDay("2025-01-01")
	now := mustParseDay("2025-01-03")

	dates := WeekWindow(start, 0, nil, now)
	if len(dates) != 7 {
		t.Fatalf("expected 7 dates, got %d", len(dates))
	}
	for offset, day := range dates {
		expected := start.AddDate(0, 0, offset)
		if !sameDay(day, expected) {
			t.Fatalf("expected %s at index %d, got %s", expected.Format("2006-01-02"), offset, day.Format("2006-01-02"))
		}
	}
}

func TestWeekWindowCurrentWeekExtendsByMissedDoses(t *testing.T) {
	start := mustParseDay("2025-01-01")
	now := mustParseDay("2025-01-05")
	missed := []time.Time{
		mustParseDay("2025-01-02"),
		mustParseDay("2025-01-04"),
	}

	dates := WeekWindow(start, 0, missed, now)
	if len(dates) != 9 {
		t.Fatalf("expected 9 dates (7 + 2 make-up days), got %d", len(dates))
	}
	if !sameDay(dates[0], start) {
		t.Fatalf("current week must not shift its start, got %s", dates[0].Format("2006-01-02"))
	}
	if !sameDay(dates[7], mustParseDay("2025-01-08")) || !sameDay(dates[8], mustParseDay("2025-01-09")) {
		t.Fatalf("make-up days must trail day 7, got %s and %s",
			dates[7].Format("2006-01-02"), dates[8].Format("2006-01-02"))
	}
}

func TestWeekWindowFutureWeekShiftsByEarlierMisses(t *testing.T) {
	start := mustParseDay("2025-01-01")
	now := mustParseDay("2025-01-05")
	missed := []time.Time{mustParseDay("2025-01-03")}

	dates := WeekWindow(start, 1, missed, now)
	if len(dates) != 7 {
		t.Fatalf("future weeks stay 7 days, got %d", len(dates))
	}
	// Unshifted week 2 would start 2025-01-08; one earlier miss pushes it to the 9th.
	if !sameDay(dates[0], mustParseDay("2025-01-09")) {
		t.Fatalf("expected shifted start 2025-01-09, got %s", dates[0].Format("2006-01-02"))
	}
}

func TestWeekWindowPastWeekNeverMoves(t *testing.T) {
	start := mustParseDay("2025-01-01")
	now := mustParseDay("2025-01-20")
	missed := []time.Time{
		mustParseDay("2025-01-02"),
		mustParseDay("2025-01-09"),
	}

	dates := WeekWindow(start, 0, missed, now)
	if len(dates) != 7 {
		t.Fatalf("past weeks stay 7 days, got %d", len(dates))
	}
	if !sameDay(dates[0], start) || !sameDay(dates[6], mustParseDay("2025-01-07")) {
		t.Fatalf("past week layout changed: %s .. %s",
			dates[0].Format("2006-01-02"), dates[6].Format("2006-01-02"))
	}
}

func TestWeekWindowFutureShiftIgnoresMissesInRequestedWeek(t *testing.T) {
	start := mustParseDay("2025-01-01")
	now := mustParseDay("2025-01-02")
	missed := []time.Time{
		mustParseDay("2025-01-02"),
		mustParseDay("2025-01-10"),
	}

	// Requesting week 2 (offset 1): only the week-1 miss shifts it.
	dates := WeekWindow(start, 1, missed, now)
	if !sameDay(dates[0], mustParseDay("2025-01-09")) {
		t.Fatalf("expected one-day shift, got start %s", dates[0].Format("2006-01-02"))
	}
}

func TestCurrentWeekIndex(t *testing.T) {
	start := mustParseDay("2025-01-01")

	cases := []struct {
		now      string
		expected int
	}{
		{"2025-01-01", 0},
		{"2025-01-07", 0},
		{"2025-01-08", 1},
		{"2025-02-04", 4},
		{"2024-12-31", -1},
	}
	for _, tc := range cases {
		got := CurrentWeekIndex(start, mustParseDay(tc.now))
		if got != tc.expected {
			t.Fatalf("CurrentWeekIndex at %s: expected %d, got %d", tc.now, tc.expected, got)
		}
	}
}
