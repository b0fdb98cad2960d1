package util

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if FormatDate(got) != "2024-10-10" {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseDateInvalid(t *testing.T) {
	if _, ok := ParseDate(""); ok {
		t.Fatalf("expected not ok for empty")
	}
	if _, ok := ParseDate("10/10/2024"); ok {
		t.Fatalf("expected not ok for wrong layout")
	}
}

func TestNextBusinessDaySkipsWeekend(t *testing.T) {
	// 2024-10-11 is a Friday
	friday := time.Date(2024, 10, 11, 0, 0, 0, 0, time.UTC)
	got := NextBusinessDay(friday)
	want := time.Date(2024, 10, 14, 0, 0, 0, 0, time.UTC) // Monday
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestBusinessDaysCountAndOrder(t *testing.T) {
	// 2024-10-09 is a Wednesday
	wednesday := time.Date(2024, 10, 9, 0, 0, 0, 0, time.UTC)
	days := BusinessDays(wednesday, 5)
	if len(days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(days))
	}
	want := []string{"2024-10-10", "2024-10-11", "2024-10-14", "2024-10-15", "2024-10-16"}
	for i, d := range days {
		if FormatDate(d) != want[i] {
			t.Fatalf("day %d: got %s want %s", i, FormatDate(d), want[i])
		}
		if !IsBusinessDay(d) {
			t.Fatalf("day %d falls on a weekend: %v", i, d)
		}
	}
}

func TestBusinessDaysZero(t *testing.T) {
	if got := BusinessDays(time.Now(), 0); got != nil {
		t.Fatalf("expected nil for n=0")
	}
}
