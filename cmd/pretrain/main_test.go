package main

import (
	"testing"
	"time"
)

func setRange(t *testing.T, start, end string) {
	t.Helper()
	startDate, endDate = start, end
	t.Cleanup(func() { startDate, endDate = "", "" })
}

func TestResolveRangeDefaults(t *testing.T) {
	setRange(t, "", "")
	start, end, err := resolveRange()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !end.After(start) {
		t.Fatalf("end %v not after start %v", end, start)
	}
	if got := end.AddDate(-2, 0, 0); !got.Equal(start) {
		t.Fatalf("default start %v, want two years before %v", start, end)
	}
}

func TestResolveRangeExplicit(t *testing.T) {
	setRange(t, "2023-01-01", "2024-01-01")
	start, end, err := resolveRange()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !start.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start %v", start)
	}
	if !end.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end %v", end)
	}
}

func TestResolveRangeRejectsBadDates(t *testing.T) {
	setRange(t, "01/01/2023", "")
	if _, _, err := resolveRange(); err == nil {
		t.Fatalf("expected error for bad --start")
	}

	setRange(t, "", "2023-13-40")
	if _, _, err := resolveRange(); err == nil {
		t.Fatalf("expected error for bad --end")
	}
}

func TestResolveRangeRejectsInvertedRange(t *testing.T) {
	setRange(t, "2024-06-01", "2024-01-01")
	if _, _, err := resolveRange(); err == nil {
		t.Fatalf("expected error when end precedes start")
	}
}
