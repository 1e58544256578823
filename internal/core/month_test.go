package core

import (
	"testing"
	"time"
)

func TestCurrentWindow(t *testing.T) {
	cases := []struct {
		today time.Time
		want  Window
	}{
		{time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), Window{"2025-05", "2025-06", "2025-07"}},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Window{"2024-12", "2025-01", "2025-02"}},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), Window{"2024-11", "2024-12", "2025-01"}},
		{time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), Window{"2024-01", "2024-02", "2024-03"}},
		{time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), Window{"2025-02", "2025-03", "2025-04"}},
	}
	for i, tc := range cases {
		got := CurrentWindow(tc.today)
		if got != tc.want {
			t.Fatalf("case %d: got %v, want %v", i, got, tc.want)
		}
	}
}

func TestCurrentWindowShiftsByOneMonth(t *testing.T) {
	d := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	w1 := CurrentWindow(d)
	w2 := CurrentWindow(d.AddDate(0, 1, 0))
	if w1[1] != w2[0] || w1[2] != w2[1] {
		t.Fatalf("windows do not overlap on shift: %v then %v", w1, w2)
	}
	if w1[0] == w1[1] || w1[1] == w1[2] || w1[0] == w1[2] {
		t.Fatalf("window entries not distinct: %v", w1)
	}
}

func TestWindowContains(t *testing.T) {
	w := CurrentWindow(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	for _, m := range w.Months() {
		if !w.Contains(m) {
			t.Fatalf("window should contain %s", m)
		}
	}
	for _, m := range []string{"2025-04", "2025-08", "2024-06", ""} {
		if w.Contains(m) {
			t.Fatalf("window should not contain %s", m)
		}
	}
	if w.Current() != "2025-06" {
		t.Fatalf("current month: got %s", w.Current())
	}
}

func TestMonthOf(t *testing.T) {
	if got := MonthOf(time.Date(2024, 12, 5, 13, 0, 0, 0, time.UTC)); got != "2024-12" {
		t.Fatalf("got %s", got)
	}
}
