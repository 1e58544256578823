package core

import (
	"testing"
	"time"
)

func TestAssessMonthEnd(t *testing.T) {
	cases := []struct {
		month    string
		wantDate string
		risk     bool
	}{
		{"2025-02", "2025-02-28", false}, // Friday, business day
		{"2025-06", "2025-06-30", false}, // Monday
		{"2025-08", "2025-08-31", true},  // Sunday
		{"2026-01", "2026-01-31", true},  // Saturday
		{"2024-02", "2024-02-29", false}, // leap day, Thursday
	}
	for _, tc := range cases {
		got, err := AssessMonthEnd(tc.month)
		if err != nil {
			t.Fatalf("%s: %v", tc.month, err)
		}
		if got.Date.Format("2006-01-02") != tc.wantDate {
			t.Fatalf("%s: end date %s, want %s", tc.month, got.Date.Format("2006-01-02"), tc.wantDate)
		}
		if got.NeedsAdjustment != tc.risk {
			t.Fatalf("%s: needs adjustment = %v, want %v (%s)", tc.month, got.NeedsAdjustment, tc.risk, got.Reason)
		}
	}
}

func TestAssessMonthEndBadMonth(t *testing.T) {
	if _, err := AssessMonthEnd("junk"); err == nil {
		t.Fatalf("expected error for invalid month")
	}
}

func TestHolidayName(t *testing.T) {
	cases := []struct {
		date string
		name string
		ok   bool
	}{
		{"2025-01-01", "신정", true},
		{"2025-12-25", "성탄절", true},
		{"2025-10-06", "추석", true},
		{"2025-02-28", "", false},
		{"1999-01-01", "", false}, // outside the table
	}
	for _, tc := range cases {
		d, _ := time.Parse("2006-01-02", tc.date)
		name, ok := HolidayName(d)
		if ok != tc.ok || name != tc.name {
			t.Fatalf("%s: got (%q, %v), want (%q, %v)", tc.date, name, ok, tc.name, tc.ok)
		}
	}
}
