package core

import "time"

// Window is the ordered set of year-months currently open for entry:
// previous, current and next month relative to the evaluation date. It is
// recomputed on every access and never persisted.
type Window [3]string

// MonthOf truncates a date to its YYYY-MM month string.
func MonthOf(t time.Time) string {
	return t.Format("2006-01")
}

// CurrentWindow computes the allowed window for the given evaluation date.
// Month arithmetic is calendar based, so year rollover is handled
// (2025-01 has previous month 2024-12).
func CurrentWindow(today time.Time) Window {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	return Window{
		MonthOf(first.AddDate(0, -1, 0)),
		MonthOf(first),
		MonthOf(first.AddDate(0, 1, 0)),
	}
}

func (w Window) Contains(month string) bool {
	return month == w[0] || month == w[1] || month == w[2]
}

// Current returns the middle month of the window.
func (w Window) Current() string {
	return w[1]
}

func (w Window) Months() []string {
	return []string{w[0], w[1], w[2]}
}
