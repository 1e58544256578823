package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// formatComma renders an integer amount with thousands separators for
// display; underlying values stay integers everywhere else.
func formatComma(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// parseFormAmount reads a user-entered amount, tolerating thousands
// separators and surrounding whitespace.
func parseFormAmount(v string) (int64, error) {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	if v == "" {
		return 0, fmt.Errorf("empty amount")
	}
	return strconv.ParseInt(v, 10, 64)
}

// selectedMonth reads the month query parameter, empty when absent.
func selectedMonth(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("month"))
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
