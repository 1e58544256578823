package core

import (
	"reflect"
	"testing"
	"time"
)

func tx(id, date, cardID string, amount int64) Transaction {
	return Transaction{ID: id, Date: date, Month: date[:7], CardID: cardID, Amount: amount}
}

func TestRetain(t *testing.T) {
	w := CurrentWindow(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	in := []Transaction{
		tx("a", "2025-03-10", "c1", 1000), // too old
		tx("b", "2025-05-31", "c1", 2000),
		tx("c", "2025-06-01", "c2", 3000),
		tx("d", "2025-07-20", "c1", 4000),
		tx("e", "2025-08-01", "c2", 5000), // too new
	}
	got := Retain(in, w)
	if len(got) != 3 {
		t.Fatalf("kept %d rows, want 3", len(got))
	}
	// order preserved
	if got[0].ID != "b" || got[1].ID != "c" || got[2].ID != "d" {
		t.Fatalf("order not preserved: %v", got)
	}
}

func TestRetainIdempotent(t *testing.T) {
	w := CurrentWindow(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	in := []Transaction{
		tx("a", "2025-01-01", "c1", 100),
		tx("b", "2025-06-02", "c1", 200),
	}
	once := Retain(in, w)
	twice := Retain(once, w)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("retain not idempotent: %v vs %v", once, twice)
	}
}

func TestRetainEmpty(t *testing.T) {
	w := CurrentWindow(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	if got := Retain(nil, w); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
