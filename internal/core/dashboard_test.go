package core

import "testing"

func TestBuildDashboardSingleCard(t *testing.T) {
	cards := []Card{{ID: "c1", Name: "Card A", MonthlyTarget: 300000, FixedCost: 50000, Active: true}}
	txs := []Transaction{
		tx("t1", "2025-06-10", "c1", 2000),
		tx("t2", "2025-06-11", "c1", 3000),
		tx("t3", "2025-05-01", "c1", 99999), // other month
	}
	rows := BuildDashboard(cards, txs, "2025-06")
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	r := rows[0]
	if r.Spent != 5000 {
		t.Fatalf("spent: got %d", r.Spent)
	}
	if r.EffectiveTarget != 250000 {
		t.Fatalf("effective target: got %d", r.EffectiveTarget)
	}
	if r.Remaining != 245000 {
		t.Fatalf("remaining: got %d", r.Remaining)
	}
	if r.Met {
		t.Fatalf("status should be unmet")
	}
}

func TestBuildDashboardExcludesInactive(t *testing.T) {
	cards := []Card{
		{ID: "c1", Name: "Active", MonthlyTarget: 1000, Active: true},
		{ID: "c2", Name: "Retired", MonthlyTarget: 1000, Active: false},
	}
	rows := BuildDashboard(cards, nil, "2025-06")
	if len(rows) != 1 || rows[0].CardID != "c1" {
		t.Fatalf("inactive card not excluded: %v", rows)
	}
}

func TestBuildDashboardNoActiveCards(t *testing.T) {
	cards := []Card{{ID: "c1", Name: "Retired", Active: false}}
	if rows := BuildDashboard(cards, nil, "2025-06"); len(rows) != 0 {
		t.Fatalf("expected empty dashboard, got %v", rows)
	}
}

func TestBuildDashboardZeroEffectiveTarget(t *testing.T) {
	// Fixed cost fully offsets the target: trivially met without any spend.
	cards := []Card{{ID: "c1", Name: "Covered", MonthlyTarget: 50000, FixedCost: 80000, Active: true}}
	rows := BuildDashboard(cards, nil, "2025-06")
	if rows[0].EffectiveTarget != 0 {
		t.Fatalf("effective target: got %d", rows[0].EffectiveTarget)
	}
	if !rows[0].Met {
		t.Fatalf("zero effective target should count as met")
	}
	if rows[0].Remaining != 0 {
		t.Fatalf("remaining: got %d", rows[0].Remaining)
	}
}

func TestBuildDashboardMissingFixedCostDefaultsToZero(t *testing.T) {
	cards := []Card{{ID: "c1", Name: "Old", MonthlyTarget: 10000, Active: true}}
	rows := BuildDashboard(cards, nil, "2025-06")
	if rows[0].EffectiveTarget != 10000 {
		t.Fatalf("effective target: got %d", rows[0].EffectiveTarget)
	}
}

func TestBuildDashboardSort(t *testing.T) {
	cards := []Card{
		{ID: "m1", Name: "Met B", MonthlyTarget: 1000, Active: true},
		{ID: "u2", Name: "Unmet far", MonthlyTarget: 9000, Active: true},
		{ID: "u1", Name: "Unmet near", MonthlyTarget: 2000, Active: true},
		{ID: "m2", Name: "Met A", MonthlyTarget: 1000, Active: true},
	}
	txs := []Transaction{
		tx("t1", "2025-06-01", "m1", 1500),
		tx("t2", "2025-06-01", "m2", 1500),
		tx("t3", "2025-06-02", "u1", 1000),
		tx("t4", "2025-06-02", "u2", 1000),
	}
	rows := BuildDashboard(cards, txs, "2025-06")
	got := []string{rows[0].CardID, rows[1].CardID, rows[2].CardID, rows[3].CardID}
	// unmet first by remaining asc, then met by name asc
	want := []string{"u1", "u2", "m2", "m1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sort order: got %v, want %v", got, want)
		}
	}
}

func TestBuildDashboardSpendConservation(t *testing.T) {
	cards := []Card{
		{ID: "c1", Name: "A", MonthlyTarget: 100, Active: true},
		{ID: "c2", Name: "B", MonthlyTarget: 100, Active: true},
	}
	txs := []Transaction{
		tx("t1", "2025-06-01", "c1", 10),
		tx("t2", "2025-06-02", "c1", 20),
		tx("t3", "2025-06-03", "c2", 30),
		tx("t4", "2025-06-04", "ghost", 40), // not an active card, excluded
	}
	rows := BuildDashboard(cards, txs, "2025-06")
	var total int64
	for _, r := range rows {
		total += r.Spent
	}
	if total != 60 {
		t.Fatalf("total spent: got %d, want 60", total)
	}
}
