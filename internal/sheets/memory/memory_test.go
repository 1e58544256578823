package memory

import (
	"context"
	"testing"

	"cardtrack/internal/core"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.AppendCard(ctx, core.Card{ID: "c1", Name: "A", MonthlyTarget: 100, Active: true}); err != nil {
		t.Fatalf("append card: %v", err)
	}
	cards, err := s.ListCards(ctx)
	if err != nil || len(cards) != 1 || cards[0].ID != "c1" {
		t.Fatalf("list cards: %v %v", cards, err)
	}

	if err := s.AppendTransaction(ctx, core.Transaction{ID: "t1", Date: "2025-06-01", Month: "2025-06", CardID: "c1", Amount: 10}); err != nil {
		t.Fatalf("append tx: %v", err)
	}
	txs, err := s.ListTransactions(ctx)
	if err != nil || len(txs) != 1 {
		t.Fatalf("list txs: %v %v", txs, err)
	}
}

func TestStoreReplaceAll(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.Seed(
		[]core.Card{{ID: "c1", Name: "A"}, {ID: "c2", Name: "B"}},
		[]core.Transaction{{ID: "t1"}, {ID: "t2"}},
	)

	if err := s.ReplaceAllTransactions(ctx, []core.Transaction{{ID: "t2"}}); err != nil {
		t.Fatalf("replace txs: %v", err)
	}
	txs, _ := s.ListTransactions(ctx)
	if len(txs) != 1 || txs[0].ID != "t2" {
		t.Fatalf("replace did not overwrite: %v", txs)
	}

	if err := s.ReplaceAllCards(ctx, nil); err != nil {
		t.Fatalf("replace cards: %v", err)
	}
	cards, _ := s.ListCards(ctx)
	if len(cards) != 0 {
		t.Fatalf("replace with nil should empty the table: %v", cards)
	}
}

func TestStoreListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.Seed([]core.Card{{ID: "c1", Name: "A"}}, nil)

	cards, _ := s.ListCards(ctx)
	cards[0].Name = "mutated"

	again, _ := s.ListCards(ctx)
	if again[0].Name != "A" {
		t.Fatalf("list must return a copy, store was mutated")
	}
}
