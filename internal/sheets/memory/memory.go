package memory

import (
	"context"
	"sync"

	"cardtrack/internal/core"
)

// Store is a mutex-guarded in-memory backend, the default for local
// development and the workhorse of the service tests.
type Store struct {
	mu    sync.Mutex
	cards []core.Card
	txs   []core.Transaction
}

func New() *Store {
	return &Store{}
}

// Seed replaces the store contents without going through the ports.
func (s *Store) Seed(cards []core.Card, txs []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append([]core.Card(nil), cards...)
	s.txs = append([]core.Transaction(nil), txs...)
}

func (s *Store) ListCards(_ context.Context) ([]core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Card(nil), s.cards...), nil
}

func (s *Store) AppendCard(_ context.Context, c core.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append(s.cards, c)
	return nil
}

func (s *Store) ReplaceAllCards(_ context.Context, cards []core.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append([]core.Card(nil), cards...)
	return nil
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs...), nil
}

func (s *Store) AppendTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, t)
	return nil
}

func (s *Store) ReplaceAllTransactions(_ context.Context, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append([]core.Transaction(nil), txs...)
	return nil
}
