package sheets

import (
	"context"

	"cardtrack/internal/core"
)

// Ports for the tabular stores backing the tracker. Every adapter keeps the
// same contract: List reads the whole table, Append adds one row, ReplaceAll
// overwrites header and rows in one shot (the only way edits and deletes
// reach the store).
type (
	CardStore interface {
		ListCards(ctx context.Context) ([]core.Card, error)
		AppendCard(ctx context.Context, c core.Card) error
		ReplaceAllCards(ctx context.Context, cards []core.Card) error
	}

	TransactionStore interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		AppendTransaction(ctx context.Context, t core.Transaction) error
		ReplaceAllTransactions(ctx context.Context, txs []core.Transaction) error
	}
)
