package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"cardtrack/internal/core"
	ports "cardtrack/internal/sheets"

	_ "modernc.org/sqlite"
)

// SQLiteRepository backs the card and transaction tables with a local
// database instead of a remote spreadsheet. ReplaceAll keeps the same
// all-or-nothing contract as the sheet overwrite by running delete and
// insert inside one SQL transaction.
type SQLiteRepository struct {
	db *sql.DB
}

var (
	_ ports.CardStore        = (*SQLiteRepository)(nil)
	_ ports.TransactionStore = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ListCards(ctx context.Context) ([]core.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT card_id, card_name, monthly_target, fixed_cost, active FROM cards ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []core.Card
	for rows.Next() {
		var c core.Card
		if err := rows.Scan(&c.ID, &c.Name, &c.MonthlyTarget, &c.FixedCost, &c.Active); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *SQLiteRepository) AppendCard(ctx context.Context, c core.Card) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (card_id, card_name, monthly_target, fixed_cost, active) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.MonthlyTarget, c.FixedCost, c.Active)
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceAllCards(ctx context.Context, cards []core.Card) error {
	return r.replaceAll(ctx, "cards", func(tx *sql.Tx) error {
		for _, c := range cards {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO cards (card_id, card_name, monthly_target, fixed_cost, active) VALUES (?, ?, ?, ?, ?)`,
				c.ID, c.Name, c.MonthlyTarget, c.FixedCost, c.Active); err != nil {
				return fmt.Errorf("insert card %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tx_id, date, month, card_id, amount, item FROM tx ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Month, &t.CardID, &t.Amount, &t.Item); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *SQLiteRepository) AppendTransaction(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tx (tx_id, date, month, card_id, amount, item) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date, t.Month, t.CardID, t.Amount, t.Item)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceAllTransactions(ctx context.Context, txs []core.Transaction) error {
	return r.replaceAll(ctx, "tx", func(tx *sql.Tx) error {
		for _, t := range txs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO tx (tx_id, date, month, card_id, amount, item) VALUES (?, ?, ?, ?, ?, ?)`,
				t.ID, t.Date, t.Month, t.CardID, t.Amount, t.Item); err != nil {
				return fmt.Errorf("insert transaction %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) replaceAll(ctx context.Context, table string, insert func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace of %s: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace of %s: %w", table, err)
	}
	return nil
}
