package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"cardtrack/internal/core"
	"cardtrack/internal/sheets"
)

// Notifier is told about table overwrites and appends after they succeed.
// Implementations must be cheap; failures are logged, never propagated.
type Notifier interface {
	TableChanged(ctx context.Context, table string, rows int)
}

// TrackerService drives every user interaction: one request, one full
// recompute from the store. It holds no state of its own beyond the store
// handles and the clock.
type TrackerService struct {
	cards    sheets.CardStore
	txs      sheets.TransactionStore
	now      func() time.Time
	notifier Notifier
}

type Option func(*TrackerService)

// WithClock overrides the evaluation clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *TrackerService) { s.now = now }
}

// WithNotifier attaches a change notifier.
func WithNotifier(n Notifier) Option {
	return func(s *TrackerService) { s.notifier = n }
}

func NewTrackerService(cards sheets.CardStore, txs sheets.TransactionStore, opts ...Option) *TrackerService {
	s := &TrackerService{cards: cards, txs: txs, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Window returns the months currently open for entry.
func (s *TrackerService) Window() core.Window {
	return core.CurrentWindow(s.now())
}

type DashboardView struct {
	Months        []string
	SelectedMonth string
	Rows          []core.DashboardRow
	Risk          core.MonthEndRisk
}

// Dashboard loads both tables, enforces retention, and aggregates the
// selected month. An empty or out-of-window month falls back to the current
// one.
func (s *TrackerService) Dashboard(ctx context.Context, month string) (DashboardView, error) {
	w := s.Window()
	if !w.Contains(month) {
		month = w.Current()
	}

	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return DashboardView{}, fmt.Errorf("load cards: %w", err)
	}
	txs, err := s.loadTransactions(ctx, w)
	if err != nil {
		return DashboardView{}, err
	}

	risk, err := core.AssessMonthEnd(month)
	if err != nil {
		return DashboardView{}, err
	}

	return DashboardView{
		Months:        w.Months(),
		SelectedMonth: month,
		Rows:          core.BuildDashboard(cards, txs, month),
		Risk:          risk,
	}, nil
}

// loadTransactions reads the tx table and eagerly drops rows that fell out
// of the allowed window, persisting the filtered table when anything was
// removed. Retention is idempotent, so running it on every load is safe.
func (s *TrackerService) loadTransactions(ctx context.Context, w core.Window) ([]core.Transaction, error) {
	txs, err := s.txs.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	kept := core.Retain(txs, w)
	if len(kept) != len(txs) {
		if err := s.txs.ReplaceAllTransactions(ctx, kept); err != nil {
			return nil, fmt.Errorf("persist retention cleanup: %w", err)
		}
		slog.InfoContext(ctx, "Retention cleanup removed transactions",
			"removed", len(txs)-len(kept), "kept", len(kept), "window", w.Months())
		s.notify(ctx, "tx", len(kept))
	}
	return kept, nil
}

// CleanupNow runs the retention sweep once and reports how many rows were
// dropped. Used by the one-shot sweep command; the UI paths run the same
// logic implicitly on every load.
func (s *TrackerService) CleanupNow(ctx context.Context) (removed int, err error) {
	w := s.Window()
	txs, err := s.txs.ListTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("load transactions: %w", err)
	}
	kept := core.Retain(txs, w)
	if len(kept) == len(txs) {
		return 0, nil
	}
	if err := s.txs.ReplaceAllTransactions(ctx, kept); err != nil {
		return 0, fmt.Errorf("persist retention cleanup: %w", err)
	}
	s.notify(ctx, "tx", len(kept))
	return len(txs) - len(kept), nil
}

type AddTransactionInput struct {
	CardID string
	Date   string
	Amount int64
	Item   string
}

// AddTransaction validates and appends a single payment. Input problems are
// reported before anything is written.
func (s *TrackerService) AddTransaction(ctx context.Context, in AddTransactionInput) (core.Transaction, error) {
	if in.Amount <= 0 {
		return core.Transaction{}, core.ErrInvalidAmount
	}
	date, err := core.NormalizeDate(strings.TrimSpace(in.Date))
	if err != nil {
		return core.Transaction{}, err
	}
	month := date[:7]
	if !s.Window().Contains(month) {
		return core.Transaction{}, core.ErrOutOfWindow
	}

	t := core.Transaction{
		ID:     core.NewID(),
		Date:   date,
		Month:  month,
		CardID: in.CardID,
		Amount: in.Amount,
		Item:   strings.TrimSpace(in.Item),
	}
	if err := s.txs.AppendTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}
	s.notify(ctx, "tx", 1)
	return t, nil
}

// HistoryRow is one transaction of the month grid, with the card resolved
// to its display name. When the card is gone the raw id is shown instead so
// historical rows stay readable.
type HistoryRow struct {
	ID       string
	Date     string
	CardName string
	Amount   int64
	Item     string
}

// MonthHistory returns the month's transactions, newest date first.
func (s *TrackerService) MonthHistory(ctx context.Context, month string) ([]HistoryRow, error) {
	w := s.Window()
	if !w.Contains(month) {
		month = w.Current()
	}
	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	txs, err := s.loadTransactions(ctx, w)
	if err != nil {
		return nil, err
	}

	idToName := make(map[string]string, len(cards))
	for _, c := range cards {
		idToName[c.ID] = c.Name
	}

	var rows []HistoryRow
	for _, t := range txs {
		if t.Month != month {
			continue
		}
		name, ok := idToName[t.CardID]
		if !ok {
			name = t.CardID
		}
		rows = append(rows, HistoryRow{ID: t.ID, Date: t.Date, CardName: name, Amount: t.Amount, Item: t.Item})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	return rows, nil
}

// SaveTransactions reconciles the edited month grid back into the full
// table. Any invalid row aborts the whole batch before the write.
func (s *TrackerService) SaveTransactions(ctx context.Context, month string, edits []core.TxEdit) error {
	w := s.Window()
	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return fmt.Errorf("load cards: %w", err)
	}
	txs, err := s.txs.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	next, err := core.ReconcileMonth(txs, month, edits, cards, w)
	if err != nil {
		return err
	}
	if err := s.txs.ReplaceAllTransactions(ctx, next); err != nil {
		return fmt.Errorf("persist reconciled transactions: %w", err)
	}
	s.notify(ctx, "tx", len(next))
	return nil
}

type AddCardInput struct {
	Name          string
	MonthlyTarget int64
	FixedCost     int64
}

// AddCard appends a new active card.
func (s *TrackerService) AddCard(ctx context.Context, in AddCardInput) (core.Card, error) {
	c := core.Card{
		ID:            core.NewID(),
		Name:          strings.TrimSpace(in.Name),
		MonthlyTarget: in.MonthlyTarget,
		FixedCost:     in.FixedCost,
		Active:        true,
	}
	if err := c.Validate(); err != nil {
		return core.Card{}, err
	}
	if err := s.cards.AppendCard(ctx, c); err != nil {
		return core.Card{}, fmt.Errorf("append card: %w", err)
	}
	s.notify(ctx, "cards", 1)
	return c, nil
}

func (s *TrackerService) ListCards(ctx context.Context) ([]core.Card, error) {
	return s.cards.ListCards(ctx)
}

// SaveCards overwrites the card table with the edited grid. Identifiers are
// immutable; the grid can change names, targets, fixed costs and the active
// flag. Any invalid card aborts the whole batch.
func (s *TrackerService) SaveCards(ctx context.Context, cards []core.Card) error {
	for _, c := range cards {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("card %q: %w", c.ID, err)
		}
	}
	if err := s.cards.ReplaceAllCards(ctx, cards); err != nil {
		return fmt.Errorf("persist cards: %w", err)
	}
	s.notify(ctx, "cards", len(cards))
	return nil
}

func (s *TrackerService) notify(ctx context.Context, table string, rows int) {
	if s.notifier == nil {
		return
	}
	s.notifier.TableChanged(ctx, table, rows)
}
