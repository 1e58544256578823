package core

import (
	"fmt"
	"time"
)

// TxEdit is one row of the user-edited month grid. Cards are tagged by
// display name (the grid shows names, not ids) and the date is free text.
type TxEdit struct {
	ID       string
	CardName string
	Date     string
	Amount   int64
	Item     string
	Delete   bool
}

var editDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
}

// NormalizeDate canonicalizes a user-entered date to YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	for _, layout := range editDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrBadDate, s)
}

// ReconcileMonth folds an edited view of one month back into the full
// transaction set:
//
//  1. rows flagged for deletion are dropped,
//  2. card ids are re-resolved from the (possibly changed) display names;
//     a name that matches no card falls back to the row's existing card id,
//     so rows whose card was deleted survive an untouched save,
//  3. amounts are validated and dates normalized; one bad row aborts the
//     whole batch so the caller writes either everything or nothing,
//  4. the month is recomputed from the date, never taken from the edit,
//  5. the target month's rows in the full set are replaced by the batch,
//  6. retention runs again, since an edited date can leave the window.
//
// Rows with an empty id were added in the grid and get a fresh one.
func ReconcileMonth(all []Transaction, month string, edits []TxEdit, cards []Card, w Window) ([]Transaction, error) {
	nameToID := make(map[string]string, len(cards))
	for _, c := range cards {
		nameToID[c.Name] = c.ID
	}
	existingCard := make(map[string]string, len(all))
	for _, t := range all {
		existingCard[t.ID] = t.CardID
	}

	reconciled := make([]Transaction, 0, len(edits))
	for _, e := range edits {
		if e.Delete {
			continue
		}
		if e.Amount <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, e.Amount)
		}
		cardID, ok := nameToID[e.CardName]
		if !ok {
			cardID, ok = existingCard[e.ID]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownCard, e.CardName)
			}
		}
		date, err := NormalizeDate(e.Date)
		if err != nil {
			return nil, err
		}
		id := e.ID
		if id == "" {
			id = NewID()
		}
		reconciled = append(reconciled, Transaction{
			ID:     id,
			Date:   date,
			Month:  date[:7],
			CardID: cardID,
			Amount: e.Amount,
			Item:   e.Item,
		})
	}

	next := make([]Transaction, 0, len(all))
	for _, t := range all {
		if t.Month != month {
			next = append(next, t)
		}
	}
	next = append(next, reconciled...)
	return Retain(next, w), nil
}
