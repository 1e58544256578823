package google

import (
	"strconv"
	"strings"

	"cardtrack/internal/core"
)

// record is one sheet row keyed by header name. Columns appear and
// disappear across schema versions (fixed_cost and item arrived late), so
// every lookup tolerates a missing key.
type record map[string]string

var (
	cardsHeader = []string{"card_id", "card_name", "monthly_target", "fixed_cost", "active"}
	txHeader    = []string{"tx_id", "date", "month", "card_id", "amount", "item"}
)

func parseCard(rec record) core.Card {
	return core.Card{
		ID:            rec["card_id"],
		Name:          rec["card_name"],
		MonthlyTarget: parseAmount(rec["monthly_target"]),
		FixedCost:     parseAmount(rec["fixed_cost"]), // absent in older rows, defaults to 0
		Active:        core.ParseActive(rec["active"]),
	}
}

func parseTransaction(rec record) core.Transaction {
	date := rec["date"]
	month := rec["month"]
	if month == "" && len(date) >= 7 {
		month = date[:7]
	}
	return core.Transaction{
		ID:     rec["tx_id"],
		Date:   date,
		Month:  month,
		CardID: rec["card_id"],
		Amount: parseAmount(rec["amount"]),
		Item:   rec["item"],
	}
}

func cardRow(c core.Card) []any {
	return []any{c.ID, c.Name, c.MonthlyTarget, c.FixedCost, strconv.FormatBool(c.Active)}
}

func transactionRow(t core.Transaction) []any {
	return []any{t.ID, t.Date, t.Month, t.CardID, t.Amount, t.Item}
}

// parseAmount coerces the sheet's numeric cells (plain ints, thousands
// separators, or spreadsheet floats) to an integer amount; anything
// unreadable becomes 0 rather than an error.
func parseAmount(s string) int64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			return int64(f - 0.5)
		}
		return int64(f + 0.5)
	}
	return 0
}
