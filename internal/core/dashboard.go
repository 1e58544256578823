package core

import "sort"

// DashboardRow is the derived per-card view for one month. Nothing here is
// persisted; it is rebuilt from cards and transactions on every request.
type DashboardRow struct {
	CardID          string
	CardName        string
	MonthlyTarget   int64
	FixedCost       int64
	EffectiveTarget int64
	Spent           int64
	Remaining       int64
	Met             bool
}

// BuildDashboard aggregates spend per active card for the given month.
// Inactive cards are excluded entirely. A card with no transactions spent 0.
// A card whose fixed cost fully covers the target is trivially met; that is
// intended, no further spend is required on it.
//
// Rows are sorted unmet first, then by remaining ascending, then by name.
func BuildDashboard(cards []Card, txs []Transaction, month string) []DashboardRow {
	spent := make(map[string]int64)
	for _, t := range txs {
		if t.Month == month {
			spent[t.CardID] += t.Amount
		}
	}

	rows := make([]DashboardRow, 0, len(cards))
	for _, c := range cards {
		if !c.Active {
			continue
		}
		eff := c.EffectiveTarget()
		s := spent[c.ID]
		remaining := eff - s
		if remaining < 0 {
			remaining = 0
		}
		rows = append(rows, DashboardRow{
			CardID:          c.ID,
			CardName:        c.Name,
			MonthlyTarget:   c.MonthlyTarget,
			FixedCost:       c.FixedCost,
			EffectiveTarget: eff,
			Spent:           s,
			Remaining:       remaining,
			Met:             s >= eff,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Met != rows[j].Met {
			return !rows[i].Met
		}
		if rows[i].Remaining != rows[j].Remaining {
			return rows[i].Remaining < rows[j].Remaining
		}
		return rows[i].CardName < rows[j].CardName
	})
	return rows
}
