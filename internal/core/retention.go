package core

// Retain filters transactions down to those inside the allowed window,
// preserving order. It is idempotent: retaining an already-clean set returns
// the same rows. The caller owns the side effect of persisting the result
// when rows were dropped.
func Retain(txs []Transaction, w Window) []Transaction {
	kept := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if w.Contains(t.Month) {
			kept = append(kept, t)
		}
	}
	return kept
}
