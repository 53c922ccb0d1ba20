// Package query derives read views from a ledger snapshot: filtered
// subsets, display ordering, summary totals and the per-category expense
// breakdown. Everything here is pure; the snapshot is never mutated.
package query

import (
	"sort"

	"khata/internal/core"
)

// Filter narrows a snapshot. Zero values mean "no constraint on that
// dimension": an empty category matches everything, zero dates leave the
// range open on that side. Date bounds are inclusive.
type Filter struct {
	Category core.Category
	From     core.Date
	To       core.Date
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f.Category == "" && f.From.IsZero() && f.To.IsZero()
}

func (f Filter) matches(tx core.Transaction) bool {
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if !f.From.IsZero() && tx.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && tx.Date.After(f.To) {
		return false
	}
	return true
}

// Apply returns the matching subset in the snapshot's original order.
func Apply(txs []core.Transaction, f Filter) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// SortByDateDesc returns a copy ordered most-recent-first. The sort is
// stable: ties keep their original relative order since no secondary key
// is defined.
func SortByDateDesc(txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Summarize totals the snapshot: income is the sum of positive amounts,
// expenses the sum of negative ones (kept negative), balance their sum.
func Summarize(txs []core.Transaction) core.Summary {
	var s core.Summary
	for _, tx := range txs {
		if tx.AmountCents > 0 {
			s.IncomeCents += tx.AmountCents
		} else {
			s.ExpenseCents += tx.AmountCents
		}
	}
	s.BalanceCents = s.IncomeCents + s.ExpenseCents
	return s
}

// ByCategory sums absolute expense magnitudes per category. Income is
// excluded: the result answers "where did expense money go", not overall
// cash flow.
func ByCategory(txs []core.Transaction) map[core.Category]int64 {
	out := make(map[core.Category]int64)
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		out[tx.Category] += -tx.AmountCents
	}
	return out
}

// CategoryBreakdown is ByCategory as a slice ordered by descending
// total, for deterministic chart rendering.
func CategoryBreakdown(txs []core.Transaction) []core.CategoryAmount {
	totals := ByCategory(txs)
	out := make([]core.CategoryAmount, 0, len(totals))
	for cat, cents := range totals {
		out = append(out, core.CategoryAmount{Category: cat, Cents: cents})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cents != out[j].Cents {
			return out[i].Cents > out[j].Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}
