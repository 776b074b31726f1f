// Package track owns the budget, goal and bill trackers: the entities they
// hold inside the dataset and the values they derive from the ledger.
package track

import (
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// SetLimit records a spending limit for a category, overwriting any
// existing one. Last write wins.
func SetLimit(ds *core.Dataset, category string, limit decimal.Decimal) error {
	if strings.TrimSpace(category) == "" {
		return core.ErrEmptyCategory
	}
	ds.Budgets[category] = limit
	return nil
}

// SpentFor sums expense amounts in the category, in ledger order.
func SpentFor(txs []core.Transaction, category string) decimal.Decimal {
	spent := decimal.Zero
	for _, tx := range txs {
		if tx.Kind == core.Expense && tx.Category == category {
			spent = spent.Add(tx.Amount)
		}
	}
	return spent
}

// IsOverBudget reports whether spending strictly exceeds the limit.
// Spending exactly at the limit is not an overspend.
func IsOverBudget(txs []core.Transaction, category string, limit decimal.Decimal) bool {
	return SpentFor(txs, category).GreaterThan(limit)
}
