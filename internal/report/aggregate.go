// Package report derives balance, category totals and monthly summaries
// from the transaction sequence. Every function is pure: same input, same
// output, no hidden state.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// MonthTotals holds the income and expense sums for one calendar month.
type MonthTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Balance sums income minus expense in ledger order.
func Balance(txs []core.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range txs {
		switch tx.Kind {
		case core.Income:
			balance = balance.Add(tx.Amount)
		case core.Expense:
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

// CategoryExpenseTotals sums expense amounts per category. Categories with
// no expense are absent from the result.
func CategoryExpenseTotals(txs []core.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Kind != core.Expense {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// MonthlySummary groups transactions by the calendar month of their
// timestamp as observed in loc, keyed YYYY-MM. The location must match the
// one the rendering layer displays dates in, otherwise totals and shown
// dates disagree.
func MonthlySummary(txs []core.Transaction, loc *time.Location) map[string]MonthTotals {
	months := make(map[string]MonthTotals)
	for _, tx := range txs {
		key := tx.Date().In(loc).Format("2006-01")
		totals := months[key]
		switch tx.Kind {
		case core.Income:
			totals.Income = totals.Income.Add(tx.Amount)
		case core.Expense:
			totals.Expense = totals.Expense.Add(tx.Amount)
		}
		months[key] = totals
	}
	return months
}
