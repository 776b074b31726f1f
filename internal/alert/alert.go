// Package alert derives the notification strings shown after every
// mutation. Computation is stateless: no diffing, no de-duplication across
// calls.
package alert

import (
	"fmt"
	"sort"

	"fintrack/internal/core"
	"fintrack/internal/track"
)

// Compute returns the ordered alert sequence: one entry per overspent
// budget category, then one per bill due today. Categories are visited in
// sorted order so the sequence is deterministic across recomputes.
func Compute(ds *core.Dataset, today core.Date) []string {
	var alerts []string

	categories := make([]string, 0, len(ds.Budgets))
	for category := range ds.Budgets {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		if track.IsOverBudget(ds.Transactions, category, ds.Budgets[category]) {
			alerts = append(alerts, fmt.Sprintf("Overspent in %s!", category))
		}
	}

	for _, bill := range track.DueOn(ds.Bills, today) {
		alerts = append(alerts, fmt.Sprintf("Bill due today: %s", bill.Name))
	}

	return alerts
}
