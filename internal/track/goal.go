package track

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// AddGoal validates and appends a savings goal. Goals with the same name
// are allowed and independent.
func AddGoal(ds *core.Dataset, name string, target decimal.Decimal) (core.Goal, error) {
	goal, err := core.NewGoal(name, target)
	if err != nil {
		return core.Goal{}, err
	}
	ds.Goals = append(ds.Goals, goal)
	return goal, nil
}

// RecomputeGoalProgress sets every goal's saved amount to
// max(0, min(balance, target)). Progress mirrors the total available
// balance rather than ring-fencing money: every goal can simultaneously
// claim the full balance. That is the intended model, not a bug.
func RecomputeGoalProgress(ds *core.Dataset, balance decimal.Decimal) {
	for i := range ds.Goals {
		saved := decimal.Min(balance, ds.Goals[i].Target)
		if saved.IsNegative() {
			saved = decimal.Zero
		}
		ds.Goals[i].Saved = saved
	}
}
