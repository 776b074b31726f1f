package track

import "fintrack/internal/core"

// AddBill validates and appends a bill reminder. Duplicates are allowed.
func AddBill(ds *core.Dataset, name string, due core.Date) (core.Bill, error) {
	bill, err := core.NewBill(name, due)
	if err != nil {
		return core.Bill{}, err
	}
	ds.Bills = append(ds.Bills, bill)
	return bill, nil
}

// DueOn returns the bills whose due date equals day exactly, in tracker
// order. There is no range matching: a bill due yesterday never surfaces
// again.
func DueOn(bills []core.Bill, day core.Date) []core.Bill {
	var due []core.Bill
	for _, bill := range bills {
		if bill.Due.Equal(day) {
			due = append(due, bill)
		}
	}
	return due
}
