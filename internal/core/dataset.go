package core

import "github.com/shopspring/decimal"

// Dataset is the whole persisted state: the ledger plus every tracker's
// entities and the receipt side table. It is the unit of persistence and
// of backup/restore. Components receive it explicitly; nothing is held in
// package-level state.
type Dataset struct {
	Transactions []Transaction
	Budgets      map[string]decimal.Decimal
	Goals        []Goal
	Bills        []Bill
	Receipts     map[int64]string
}

// NewDataset returns an empty dataset with initialized maps.
func NewDataset() *Dataset {
	return &Dataset{
		Budgets:  make(map[string]decimal.Decimal),
		Receipts: make(map[int64]string),
	}
}
