// Package ledger implements the transaction store: add, update, remove and
// lookup over the dataset's ordered transaction sequence, plus maintenance
// of the receipt side table.
package ledger

import (
	"errors"

	"fintrack/internal/core"
)

// ErrNotFound is returned by Update when no transaction carries the id.
var ErrNotFound = errors.New("transaction not found")

// Add validates tx and appends it to the ledger. Insertion order is
// display order. A non-empty receipt reference is also recorded in the
// receipt table under the transaction id.
func Add(ds *core.Dataset, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if tx.ReceiptRef != "" {
		ds.Receipts[tx.ID] = tx.ReceiptRef
	}
	ds.Transactions = append(ds.Transactions, tx)
	return tx, nil
}

// Remove deletes the first transaction matching id and its receipt entry.
// It reports whether a removal occurred.
func Remove(ds *core.Dataset, id int64) bool {
	i := indexOf(ds, id)
	if i < 0 {
		return false
	}
	ds.Transactions = append(ds.Transactions[:i], ds.Transactions[i+1:]...)
	delete(ds.Receipts, id)
	return true
}

// Update validates repl and replaces the first transaction matching id,
// preserving its position in the sequence even when the id changes. The
// receipt entry follows the transaction: the entry under the old id is
// dropped and any reference is re-keyed under the new id.
func Update(ds *core.Dataset, id int64, repl core.Transaction) (core.Transaction, error) {
	if err := repl.Validate(); err != nil {
		return core.Transaction{}, err
	}
	i := indexOf(ds, id)
	if i < 0 {
		return core.Transaction{}, ErrNotFound
	}
	delete(ds.Receipts, id)
	if repl.ReceiptRef != "" {
		ds.Receipts[repl.ID] = repl.ReceiptRef
	}
	ds.Transactions[i] = repl
	return repl, nil
}

// Find returns the first transaction matching id.
func Find(ds *core.Dataset, id int64) (core.Transaction, bool) {
	i := indexOf(ds, id)
	if i < 0 {
		return core.Transaction{}, false
	}
	return ds.Transactions[i], true
}

func indexOf(ds *core.Dataset, id int64) int {
	for i, tx := range ds.Transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}
