package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// ErrCorruptSnapshot marks a stored or imported blob that does not decode.
// Callers surface it; a corrupt blob is never silently replaced with an
// empty dataset.
var ErrCorruptSnapshot = errors.New("corrupt dataset snapshot")

// Wire schema of the persisted blob. Field names match the historical
// format, so old backups restore unchanged.
type (
	blobDataset struct {
		Transactions []blobTransaction  `json:"transactions"`
		Budgets      map[string]float64 `json:"budgets"`
		Goals        []blobGoal         `json:"goals"`
		Bills        []blobBill         `json:"bills"`
		Receipts     map[string]string  `json:"receipts"`
	}

	blobTransaction struct {
		PrimeID     int64   `json:"primeId"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Type        string  `json:"type"`
		Category    string  `json:"category"`
		ReceiptURL  string  `json:"receiptUrl"`
	}

	blobGoal struct {
		Name  string  `json:"name"`
		Amt   float64 `json:"amt"`
		Saved float64 `json:"saved"`
	}

	blobBill struct {
		Name string `json:"name"`
		Date string `json:"date"`
	}
)

// EncodeDataset serializes the dataset to the wire schema.
func EncodeDataset(ds *core.Dataset) ([]byte, error) {
	blob := blobDataset{
		Transactions: make([]blobTransaction, len(ds.Transactions)),
		Budgets:      make(map[string]float64, len(ds.Budgets)),
		Goals:        make([]blobGoal, len(ds.Goals)),
		Bills:        make([]blobBill, len(ds.Bills)),
		Receipts:     make(map[string]string, len(ds.Receipts)),
	}

	for i, tx := range ds.Transactions {
		blob.Transactions[i] = blobTransaction{
			PrimeID:     tx.ID,
			Description: tx.Description,
			Amount:      tx.Amount.InexactFloat64(),
			Type:        string(tx.Kind),
			Category:    tx.Category,
			ReceiptURL:  tx.ReceiptRef,
		}
	}
	for category, limit := range ds.Budgets {
		blob.Budgets[category] = limit.InexactFloat64()
	}
	for i, goal := range ds.Goals {
		blob.Goals[i] = blobGoal{
			Name:  goal.Name,
			Amt:   goal.Target.InexactFloat64(),
			Saved: goal.Saved.InexactFloat64(),
		}
	}
	for i, bill := range ds.Bills {
		blob.Bills[i] = blobBill{Name: bill.Name, Date: bill.Due.String()}
	}
	for id, ref := range ds.Receipts {
		blob.Receipts[strconv.FormatInt(id, 10)] = ref
	}

	out, err := json.Marshal(blob)
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return out, nil
}

// DecodeDataset parses a wire-schema blob back into a dataset. Missing
// top-level keys decode to empty collections; anything that does not parse
// wraps ErrCorruptSnapshot.
func DecodeDataset(data []byte) (*core.Dataset, error) {
	var blob blobDataset
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	ds := core.NewDataset()
	for _, tx := range blob.Transactions {
		kind := core.Kind(tx.Type)
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: unknown transaction type %q", ErrCorruptSnapshot, tx.Type)
		}
		ds.Transactions = append(ds.Transactions, core.Transaction{
			ID:          tx.PrimeID,
			Description: tx.Description,
			Amount:      decimal.NewFromFloat(tx.Amount),
			Kind:        kind,
			Category:    tx.Category,
			ReceiptRef:  tx.ReceiptURL,
		})
	}
	for category, limit := range blob.Budgets {
		ds.Budgets[category] = decimal.NewFromFloat(limit)
	}
	for _, goal := range blob.Goals {
		ds.Goals = append(ds.Goals, core.Goal{
			Name:   goal.Name,
			Target: decimal.NewFromFloat(goal.Amt),
			Saved:  decimal.NewFromFloat(goal.Saved),
		})
	}
	for _, bill := range blob.Bills {
		due, err := core.ParseDate(bill.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: bill %q has bad date %q", ErrCorruptSnapshot, bill.Name, bill.Date)
		}
		ds.Bills = append(ds.Bills, core.Bill{Name: bill.Name, Due: due})
	}
	for key, ref := range blob.Receipts {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad receipt key %q", ErrCorruptSnapshot, key)
		}
		ds.Receipts[id] = ref
	}

	return ds, nil
}
