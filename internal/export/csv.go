// Package export produces the file-based surfaces: CSV transaction export,
// backup/restore blobs, and the display formatting helpers the rendering
// layer uses.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"fintrack/internal/core"
)

// CSVFilename is the suggested name for a transactions export download.
const CSVFilename = "transactions.csv"

var csvHeader = []string{"Date", "Description", "Amount", "Type", "Category"}

// TransactionsCSV renders the ledger as CSV, one row per transaction in
// ledger order. Dates are ISO YYYY-MM-DD and amounts carry exactly two
// decimals. Fields go through encoding/csv, so embedded commas are quoted
// instead of corrupting the row.
func TransactionsCSV(txs []core.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range txs {
		row := []string{
			tx.Date().Format("2006-01-02"),
			tx.Description,
			tx.Amount.StringFixed(2),
			string(tx.Kind),
			tx.Category,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
