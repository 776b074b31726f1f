package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode response",
			"error", err, "url", r.URL.Path)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	slog.ErrorContext(r.Context(), "Request failed",
		"error", err,
		"status", status,
		"method", r.Method,
		"url", r.URL.Path)
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

// statusFor maps the core error taxonomy to HTTP statuses: validation
// failures are unprocessable input, unknown ids are not found, corrupt
// blobs are bad requests, everything else is a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidTarget):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrCorruptSnapshot):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type transactionResponse struct {
	PrimeID     int64  `json:"primeId"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	ReceiptURL  string `json:"receiptUrl,omitempty"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		PrimeID:     tx.ID,
		Date:        tx.Date().Format("2006-01-02"),
		Description: tx.Description,
		Amount:      tx.Amount.StringFixed(2),
		Type:        string(tx.Kind),
		Category:    tx.Category,
		ReceiptURL:  tx.ReceiptRef,
	}
}

type budgetResponse struct {
	Category string `json:"category"`
	Limit    string `json:"limit"`
	Spent    string `json:"spent"`
	Over     bool   `json:"over"`
}

func toBudgetResponse(b services.BudgetStatus) budgetResponse {
	return budgetResponse{
		Category: b.Category,
		Limit:    b.Limit.StringFixed(2),
		Spent:    b.Spent.StringFixed(2),
		Over:     b.Over,
	}
}

type goalResponse struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Saved  string `json:"saved"`
}

func toGoalResponse(g core.Goal) goalResponse {
	return goalResponse{
		Name:   g.Name,
		Target: g.Target.StringFixed(2),
		Saved:  g.Saved.StringFixed(2),
	}
}

type billResponse struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

func toBillResponse(b core.Bill) billResponse {
	return billResponse{Name: b.Name, Date: b.Due.String()}
}

type monthTotalsResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type summaryResponse struct {
	Balance        string                         `json:"balance"`
	CategoryTotals map[string]string              `json:"categoryTotals"`
	Monthly        map[string]monthTotalsResponse `json:"monthly"`
}

func toSummaryResponse(d services.Derived) summaryResponse {
	resp := summaryResponse{
		Balance:        d.Balance.StringFixed(2),
		CategoryTotals: make(map[string]string, len(d.CategoryTotals)),
		Monthly:        make(map[string]monthTotalsResponse, len(d.Monthly)),
	}
	for category, total := range d.CategoryTotals {
		resp.CategoryTotals[category] = total.StringFixed(2)
	}
	for month, totals := range d.Monthly {
		resp.Monthly[month] = monthTotalsResponse{
			Income:  totals.Income.StringFixed(2),
			Expense: totals.Expense.StringFixed(2),
		}
	}
	return resp
}
