package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

type transactionPayload struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	ReceiptURL  string `json:"receiptUrl"`
}

// toInput parses the payload into a validated-later service input. Amounts
// arrive as strings so a non-numeric value fails here instead of being
// coerced; dates accept YYYY-MM-DD or RFC 3339.
func (p transactionPayload) toInput() (services.TransactionInput, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(p.Amount))
	if err != nil {
		return services.TransactionInput{}, core.ErrInvalidAmount
	}
	when, err := parseWhen(p.Date)
	if err != nil {
		return services.TransactionInput{}, err
	}
	return services.TransactionInput{
		Description: p.Description,
		Amount:      amount,
		Kind:        core.Kind(p.Type),
		Category:    p.Category,
		When:        when,
		ReceiptRef:  p.ReceiptURL,
	}, nil
}

func parseWhen(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, core.ErrInvalidDate
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		txs := s.tracker.Transactions()
		resp := make([]transactionResponse, len(txs))
		for i, tx := range txs {
			resp[i] = toTransactionResponse(tx)
		}
		writeJSON(w, r, http.StatusOK, resp)

	case http.MethodPost:
		var payload transactionPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
			return
		}
		input, err := payload.toInput()
		if err != nil {
			writeError(w, r, statusFor(err), err)
			return
		}
		tx, err := s.tracker.AddTransaction(r.Context(), input)
		if err != nil {
			writeError(w, r, statusFor(err), err)
			return
		}
		writeJSON(w, r, http.StatusCreated, toTransactionResponse(tx))

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("bad transaction id %q", idStr))
		return
	}

	switch r.Method {
	case http.MethodGet:
		tx, ok := s.tracker.FindTransaction(id)
		if !ok {
			writeError(w, r, http.StatusNotFound, fmt.Errorf("transaction %d not found", id))
			return
		}
		writeJSON(w, r, http.StatusOK, toTransactionResponse(tx))

	case http.MethodPut:
		var payload transactionPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
			return
		}
		input, err := payload.toInput()
		if err != nil {
			writeError(w, r, statusFor(err), err)
			return
		}
		tx, err := s.tracker.UpdateTransaction(r.Context(), id, input)
		if err != nil {
			writeError(w, r, statusFor(err), err)
			return
		}
		writeJSON(w, r, http.StatusOK, toTransactionResponse(tx))

	case http.MethodDelete:
		removed, err := s.tracker.RemoveTransaction(r.Context(), id)
		if err != nil {
			writeError(w, r, statusFor(err), err)
			return
		}
		if !removed {
			writeError(w, r, http.StatusNotFound, fmt.Errorf("transaction %d not found", id))
			return
		}
		slog.InfoContext(r.Context(), "Transaction deleted via API", "id", id)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
