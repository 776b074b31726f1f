// Package http exposes the tracker's operations as a JSON API. The
// rendering layer is a client of this API; it re-reads state whenever it
// receives a dataset-changed notification.
package http

import (
	"net/http"

	"fintrack/internal/services"
)

type Server struct {
	http.Server
	tracker *services.Tracker
}

func NewServer(addr string, tracker *services.Tracker) *Server {
	s := &Server{tracker: tracker}
	s.Addr = addr

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/alerts", s.handleAlerts)
	mux.HandleFunc("/api/budgets", s.handleBudgets)
	mux.HandleFunc("/api/goals", s.handleGoals)
	mux.HandleFunc("/api/bills", s.handleBills)
	mux.HandleFunc("/api/export/csv", s.handleExportCSV)
	mux.HandleFunc("/api/backup", s.handleBackup)
	mux.HandleFunc("/api/restore", s.handleRestore)
	s.Handler = withRequestLogging(mux)

	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
