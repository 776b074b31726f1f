package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, r, http.StatusOK, toSummaryResponse(s.tracker.Derived()))
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	alerts := s.tracker.Derived().Alerts
	if alerts == nil {
		alerts = []string{}
	}
	writeJSON(w, r, http.StatusOK, map[string][]string{"alerts": alerts})
}

type budgetPayload struct {
	Category string `json:"category"`
	Limit    string `json:"limit"`
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		statuses := s.tracker.Budgets()
		resp := make([]budgetResponse, len(statuses))
		for i, status := range statuses {
			resp[i] = toBudgetResponse(status)
		}
		writeJSON(w, r, http.StatusOK, resp)

	case http.MethodPost:
		var payload budgetPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
			return
		}
		limit, err := decimal.NewFromString(strings.TrimSpace(payload.Limit))
		if err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, core.ErrInvalidAmount)
			return
		}
		if err := s.tracker.SetBudget(r.Context(), payload.Category, limit); err != nil {
			writeError(w, r, statusFor(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type goalPayload struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		goals := s.tracker.Goals()
		resp := make([]goalResponse, len(goals))
		for i, goal := range goals {
			resp[i] = toGoalResponse(goal)
		}
		writeJSON(w, r, http.StatusOK, resp)

	case http.MethodPost:
		var payload goalPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
			return
		}
		target, err := decimal.NewFromString(strings.TrimSpace(payload.Target))
		if err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, core.ErrInvalidTarget)
			return
		}
		goal, err := s.tracker.AddGoal(r.Context(), payload.Name, target)
		if err != nil {
			writeError(w, r, statusFor(err), err)
			return
		}
		writeJSON(w, r, http.StatusCreated, toGoalResponse(goal))

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type billPayload struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

func (s *Server) handleBills(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		bills := s.tracker.Bills()
		resp := make([]billResponse, len(bills))
		for i, bill := range bills {
			resp[i] = toBillResponse(bill)
		}
		writeJSON(w, r, http.StatusOK, resp)

	case http.MethodPost:
		var payload billPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
			return
		}
		due, err := core.ParseDate(payload.Date)
		if err != nil {
			writeError(w, r, statusFor(err), err)
			return
		}
		bill, err := s.tracker.AddBill(r.Context(), payload.Name, due)
		if err != nil {
			writeError(w, r, statusFor(err), err)
			return
		}
		writeJSON(w, r, http.StatusCreated, toBillResponse(bill))

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
