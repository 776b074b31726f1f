package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/internal/services"
)

type fakeStore struct {
	blob  []byte
	found bool
}

func (f *fakeStore) Get(ctx context.Context) ([]byte, bool, error) {
	return f.blob, f.found, nil
}

func (f *fakeStore) Set(ctx context.Context, blob []byte) error {
	f.blob = append([]byte(nil), blob...)
	f.found = true
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	tracker, err := services.NewTracker(context.Background(), &fakeStore{}, nil, time.UTC)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	return NewServer(":0", tracker)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var payload *bytes.Reader
	if body != "" {
		payload = bytes.NewReader([]byte(body))
	} else {
		payload = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCreateTransaction(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"description":"Coffee","amount":"4.50","type":"expense","category":"Food","date":"2024-01-05"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		PrimeID  int64  `json:"primeId"`
		Date     string `json:"date"`
		Amount   string `json:"amount"`
		Type     string `json:"type"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	wantID := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC).UnixMilli()
	if resp.PrimeID != wantID {
		t.Errorf("primeId = %d, want %d", resp.PrimeID, wantID)
	}
	if resp.Date != "2024-01-05" || resp.Amount != "4.50" || resp.Type != "expense" {
		t.Errorf("response = %+v", resp)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty description", `{"description":"","amount":"4.50","type":"expense","category":"Food","date":"2024-01-05"}`, http.StatusUnprocessableEntity},
		{"non-numeric amount", `{"description":"Coffee","amount":"abc","type":"expense","category":"Food","date":"2024-01-05"}`, http.StatusUnprocessableEntity},
		{"zero amount accepted", `{"description":"Refund","amount":"0","type":"expense","category":"Food","date":"2024-01-05"}`, http.StatusCreated},
		{"unknown type", `{"description":"Coffee","amount":"4.50","type":"transfer","category":"Food","date":"2024-01-05"}`, http.StatusUnprocessableEntity},
		{"bad date", `{"description":"Coffee","amount":"4.50","type":"expense","category":"Food","date":"someday"}`, http.StatusUnprocessableEntity},
		{"not json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/transactions", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d, body = %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestTransactionByID(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"description":"Coffee","amount":"4.50","type":"expense","category":"Food","date":"2024-01-05"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %s", rec.Body.String())
	}
	var created struct {
		PrimeID int64 `json:"primeId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	path := fmt.Sprintf("/api/transactions/%d", created.PrimeID)

	if rec := doJSON(t, srv, http.MethodGet, path, ""); rec.Code != http.StatusOK {
		t.Errorf("GET status = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPut, path,
		`{"description":"Espresso","amount":"3.20","type":"expense","category":"Food","date":"2024-01-06"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		PrimeID int64 `json:"primeId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if updated.PrimeID == created.PrimeID {
		t.Error("id unchanged after date change")
	}

	// The old id is gone once the date moved.
	if rec := doJSON(t, srv, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET old id status = %d, want 404", rec.Code)
	}

	newPath := fmt.Sprintf("/api/transactions/%d", updated.PrimeID)
	if rec := doJSON(t, srv, http.MethodDelete, newPath, ""); rec.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d", rec.Code)
	}
	if rec := doJSON(t, srv, http.MethodDelete, newPath, ""); rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", rec.Code)
	}
}

func TestTransactionBadID(t *testing.T) {
	srv := newTestServer(t)
	if rec := doJSON(t, srv, http.MethodGet, "/api/transactions/abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSummaryReflectsMutations(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"description":"Salary","amount":"1000","type":"income","category":"Work","date":"2024-01-01"}`)
	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"description":"Coffee","amount":"4.50","type":"expense","category":"Food","date":"2024-01-05"}`)

	rec := doJSON(t, srv, http.MethodGet, "/api/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Balance        string            `json:"balance"`
		CategoryTotals map[string]string `json:"categoryTotals"`
		Monthly        map[string]struct {
			Income  string `json:"income"`
			Expense string `json:"expense"`
		} `json:"monthly"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if resp.Balance != "995.50" {
		t.Errorf("balance = %s, want 995.50", resp.Balance)
	}
	if resp.CategoryTotals["Food"] != "4.50" {
		t.Errorf("categoryTotals = %v", resp.CategoryTotals)
	}
	if jan := resp.Monthly["2024-01"]; jan.Income != "1000.00" || jan.Expense != "4.50" {
		t.Errorf("monthly = %v", resp.Monthly)
	}
}

func TestAlertsEmptyIsArray(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/alerts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"alerts":[]`) {
		t.Errorf("body = %s, want alerts as empty array", rec.Body.String())
	}
}

func TestBudgetOverspendAlert(t *testing.T) {
	srv := newTestServer(t)
	if rec := doJSON(t, srv, http.MethodPost, "/api/budgets", `{"category":"Food","limit":"100"}`); rec.Code != http.StatusNoContent {
		t.Fatalf("set budget status = %d", rec.Code)
	}
	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"description":"Groceries","amount":"150","type":"expense","category":"Food","date":"2024-01-05"}`)

	rec := doJSON(t, srv, http.MethodGet, "/api/alerts", "")
	if !strings.Contains(rec.Body.String(), "Overspent in Food!") {
		t.Errorf("alerts body = %s", rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/budgets", "")
	var budgets []struct {
		Category string `json:"category"`
		Spent    string `json:"spent"`
		Over     bool   `json:"over"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &budgets); err != nil {
		t.Fatalf("decode budgets: %v", err)
	}
	if len(budgets) != 1 || !budgets[0].Over || budgets[0].Spent != "150.00" {
		t.Errorf("budgets = %+v", budgets)
	}
}

func TestGoalsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"description":"Salary","amount":"1000","type":"income","category":"Work","date":"2024-01-01"}`)

	rec := doJSON(t, srv, http.MethodPost, "/api/goals", `{"name":"Vacation","target":"500"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var goal struct {
		Saved string `json:"saved"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &goal); err != nil {
		t.Fatalf("decode goal: %v", err)
	}
	if goal.Saved != "500.00" {
		t.Errorf("saved = %s, want 500.00", goal.Saved)
	}

	if rec := doJSON(t, srv, http.MethodPost, "/api/goals", `{"name":"","target":"500"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty name status = %d", rec.Code)
	}
}

func TestBillsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/bills", `{"name":"Rent","date":"2024-02-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if rec := doJSON(t, srv, http.MethodPost, "/api/bills", `{"name":"Rent","date":"first of feb"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad date status = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/bills", "")
	var bills []struct {
		Name string `json:"name"`
		Date string `json:"date"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &bills); err != nil {
		t.Fatalf("decode bills: %v", err)
	}
	if len(bills) != 1 || bills[0].Date != "2024-02-01" {
		t.Errorf("bills = %+v", bills)
	}
}

func TestExportCSV(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"description":"Coffee","amount":"4.50","type":"expense","category":"Food","date":"2024-01-05"}`)

	rec := doJSON(t, srv, http.MethodGet, "/api/export/csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "2024-01-05,Coffee,4.50,expense,Food") {
		t.Errorf("csv body = %s", rec.Body.String())
	}
}

func TestBackupAndRestore(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"description":"Salary","amount":"1000","type":"income","category":"Work","date":"2024-01-01"}`)

	backup := doJSON(t, srv, http.MethodGet, "/api/backup", "")
	if backup.Code != http.StatusOK {
		t.Fatalf("backup status = %d", backup.Code)
	}

	restored := newTestServer(t)
	if rec := doJSON(t, restored, http.MethodPost, "/api/restore", backup.Body.String()); rec.Code != http.StatusNoContent {
		t.Fatalf("restore status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec := doJSON(t, restored, http.MethodGet, "/api/summary", "")
	if !strings.Contains(rec.Body.String(), `"balance":"1000.00"`) {
		t.Errorf("summary after restore = %s", rec.Body.String())
	}
}

func TestRestoreRejectsCorruptBackup(t *testing.T) {
	srv := newTestServer(t)
	if rec := doJSON(t, srv, http.MethodPost, "/api/restore", `not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	withRequestLogging(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if !strings.HasPrefix(seen, "req_") {
		t.Errorf("request id = %q, want req_ prefix", seen)
	}
	if RequestID(context.Background()) != "" {
		t.Error("RequestID on bare context should be empty")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/api/transactions"},
		{http.MethodPost, "/api/summary"},
		{http.MethodPost, "/api/alerts"},
		{http.MethodPut, "/api/budgets"},
		{http.MethodPost, "/api/export/csv"},
		{http.MethodGet, "/api/restore"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := doJSON(t, srv, tt.method, tt.path, "")
			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want 405", rec.Code)
			}
			if rec.Header().Get("Allow") == "" {
				t.Error("missing Allow header")
			}
		})
	}
}
