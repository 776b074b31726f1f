// Package services orchestrates the recomputation core: every mutation to
// the ledger or a tracker runs persist, re-derivation and notification in
// a fixed order before control returns to the caller.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/alert"
	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/ledger"
	"fintrack/internal/report"
	"fintrack/internal/storage"
	"fintrack/internal/track"
)

// BlobStore is the single-slot key/value store the dataset persists to.
type BlobStore interface {
	Get(ctx context.Context) ([]byte, bool, error)
	Set(ctx context.Context, blob []byte) error
}

// ChangePublisher notifies the rendering layer after a completed mutation.
type ChangePublisher interface {
	PublishDatasetChanged(ctx context.Context, revision int64) error
}

// Derived is everything recomputed from the dataset after each mutation.
// It is replaced wholesale; no field is updated incrementally.
type Derived struct {
	Balance        decimal.Decimal
	CategoryTotals map[string]decimal.Decimal
	Monthly        map[string]report.MonthTotals
	Alerts         []string
}

// BudgetStatus pairs a category limit with its derived spending.
type BudgetStatus struct {
	Category string
	Limit    decimal.Decimal
	Spent    decimal.Decimal
	Over     bool
}

// TransactionInput carries the user-supplied fields of an add or update.
type TransactionInput struct {
	Description string
	Amount      decimal.Decimal
	Kind        core.Kind
	Category    string
	When        time.Time
	ReceiptRef  string
}

// Tracker owns the dataset and its derived state. All operations are
// synchronous: persist, recompute and publish finish before they return.
type Tracker struct {
	store     BlobStore
	publisher ChangePublisher
	loc       *time.Location
	now       func() time.Time

	mu       sync.Mutex
	ds       *core.Dataset
	derived  Derived
	revision int64
}

// NewTracker loads the persisted dataset (an absent slot is an empty
// dataset, a corrupt one an error) and computes the initial derived state.
// The publisher may be nil.
func NewTracker(ctx context.Context, store BlobStore, publisher ChangePublisher, loc *time.Location) (*Tracker, error) {
	if loc == nil {
		loc = time.UTC
	}

	t := &Tracker{
		store:     store,
		publisher: publisher,
		loc:       loc,
		now:       time.Now,
	}

	blob, found, err := store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	if !found {
		t.ds = core.NewDataset()
		slog.InfoContext(ctx, "No stored dataset, starting empty")
	} else {
		ds, err := storage.DecodeDataset(blob)
		if err != nil {
			return nil, fmt.Errorf("load dataset: %w", err)
		}
		t.ds = ds
		slog.InfoContext(ctx, "Dataset loaded",
			"transactions", len(ds.Transactions),
			"budgets", len(ds.Budgets),
			"goals", len(ds.Goals),
			"bills", len(ds.Bills))
	}

	t.recompute()
	return t, nil
}

// AddTransaction validates, appends and commits a new ledger entry.
func (t *Tracker) AddTransaction(ctx context.Context, input TransactionInput) (core.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tx, err := core.NewTransaction(input.Description, input.Amount, input.Kind, input.Category, input.When)
	if err != nil {
		return core.Transaction{}, err
	}
	tx.ReceiptRef = input.ReceiptRef

	if _, err := ledger.Add(t.ds, tx); err != nil {
		return core.Transaction{}, err
	}
	if err := t.commit(ctx); err != nil {
		return tx, err
	}

	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID,
		"description", tx.Description,
		"amount", tx.Amount.StringFixed(2),
		"kind", tx.Kind,
		"category", tx.Category)

	return tx, nil
}

// UpdateTransaction replaces the transaction matching id in place. The id
// itself changes when the chosen date does. An empty receipt reference
// keeps the existing one.
func (t *Tracker) UpdateTransaction(ctx context.Context, id int64, input TransactionInput) (core.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := ledger.Find(t.ds, id)
	if !ok {
		return core.Transaction{}, ledger.ErrNotFound
	}

	repl, err := core.NewTransaction(input.Description, input.Amount, input.Kind, input.Category, input.When)
	if err != nil {
		return core.Transaction{}, err
	}
	repl.ReceiptRef = input.ReceiptRef
	if repl.ReceiptRef == "" {
		repl.ReceiptRef = existing.ReceiptRef
	}

	if _, err := ledger.Update(t.ds, id, repl); err != nil {
		return core.Transaction{}, err
	}
	if err := t.commit(ctx); err != nil {
		return repl, err
	}

	slog.InfoContext(ctx, "Transaction updated", "id", id, "new_id", repl.ID)
	return repl, nil
}

// RemoveTransaction deletes the first transaction matching id and reports
// whether a removal occurred. Removing a missing id leaves the dataset
// untouched and does not persist.
func (t *Tracker) RemoveTransaction(ctx context.Context, id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !ledger.Remove(t.ds, id) {
		return false, nil
	}
	if err := t.commit(ctx); err != nil {
		return true, err
	}

	slog.InfoContext(ctx, "Transaction removed", "id", id)
	return true, nil
}

// SetBudget records a category spending limit, overwriting any prior one.
func (t *Tracker) SetBudget(ctx context.Context, category string, limit decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := track.SetLimit(t.ds, category, limit); err != nil {
		return err
	}
	if err := t.commit(ctx); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Budget limit set", "category", category, "limit", limit.StringFixed(2))
	return nil
}

// AddGoal appends a savings goal; its progress is derived immediately.
func (t *Tracker) AddGoal(ctx context.Context, name string, target decimal.Decimal) (core.Goal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	goal, err := track.AddGoal(t.ds, name, target)
	if err != nil {
		return core.Goal{}, err
	}
	if err := t.commit(ctx); err != nil {
		return goal, err
	}

	slog.InfoContext(ctx, "Goal added", "name", name, "target", target.StringFixed(2))
	// Return the goal with its freshly derived progress.
	return t.ds.Goals[len(t.ds.Goals)-1], nil
}

// AddBill appends a bill reminder.
func (t *Tracker) AddBill(ctx context.Context, name string, due core.Date) (core.Bill, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	bill, err := track.AddBill(t.ds, name, due)
	if err != nil {
		return core.Bill{}, err
	}
	if err := t.commit(ctx); err != nil {
		return bill, err
	}

	slog.InfoContext(ctx, "Bill reminder added", "name", name, "due", due.String())
	return bill, nil
}

// Restore replaces the whole dataset from a backup blob and commits.
func (t *Tracker) Restore(ctx context.Context, blob []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	ds, err := export.Restore(blob)
	if err != nil {
		return err
	}
	t.ds = ds
	if err := t.commit(ctx); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Dataset restored from backup",
		"transactions", len(ds.Transactions))
	return nil
}

// Backup serializes the current dataset for download.
func (t *Tracker) Backup() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return export.Backup(t.ds)
}

// ExportCSV renders the ledger as CSV for download.
func (t *Tracker) ExportCSV() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return export.TransactionsCSV(t.ds.Transactions)
}

// Transactions returns the ledger in display order.
func (t *Tracker) Transactions() []core.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]core.Transaction(nil), t.ds.Transactions...)
}

// FindTransaction returns the first transaction matching id.
func (t *Tracker) FindTransaction(id int64) (core.Transaction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ledger.Find(t.ds, id)
}

// Budgets returns every category limit with its derived spending, in
// sorted category order.
func (t *Tracker) Budgets() []BudgetStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	categories := make([]string, 0, len(t.ds.Budgets))
	for category := range t.ds.Budgets {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	statuses := make([]BudgetStatus, len(categories))
	for i, category := range categories {
		limit := t.ds.Budgets[category]
		spent := track.SpentFor(t.ds.Transactions, category)
		statuses[i] = BudgetStatus{
			Category: category,
			Limit:    limit,
			Spent:    spent,
			Over:     spent.GreaterThan(limit),
		}
	}
	return statuses
}

// Goals returns the goals with their derived progress.
func (t *Tracker) Goals() []core.Goal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]core.Goal(nil), t.ds.Goals...)
}

// Bills returns the bill reminders in tracker order.
func (t *Tracker) Bills() []core.Bill {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]core.Bill(nil), t.ds.Bills...)
}

// Derived returns the current derived snapshot.
func (t *Tracker) Derived() Derived {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.derived
}

// commit runs the post-mutation cascade: recompute derived state, persist,
// then notify. Derived state is refreshed before any persistence step can
// fail, so the applied mutation is always visible; the persisted blob also
// carries the freshly derived goal progress. Publish failures are
// non-fatal; the mutation is already saved locally.
func (t *Tracker) commit(ctx context.Context) error {
	t.recompute()

	blob, err := storage.EncodeDataset(t.ds)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	saveErr := t.store.Set(ctx, blob)

	t.revision++

	if saveErr != nil {
		return fmt.Errorf("persist dataset: %w", saveErr)
	}

	if t.publisher != nil {
		if err := t.publisher.PublishDatasetChanged(ctx, t.revision); err != nil {
			slog.ErrorContext(ctx, "Failed to publish change message",
				"revision", t.revision, "error", err)
			// Don't fail the operation - the dataset is saved locally
		}
	}
	return nil
}

func (t *Tracker) recompute() {
	balance := report.Balance(t.ds.Transactions)
	track.RecomputeGoalProgress(t.ds, balance)

	today := core.DateOf(t.now().In(t.loc))
	t.derived = Derived{
		Balance:        balance,
		CategoryTotals: report.CategoryExpenseTotals(t.ds.Transactions),
		Monthly:        report.MonthlySummary(t.ds.Transactions, t.loc),
		Alerts:         alert.Compute(t.ds, today),
	}
}
