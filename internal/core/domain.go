package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind distinguishes money coming in from money going out.
	Kind string

	// Date is a calendar date with no time component, anchored at UTC
	// midnight. Bill due dates and "today" comparisons use it.
	Date struct {
		t time.Time
	}

	// Transaction is one ledger entry. The ID doubles as the display
	// date: it is the millisecond timestamp of the instant the user
	// chose, so two entries dated to the same instant share an ID.
	Transaction struct {
		ID          int64
		Description string
		Amount      decimal.Decimal
		Kind        Kind
		Category    string
		ReceiptRef  string
	}

	// Goal is a named savings target. Saved mirrors the current balance
	// clamped to [0, Target]; it is derived, never tracked money.
	Goal struct {
		Name   string
		Target decimal.Decimal
		Saved  decimal.Decimal
	}

	// Bill is a named due-date reminder.
	Bill struct {
		Name string
		Due  Date
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidKind      = errors.New("invalid transaction kind")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidTarget    = errors.New("invalid target amount")
)

// Valid reports whether k is one of the two supported kinds.
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// NewTransaction validates the fields and builds a transaction whose ID is
// derived from the chosen instant.
func NewTransaction(description string, amount decimal.Decimal, kind Kind, category string, when time.Time) (Transaction, error) {
	if when.IsZero() {
		return Transaction{}, ErrInvalidDate
	}
	tx := Transaction{
		ID:          when.UnixMilli(),
		Description: description,
		Amount:      amount,
		Kind:        kind,
		Category:    category,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Date returns the display date encoded in the transaction ID.
func (t Transaction) Date() time.Time {
	return time.UnixMilli(t.ID).UTC()
}

// NewGoal validates and builds a goal with zero progress.
func NewGoal(name string, target decimal.Decimal) (Goal, error) {
	if strings.TrimSpace(name) == "" {
		return Goal{}, ErrEmptyName
	}
	if target.IsNegative() {
		return Goal{}, ErrInvalidTarget
	}
	return Goal{Name: name, Target: target, Saved: decimal.Zero}, nil
}

// NewBill validates and builds a bill reminder.
func NewBill(name string, due Date) (Bill, error) {
	if strings.TrimSpace(name) == "" {
		return Bill{}, ErrEmptyName
	}
	if due.IsZero() {
		return Bill{}, ErrInvalidDate
	}
	return Bill{Name: name, Due: due}, nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{t: t}, nil
}

// DateOf truncates an instant to its calendar date as observed in the
// instant's own location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format("2006-01-02")
}

// Time returns the date as UTC midnight.
func (d Date) Time() time.Time {
	return d.t
}
