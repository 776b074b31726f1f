package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewTransaction(t *testing.T) {
	when := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		description string
		amount      decimal.Decimal
		kind        Kind
		category    string
		when        time.Time
		wantErr     error
	}{
		{
			name:        "valid expense",
			description: "Coffee",
			amount:      decimal.RequireFromString("4.50"),
			kind:        Expense,
			category:    "Food",
			when:        when,
		},
		{
			name:        "empty description",
			description: "   ",
			amount:      decimal.NewFromInt(10),
			kind:        Expense,
			category:    "Food",
			when:        when,
			wantErr:     ErrEmptyDescription,
		},
		{
			name:        "negative amount",
			description: "Coffee",
			amount:      decimal.NewFromInt(-1),
			kind:        Expense,
			category:    "Food",
			when:        when,
			wantErr:     ErrInvalidAmount,
		},
		{
			name:        "unknown kind",
			description: "Coffee",
			amount:      decimal.NewFromInt(1),
			kind:        Kind("transfer"),
			category:    "Food",
			when:        when,
			wantErr:     ErrInvalidKind,
		},
		{
			name:        "empty category",
			description: "Coffee",
			amount:      decimal.NewFromInt(1),
			kind:        Expense,
			category:    "",
			when:        when,
			wantErr:     ErrEmptyCategory,
		},
		{
			name:        "zero date",
			description: "Coffee",
			amount:      decimal.NewFromInt(1),
			kind:        Expense,
			category:    "Food",
			when:        time.Time{},
			wantErr:     ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewTransaction(tt.description, tt.amount, tt.kind, tt.category, tt.when)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewTransaction error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTransaction: %v", err)
			}
			if tx.ID != tt.when.UnixMilli() {
				t.Errorf("ID = %d, want timestamp %d", tx.ID, tt.when.UnixMilli())
			}
			if !tx.Date().Equal(tt.when) {
				t.Errorf("Date() = %v, want %v", tx.Date(), tt.when)
			}
		})
	}
}

func TestTransactionIDEncodesChosenDate(t *testing.T) {
	when := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	tx, err := NewTransaction("Dinner", decimal.NewFromInt(20), Expense, "Food", when)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	// Two transactions dated to the same instant collide on purpose.
	tx2, err := NewTransaction("Other dinner", decimal.NewFromInt(30), Expense, "Food", when)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	if tx.ID != tx2.ID {
		t.Errorf("IDs for the same instant differ: %d vs %d", tx.ID, tx2.ID)
	}
}

func TestNewGoal(t *testing.T) {
	if _, err := NewGoal("", decimal.NewFromInt(100)); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name error = %v, want %v", err, ErrEmptyName)
	}
	if _, err := NewGoal("Car", decimal.NewFromInt(-5)); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("negative target error = %v, want %v", err, ErrInvalidTarget)
	}
	goal, err := NewGoal("Car", decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("NewGoal: %v", err)
	}
	if !goal.Saved.IsZero() {
		t.Errorf("initial saved = %s, want 0", goal.Saved)
	}
}

func TestNewBill(t *testing.T) {
	due, err := ParseDate("2024-02-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if _, err := NewBill("", due); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name error = %v, want %v", err, ErrEmptyName)
	}
	if _, err := NewBill("Rent", Date{}); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("zero date error = %v, want %v", err, ErrInvalidDate)
	}
	bill, err := NewBill("Rent", due)
	if err != nil {
		t.Fatalf("NewBill: %v", err)
	}
	if bill.Due.String() != "2024-02-01" {
		t.Errorf("due = %s, want 2024-02-01", bill.Due)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"2024-01-05", true},
		{" 2024-01-05 ", true},
		{"05/01/2024", false},
		{"2024-13-01", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseDate(tt.in)
			if tt.valid && err != nil {
				t.Errorf("ParseDate(%q): %v", tt.in, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("ParseDate(%q) accepted invalid input", tt.in)
			}
		})
	}
}

func TestDateOfUsesInstantLocation(t *testing.T) {
	// 2024-01-01 23:30 UTC is already 2024-01-02 in UTC+2.
	instant := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	utc := DateOf(instant)
	if utc.String() != "2024-01-01" {
		t.Errorf("UTC date = %s, want 2024-01-01", utc)
	}

	east := DateOf(instant.In(time.FixedZone("UTC+2", 2*3600)))
	if east.String() != "2024-01-02" {
		t.Errorf("UTC+2 date = %s, want 2024-01-02", east)
	}
}
