package pocketpilot

import (
	"fmt"
	"strings"

	"github.com/etnz/pocketpilot/sheets"
)

// Transaction kinds.
const (
	Income   = "income"
	Expense  = "expense"
	Transfer = "transfer"
)

// Transaction is one dated money movement.
type Transaction struct {
	Date     Date     `json:"date"`
	Amount   Money    `json:"amount"`
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Account  string   `json:"account,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Month    Month    `json:"month"`
}

// Validate checks the transaction before it is written anywhere.
func (t Transaction) Validate() error {
	switch t.Type {
	case Income, Expense, Transfer:
	default:
		return fmt.Errorf("transaction type %q: want %s, %s or %s", t.Type, Income, Expense, Transfer)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction has no date")
	}
	if t.Month.IsZero() {
		return fmt.Errorf("transaction has no month")
	}
	return nil
}

// Record projects the transaction onto the Transactions header fields.
func (t Transaction) Record() sheets.Record {
	return sheets.Record{
		"date":     t.Date,
		"amount":   t.Amount.Amount(),
		"type":     t.Type,
		"category": t.Category,
		"account":  t.Account,
		"notes":    t.Notes,
		"month":    t.Month,
		"tags":     strings.Join(t.Tags, ","),
	}
}

// TransactionBatch is a best-effort batch: items are written one by one and
// earlier items stay committed when a later one fails.
type TransactionBatch struct {
	Items []Transaction `json:"items"`
}
