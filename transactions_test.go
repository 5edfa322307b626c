package pocketpilot

import (
	"fmt"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Date:     day("2025-08-12"),
		Amount:   INR(450.50),
		Type:     Expense,
		Category: "fuel",
		Month:    month("2025-08"),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v on a valid transaction", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
	}{
		{"unknown type", func(tx *Transaction) { tx.Type = "gift" }},
		{"no date", func(tx *Transaction) { tx.Date = Date{} }},
		{"no month", func(tx *Transaction) { tx.Month = Month{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := valid
			tc.mutate(&tx)
			if err := tx.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestTransactionRecord(t *testing.T) {
	tx := Transaction{
		Date:     day("2025-08-12"),
		Amount:   INR(450.50),
		Type:     Expense,
		Category: "fuel",
		Tags:     []string{"bike", "commute"},
		Month:    month("2025-08"),
	}
	rec := tx.Record()
	if got := rec["tags"]; got != "bike,commute" {
		t.Errorf("tags = %q, want comma-joined", got)
	}
	if got := fmt.Sprint(rec["amount"]); got != "450.5" {
		t.Errorf("amount = %q, want 450.5", got)
	}
}

func TestGoalValidate(t *testing.T) {
	goal := Goal{Name: "scooty", Target: INR(90000), DueMonth: month("2025-12")}
	if err := goal.Validate(); err != nil {
		t.Errorf("Validate() error = %v on a valid goal", err)
	}
	goal.Name = ""
	if err := goal.Validate(); err == nil {
		t.Error("Validate() = nil on a missing name, want error")
	}
}

func TestYearPlanValidate(t *testing.T) {
	plan := YearPlan{FiscalYear: "FY2025-26", IncomeTarget: INR(1800000)}
	if err := plan.Validate(); err != nil {
		t.Errorf("Validate() error = %v on a valid plan", err)
	}
	plan.FiscalYear = ""
	if err := plan.Validate(); err == nil {
		t.Error("Validate() = nil on an empty fiscal year, want error")
	}
}
