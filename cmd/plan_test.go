package cmd

import (
	"strings"
	"testing"

	"github.com/etnz/pocketpilot"
)

func TestParseBigExpenses(t *testing.T) {
	expenses, err := parseBigExpenses("scooty:90000:2025-12,goa trip:40000:2026-01", "INR")
	if err != nil {
		t.Fatalf("parseBigExpenses() error = %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("parseBigExpenses() returned %d expenses, want 2", len(expenses))
	}
	if expenses[0].Name != "scooty" || expenses[0].DueMonth.String() != "2025-12" {
		t.Errorf("first expense = %+v", expenses[0])
	}
	if got := expenses[1].Amount.Amount().String(); got != "40000" {
		t.Errorf("second amount = %s, want 40000", got)
	}

	if got, err := parseBigExpenses("", "INR"); err != nil || got != nil {
		t.Errorf("empty input = %v, %v; want nil, nil", got, err)
	}

	for _, bad := range []string{"scooty", "scooty:abc:2025-12", "scooty:90000:dec"} {
		if _, err := parseBigExpenses(bad, "INR"); err == nil {
			t.Errorf("parseBigExpenses(%q) = nil error, want one", bad)
		}
	}
}

func TestPlanMarkdown(t *testing.T) {
	month, err := pocketpilot.ParseMonth("2025-08")
	if err != nil {
		t.Fatal(err)
	}
	plan, err := pocketpilot.BuildMonthPlan(pocketpilot.PlanRequest{
		Month:              month,
		ExpectedIncomeBase: pocketpilot.M(150000, "INR"),
	})
	if err != nil {
		t.Fatalf("BuildMonthPlan() error = %v", err)
	}

	// rendering is free-form, but the table must name every allocation line
	out := planMarkdown(plan)
	for _, category := range []string{"Fixed bills", "Variable essentials", "Lifestyle", "Emergency fund", "Sinking fund", "Goal fund", "Investing"} {
		if !strings.Contains(out, category) {
			t.Errorf("planMarkdown() misses category %q", category)
		}
	}
	if !strings.Contains(out, pocketpilot.ExtraIncomeRule) {
		t.Error("planMarkdown() misses the extra income rule")
	}
}
