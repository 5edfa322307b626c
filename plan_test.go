package pocketpilot

import "testing"

func TestBuildMonthPlan_Balanced(t *testing.T) {
	plan, err := BuildMonthPlan(PlanRequest{
		Month:              month("2025-08"),
		ExpectedIncomeBase: INR(150000),
		Mode:               "balanced",
	})
	if err != nil {
		t.Fatalf("BuildMonthPlan() error = %v", err)
	}

	wantAmounts := map[string]Money{
		"Fixed bills":         INR(20000),
		"Variable essentials": INR(30000),
		"Lifestyle":           INR(25000),
		"Emergency fund":      INR(15000),
		"Sinking fund":        INR(15000),
		"Goal fund":           INR(0),
		"Investing":           INR(45000), // 150000 - 105000
	}
	if len(plan.Allocations) != len(wantAmounts) {
		t.Fatalf("got %d allocation lines, want %d", len(plan.Allocations), len(wantAmounts))
	}
	for _, line := range plan.Allocations {
		want, ok := wantAmounts[line.Category]
		if !ok {
			t.Errorf("unexpected allocation category %q", line.Category)
			continue
		}
		if !line.Amount.Equal(want) {
			t.Errorf("allocation %q = %s, want %s", line.Category, line.Amount, want)
		}
		if !line.Percent.Equal(line.Amount.PercentOf(INR(150000))) {
			t.Errorf("allocation %q percent = %s, inconsistent with amount", line.Category, line.Percent)
		}
	}

	// no goal funding: trading allowed, capped at 5% of investing
	if !plan.TradingCapAllowed {
		t.Error("trading should be allowed without goal funding")
	}
	if !plan.TradingCapAmount.Equal(INR(2250)) {
		t.Errorf("trading cap = %s, want %s", plan.TradingCapAmount, INR(2250))
	}

	if len(plan.WeeklyTargets) != 2 {
		t.Fatalf("got %d weekly targets, want 2", len(plan.WeeklyTargets))
	}
	if !plan.WeeklyTargets[0].WeeklyAmount.Equal(INR(7500)) {
		t.Errorf("variable essentials weekly = %s, want %s", plan.WeeklyTargets[0].WeeklyAmount, INR(7500))
	}
	if !plan.WeeklyTargets[1].WeeklyAmount.Equal(INR(6250)) {
		t.Errorf("lifestyle weekly = %s, want %s", plan.WeeklyTargets[1].WeeklyAmount, INR(6250))
	}

	if plan.ExtraIncomeRule != ExtraIncomeRule {
		t.Errorf("extra income rule = %q", plan.ExtraIncomeRule)
	}
}

func TestBuildMonthPlan_GoalFundingBlocksTrading(t *testing.T) {
	plan, err := BuildMonthPlan(PlanRequest{
		Month:              month("2025-11"),
		ExpectedIncomeBase: INR(160000),
		KnownBigExpenses: []BigExpense{
			{Name: "scooty", Amount: INR(90000), DueMonth: month("2025-12"), Priority: 1},
		},
	})
	if err != nil {
		t.Fatalf("BuildMonthPlan() error = %v", err)
	}

	var goal Money
	for _, line := range plan.Allocations {
		if line.Category == "Goal fund" {
			goal = line.Amount
		}
	}
	if !goal.Equal(INR(50000)) {
		t.Errorf("goal fund = %s, want %s", goal, INR(50000))
	}
	if plan.TradingCapAllowed {
		t.Error("trading must not be allowed while funding a goal")
	}
	if !plan.TradingCapAmount.IsZero() {
		t.Errorf("trading cap = %s, want zero", plan.TradingCapAmount)
	}
}

func TestBuildMonthPlan_InvestingNeverNegative(t *testing.T) {
	plan, err := BuildMonthPlan(PlanRequest{
		Month:              month("2025-08"),
		ExpectedIncomeBase: INR(80000), // below the fixed buckets
	})
	if err != nil {
		t.Fatalf("BuildMonthPlan() error = %v", err)
	}
	for _, line := range plan.Allocations {
		if line.Category == "Investing" && !line.Amount.IsZero() {
			t.Errorf("investing = %s, want zero when income is short", line.Amount)
		}
	}
}

func TestBuildMonthPlan_RejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		req  PlanRequest
	}{
		{name: "zero income", req: PlanRequest{Month: month("2025-08")}},
		{name: "negative income", req: PlanRequest{Month: month("2025-08"), ExpectedIncomeBase: INR(-1)}},
		{name: "missing month", req: PlanRequest{ExpectedIncomeBase: INR(150000)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildMonthPlan(tt.req); err == nil {
				t.Error("BuildMonthPlan() should fail")
			}
		})
	}
}

func TestMonthPlan_Record(t *testing.T) {
	req := PlanRequest{
		Month:              month("2025-08"),
		ExpectedIncomeBase: INR(150000),
		Mode:               "balanced",
	}
	plan, err := BuildMonthPlan(req)
	if err != nil {
		t.Fatalf("BuildMonthPlan() error = %v", err)
	}
	rec := plan.Record(req)

	for _, field := range []string{
		"month", "expected_income_base", "expected_income_upside",
		"fixed_bills", "variable_essentials", "lifestyle",
		"emergency", "sinking", "investing", "goal_contrib", "mode",
	} {
		if _, ok := rec[field]; !ok {
			t.Errorf("record misses field %q", field)
		}
	}
}
