package pocketpilot

import (
	"fmt"

	"github.com/etnz/pocketpilot/sheets"
	"github.com/shopspring/decimal"
)

// Fixed-rule monthly allocation amounts. These are deliberate constants of
// the balanced mode, not derived figures.
const (
	allocFixedBills         = 20000
	allocVariableEssentials = 30000
	allocLifestyle          = 25000
	allocEmergency          = 15000
	allocSinking            = 15000
	allocGoalContribution   = 50000 // flat, whenever any big expense is known
)

// ExtraIncomeRule is the standing advice for income above the base.
const ExtraIncomeRule = "60% invest, 25% sinking/goals, 15% fun"

// tradingCapRatio caps discretionary trading at a share of the investing
// allocation, when trading is allowed at all.
var tradingCapRatio = decimal.NewFromFloat(0.05)

// BigExpense is a known upcoming expense that competes with investing.
type BigExpense struct {
	Name     string `json:"name"`
	Amount   Money  `json:"amount"`
	DueMonth Month  `json:"due_month"`
	Priority int    `json:"priority"`
}

// PlanRequest asks for a budget plan for one month.
type PlanRequest struct {
	Month                Month        `json:"month"`
	ExpectedIncomeBase   Money        `json:"expected_income_base"`
	ExpectedIncomeUpside Money        `json:"expected_income_upside"`
	KnownBigExpenses     []BigExpense `json:"known_big_expenses"`
	Mode                 string       `json:"mode"`
}

// AllocationLine is one category of the monthly plan.
type AllocationLine struct {
	Category string  `json:"category"`
	Percent  Percent `json:"percent"`
	Amount   Money   `json:"amount"`
	Notes    string  `json:"notes,omitempty"`
}

// WeeklyTarget is a per-week spending target derived from a monthly
// allocation.
type WeeklyTarget struct {
	Category     string `json:"category"`
	WeeklyAmount Money  `json:"weekly_amount"`
	Notes        string `json:"notes,omitempty"`
}

// MonthPlan is the full budget plan for one month.
type MonthPlan struct {
	Month             Month            `json:"month"`
	Allocations       []AllocationLine `json:"allocations"`
	WeeklyTargets     []WeeklyTarget   `json:"weekly_targets"`
	ExtraIncomeRule   string           `json:"extra_income_rule"`
	TradingCapAllowed bool             `json:"trading_cap_allowed"`
	TradingCapAmount  Money            `json:"trading_cap_amount"`

	// kept for persistence, not part of the response body
	goalContribution Money
	investing        Money
}

// BuildMonthPlan applies the fixed allocation rule to the expected income.
// Goal funding is a flat contribution switched on by any known big expense;
// whatever income remains after all buckets goes to investing (never
// negative). Trading is allowed only when no goal funding is active.
func BuildMonthPlan(req PlanRequest) (MonthPlan, error) {
	if req.Month.IsZero() {
		return MonthPlan{}, fmt.Errorf("month plan: month is required")
	}
	income := req.ExpectedIncomeBase
	if !income.IsPositive() {
		return MonthPlan{}, fmt.Errorf("month plan for %s: expected income must be positive", req.Month)
	}

	fixedBills := M(allocFixedBills, income.Currency())
	variable := M(allocVariableEssentials, income.Currency())
	lifestyle := M(allocLifestyle, income.Currency())
	emergency := M(allocEmergency, income.Currency())
	sinking := M(allocSinking, income.Currency())

	goalContrib := M(0, income.Currency())
	if len(req.KnownBigExpenses) > 0 {
		goalContrib = M(allocGoalContribution, income.Currency())
	}

	spent := fixedBills.Add(variable).Add(lifestyle).Add(emergency).Add(sinking).Add(goalContrib)
	investing := income.Sub(spent)
	if investing.IsNegative() {
		investing = M(0, income.Currency())
	}

	plan := MonthPlan{
		Month: req.Month,
		Allocations: []AllocationLine{
			{Category: "Fixed bills", Percent: fixedBills.PercentOf(income), Amount: fixedBills, Notes: "Rent + utilities buffer"},
			{Category: "Variable essentials", Percent: variable.PercentOf(income), Amount: variable},
			{Category: "Lifestyle", Percent: lifestyle.PercentOf(income), Amount: lifestyle},
			{Category: "Emergency fund", Percent: emergency.PercentOf(income), Amount: emergency},
			{Category: "Sinking fund", Percent: sinking.PercentOf(income), Amount: sinking},
			{Category: "Goal fund", Percent: goalContrib.PercentOf(income), Amount: goalContrib, Notes: "Deadline goals"},
			{Category: "Investing", Percent: investing.PercentOf(income), Amount: investing},
		},
		WeeklyTargets: []WeeklyTarget{
			{Category: "Variable essentials", WeeklyAmount: variable.Div(4).Round(2)},
			{Category: "Lifestyle", WeeklyAmount: lifestyle.Div(4).Round(2)},
		},
		ExtraIncomeRule:  ExtraIncomeRule,
		goalContribution: goalContrib,
		investing:        investing,
	}

	// Trading policy: not allowed while goal funding is active.
	plan.TradingCapAllowed = goalContrib.IsZero()
	if plan.TradingCapAllowed {
		plan.TradingCapAmount = investing.Mul(tradingCapRatio).Round(2)
	} else {
		plan.TradingCapAmount = M(0, income.Currency())
	}

	return plan, nil
}

// Record projects the plan onto the Budget_Monthly header fields.
func (p MonthPlan) Record(req PlanRequest) sheets.Record {
	find := func(category string) Money {
		for _, line := range p.Allocations {
			if line.Category == category {
				return line.Amount
			}
		}
		return Money{}
	}
	return sheets.Record{
		"month":                  p.Month,
		"expected_income_base":   req.ExpectedIncomeBase.Amount(),
		"expected_income_upside": req.ExpectedIncomeUpside.Amount(),
		"fixed_bills":            find("Fixed bills").Amount(),
		"variable_essentials":    find("Variable essentials").Amount(),
		"lifestyle":              find("Lifestyle").Amount(),
		"emergency":              find("Emergency fund").Amount(),
		"sinking":                find("Sinking fund").Amount(),
		"investing":              p.investing.Amount(),
		"goal_contrib":           p.goalContribution.Amount(),
		"mode":                   req.Mode,
	}
}
