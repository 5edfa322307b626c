package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/pocketpilot"
	"github.com/google/subcommands"
)

type planCmd struct {
	month  string
	income float64
	upside float64
	mode   string
	big    string
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "build and record the budget plan of one month" }
func (*planCmd) Usage() string {
	return `pp plan -income <amount> [-m <month>] [-upside <amount>] [-big <name:amount:month>,...]

  Applies the fixed allocation rule to the expected income, appends the plan
  to the Budget_Monthly tab and prints the allocations and weekly targets.

Usage Examples:
# Plan the current month on a 150000 base income.
$ pp plan -income 150000

# A known big expense switches goal funding on (and trading off).
$ pp plan -income 150000 -big scooty:90000:2025-12
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to plan (YYYY-MM). Defaults to the current month.")
	f.Float64Var(&c.income, "income", 0, "Expected base income for the month.")
	f.Float64Var(&c.upside, "upside", 0, "Expected income above the base.")
	f.StringVar(&c.mode, "mode", "", "Planning mode. Defaults to the configured one.")
	f.StringVar(&c.big, "big", "", "Known big expenses, as name:amount:month entries separated by commas.")
}

func (c *planCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, client, err := LoadSettings(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	month := pocketpilot.ThisMonth()
	if c.month != "" {
		month, err = pocketpilot.ParseMonth(c.month)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	mode := c.mode
	if mode == "" {
		mode = settings.DefaultMode
	}

	expenses, err := parseBigExpenses(c.big, settings.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	req := pocketpilot.PlanRequest{
		Month:                month,
		ExpectedIncomeBase:   pocketpilot.M(c.income, settings.Currency),
		ExpectedIncomeUpside: pocketpilot.M(c.upside, settings.Currency),
		KnownBigExpenses:     expenses,
		Mode:                 mode,
	}
	plan, err := pocketpilot.BuildMonthPlan(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := client.Append(ctx, pocketpilot.TabBudgetMonthly, plan.Record(req)); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording plan: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(planMarkdown(plan))
	return subcommands.ExitSuccess
}

// parseBigExpenses reads a comma-separated list of name:amount:month entries.
func parseBigExpenses(s, currency string) ([]pocketpilot.BigExpense, error) {
	if s == "" {
		return nil, nil
	}
	var expenses []pocketpilot.BigExpense
	for _, entry := range strings.Split(s, ",") {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("big expense %q: want name:amount:month", entry)
		}
		amount, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("big expense %q: %w", entry, err)
		}
		due, err := pocketpilot.ParseMonth(parts[2])
		if err != nil {
			return nil, fmt.Errorf("big expense %q: %w", entry, err)
		}
		expenses = append(expenses, pocketpilot.BigExpense{
			Name:     parts[0],
			Amount:   pocketpilot.M(amount, currency),
			DueMonth: due,
		})
	}
	return expenses, nil
}

func planMarkdown(plan pocketpilot.MonthPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Plan %s\n\n", plan.Month)
	fmt.Fprintln(&b, "| Category | % | Amount | Notes |")
	fmt.Fprintln(&b, "| --- | --- | --- | --- |")
	for _, line := range plan.Allocations {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", line.Category, line.Percent, line.Amount, line.Notes)
	}
	fmt.Fprintln(&b, "\n## Weekly targets")
	for _, target := range plan.WeeklyTargets {
		fmt.Fprintf(&b, "* %s: %s\n", target.Category, target.WeeklyAmount)
	}
	if plan.TradingCapAllowed {
		fmt.Fprintf(&b, "\nTrading cap: %s\n", plan.TradingCapAmount)
	} else {
		fmt.Fprintln(&b, "\nTrading: not this month, goals come first.")
	}
	fmt.Fprintf(&b, "\nExtra income: %s\n", plan.ExtraIncomeRule)
	return b.String()
}
