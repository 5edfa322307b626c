package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pocketpilot"
	"github.com/google/subcommands"
)

type networthCmd struct {
	date   string
	cash   float64
	fd     float64
	ppf    float64
	equity float64
	mf     float64
	other  float64
	cc     float64
	loans  float64
	notes  string
}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "record a net worth snapshot" }
func (*networthCmd) Usage() string {
	return `pp networth [-d <date>] [-cash <amount>] [-fd <amount>] ...

  Appends a dated snapshot of all assets and liabilities to the
  NetWorth_Snapshots tab and prints the computed net worth.
`
}

func (c *networthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Snapshot date (YYYY-MM-DD). Defaults to today.")
	f.Float64Var(&c.cash, "cash", 0, "Cash and bank balances.")
	f.Float64Var(&c.fd, "fd", 0, "Fixed deposits total.")
	f.Float64Var(&c.ppf, "ppf", 0, "PPF balance.")
	f.Float64Var(&c.equity, "equity", 0, "Equity value.")
	f.Float64Var(&c.mf, "mf", 0, "Mutual funds value.")
	f.Float64Var(&c.other, "other", 0, "Other assets.")
	f.Float64Var(&c.cc, "cc", 0, "Credit card liabilities.")
	f.Float64Var(&c.loans, "loans", 0, "Loan liabilities.")
	f.StringVar(&c.notes, "notes", "", "Free-form notes.")
}

func (c *networthCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, client, err := LoadSettings(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	date := pocketpilot.Today()
	if c.date != "" {
		date, err = pocketpilot.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	cur := settings.Currency
	snap := pocketpilot.Snapshot{
		Date:             date,
		CashBank:         pocketpilot.M(c.cash, cur),
		FDTotal:          pocketpilot.M(c.fd, cur),
		PPFBalance:       pocketpilot.M(c.ppf, cur),
		EquityValue:      pocketpilot.M(c.equity, cur),
		MFValue:          pocketpilot.M(c.mf, cur),
		OtherAssets:      pocketpilot.M(c.other, cur),
		LiabilitiesCC:    pocketpilot.M(c.cc, cur),
		LiabilitiesLoans: pocketpilot.M(c.loans, cur),
		Notes:            c.notes,
	}

	if err := client.Append(ctx, pocketpilot.TabNetWorthSnapshots, snap.Record()); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Net worth on %s: %s\n", snap.Date, snap.NetWorth())
	return subcommands.ExitSuccess
}
