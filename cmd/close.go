package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pocketpilot"
	"github.com/google/subcommands"
)

type closeCmd struct {
	month      string
	realized   float64
	unrealized float64
	wins       int
	losses     int
	notes      string
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "close a month with its trading performance" }
func (*closeCmd) Usage() string {
	return `pp close [-m <month>] [-realized <amount>] [-wins <n>] [-losses <n>]

  Appends the monthly performance row to the Performance_Monthly tab and
  prints the computed win rate.
`
}

func (c *closeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to close (YYYY-MM). Defaults to the current month.")
	f.Float64Var(&c.realized, "realized", 0, "Realized profit and loss.")
	f.Float64Var(&c.unrealized, "unrealized", 0, "Unrealized profit and loss.")
	f.IntVar(&c.wins, "wins", 0, "Number of winning trades.")
	f.IntVar(&c.losses, "losses", 0, "Number of losing trades.")
	f.StringVar(&c.notes, "notes", "", "Free-form notes.")
}

func (c *closeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	monthClose := pocketpilot.MonthClose{
		Month:         month,
		RealizedPnL:   pocketpilot.M(c.realized, settings.Currency),
		UnrealizedPnL: pocketpilot.M(c.unrealized, settings.Currency),
		WinCount:      c.wins,
		LossCount:     c.losses,
		Notes:         c.notes,
	}

	if err := client.Append(ctx, pocketpilot.TabPerformanceMonthly, monthClose.Record()); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording close: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Closed %s with a %s win rate\n", monthClose.Month, monthClose.WinRate())
	return subcommands.ExitSuccess
}
