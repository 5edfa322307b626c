package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/etnz/pocketpilot"
	"github.com/etnz/pocketpilot/notion"
	"github.com/etnz/pocketpilot/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the bookkeeping HTTP API" }
func (*serveCmd) Usage() string {
	return `pp serve [-http <addr>]

  Serves the bookkeeping API over HTTP. Clients authenticate with the shared
  secret from the X_API_KEY environment variable. The Notion integration is
  enabled when NOTION_TOKEN is set.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "http", ":8080", "Address to listen on.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, client, err := LoadSettings(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	cfg := server.Config{
		APIKey: os.Getenv("X_API_KEY"),
		Profile: pocketpilot.Profile{
			Currency:             settings.Currency,
			FiscalYearStartMonth: settings.FiscalYearStartMonth,
			PPFAnnualTarget:      settings.PPFAnnualTarget,
			DefaultMode:          settings.DefaultMode,
		},
		Sheets:             client,
		NotionParentPageID: os.Getenv("NOTION_PARENT_PAGE_ID"),
		SheetURL:           os.Getenv("SHEET_URL"),
	}

	if token := os.Getenv("NOTION_TOKEN"); token != "" {
		cfg.Notion, err = notion.NewClient(notion.Config{Token: token})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	log.Printf("listening on %s", c.addr)
	if err := http.ListenAndServe(c.addr, server.New(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
