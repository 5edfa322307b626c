// Package cmd implements the CLI application to keep the books.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pocketpilot"
	"github.com/etnz/pocketpilot/sheets"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "server")

	c.Register(&planCmd{}, "bookkeeping")
	c.Register(&networthCmd{}, "bookkeeping")
	c.Register(&closeCmd{}, "bookkeeping")

	c.Register(&topicCmd{}, "help")
	c.Register(&AssistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

const (
	sheetIDKey     = "SHEET_ID"
	sheetsTokenKey = "SHEETS_ACCESS_TOKEN"
)

var sheetIDFlag = flag.String("sheet-id", "", "ID of the spreadsheet holding the books.\n If missing it will read the environment variable \""+sheetIDKey+"\".")
var sheetsTokenFlag = flag.String("sheets-token", "", "OAuth access token for the spreadsheet.\n If missing it will read the environment variable \""+sheetsTokenKey+"\".")

func sheetID() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *sheetIDFlag == "" {
		*sheetIDFlag = os.Getenv(sheetIDKey)
	}
	return *sheetIDFlag
}

func sheetsToken() string {
	if *sheetsTokenFlag == "" {
		*sheetsTokenFlag = os.Getenv(sheetsTokenKey)
	}
	return *sheetsTokenFlag
}

// Gateway opens the spreadsheet gateway from the app flags.
func Gateway() (*sheets.Client, error) {
	return sheets.NewClient(sheets.Config{
		SpreadsheetID: sheetID(),
		Token:         sheetsToken(),
	})
}

// envSettings are the deployment defaults, read once from the environment.
func envSettings() sheets.Record {
	rec := sheets.Record{}
	for _, key := range []string{"currency", "default_mode", "fiscal_year_start_month", "ppf_annual_target"} {
		env := map[string]string{
			"currency":                "CURRENCY",
			"default_mode":            "DEFAULT_MODE",
			"fiscal_year_start_month": "FISCAL_YEAR_START_MONTH",
			"ppf_annual_target":       "PPF_ANNUAL_TARGET",
		}[key]
		if v := os.Getenv(env); v != "" {
			rec[key] = v
		}
	}
	return rec
}

// LoadSettings opens the gateway and reads the effective settings: built-in
// defaults, overlaid by the environment, overlaid by the Settings row.
func LoadSettings(ctx context.Context) (pocketpilot.Settings, *sheets.Client, error) {
	client, err := Gateway()
	if err != nil {
		return pocketpilot.Settings{}, nil, err
	}
	rec, err := client.ReadRow(ctx, pocketpilot.TabSettings, pocketpilot.SettingsRow)
	if err != nil {
		return pocketpilot.Settings{}, nil, fmt.Errorf("could not read settings: %w", err)
	}
	settings := pocketpilot.DefaultSettings().Overlay(envSettings()).Overlay(rec)
	return settings, client, nil
}
