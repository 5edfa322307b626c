package pocketpilot

import (
	"time"

	"github.com/etnz/pocketpilot/sheets"
	"github.com/shopspring/decimal"
)

// SettingsRow is the fixed 1-based row the Settings singleton lives in.
const SettingsRow = 2

// Settings is the sheet-backed singleton configuration. The Settings tab
// holds at most one meaningful data row, conventionally row 2; reads fall
// back to defaults, writes merge into that fixed row.
type Settings struct {
	Currency             string     `json:"currency"`
	DefaultMode          string     `json:"default_mode"`
	FiscalYearStartMonth time.Month `json:"fiscal_year_start_month"`
	PPFAnnualTarget      Money      `json:"ppf_annual_target"`
}

// DefaultSettings are the values served when the Settings row is absent.
func DefaultSettings() Settings {
	return Settings{
		Currency:             "INR",
		DefaultMode:          "balanced",
		FiscalYearStartMonth: time.April,
		PPFAnnualTarget:      M(150000, "INR"),
	}
}

// SettingsFromRecord overlays the cells of the Settings row onto the
// defaults. Empty cells keep their default.
func SettingsFromRecord(rec sheets.Record) Settings {
	return DefaultSettings().Overlay(rec)
}

// Overlay returns a copy of s with every non-empty cell of the record
// applied on top.
func (s Settings) Overlay(rec sheets.Record) Settings {
	if v, ok := rec["currency"].(string); ok && v != "" {
		s.Currency = v
	}
	if v, ok := rec["default_mode"].(string); ok && v != "" {
		s.DefaultMode = v
	}
	if v, ok := rec["fiscal_year_start_month"].(string); ok && v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			if m := time.Month(d.IntPart()); m >= time.January && m <= time.December {
				s.FiscalYearStartMonth = m
			}
		}
	}
	if v, ok := rec["ppf_annual_target"].(string); ok && v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			s.PPFAnnualTarget = M(d, s.Currency)
		}
	}
	return s
}

// Record projects the settings onto the Settings header fields.
func (s Settings) Record() sheets.Record {
	return sheets.Record{
		"currency":                s.Currency,
		"default_mode":            s.DefaultMode,
		"fiscal_year_start_month": int(s.FiscalYearStartMonth),
		"ppf_annual_target":       s.PPFAnnualTarget.Amount(),
	}
}

// Profile is the server-side identity served on /profile: the currency and
// planning parameters every client needs before doing anything else.
type Profile struct {
	Currency             string     `json:"currency"`
	FiscalYearStartMonth time.Month `json:"fiscal_year_start_month"`
	PPFAnnualTarget      Money      `json:"ppf_annual_target"`
	DefaultMode          string     `json:"default_mode"`
}
