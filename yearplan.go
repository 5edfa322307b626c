package pocketpilot

import (
	"fmt"

	"github.com/etnz/pocketpilot/sheets"
)

// YearPlanKeyField is the Plan_Year tab field year plans are upserted by.
const YearPlanKeyField = "fiscal_year"

// YearPlan holds the targets of one fiscal year (labelled like "FY2025-26",
// see Month.FiscalYear).
type YearPlan struct {
	FiscalYear   string `json:"fiscal_year"`
	IncomeTarget Money  `json:"income_target"`
	InvestTarget Money  `json:"invest_target"`
	PPFTarget    Money  `json:"ppf_target"`
	Notes        string `json:"notes,omitempty"`
}

// Validate checks the year plan before it is written anywhere.
func (p YearPlan) Validate() error {
	if p.FiscalYear == "" {
		return fmt.Errorf("year plan has no fiscal year")
	}
	return nil
}

// Record projects the year plan onto the Plan_Year header fields.
func (p YearPlan) Record() sheets.Record {
	return sheets.Record{
		"fiscal_year":   p.FiscalYear,
		"income_target": p.IncomeTarget.Amount(),
		"invest_target": p.InvestTarget.Amount(),
		"ppf_target":    p.PPFTarget.Amount(),
		"notes":         p.Notes,
	}
}
