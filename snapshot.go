package pocketpilot

import "github.com/etnz/pocketpilot/sheets"

// Snapshot is a net-worth snapshot: every asset and liability figure on one
// day.
type Snapshot struct {
	Date             Date   `json:"date"`
	CashBank         Money  `json:"cash_bank"`
	FDTotal          Money  `json:"fd_total"`
	PPFBalance       Money  `json:"ppf_balance"`
	EquityValue      Money  `json:"equity_value"`
	MFValue          Money  `json:"mf_value"`
	OtherAssets      Money  `json:"other_assets"`
	LiabilitiesCC    Money  `json:"liabilities_cc"`
	LiabilitiesLoans Money  `json:"liabilities_loans"`
	Notes            string `json:"notes,omitempty"`
}

// NetWorth is total assets minus total liabilities.
func (s Snapshot) NetWorth() Money {
	assets := s.CashBank.Add(s.FDTotal).Add(s.PPFBalance).Add(s.EquityValue).Add(s.MFValue).Add(s.OtherAssets)
	liabilities := s.LiabilitiesCC.Add(s.LiabilitiesLoans)
	return assets.Sub(liabilities)
}

// Record projects the snapshot onto the NetWorth_Snapshots header fields,
// including the computed net worth.
func (s Snapshot) Record() sheets.Record {
	return sheets.Record{
		"date":              s.Date,
		"cash_bank":         s.CashBank.Amount(),
		"fd_total":          s.FDTotal.Amount(),
		"ppf_balance":       s.PPFBalance.Amount(),
		"equity_value":      s.EquityValue.Amount(),
		"mf_value":          s.MFValue.Amount(),
		"other_assets":      s.OtherAssets.Amount(),
		"liabilities_cc":    s.LiabilitiesCC.Amount(),
		"liabilities_loans": s.LiabilitiesLoans.Amount(),
		"net_worth":         s.NetWorth().Amount(),
		"notes":             s.Notes,
	}
}
