package pocketpilot

import (
	"github.com/etnz/pocketpilot/sheets"
	"github.com/shopspring/decimal"
)

// WinRate is the share of winning trades, in percent, rounded to two
// decimal places. With no trades at all it is simply zero.
func WinRate(wins, losses int) Percent {
	total := wins + losses
	if total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(int64(wins)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	return Percent(rate.InexactFloat64())
}

// MonthClose records the trading outcome of a closed month.
type MonthClose struct {
	Month         Month  `json:"month"`
	RealizedPnL   Money  `json:"realized_pnl"`
	UnrealizedPnL Money  `json:"unrealized_pnl"`
	WinCount      int    `json:"win_count"`
	LossCount     int    `json:"loss_count"`
	Notes         string `json:"notes,omitempty"`
}

// WinRate of the closed month.
func (c MonthClose) WinRate() Percent { return WinRate(c.WinCount, c.LossCount) }

// Record projects the close onto the Performance_Monthly header fields.
func (c MonthClose) Record() sheets.Record {
	return sheets.Record{
		"month":          c.Month,
		"realized_pnl":   c.RealizedPnL.Amount(),
		"unrealized_pnl": c.UnrealizedPnL.Amount(),
		"win_count":      c.WinCount,
		"loss_count":     c.LossCount,
		"win_rate":       float64(c.WinRate()),
		"notes":          c.Notes,
	}
}
