package pocketpilot

import (
	"fmt"

	"github.com/etnz/pocketpilot/sheets"
)

// Asset types a holding can carry.
const (
	AssetCash  = "cash"
	AssetBank  = "bank"
	AssetFD    = "fd"
	AssetPPF   = "ppf"
	AssetStock = "stock"
	AssetMF    = "mf"
	AssetOther = "other"
)

// HoldingItem is the current state of one asset position.
type HoldingItem struct {
	AssetType    string  `json:"asset_type"`
	Name         string  `json:"name"`
	Qty          float64 `json:"qty"`
	AvgCost      Money   `json:"avg_cost"`
	CurrentValue Money   `json:"current_value"`
	Account      string  `json:"account,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// Validate checks the holding before it is written anywhere.
func (h HoldingItem) Validate() error {
	switch h.AssetType {
	case AssetCash, AssetBank, AssetFD, AssetPPF, AssetStock, AssetMF, AssetOther:
	default:
		return fmt.Errorf("holding %q: unknown asset type %q", h.Name, h.AssetType)
	}
	if h.Name == "" {
		return fmt.Errorf("holding has no name")
	}
	return nil
}

// Record projects the holding onto the Holdings header fields. Holdings are
// keyed by name: writing the same name again replaces the position.
func (h HoldingItem) Record(asOf Date) sheets.Record {
	return sheets.Record{
		"as_of":         asOf,
		"asset_type":    h.AssetType,
		"name":          h.Name,
		"qty":           h.Qty,
		"avg_cost":      h.AvgCost.Amount(),
		"current_value": h.CurrentValue.Amount(),
		"account":       h.Account,
		"notes":         h.Notes,
	}
}

// HoldingKeyField is the Holdings tab field holdings are upserted by.
const HoldingKeyField = "name"

// HoldingsUpdate replaces the recorded state of the listed positions as of
// one day.
type HoldingsUpdate struct {
	AsOf  Date          `json:"as_of"`
	Items []HoldingItem `json:"items"`
}
