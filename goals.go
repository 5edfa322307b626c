package pocketpilot

import (
	"fmt"

	"github.com/etnz/pocketpilot/sheets"
)

// GoalKeyField is the Goals tab field goals are upserted by.
const GoalKeyField = "name"

// Goal is a deadline-bound saving target (a scooty, a trip...). Goals are
// keyed by name: saving progress updates the existing row.
type Goal struct {
	Name     string `json:"name"`
	Target   Money  `json:"target"`
	Saved    Money  `json:"saved"`
	DueMonth Month  `json:"due_month"`
	Priority int    `json:"priority"`
	Notes    string `json:"notes,omitempty"`
}

// Validate checks the goal before it is written anywhere.
func (g Goal) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("goal has no name")
	}
	if g.Target.IsNegative() {
		return fmt.Errorf("goal %q: target cannot be negative", g.Name)
	}
	return nil
}

// Record projects the goal onto the Goals header fields.
func (g Goal) Record() sheets.Record {
	return sheets.Record{
		"name":      g.Name,
		"target":    g.Target.Amount(),
		"saved":     g.Saved.Amount(),
		"due_month": g.DueMonth,
		"priority":  g.Priority,
		"notes":     g.Notes,
	}
}
