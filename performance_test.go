package pocketpilot

import "testing"

func TestWinRate(t *testing.T) {
	tests := []struct {
		name         string
		wins, losses int
		want         Percent
	}{
		{name: "three out of four", wins: 3, losses: 1, want: 75.0},
		{name: "no trades at all", wins: 0, losses: 0, want: 0.0},
		{name: "all wins", wins: 5, losses: 0, want: 100.0},
		{name: "all losses", wins: 0, losses: 7, want: 0.0},
		{name: "repeating decimal rounded", wins: 1, losses: 2, want: 33.33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WinRate(tt.wins, tt.losses); !got.Equal(tt.want) {
				t.Errorf("WinRate(%d, %d) = %s, want %s", tt.wins, tt.losses, got, tt.want)
			}
		})
	}
}

func TestMonthClose_Record(t *testing.T) {
	c := MonthClose{
		Month:       month("2025-08"),
		RealizedPnL: INR(1200),
		WinCount:    3,
		LossCount:   1,
	}
	rec := c.Record()
	if rec["win_rate"] != 75.0 {
		t.Errorf("win_rate cell = %v, want 75", rec["win_rate"])
	}
	if rec["month"].(Month) != c.Month {
		t.Errorf("month cell = %v", rec["month"])
	}
}
