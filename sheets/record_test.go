package sheets

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAlign(t *testing.T) {
	headers := []string{"month", "income", "mode", "tags_json"}

	tests := []struct {
		name string
		rec  Record
		want []string
	}{
		{
			name: "full record in header order",
			rec:  Record{"mode": "balanced", "income": 120000, "month": "2025-08", "tags_json": "a"},
			want: []string{"2025-08", "120000", "balanced", "a"},
		},
		{
			name: "missing fields blanked",
			rec:  Record{"month": "2025-08"},
			want: []string{"2025-08", "", "", ""},
		},
		{
			name: "unknown fields dropped",
			rec:  Record{"month": "2025-08", "surprise": "x", "income": 1},
			want: []string{"2025-08", "1", "", ""},
		},
		{
			name: "empty record",
			rec:  Record{},
			want: []string{"", "", "", ""},
		},
		{
			name: "structured value flattened to json",
			rec:  Record{"month": "2025-08", "tags_json": []string{"fuel", "travel"}},
			want: []string{"2025-08", "", "", `["fuel","travel"]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := align(headers, tt.rec)
			if err != nil {
				t.Fatalf("align() error = %v", err)
			}
			if len(got) != len(headers) {
				t.Fatalf("align() produced %d cells, want %d", len(got), len(headers))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("align() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColumnName(t *testing.T) {
	tests := []struct {
		idx  int
		want string
	}{
		{0, "A"}, {1, "B"}, {25, "Z"}, {26, "AA"}, {27, "AB"}, {51, "AZ"}, {52, "BA"},
	}
	for _, tt := range tests {
		if got := columnName(tt.idx); got != tt.want {
			t.Errorf("columnName(%d) = %q, want %q", tt.idx, got, tt.want)
		}
	}
}

func TestCellText(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{name: "nil", v: nil, want: ""},
		{name: "string", v: "hello", want: "hello"},
		{name: "bool", v: true, want: "true"},
		{name: "int", v: 42, want: "42"},
		{name: "float", v: 0.5, want: "0.5"},
		{name: "decimal is a stringer", v: decimal.NewFromInt(16000), want: "16000"},
		{name: "list", v: []any{"a", 1}, want: `["a",1]`},
		{name: "map", v: map[string]any{"k": "v"}, want: `{"k":"v"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cellText(tt.v)
			if err != nil {
				t.Fatalf("cellText(%v) error = %v", tt.v, err)
			}
			if got != tt.want {
				t.Errorf("cellText(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}
