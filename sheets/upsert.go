package sheets

import (
	"context"
	"fmt"
	"strings"
)

// Actions reported by Upsert.
const (
	ActionInserted = "inserted"
	ActionUpdated  = "updated"
)

// Result describes the outcome of an upsert. Row is the 1-based row number
// of an updated row; it is zero for an insert, because append does not
// report the final position.
type Result struct {
	Action string `json:"action"`
	Row    int    `json:"row,omitempty"`
}

// Upsert updates the first existing row whose key column matches keyValue,
// or appends a new row when none does. Matching compares trimmed string
// forms, case-sensitive. When several rows share the key, only the
// lowest-numbered one is updated; the duplicates are left untouched.
//
// The scan and the write are serialized per tab within this process; a
// concurrent writer in another process can still interleave between them.
func (c *Client) Upsert(ctx context.Context, tab, keyField, keyValue string, rec Record) (Result, error) {
	lock := c.tabs.of(tab)
	lock.Lock()
	defer lock.Unlock()

	headers, err := c.Headers(ctx, tab)
	if err != nil {
		return Result{}, err
	}
	keyIdx := -1
	for i, h := range headers {
		if h == keyField {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return Result{}, &SchemaError{Tab: tab, Reason: fmt.Sprintf("key field %q not in header", keyField)}
	}

	col := columnName(keyIdx)
	keyRows, err := c.values(ctx, tab, fmt.Sprintf("%s!%s2:%s", tab, col, col))
	if err != nil {
		return Result{}, err
	}

	want := strings.TrimSpace(keyValue)
	for i, keyRow := range keyRows {
		var cell string
		if len(keyRow) > 0 {
			cell = keyRow[0]
		}
		if strings.TrimSpace(cell) != want {
			continue
		}
		row := i + 2 // key column starts at row 2
		aligned, err := align(headers, rec)
		if err != nil {
			return Result{}, &SchemaError{Tab: tab, Reason: err.Error()}
		}
		if err := c.updateRow(ctx, tab, rowRange(tab, row), aligned); err != nil {
			return Result{}, err
		}
		return Result{Action: ActionUpdated, Row: row}, nil
	}

	if err := c.Append(ctx, tab, rec); err != nil {
		return Result{}, err
	}
	return Result{Action: ActionInserted}, nil
}

// MergeRow merges the record into the given fixed 1-based data row: fields
// absent from the record keep their current cell value. It is the write
// path of singleton tabs whose only meaningful row is row 2.
func (c *Client) MergeRow(ctx context.Context, tab string, row int, rec Record) error {
	lock := c.tabs.of(tab)
	lock.Lock()
	defer lock.Unlock()

	headers, err := c.Headers(ctx, tab)
	if err != nil {
		return err
	}
	current, err := c.ReadRow(ctx, tab, row)
	if err != nil {
		return err
	}
	merged := make(Record, len(headers))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range rec {
		merged[k] = v
	}
	aligned, err := align(headers, merged)
	if err != nil {
		return &SchemaError{Tab: tab, Reason: err.Error()}
	}
	return c.updateRow(ctx, tab, rowRange(tab, row), aligned)
}

// rowRange references all the cells of one 1-based row of a tab.
func rowRange(tab string, row int) string {
	return fmt.Sprintf("%s!%d:%d", tab, row, row)
}

// columnName converts a 0-based column index to its A1 letter form.
func columnName(idx int) string {
	name := ""
	for idx >= 0 {
		name = string(rune('A'+idx%26)) + name
		idx = idx/26 - 1
	}
	return name
}
