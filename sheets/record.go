// Package sheets is a gateway to an external spreadsheet used as the single
// source of truth for bookkeeping rows.
//
// A spreadsheet holds named tabs; row 1 of a tab is its header row and
// defines the field name of every column. Records are written aligned to
// that header: fields the header does not know are dropped, header fields
// the record does not carry are written blank. The spreadsheet outlives the
// process; nothing here owns a row.
package sheets

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// Record is one logical row keyed by field name. Values may be scalars, or
// lists/maps that are flattened to canonical JSON text before storage.
type Record map[string]any

// cellText flattens a single record value to the text form stored in a cell.
// Lists and maps become canonical JSON, scalars are text-coerced, nil is
// the empty cell.
func cellText(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case json.Number:
		return t.String(), nil
	case fmt.Stringer:
		return t.String(), nil
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Ptr:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("cannot serialize structured cell value %T: %w", v, err)
		}
		return string(b), nil
	}
	return fmt.Sprint(v), nil
}

// align serializes a record into a row ordered by the given header: one cell
// per header field, in header order. A field absent from the record yields
// an empty cell; a record key absent from the header never appears.
func align(headers []string, rec Record) ([]string, error) {
	row := make([]string, len(headers))
	for i, h := range headers {
		v, ok := rec[h]
		if !ok {
			continue
		}
		text, err := cellText(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", h, err)
		}
		row[i] = text
	}
	return row, nil
}
