package sheets

import "context"

// ReadAll reads the whole tab and returns one record per data row, in row
// order (row 2 first), zipped positionally against the header row. A row
// shorter than the header pads its trailing fields with ""; a longer row
// has its excess cells ignored. An empty cell reads back as "", not as an
// absent field.
func (c *Client) ReadAll(ctx context.Context, tab string) ([]Record, error) {
	rows, err := c.values(ctx, tab, tab)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &SchemaError{Tab: tab, Reason: "no header row in row 1"}
	}
	headers := rows[0]
	// The full read already carries a fresh header; keep the cache in step.
	c.headers.put(tab, headers)

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, zip(headers, row))
	}
	return records, nil
}

// ReadRow reads a single data row by its 1-based position, zipped against
// the header. It returns nil when the row has no cells.
func (c *Client) ReadRow(ctx context.Context, tab string, row int) (Record, error) {
	headers, err := c.Headers(ctx, tab)
	if err != nil {
		return nil, err
	}
	rangeRef := rowRange(tab, row)
	rows, err := c.values(ctx, tab, rangeRef)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, nil
	}
	return zip(headers, rows[0]), nil
}

// zip builds one record from a header and a positional row.
func zip(headers, row []string) Record {
	rec := make(Record, len(headers))
	for i, h := range headers {
		if i < len(row) {
			rec[h] = row[i]
		} else {
			rec[h] = ""
		}
	}
	return rec
}
