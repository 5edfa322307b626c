package sheets

import "context"

// Append serializes the record against the tab's header row and appends it
// as the new last row. Header fields absent from the record are written
// blank; record fields unknown to the header are dropped. The row's final
// position is not reported back.
func (c *Client) Append(ctx context.Context, tab string, rec Record) error {
	headers, err := c.Headers(ctx, tab)
	if err != nil {
		return err
	}
	row, err := align(headers, rec)
	if err != nil {
		return &SchemaError{Tab: tab, Reason: err.Error()}
	}
	return c.appendRow(ctx, tab, row)
}
