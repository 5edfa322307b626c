package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultBaseURL is the spreadsheet values endpoint of the Google Sheets
// REST API.
const DefaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// Config holds what is needed to reach one spreadsheet.
type Config struct {
	// SpreadsheetID is the opaque identifier of the spreadsheet resource.
	SpreadsheetID string
	// Token is the bearer credential presented on every call.
	Token string
	// BaseURL overrides the API endpoint, mostly for tests. Empty means
	// DefaultBaseURL.
	BaseURL string
	// HTTPClient overrides the transport. Nil means http.DefaultClient.
	HTTPClient *http.Client
}

// Client is a handle on one spreadsheet resource. It caches each tab's
// header row for the lifetime of the client and serializes upserts per tab.
// The handle itself is safe for concurrent use; the rows it describes are
// only protected by the remote store's own last-write-wins semantics.
type Client struct {
	spreadsheetID string
	token         string
	base          string
	http          *http.Client

	headers headerCache
	tabs    tabLocks
}

// NewClient validates the configuration and returns a resource handle.
// No remote call is made yet.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, &ConfigurationError{Reason: "spreadsheet id is not set"}
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, &ConfigurationError{Reason: "access token is not set"}
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		spreadsheetID: cfg.SpreadsheetID,
		token:         cfg.Token,
		base:          strings.TrimRight(base, "/"),
		http:          client,
		headers:       headerCache{rows: make(map[string][]string)},
		tabs:          tabLocks{locks: make(map[string]*sync.Mutex)},
	}, nil
}

// Headers returns the tab's header row (row 1), cached after the first
// read for the lifetime of the client. A remote header edit is therefore
// invisible until Invalidate is called: callers needing freshness must
// invalidate first.
func (c *Client) Headers(ctx context.Context, tab string) ([]string, error) {
	if cached, ok := c.headers.get(tab); ok {
		return cached, nil
	}
	rows, err := c.values(ctx, tab, tab+"!1:1")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &SchemaError{Tab: tab, Reason: "no header row in row 1"}
	}
	c.headers.put(tab, rows[0])
	return rows[0], nil
}

// Invalidate drops the cached header row of a tab, forcing the next
// operation to re-read it.
func (c *Client) Invalidate(tab string) { c.headers.drop(tab) }

// headerCache memoizes header rows per tab. It is owned by the Client, not
// package state, so two clients never share staleness.
type headerCache struct {
	mu   sync.RWMutex
	rows map[string][]string
}

func (h *headerCache) get(tab string) ([]string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	row, ok := h.rows[tab]
	return row, ok
}

func (h *headerCache) put(tab string, row []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rows[tab] = row
}

func (h *headerCache) drop(tab string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rows, tab)
}

// tabLocks hands out one mutex per tab name, serializing in-process
// scan-and-write sequences against the same tab.
type tabLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (t *tabLocks) of(tab string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[tab]
	if !ok {
		l = new(sync.Mutex)
		t.locks[tab] = l
	}
	return l
}

// values fetches a range and returns its rows as text cells.
func (c *Client) values(ctx context.Context, tab, rangeRef string) ([][]string, error) {
	addr := fmt.Sprintf("%s/%s/values/%s", c.base, url.PathEscape(c.spreadsheetID), url.PathEscape(rangeRef))
	body, err := c.do(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, &StoreUnavailableError{Op: "read", Tab: tab, Err: err}
	}

	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return nil, &StoreUnavailableError{Op: "read", Tab: tab, Err: fmt.Errorf("invalid response body: %w", err)}
	}
	jval, err := jsonpath.Get("$.values", jobj)
	if err != nil {
		// An empty range has no "values" member at all.
		return nil, nil
	}
	jrows, ok := jval.([]any)
	if !ok {
		return nil, &StoreUnavailableError{Op: "read", Tab: tab, Err: fmt.Errorf("unexpected values payload %T", jval)}
	}

	rows := make([][]string, 0, len(jrows))
	for _, jrow := range jrows {
		jcells, ok := jrow.([]any)
		if !ok {
			return nil, &StoreUnavailableError{Op: "read", Tab: tab, Err: fmt.Errorf("unexpected row payload %T", jrow)}
		}
		cells := make([]string, len(jcells))
		for i, jcell := range jcells {
			if jcell == nil {
				continue
			}
			if s, ok := jcell.(string); ok {
				cells[i] = s
			} else {
				cells[i] = fmt.Sprint(jcell)
			}
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// appendRow appends one row after the last data row of the tab.
func (c *Client) appendRow(ctx context.Context, tab string, row []string) error {
	addr := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=USER_ENTERED",
		c.base, url.PathEscape(c.spreadsheetID), url.PathEscape(tab))
	if err := c.write(ctx, http.MethodPost, addr, row); err != nil {
		return &StoreUnavailableError{Op: "append", Tab: tab, Err: err}
	}
	return nil
}

// updateRow overwrites exactly the cells of the given range with one row.
func (c *Client) updateRow(ctx context.Context, tab, rangeRef string, row []string) error {
	addr := fmt.Sprintf("%s/%s/values/%s?valueInputOption=USER_ENTERED",
		c.base, url.PathEscape(c.spreadsheetID), url.PathEscape(rangeRef))
	if err := c.write(ctx, http.MethodPut, addr, row); err != nil {
		return &StoreUnavailableError{Op: "update", Tab: tab, Err: err}
	}
	return nil
}

func (c *Client) write(ctx context.Context, method, addr string, row []string) error {
	cells := make([]any, len(row))
	for i, cell := range row {
		cells[i] = cell
	}
	payload, err := json.Marshal(map[string]any{"values": []any{cells}})
	if err != nil {
		return fmt.Errorf("cannot encode row: %w", err)
	}
	_, err = c.do(ctx, method, addr, bytes.NewReader(payload))
	return err
}

// do performs one authenticated round-trip and returns the response body.
func (c *Client) do(ctx context.Context, method, addr string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, addr, body)
	if err != nil {
		return nil, fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot execute http request: %w", err)
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("%s %s %s", method, addr, resp.Status)
		return nil, fmt.Errorf("received status %s: %s", resp.Status, strings.TrimSpace(string(buf)))
	}
	return buf, nil
}
