// Package sheettest provides an in-memory spreadsheet behind an httptest
// server, speaking the subset of the values API the gateway uses.
package sheettest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/etnz/pocketpilot/sheets"
)

// Sheet is a fake spreadsheet. Tabs maps a tab name to its rows, row 1
// first.
type Sheet struct {
	mu   sync.Mutex
	tabs map[string][][]string

	// Gets counts the GET round-trips served, to observe caching.
	Gets int
	// Fail makes every call answer 503 until reset.
	Fail bool
}

// New starts a fake spreadsheet with the given tabs and returns a gateway
// client wired to it.
func New(t *testing.T, tabs map[string][][]string) (*sheets.Client, *Sheet) {
	t.Helper()
	if tabs == nil {
		tabs = make(map[string][][]string)
	}
	fake := &Sheet{tabs: tabs}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := sheets.NewClient(sheets.Config{
		SpreadsheetID: "fake-sheet",
		Token:         Token,
		BaseURL:       srv.URL,
		HTTPClient:    srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client, fake
}

// Token is the bearer credential the fake accepts.
const Token = "fake-token"

// Rows returns a copy of a tab's rows.
func (f *Sheet) Rows(tab string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.tabs[tab]))
	copy(out, f.tabs[tab])
	return out
}

func (f *Sheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Fail {
		http.Error(w, `{"error":"backend gone"}`, http.StatusServiceUnavailable)
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+Token {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	parts := strings.SplitN(r.URL.Path, "/values/", 2)
	if len(parts) != 2 {
		http.Error(w, "bad path", http.StatusNotFound)
		return
	}
	ref, err := url.PathUnescape(parts[1])
	if err != nil {
		http.Error(w, "bad range", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPost:
		tab := strings.TrimSuffix(ref, ":append")
		row, err := decodeRow(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.tabs[tab] = append(f.tabs[tab], row)
		fmt.Fprint(w, `{}`)

	case http.MethodPut:
		tab, first, _, ok := parseRowSpec(ref)
		if !ok {
			http.Error(w, "unsupported update range "+ref, http.StatusBadRequest)
			return
		}
		row, err := decodeRow(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rows := f.tabs[tab]
		for len(rows) < first {
			rows = append(rows, nil)
		}
		rows[first-1] = row
		f.tabs[tab] = rows
		fmt.Fprint(w, `{}`)

	case http.MethodGet:
		f.Gets++
		rows, ok := f.query(ref)
		if !ok {
			http.Error(w, "unsupported range "+ref, http.StatusBadRequest)
			return
		}
		payload := map[string]any{}
		if len(rows) > 0 {
			payload["values"] = rows
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

// query resolves the range forms the gateway emits: "Tab", "Tab!1:1",
// "Tab!C2:C".
func (f *Sheet) query(ref string) ([][]string, bool) {
	if !strings.Contains(ref, "!") {
		return f.tabs[ref], true
	}
	if tab, first, last, ok := parseRowSpec(ref); ok {
		rows := f.tabs[tab]
		var out [][]string
		for i := first; i <= last && i <= len(rows); i++ {
			out = append(out, rows[i-1])
		}
		return out, true
	}
	if tab, col, first, ok := parseColumnSpec(ref); ok {
		var out [][]string
		for i, row := range f.tabs[tab] {
			if i+1 < first {
				continue
			}
			cell := ""
			if col < len(row) {
				cell = row[col]
			}
			out = append(out, []string{cell})
		}
		return out, true
	}
	return nil, false
}

// parseRowSpec matches "Tab!r:r" whole-row references.
func parseRowSpec(ref string) (tab string, first, last int, ok bool) {
	tab, spec, found := strings.Cut(ref, "!")
	if !found {
		return "", 0, 0, false
	}
	a, b, found := strings.Cut(spec, ":")
	if !found {
		return "", 0, 0, false
	}
	first, err1 := strconv.Atoi(a)
	last, err2 := strconv.Atoi(b)
	if err1 != nil || err2 != nil {
		return "", 0, 0, false
	}
	return tab, first, last, true
}

// parseColumnSpec matches "Tab!C2:C" single-column references.
func parseColumnSpec(ref string) (tab string, col, first int, ok bool) {
	tab, spec, found := strings.Cut(ref, "!")
	if !found {
		return "", 0, 0, false
	}
	a, b, found := strings.Cut(spec, ":")
	if !found {
		return "", 0, 0, false
	}
	letters := strings.TrimRight(a, "0123456789")
	digits := strings.TrimPrefix(a, letters)
	if letters == "" || digits == "" || letters != b {
		return "", 0, 0, false
	}
	first, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, 0, false
	}
	col = 0
	for _, r := range letters {
		col = col*26 + int(r-'A') + 1
	}
	return tab, col - 1, first, true
}

func decodeRow(r *http.Request) ([]string, error) {
	var payload struct {
		Values [][]any `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload.Values) != 1 {
		return nil, fmt.Errorf("want exactly one row, got %d", len(payload.Values))
	}
	row := make([]string, len(payload.Values[0]))
	for i, cell := range payload.Values[0] {
		row[i] = fmt.Sprint(cell)
	}
	return row, nil
}
