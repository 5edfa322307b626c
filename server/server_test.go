package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/pocketpilot"
	"github.com/etnz/pocketpilot/notion"
	"github.com/etnz/pocketpilot/sheets/sheettest"
)

const apiKey = "test-secret"

func emptyTabs() map[string][][]string {
	return map[string][][]string{
		pocketpilot.TabBudgetMonthly: {{
			"month", "expected_income_base", "expected_income_upside",
			"fixed_bills", "variable_essentials", "lifestyle",
			"emergency", "sinking", "investing", "goal_contrib", "mode",
		}},
		pocketpilot.TabTransactions: {{
			"date", "amount", "type", "category", "account", "notes", "month", "tags",
		}},
		pocketpilot.TabHoldings: {{
			"as_of", "asset_type", "name", "qty", "avg_cost", "current_value", "account", "notes",
		}},
		pocketpilot.TabNetWorthSnapshots: {{
			"date", "cash_bank", "fd_total", "ppf_balance", "equity_value", "mf_value",
			"other_assets", "liabilities_cc", "liabilities_loans", "net_worth", "notes",
		}},
		pocketpilot.TabPerformanceMonthly: {{
			"month", "realized_pnl", "unrealized_pnl", "win_count", "loss_count", "win_rate", "notes",
		}},
		pocketpilot.TabSettings: {{
			"currency", "default_mode", "fiscal_year_start_month", "ppf_annual_target",
		}},
		pocketpilot.TabGoals: {{
			"name", "target", "saved", "due_month", "priority", "notes",
		}},
		pocketpilot.TabPlanYear: {{
			"fiscal_year", "income_target", "invest_target", "ppf_target", "notes",
		}},
	}
}

func newTestServer(t *testing.T, tabs map[string][][]string) (*Server, *sheettest.Sheet) {
	t.Helper()
	client, fake := sheettest.New(t, tabs)
	srv := New(Config{
		APIKey: apiKey,
		Profile: pocketpilot.Profile{
			Currency:             "INR",
			FiscalYearStartMonth: time.April,
			PPFAnnualTarget:      pocketpilot.M(150000, "INR"),
			DefaultMode:          "balanced",
		},
		Sheets: client,
	})
	return srv, fake
}

func call(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestAuth(t *testing.T) {
	srv, _ := newTestServer(t, emptyTabs())

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("unconfigured server key", func(t *testing.T) {
		bare := New(Config{})
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer anything")
		w := httptest.NewRecorder()
		bare.ServeHTTP(w, req)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
	})
}

func TestProfile(t *testing.T) {
	srv, _ := newTestServer(t, emptyTabs())
	w := call(t, srv, http.MethodGet, "/profile", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	got := decodeBody(t, w)
	if got["currency"] != "INR" || got["default_mode"] != "balanced" {
		t.Errorf("profile = %v", got)
	}
	if got["fiscal_year_start_month"] != float64(4) {
		t.Errorf("fiscal_year_start_month = %v, want 4", got["fiscal_year_start_month"])
	}
}

func TestMonthPlan(t *testing.T) {
	srv, fake := newTestServer(t, emptyTabs())

	w := call(t, srv, http.MethodPost, "/month/plan",
		`{"month":"2025-08","expected_income_base":150000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	got := decodeBody(t, w)
	if got["month"] != "2025-08" {
		t.Errorf("month = %v", got["month"])
	}
	if got["trading_cap_allowed"] != true {
		t.Error("trading should be allowed")
	}
	if got["extra_income_rule"] != pocketpilot.ExtraIncomeRule {
		t.Errorf("extra_income_rule = %v", got["extra_income_rule"])
	}

	rows := fake.Rows(pocketpilot.TabBudgetMonthly)
	if len(rows) != 2 {
		t.Fatalf("budget tab has %d rows, want header + 1", len(rows))
	}
	if rows[1][0] != "2025-08" || rows[1][10] != "balanced" {
		t.Errorf("budget row = %v", rows[1])
	}

	t.Run("zero income rejected", func(t *testing.T) {
		w := call(t, srv, http.MethodPost, "/month/plan", `{"month":"2025-08"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestTransactions(t *testing.T) {
	srv, fake := newTestServer(t, emptyTabs())

	w := call(t, srv, http.MethodPost, "/transactions", `{"items":[
		{"date":"2025-08-12","amount":450.5,"type":"expense","category":"fuel","month":"2025-08","tags":["bike","commute"]},
		{"date":"2025-08-13","amount":150000,"type":"income","category":"salary","month":"2025-08"}
	]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if got := decodeBody(t, w); got["inserted"] != float64(2) {
		t.Errorf("inserted = %v, want 2", got["inserted"])
	}

	rows := fake.Rows(pocketpilot.TabTransactions)
	if len(rows) != 3 {
		t.Fatalf("transactions tab has %d rows, want header + 2", len(rows))
	}
	if rows[1][7] != "bike,commute" {
		t.Errorf("tags cell = %q, want joined tags", rows[1][7])
	}

	t.Run("invalid type rejected before writing", func(t *testing.T) {
		w := call(t, srv, http.MethodPost, "/transactions",
			`{"items":[{"date":"2025-08-12","amount":1,"type":"gift","category":"x","month":"2025-08"}]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
		if len(fake.Rows(pocketpilot.TabTransactions)) != 3 {
			t.Error("invalid batch must not write rows")
		}
	})
}

func TestHoldings_Upsert(t *testing.T) {
	srv, fake := newTestServer(t, emptyTabs())

	w := call(t, srv, http.MethodPost, "/holdings", `{"as_of":"2025-08-30","items":[
		{"asset_type":"ppf","name":"PPF","current_value":200000},
		{"asset_type":"mf","name":"NIFTY Index","qty":120.5,"avg_cost":180,"current_value":24000}
	]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if got := decodeBody(t, w); got["inserted"] != float64(2) || got["updated"] != float64(0) {
		t.Errorf("first write = %v, want 2 inserted", got)
	}

	// same names again: rows are updated in place, not appended
	w = call(t, srv, http.MethodPost, "/holdings", `{"as_of":"2025-09-30","items":[
		{"asset_type":"ppf","name":"PPF","current_value":212500}
	]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if got := decodeBody(t, w); got["updated"] != float64(1) || got["inserted"] != float64(0) {
		t.Errorf("second write = %v, want 1 updated", got)
	}
	if rows := fake.Rows(pocketpilot.TabHoldings); len(rows) != 3 {
		t.Errorf("holdings tab has %d rows, want header + 2", len(rows))
	}
}

func TestNetWorthSnapshot(t *testing.T) {
	srv, fake := newTestServer(t, emptyTabs())

	w := call(t, srv, http.MethodPost, "/networth/snapshot",
		`{"date":"2025-08-30","cash_bank":10000,"fd_total":5000,"ppf_balance":2000,"liabilities_cc":1000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if got := decodeBody(t, w); got["net_worth"] != float64(16000) {
		t.Errorf("net_worth = %v, want 16000", got["net_worth"])
	}

	rows := fake.Rows(pocketpilot.TabNetWorthSnapshots)
	if len(rows) != 2 || rows[1][9] != "16000" {
		t.Errorf("snapshot rows = %v", rows)
	}
}

func TestMonthClose(t *testing.T) {
	srv, _ := newTestServer(t, emptyTabs())

	w := call(t, srv, http.MethodPost, "/month/close",
		`{"month":"2025-08","realized_pnl":1200,"win_count":3,"loss_count":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if got := decodeBody(t, w); got["win_rate"] != float64(75) {
		t.Errorf("win_rate = %v, want 75", got["win_rate"])
	}
}

func TestSettings(t *testing.T) {
	srv, _ := newTestServer(t, emptyTabs())

	// absent row serves the defaults
	w := call(t, srv, http.MethodGet, "/settings", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if got := decodeBody(t, w); got["currency"] != "INR" {
		t.Errorf("defaults = %v", got)
	}

	// merge-write into the fixed row
	w = call(t, srv, http.MethodPut, "/settings", `{"default_mode":"aggressive"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	got := decodeBody(t, w)
	if got["default_mode"] != "aggressive" {
		t.Errorf("default_mode = %v", got["default_mode"])
	}
	if got["currency"] != "INR" {
		t.Errorf("currency = %v, default lost on merge", got["currency"])
	}
}

func TestGoals(t *testing.T) {
	srv, _ := newTestServer(t, emptyTabs())

	w := call(t, srv, http.MethodPost, "/goals",
		`{"name":"scooty","target":90000,"saved":20000,"due_month":"2025-12","priority":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if got := decodeBody(t, w); got["action"] != "inserted" {
		t.Errorf("first upsert = %v", got)
	}

	w = call(t, srv, http.MethodPost, "/goals",
		`{"name":"scooty","target":90000,"saved":35000,"due_month":"2025-12","priority":1}`)
	if got := decodeBody(t, w); got["action"] != "updated" || got["row"] != float64(2) {
		t.Errorf("second upsert = %v, want updated row 2", got)
	}

	w = call(t, srv, http.MethodGet, "/goals", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	got := decodeBody(t, w)
	items, _ := got["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("goals = %v, want a single row", got)
	}
	goal, _ := items[0].(map[string]any)
	if goal["saved"] != "35000" {
		t.Errorf("goal = %v", goal)
	}
}

func TestYearPlan(t *testing.T) {
	srv, _ := newTestServer(t, emptyTabs())

	t.Run("absent fiscal year is 404", func(t *testing.T) {
		w := call(t, srv, http.MethodGet, "/year/plan?fy=FY2025-26", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	w := call(t, srv, http.MethodPost, "/year/plan",
		`{"fiscal_year":"FY2025-26","income_target":1800000,"invest_target":540000,"ppf_target":150000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	w = call(t, srv, http.MethodGet, "/year/plan?fy=FY2025-26", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if got := decodeBody(t, w); got["invest_target"] != "540000" {
		t.Errorf("year plan = %v", got)
	}
}

func TestErrorMapping_SchemaError(t *testing.T) {
	// a tab without a header row cannot accept aligned writes
	tabs := emptyTabs()
	tabs[pocketpilot.TabBudgetMonthly] = [][]string{}
	srv, _ := newTestServer(t, tabs)

	w := call(t, srv, http.MethodPost, "/month/plan",
		`{"month":"2025-08","expected_income_base":150000}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestErrorMapping_StoreUnavailable(t *testing.T) {
	srv, fake := newTestServer(t, emptyTabs())
	fake.Fail = true

	w := call(t, srv, http.MethodPost, "/networth/snapshot", `{"date":"2025-08-30"}`)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestNotionMonthPage(t *testing.T) {
	notionSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"page-42","url":"https://notion.so/page-42"}`)
	}))
	defer notionSrv.Close()

	client, _ := sheettest.New(t, emptyTabs())
	notionClient, err := notion.NewClient(notion.Config{
		Token: "tok", BaseURL: notionSrv.URL, HTTPClient: notionSrv.Client(),
	})
	if err != nil {
		t.Fatalf("notion.NewClient() error = %v", err)
	}
	srv := New(Config{
		APIKey:             apiKey,
		Sheets:             client,
		Notion:             notionClient,
		NotionParentPageID: "parent-1",
	})

	w := call(t, srv, http.MethodPost, "/notion/month-page", `{"month":"2025-08"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	got := decodeBody(t, w)
	if got["page_id"] != "page-42" || got["month"] != "2025-08" {
		t.Errorf("response = %v", got)
	}

	t.Run("no client configured", func(t *testing.T) {
		bare, _ := newTestServer(t, emptyTabs())
		w := call(t, bare, http.MethodPost, "/notion/month-page", `{"month":"2025-08"}`)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
	})
}
