// Package notion creates the monthly summary page in the user's Notion
// workspace. It only ever creates pages under a parent page: there is no
// true upsert, running it twice for the same month leaves two pages.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultBaseURL is the Notion REST API endpoint.
const DefaultBaseURL = "https://api.notion.com/v1"

// notionVersion is the API revision pinned by this client.
const notionVersion = "2022-06-28"

// Config holds what is needed to reach the workspace.
type Config struct {
	// Token is the integration's bearer credential.
	Token string
	// BaseURL overrides the API endpoint, mostly for tests.
	BaseURL string
	// HTTPClient overrides the transport. Nil means http.DefaultClient.
	HTTPClient *http.Client
}

// Client is a handle on the Notion workspace.
type Client struct {
	token string
	base  string
	http  *http.Client
}

// NewClient validates the configuration and returns a workspace handle.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("notion configuration: token is not set")
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{token: cfg.Token, base: strings.TrimRight(base, "/"), http: client}, nil
}

// Page identifies a created page.
type Page struct {
	ID  string `json:"page_id"`
	URL string `json:"page_url,omitempty"`
}

// CreateMonthPage creates the "<month> — Plan & Close" page under the given
// parent page, with the fixed section skeleton the monthly review follows.
// When sheetURL is set a bookmark to the spreadsheet is added, otherwise a
// placeholder line.
func (c *Client) CreateMonthPage(ctx context.Context, month, parentID, sheetURL string) (Page, error) {
	title := fmt.Sprintf("%s — Plan & Close", month)

	children := []any{
		callout("📌", "Expected income (base/upside): — | Planned invest %: — | Planned savings ₹: — | Goal funding: — | Trading cap: —"),

		heading("Plan"),
		paragraph("Category | % | ₹ | Notes (PocketPilot will fill this)"),
		toggle("Weekly targets",
			bullet("Variable essentials: ₹— / week"),
			bullet("Lifestyle: ₹— / week"),
		),

		heading("Actuals"),
		paragraph("Income total: ₹— | Expense total: ₹— | Net cashflow: ₹—"),
		paragraph("Category breakdown + Plan vs Actual will go here"),

		heading("Performance (Wins/Losses)"),
		paragraph("Realized P&L: ₹— | Unrealized P&L: ₹—"),
		paragraph("Win count: — | Loss count: — | Win rate: —%"),
		paragraph("Notes: what worked / what didn’t —"),

		heading("Net Worth Snapshot"),
		paragraph("Assets: ₹— | Liabilities: ₹— | Net worth: ₹—"),

		heading("Next Month Adjustments"),
		bullet("Cut: —"),
		bullet("Increase: —"),
		bullet("Rule changes: —"),

		heading("Links"),
	}
	if sheetURL != "" {
		children = append(children, map[string]any{
			"object": "block", "type": "bookmark",
			"bookmark": map[string]any{"url": sheetURL},
		})
	} else {
		children = append(children, paragraph("Google Sheet link: —"))
	}

	payload := map[string]any{
		"parent":     map[string]any{"page_id": parentID},
		"properties": map[string]any{"title": text(title)},
		"children":   children,
	}

	body, err := c.post(ctx, c.base+"/pages", payload)
	if err != nil {
		return Page{}, fmt.Errorf("cannot create month page %q: %w", month, err)
	}

	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return Page{}, fmt.Errorf("invalid notion response: %w", err)
	}
	var page Page
	if jval, err := jsonpath.Get("$.id", jobj); err == nil {
		page.ID, _ = jval.(string)
	}
	if jval, err := jsonpath.Get("$.url", jobj); err == nil {
		page.URL, _ = jval.(string)
	}
	if page.ID == "" {
		return Page{}, fmt.Errorf("notion response carries no page id")
	}
	return page, nil
}

func (c *Client) post(ctx context.Context, addr string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("cannot encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

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
		log.Printf("POST %s %s", addr, resp.Status)
		return nil, fmt.Errorf("received status %s: %s", resp.Status, strings.TrimSpace(string(buf)))
	}
	return buf, nil
}

// block helpers, mirroring the fixed page template.

func text(s string) []any {
	return []any{map[string]any{"type": "text", "text": map[string]any{"content": s}}}
}

func heading(s string) map[string]any {
	return map[string]any{"object": "block", "type": "heading_2", "heading_2": map[string]any{"rich_text": text(s)}}
}

func paragraph(s string) map[string]any {
	return map[string]any{"object": "block", "type": "paragraph", "paragraph": map[string]any{"rich_text": text(s)}}
}

func bullet(s string) map[string]any {
	return map[string]any{"object": "block", "type": "bulleted_list_item", "bulleted_list_item": map[string]any{"rich_text": text(s)}}
}

func callout(emoji, s string) map[string]any {
	return map[string]any{"object": "block", "type": "callout", "callout": map[string]any{
		"icon":      map[string]any{"emoji": emoji},
		"rich_text": text(s),
	}}
}

func toggle(s string, children ...any) map[string]any {
	return map[string]any{"object": "block", "type": "toggle", "toggle": map[string]any{
		"rich_text": text(s),
		"children":  children,
	}}
}
