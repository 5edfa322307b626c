package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/pocketpilot"
	"github.com/etnz/pocketpilot/sheets"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expected from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his monthly budget, his goals, his net worth
			and whether his spending is on track. Amounts are in his home currency unless said otherwise.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.

			The user will assume that you already looked at his spreadsheet, check it first to understand
			what his tabs contain.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher is the search-grounded expert for anything outside the
// spreadsheet: product rates, instruments, financial news.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is a personal finance researcher,
		well aware of savings products, funds, rates and financial institutions,
		and of the latest related news.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in personal finance, you can search and find about anything related to
			savings products, funds, rates, financial institutions and markets. You leverage Google Search
			to ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewBookkeeper is the expert in charge of the user's spreadsheet. It reads
// tabs through the gateway and answers questions about budget, transactions,
// holdings, goals and net worth.
func NewBookkeeper(gateway *sheets.Client) *Expert {

	lib := []Function{newReadTab(gateway)}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's bookkeeping spreadsheet.
		He can list budget plans, transactions, holdings, goals, net worth snapshots and monthly performance.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's personal finance spreadsheet.
				You know how to use the Tools to extract relevant information about the user's money.
				You are part of a team of experts, yours is everything inside the spreadsheet. They might ask
				you questions about the user's budget or wealth, pardon their approximative language and
				figure out what they meant.

				Use the available tools to read the spreadsheet tabs
				  - monthly budget plans
				  - transactions
				  - holdings and net worth snapshots
				  - goals and the year plan
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// knownTabs are the tabs the bookkeeper may read.
var knownTabs = []string{
	pocketpilot.TabBudgetMonthly,
	pocketpilot.TabTransactions,
	pocketpilot.TabHoldings,
	pocketpilot.TabNetWorthSnapshots,
	pocketpilot.TabPerformanceMonthly,
	pocketpilot.TabSettings,
	pocketpilot.TabGoals,
	pocketpilot.TabPlanYear,
}

func newReadTab(gateway *sheets.Client) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "ReadTab",
			Description: `ReadTab reads one tab of the user's spreadsheet and returns all its rows.

			Available tabs: ` + strings.Join(knownTabs, ", ") + `.
			`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"tab": {
						Type:        genai.TypeString,
						Description: "The exact name of the tab to read.",
					},
				},
				Required: []string{"tab"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all the rows in the tab.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			fail := func(err error) *genai.FunctionResponse {
				return &genai.FunctionResponse{
					ID:   id,
					Name: "ReadTab",
					Response: map[string]any{
						"error": err.Error(),
					},
				}
			}

			tab, ok := args["tab"].(string)
			if !ok {
				return fail(fmt.Errorf("argument 'tab' is not a string as expected but %T", args["tab"]))
			}

			headers, err := gateway.Headers(ctx, tab)
			if err != nil {
				return fail(fmt.Errorf("could not read tab %q: %w", tab, err))
			}
			records, err := gateway.ReadAll(ctx, tab)
			if err != nil {
				return fail(fmt.Errorf("could not read tab %q: %w", tab, err))
			}

			return &genai.FunctionResponse{
				ID:   id,
				Name: "ReadTab",
				Response: map[string]any{
					"output": tableMarkdown(headers, records),
				},
			}
		},
	}
}

// tableMarkdown renders records as a markdown table in header order.
func tableMarkdown(headers []string, records []sheets.Record) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, rec := range records {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = fmt.Sprint(rec[h])
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}

// Tabs returns the readable tab names, sorted, for help texts.
func Tabs() []string {
	tabs := make([]string, len(knownTabs))
	copy(tabs, knownTabs)
	sort.Strings(tabs)
	return tabs
}
