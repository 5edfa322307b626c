// Package pocketpilot provides the domain types and fixed-rule computations
// for a small personal-finance bookkeeping service.
//
// The core functionalities include:
//   - Month Planning: Building a monthly budget plan from expected income
//     using a fixed allocation rule, with weekly spending targets and a
//     trading-cap policy.
//   - Bookkeeping Records: Transactions, holdings, net-worth snapshots,
//     monthly performance closes, goals and yearly plans, each knowing how
//     to project itself onto a spreadsheet tab's header row.
//   - Net Worth and Performance: Exact arithmetic on monetary values
//     (assets minus liabilities, win-rate ratios) using decimals.
//
// Persistence is delegated to the sheets package, which treats an external
// spreadsheet as the single source of truth. This package serves as the
// foundational logic for the `pp` command-line tool and the HTTP API.
package pocketpilot
