package pocketpilot

// Names of the spreadsheet tabs the bookkeeping records live in. The header
// row of each tab is defined in the spreadsheet itself; the Record methods
// below reference its field names verbatim.
const (
	TabBudgetMonthly      = "Budget_Monthly"
	TabTransactions       = "Transactions"
	TabHoldings           = "Holdings"
	TabNetWorthSnapshots  = "NetWorth_Snapshots"
	TabPerformanceMonthly = "Performance_Monthly"
	TabSettings           = "Settings"
	TabGoals              = "Goals"
	TabPlanYear           = "Plan_Year"
)
