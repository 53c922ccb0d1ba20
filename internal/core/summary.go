package core

// Summary holds the ledger totals: income is the sum of positive amounts,
// expenses the sum of negative amounts (kept negative here, display layers
// show the absolute value), and balance = income + expenses.
type Summary struct {
	IncomeCents  int64
	ExpenseCents int64
	BalanceCents int64
}

// CategoryAmount is an absolute expense total for one category, suitable
// for a distribution chart.
type CategoryAmount struct {
	Category Category
	Cents    int64
}
