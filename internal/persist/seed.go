package persist

import (
	"github.com/google/uuid"

	"khata/internal/core"
)

// seedEntry describes one sample record as a magnitude plus an age in
// days, so seeded ledgers always span roughly the last two months
// relative to load time.
type seedEntry struct {
	description string
	cents       int64
	category    core.Category
	daysAgo     int
}

var seedEntries = []seedEntry{
	{"Monthly Salary", 75_000_00, core.CategoryIncome, 5},
	{"Freelance Project", 25_000_00, core.CategoryIncome, 35},
	{"Stock Dividends", 5_000_00, core.CategoryIncome, 65},

	{"Big Bazaar Groceries", 3_200_00, core.CategoryFood, 2},
	{"Reliance Fresh", 1_850_00, core.CategoryFood, 15},
	{"Dmart Shopping", 2_750_00, core.CategoryFood, 45},
	{"Restaurant Dinner", 1_200_00, core.CategoryFood, 7},

	{"Ola Cab", 450_00, core.CategoryTravel, 3},
	{"Petrol", 3_000_00, core.CategoryTravel, 10},
	{"Metro Recharge", 1_000_00, core.CategoryTravel, 25},
	{"Uber Ride", 350_00, core.CategoryTravel, 40},

	{"Electricity Bill", 2_500_00, core.CategoryBills, 8},
	{"Airtel Postpaid", 599_00, core.CategoryBills, 12},
	{"Gas Cylinder", 1_100_00, core.CategoryBills, 50},

	{"Amazon India", 4_500_00, core.CategoryShopping, 18},
	{"Myntra Fashion", 3_200_00, core.CategoryShopping, 30},

	{"Netflix India", 649_00, core.CategoryEntertainment, 15},
	{"Movie Tickets", 800_00, core.CategoryEntertainment, 5},

	{"Apollo Pharmacy", 1_200_00, core.CategoryHealthcare, 22},

	{"Coursera Course", 3_499_00, core.CategoryEducation, 60},

	{"Gift", 2_000_00, core.CategoryOther, 28},
}

// SeedTransactions builds the canonical sample dataset with dates
// computed backwards from today. Every entry passes the field validators
// and carries the normalized sign for its category.
func SeedTransactions(today core.Date) []core.Transaction {
	txs := make([]core.Transaction, 0, len(seedEntries))
	for _, e := range seedEntries {
		c := core.Candidate{
			Description: e.description,
			AmountCents: e.cents,
			Category:    e.category,
			Date:        today.Add(-e.daysAgo),
		}
		txs = append(txs, core.Transaction{
			ID:          uuid.NewString(),
			Description: c.Description,
			AmountCents: c.NormalizedAmount(),
			Category:    c.Category,
			Date:        c.Date,
		})
	}
	return txs
}
