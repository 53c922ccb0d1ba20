package core

import "errors"

// Well-known categories. The set is open: validation only requires a
// non-empty category, so callers may introduce new ones without touching
// this package.
const (
	CategoryIncome        Category = "Income"
	CategoryFood          Category = "Food"
	CategoryTravel        Category = "Travel"
	CategoryBills         Category = "Bills"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealthcare    Category = "Healthcare"
	CategoryEducation     Category = "Education"
	CategoryOther         Category = "Other"
)

type (
	Category string

	// Transaction is one income or expense record in the ledger.
	// AmountCents carries the direction: positive for income, negative
	// for expenses. The sign is derived from the category at write time,
	// never supplied by the caller.
	Transaction struct {
		ID          string   `json:"id"`
		Description string   `json:"description"`
		AmountCents int64    `json:"amount_cents"`
		Category    Category `json:"category"`
		Date        Date     `json:"date"`
	}

	// Candidate is a proposed transaction as submitted by a form:
	// the amount is an unsigned magnitude, direction comes from the
	// category once the candidate is accepted.
	Candidate struct {
		Description string
		AmountCents int64
		Category    Category
		Date        Date
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrEmptyCategory      = errors.New("empty category")
	ErrInvalidDate        = errors.New("invalid date")
)

// IsIncome reports whether the category directs amounts to the income side.
func (c Category) IsIncome() bool { return c == CategoryIncome }

// Categories returns the canonical category list in display order.
func Categories() []Category {
	return []Category{
		CategoryIncome,
		CategoryFood,
		CategoryTravel,
		CategoryBills,
		CategoryShopping,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryEducation,
		CategoryOther,
	}
}

// NormalizedAmount returns the signed amount for the candidate:
// positive when the category is Income, negative otherwise.
func (c Candidate) NormalizedAmount() int64 {
	mag := c.AmountCents
	if mag < 0 {
		mag = -mag
	}
	if c.Category.IsIncome() {
		return mag
	}
	return -mag
}

// IsExpense reports whether the transaction is an expense record.
func (t Transaction) IsExpense() bool { return t.AmountCents < 0 }

// Same reports whether two transactions would be considered duplicates:
// identical description, signed amount, category and date. The id is
// deliberately excluded.
func (t Transaction) Same(o Transaction) bool {
	return t.Description == o.Description &&
		t.AmountCents == o.AmountCents &&
		t.Category == o.Category &&
		t.Date.Equal(o.Date)
}
