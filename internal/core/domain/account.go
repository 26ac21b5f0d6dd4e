package domain

// AccountType defines the fundamental accounting category of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalSide is the side on which an account's balance conventionally grows.
type NormalSide string

const (
	DebitNormal  NormalSide = "DEBIT"
	CreditNormal NormalSide = "CREDIT"
)

// Valid reports whether the side is one of the two known values.
func (s NormalSide) Valid() bool {
	return s == DebitNormal || s == CreditNormal
}

// DefaultNormalSide returns the conventional normal side for an account type.
// Assets and expenses are debit-normal, everything else is credit-normal.
func DefaultNormalSide(t AccountType) NormalSide {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// Account is an entry of the chart of accounts. It is read-only to the
// reporting engine.
type Account struct {
	AccountID       string      `json:"accountID"`
	Code            string      `json:"code"` // Unique, used for ordering and display
	Name            string      `json:"name"`
	NormalSide      NormalSide  `json:"normalSide"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID"` // Empty for top-level accounts
	IsActive        bool        `json:"isActive"`
}
