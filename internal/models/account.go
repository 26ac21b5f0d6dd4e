package models

// Account is the database row of a chart-of-accounts entry.
type Account struct {
	CompanyID       string `db:"company_id"`
	AccountID       string `db:"account_id"`
	Code            string `db:"code"`
	Name            string `db:"name"`
	AccountType     string `db:"account_type"`
	NormalSide      string `db:"normal_side"`
	ParentAccountID string `db:"parent_account_id"` // Nullable
	IsActive        bool   `db:"is_active"`
}
