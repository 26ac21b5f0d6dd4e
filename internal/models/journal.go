package models

import "time"

// JournalEntry is the database row of a journal entry header.
type JournalEntry struct {
	CompanyID         string    `db:"company_id"`
	EntryNumber       int64     `db:"entry_number"`
	CorrelativeNumber int64     `db:"correlative_number"`
	EntryDate         time.Time `db:"entry_date"`
	Description       string    `db:"description"` // Nullable
	Reference         string    `db:"reference"`   // Nullable
	Status            string    `db:"status"`
}

// JournalLine is the database row of a single posting. Amounts are stored as
// BIGINT minor units and are never negative.
type JournalLine struct {
	CompanyID   string `db:"company_id"`
	EntryNumber int64  `db:"entry_number"`
	LineNumber  int    `db:"line_number"`
	AccountID   string `db:"account_id"`
	DebitMinor  int64  `db:"debit_minor"`
	CreditMinor int64  `db:"credit_minor"`
}

// PayrollDisbursement is the database row of a payroll payment by check.
type PayrollDisbursement struct {
	CompanyID      string    `db:"company_id"`
	DisbursementID string    `db:"disbursement_id"`
	EmployeeName   string    `db:"employee_name"`
	CheckNumber    string    `db:"check_number"`
	PayDate        time.Time `db:"pay_date"`
	NetAmountMinor int64     `db:"net_amount_minor"`
}
