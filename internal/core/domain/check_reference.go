package domain

import "time"

// CheckSourceKind identifies which collaborator produced a check reference.
type CheckSourceKind string

const (
	SourceJournal CheckSourceKind = "JOURNAL"
	SourcePayroll CheckSourceKind = "PAYROLL"
)

// order places journal references ahead of payroll ones on the same date.
func (k CheckSourceKind) order() int {
	if k == SourceJournal {
		return 0
	}
	return 1
}

// CheckReference is a transient search hit tagged by check number.
type CheckReference struct {
	CheckNumber string          `json:"checkNumber"`
	SourceKind  CheckSourceKind `json:"sourceKind"`
	SourceID    string          `json:"sourceID"`
	Date        time.Time       `json:"date"`
	Amount      uint64          `json:"amount"`
	Description string          `json:"description"`
}

// CompareCheckReferences orders by date, then source kind, then source id.
// Source ids compare shorter-first so numeric ids sort numerically.
func CompareCheckReferences(a, b CheckReference) int {
	switch {
	case a.Date.Before(b.Date):
		return -1
	case a.Date.After(b.Date):
		return 1
	}
	if d := a.SourceKind.order() - b.SourceKind.order(); d != 0 {
		return d
	}
	if len(a.SourceID) != len(b.SourceID) {
		return len(a.SourceID) - len(b.SourceID)
	}
	switch {
	case a.SourceID < b.SourceID:
		return -1
	case a.SourceID > b.SourceID:
		return 1
	}
	return 0
}

// PayrollDisbursement is a payroll payment made by check.
type PayrollDisbursement struct {
	DisbursementID string    `json:"disbursementID"`
	EmployeeName   string    `json:"employeeName"`
	CheckNumber    string    `json:"checkNumber"`
	PayDate        time.Time `json:"payDate"`
	NetAmount      uint64    `json:"netAmount"`
}
