package repositories

import (
	"context"

	"github.com/SscSPs/ledger_reporting/internal/core/domain"
)

// PayrollStore is the read-only view of payroll disbursements.
type PayrollStore interface {
	// DisbursementsByCheck returns the disbursements paid with the given check number.
	DisbursementsByCheck(ctx context.Context, checkNumber string) ([]domain.PayrollDisbursement, error)
}
