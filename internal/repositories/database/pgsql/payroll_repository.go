package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reporting/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_reporting/internal/models"
	"github.com/SscSPs/ledger_reporting/internal/utils/mapping"
)

type PgxPayrollRepository struct {
	BaseRepository
}

func newPgxPayrollRepository(db querier, companyID string) *PgxPayrollRepository {
	return &PgxPayrollRepository{BaseRepository{DB: db, CompanyID: companyID}}
}

var _ portsrepo.PayrollStore = (*PgxPayrollRepository)(nil)

// DisbursementsByCheck retrieves the payroll disbursements paid with the given check.
func (r *PgxPayrollRepository) DisbursementsByCheck(ctx context.Context, checkNumber string) ([]domain.PayrollDisbursement, error) {
	query := `
		SELECT company_id, disbursement_id, employee_name, check_number, pay_date, net_amount_minor
		FROM payroll_disbursements
		WHERE company_id = $1 AND check_number = $2
		ORDER BY pay_date, disbursement_id;`

	rows, err := r.DB.Query(ctx, query, r.CompanyID, checkNumber)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payroll disbursements by check", err)
	}
	defer rows.Close()

	var out []domain.PayrollDisbursement
	for rows.Next() {
		var m models.PayrollDisbursement
		if err := rows.Scan(
			&m.CompanyID,
			&m.DisbursementID,
			&m.EmployeeName,
			&m.CheckNumber,
			&m.PayDate,
			&m.NetAmountMinor,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payroll disbursement row", err)
		}
		out = append(out, mapping.ToDomainPayrollDisbursement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payroll disbursement rows", err)
	}
	return out, nil
}
