package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reporting/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_reporting/internal/models"
	"github.com/SscSPs/ledger_reporting/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `company_id, account_id, code, name, account_type, normal_side, COALESCE(parent_account_id, ''), is_active`

type PgxChartRepository struct {
	BaseRepository
}

// newPgxChartRepository creates a chart reader bound to one company.
func newPgxChartRepository(db querier, companyID string) *PgxChartRepository {
	return &PgxChartRepository{BaseRepository{DB: db, CompanyID: companyID}}
}

var _ portsrepo.ChartReader = (*PgxChartRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.CompanyID,
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.NormalSide,
		&m.ParentAccountID,
		&m.IsActive,
	)
	return m, err
}

// ListAccounts retrieves the whole chart of the company, ordered by code.
func (r *PgxChartRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1
		ORDER BY code, account_id;`

	rows, err := r.DB.Query(ctx, query, r.CompanyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for company "+r.CompanyID, err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	return mapping.ToDomainAccounts(accounts), nil
}

// GetAccount retrieves a single account of the company.
func (r *PgxChartRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_id = $2;`

	m, err := scanAccount(r.DB.QueryRow(ctx, query, r.CompanyID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}
