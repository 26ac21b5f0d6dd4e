package repositories

import (
	"context"

	"github.com/SscSPs/ledger_reporting/internal/core/domain"
)

// ChartReader defines read operations on a company's chart of accounts.
type ChartReader interface {
	// ListAccounts returns every account of the chart, in no particular order.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// GetAccount returns one account or an error wrapping apperrors.ErrNotFound.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
}
