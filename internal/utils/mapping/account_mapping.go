package mapping

import (
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	"github.com/SscSPs/ledger_reporting/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account. A missing
// normal side falls back to the conventional side of the account type.
func ToDomainAccount(m models.Account) domain.Account {
	side := domain.NormalSide(m.NormalSide)
	if !side.Valid() {
		side = domain.DefaultNormalSide(domain.AccountType(m.AccountType))
	}
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		NormalSide:      side,
		AccountType:     domain.AccountType(m.AccountType),
		ParentAccountID: m.ParentAccountID,
		IsActive:        m.IsActive,
	}
}

// ToDomainAccounts converts a slice of model Accounts.
func ToDomainAccounts(ms []models.Account) []domain.Account {
	out := make([]domain.Account, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccount(m)
	}
	return out
}
