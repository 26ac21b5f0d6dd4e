package services

import (
	"context"
	"iter"

	"github.com/SscSPs/ledger_reporting/internal/core/domain"
)

// BalanceAggregatorSvc computes per-account positions over a date range.
type BalanceAggregatorSvc interface {
	// ComputeBalances returns the period balance of each requested account along
	// with any integrity violations met while folding the lines.
	ComputeBalances(ctx context.Context, accountIDs []string, r domain.DateRange) (map[string]domain.AccountPeriodBalance, []domain.IntegrityViolation, error)
}

// TrialBalanceSvc generates trial balances.
type TrialBalanceSvc interface {
	TrialBalance(ctx context.Context, r domain.DateRange) (*domain.TrialBalance, error)
}

// AnalyticalLedgerSvc generates single-account ledgers.
type AnalyticalLedgerSvc interface {
	// AnalyticalLedger materializes the full ledger for one account.
	AnalyticalLedger(ctx context.Context, accountID string, r domain.DateRange) (*domain.AnalyticalLedger, error)

	// Account looks up one chart account. Unknown ids yield ErrUnknownAccount.
	Account(ctx context.Context, accountID string) (*domain.Account, error)

	// LedgerTransactions lazily folds the account's postings from the given
	// opening balance, yielding each posting with its running balance.
	LedgerTransactions(ctx context.Context, account domain.Account, r domain.DateRange, opening domain.Balance) iter.Seq2[domain.LedgerTransaction, error]
}

// LegalJournalSvc generates legal journal exports.
type LegalJournalSvc interface {
	LegalJournal(ctx context.Context, r domain.DateRange) (*domain.LegalJournal, error)
}

// CheckSearchSvc searches ledger and payroll records by check number.
type CheckSearchSvc interface {
	SearchChecks(ctx context.Context, checkNumber string) ([]domain.CheckReference, error)
}

// ReportingService is the engine entry point for one company snapshot.
type ReportingService interface {
	BalanceAggregatorSvc
	TrialBalanceSvc
	AnalyticalLedgerSvc
	LegalJournalSvc
	CheckSearchSvc

	// Generate produces the report variant selected by req.Kind.
	Generate(ctx context.Context, req domain.ReportRequest) (domain.Report, error)
}

// ReportingServiceFactory builds company-scoped reporting services.
type ReportingServiceFactory interface {
	// WithCompany runs fn against a reporting service bound to one consistent
	// snapshot of the company's ledger.
	WithCompany(ctx context.Context, companyID string, fn func(ReportingService) error) error
}
