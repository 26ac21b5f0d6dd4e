package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reporting/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_reporting/internal/core/ports/services"
)

// reportingService implements the ReportingService interface over one
// company snapshot.
type reportingService struct {
	BaseService
	chart   portsrepo.ChartReader
	journal portsrepo.JournalStore
	payroll portsrepo.PayrollStore
}

// NewReportingService creates a reporting service reading from the given snapshot.
func NewReportingService(snapshot portsrepo.LedgerSnapshot) portssvc.ReportingService {
	return &reportingService{
		chart:   snapshot.Chart,
		journal: snapshot.Journal,
		payroll: snapshot.Payroll,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Generate dispatches req to the matching report generator.
func (s *reportingService) Generate(ctx context.Context, req domain.ReportRequest) (domain.Report, error) {
	s.LogDebug(ctx, "Generating report",
		slog.String("kind", string(req.Kind)),
		slog.String("range", req.Range.String()),
		slog.String("account_id", req.AccountID))

	switch req.Kind {
	case domain.TrialBalanceKind:
		tb, err := s.TrialBalance(ctx, req.Range)
		if err != nil {
			return nil, err
		}
		return tb, nil
	case domain.AnalyticalLedgerKind:
		if strings.TrimSpace(req.AccountID) == "" {
			return nil, fmt.Errorf("%w: account id is required for %s", apperrors.ErrValidation, req.Kind)
		}
		al, err := s.AnalyticalLedger(ctx, req.AccountID, req.Range)
		if err != nil {
			return nil, err
		}
		return al, nil
	case domain.LegalJournalKind:
		lj, err := s.LegalJournal(ctx, req.Range)
		if err != nil {
			return nil, err
		}
		return lj, nil
	default:
		return nil, fmt.Errorf("%w: unknown report kind %q", apperrors.ErrValidation, req.Kind)
	}
}

// loadChart fetches the chart keyed by account id.
func (s *reportingService) loadChart(ctx context.Context) (map[string]domain.Account, error) {
	accounts, err := s.chart.ListAccounts(ctx)
	if err != nil {
		return nil, apperrors.Upstream("list accounts", err)
	}
	chart := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		chart[a.AccountID] = a
	}
	return chart, nil
}

// Account returns the chart account with the given id.
func (s *reportingService) Account(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.getAccount(ctx, accountID)
}

func (s *reportingService) getAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.chart.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, accountID)
		}
		err = apperrors.Upstream("get account", err)
		s.LogError(ctx, err, "Failed to fetch account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// reportingServiceFactory binds reporting services to company snapshots.
type reportingServiceFactory struct {
	BaseService
	provider portsrepo.SnapshotProvider
}

// NewReportingServiceFactory creates a factory reading snapshots from provider.
func NewReportingServiceFactory(provider portsrepo.SnapshotProvider) portssvc.ReportingServiceFactory {
	return &reportingServiceFactory{provider: provider}
}

var _ portssvc.ReportingServiceFactory = (*reportingServiceFactory)(nil)

func (f *reportingServiceFactory) WithCompany(ctx context.Context, companyID string, fn func(portssvc.ReportingService) error) error {
	if strings.TrimSpace(companyID) == "" {
		return fmt.Errorf("%w: company id must not be blank", apperrors.ErrValidation)
	}
	return f.provider.InSnapshot(ctx, companyID, func(snapshot portsrepo.LedgerSnapshot) error {
		f.LogDebug(ctx, "Opened ledger snapshot", slog.String("company_id", companyID))
		return fn(NewReportingService(snapshot))
	})
}
