package services

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	"github.com/SscSPs/ledger_reporting/internal/utils/accounting"
)

// TrialBalance summarizes every account carrying an opening balance or
// period activity, ordered by account code. An imbalance is reported through
// IsBalanced and never as an error.
func (s *reportingService) TrialBalance(ctx context.Context, r domain.DateRange) (*domain.TrialBalance, error) {
	if err := validateRange(r); err != nil {
		return nil, err
	}

	chart, err := s.loadChart(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts for trial balance")
		return nil, err
	}

	accounts := sortedByCode(chart)
	ids := make([]string, len(accounts))
	for i, a := range accounts {
		ids[i] = a.AccountID
	}

	balances, violations, err := s.aggregate(ctx, chart, ids, r)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate balances for trial balance", slog.String("range", r.String()))
		return nil, err
	}

	unknown, err := s.unknownAccountLines(ctx, chart, r)
	if err != nil {
		s.LogError(ctx, err, "Failed to scan journal for unknown accounts", slog.String("range", r.String()))
		return nil, err
	}
	violations = append(violations, unknown...)

	report := &domain.TrialBalance{
		Range:      r,
		Rows:       []domain.TrialBalanceRow{},
		Violations: violations,
	}
	t := &report.Totals
	for _, a := range accounts {
		pb := balances[a.AccountID]
		if !pb.HasActivity() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:      a.AccountID,
			Code:           a.Code,
			Name:           a.Name,
			AccountType:    a.AccountType,
			NormalSide:     a.NormalSide,
			OpeningBalance: pb.OpeningBalance,
			PeriodDebits:   pb.PeriodDebits,
			PeriodCredits:  pb.PeriodCredits,
			ClosingBalance: pb.ClosingBalance,
		}
		row.OpeningDebit, row.OpeningCredit = pb.OpeningBalance.Buckets(a.NormalSide)
		row.ClosingDebit, row.ClosingCredit = pb.ClosingBalance.Buckets(a.NormalSide)
		report.Rows = append(report.Rows, row)

		for _, add := range []struct {
			dst *uint64
			v   uint64
		}{
			{&t.OpeningDebit, row.OpeningDebit},
			{&t.OpeningCredit, row.OpeningCredit},
			{&t.PeriodDebits, row.PeriodDebits},
			{&t.PeriodCredits, row.PeriodCredits},
			{&t.ClosingDebit, row.ClosingDebit},
			{&t.ClosingCredit, row.ClosingCredit},
		} {
			sum, err := accounting.AddUnsigned(*add.dst, add.v)
			if err != nil {
				report.Violations = append(report.Violations, domain.IntegrityViolation{
					Kind:      domain.AmountOverflow,
					AccountID: a.AccountID,
					Detail:    "trial balance total: " + err.Error(),
				})
				continue
			}
			*add.dst = sum
		}
	}

	report.IsBalanced = t.PeriodDebits == t.PeriodCredits && !hasKind(report.Violations, domain.AmountOverflow)
	if report.Violations == nil {
		report.Violations = []domain.IntegrityViolation{}
	}

	if !report.IsBalanced {
		s.GetLogger(ctx).Warn("Trial balance does not balance",
			slog.String("range", r.String()),
			slog.Uint64("period_debits", t.PeriodDebits),
			slog.Uint64("period_credits", t.PeriodCredits))
	}
	s.LogViolations(ctx, domain.TrialBalanceKind, report.Violations)
	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("range", r.String()),
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

// unknownAccountLines flags approved lines within r posted to accounts the
// chart does not know. Such lines never reach the aggregator.
func (s *reportingService) unknownAccountLines(ctx context.Context, chart map[string]domain.Account, r domain.DateRange) ([]domain.IntegrityViolation, error) {
	var violations []domain.IntegrityViolation
	for entry, err := range s.journal.Entries(ctx, r, domain.Approved) {
		if err != nil {
			return nil, apperrors.Upstream("fetch journal entries", err)
		}
		if entry.Status != domain.Approved || !r.Contains(entry.Date) {
			continue
		}
		for _, l := range entry.Lines {
			if _, ok := chart[l.AccountID]; ok {
				continue
			}
			violations = append(violations, domain.IntegrityViolation{
				Kind:        domain.UnknownLineAccount,
				EntryNumber: entry.EntryNumber,
				LineNumber:  l.LineNumber,
				AccountID:   l.AccountID,
				Detail:      "approved line posts to an account missing from the chart",
			})
		}
	}
	return violations, nil
}

func sortedByCode(chart map[string]domain.Account) []domain.Account {
	accounts := make([]domain.Account, 0, len(chart))
	for _, a := range chart {
		accounts = append(accounts, a)
	}
	slices.SortFunc(accounts, func(a, b domain.Account) int {
		if c := strings.Compare(a.Code, b.Code); c != 0 {
			return c
		}
		return strings.Compare(a.AccountID, b.AccountID)
	})
	return accounts
}

func hasKind(vs []domain.IntegrityViolation, kind domain.ViolationKind) bool {
	return slices.ContainsFunc(vs, func(v domain.IntegrityViolation) bool { return v.Kind == kind })
}
