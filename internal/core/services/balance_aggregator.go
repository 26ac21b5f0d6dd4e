package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	"github.com/SscSPs/ledger_reporting/internal/utils/accounting"
)

// ComputeBalances returns the opening balance, period totals and closing
// balance of each requested account over the inclusive range r.
func (s *reportingService) ComputeBalances(ctx context.Context, accountIDs []string, r domain.DateRange) (map[string]domain.AccountPeriodBalance, []domain.IntegrityViolation, error) {
	if err := validateRange(r); err != nil {
		return nil, nil, err
	}

	chart, err := s.loadChart(ctx)
	if err != nil {
		return nil, nil, err
	}

	ids := dedupe(accountIDs)
	for _, id := range ids {
		if _, ok := chart[id]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, id)
		}
	}

	return s.aggregate(ctx, chart, ids, r)
}

// aggregate folds approved lines into per-account balances. Every id in ids
// must be present in chart.
func (s *reportingService) aggregate(ctx context.Context, chart map[string]domain.Account, ids []string, r domain.DateRange) (map[string]domain.AccountPeriodBalance, []domain.IntegrityViolation, error) {
	balances := make(map[string]domain.AccountPeriodBalance, len(ids))
	for _, id := range ids {
		balances[id] = domain.AccountPeriodBalance{AccountID: id}
	}
	if len(ids) == 0 {
		return balances, nil, nil
	}

	var violations []domain.IntegrityViolation

	order := orderCheck{violations: &violations}
	for line, err := range s.journal.ApprovedLinesBefore(ctx, ids, r.Start) {
		if err != nil {
			return nil, nil, apperrors.Upstream("fetch opening lines", err)
		}
		acct, pb, ok := s.admitLine(line, chart, balances, &violations)
		if ok {
			order.observe(line)
		}
		if !ok || !r.Before(line.Date) {
			continue
		}
		opening, err := accounting.Post(pb.OpeningBalance, acct.NormalSide, line.Debit, line.Credit)
		if err != nil {
			violations = append(violations, lineViolation(domain.AmountOverflow, line, err.Error()))
			continue
		}
		pb.OpeningBalance = opening
		balances[line.AccountID] = pb
	}

	order = orderCheck{violations: &violations}
	for line, err := range s.journal.ApprovedLinesInRange(ctx, ids, r) {
		if err != nil {
			return nil, nil, apperrors.Upstream("fetch period lines", err)
		}
		_, pb, ok := s.admitLine(line, chart, balances, &violations)
		if ok {
			order.observe(line)
		}
		if !ok || !r.Contains(line.Date) {
			continue
		}
		debits, errD := accounting.AddUnsigned(pb.PeriodDebits, line.Debit)
		credits, errC := accounting.AddUnsigned(pb.PeriodCredits, line.Credit)
		if err := errors.Join(errD, errC); err != nil {
			violations = append(violations, lineViolation(domain.AmountOverflow, line, err.Error()))
			continue
		}
		pb.PeriodDebits, pb.PeriodCredits = debits, credits
		balances[line.AccountID] = pb
	}

	for _, id := range ids {
		pb := balances[id]
		closing, err := accounting.Closing(pb.OpeningBalance, chart[id].NormalSide, pb.PeriodDebits, pb.PeriodCredits)
		if err != nil {
			violations = append(violations, domain.IntegrityViolation{
				Kind:      domain.AmountOverflow,
				AccountID: id,
				Detail:    err.Error(),
			})
			closing = pb.OpeningBalance
		}
		pb.ClosingBalance = closing
		balances[id] = pb
	}

	s.LogDebug(ctx, "Balances aggregated",
		slog.Int("account_count", len(ids)),
		slog.String("range", r.String()),
		slog.Int("violation_count", len(violations)))
	return balances, violations, nil
}

// admitLine filters out lines a store should never have yielded and flags
// malformed ones. Malformed lines are still aggregated so the resulting
// imbalance stays visible.
func (s *reportingService) admitLine(line domain.LedgerLine, chart map[string]domain.Account, balances map[string]domain.AccountPeriodBalance, violations *[]domain.IntegrityViolation) (domain.Account, domain.AccountPeriodBalance, bool) {
	if line.Status != domain.Approved {
		return domain.Account{}, domain.AccountPeriodBalance{}, false
	}
	pb, ok := balances[line.AccountID]
	if !ok {
		return domain.Account{}, domain.AccountPeriodBalance{}, false
	}
	if !line.IsWellFormed() {
		*violations = append(*violations, lineViolation(domain.MalformedLine, line,
			fmt.Sprintf("line carries debit %d and credit %d; exactly one must be non-zero", line.Debit, line.Credit)))
	}
	return chart[line.AccountID], pb, true
}

// orderCheck flags lines that arrive out of (date, entry, line) order. Sums
// do not depend on order, so flagged lines are still aggregated.
type orderCheck struct {
	prev       *domain.LedgerLine
	violations *[]domain.IntegrityViolation
}

func (o *orderCheck) observe(line domain.LedgerLine) {
	if o.prev != nil && domain.LedgerOrderLess(line, *o.prev) {
		*o.violations = append(*o.violations, lineViolation(domain.OutOfOrderLine, line,
			fmt.Sprintf("line follows entry %d line %d out of (date, entry, line) order", o.prev.EntryNumber, o.prev.LineNumber)))
		return
	}
	o.prev = &line
}

func lineViolation(kind domain.ViolationKind, line domain.LedgerLine, detail string) domain.IntegrityViolation {
	return domain.IntegrityViolation{
		Kind:        kind,
		EntryNumber: line.EntryNumber,
		LineNumber:  line.LineNumber,
		AccountID:   line.AccountID,
		Detail:      detail,
	}
}

func validateRange(r domain.DateRange) error {
	if !r.IsValid() {
		return fmt.Errorf("%w: start %s is after end %s", apperrors.ErrInvalidRange,
			r.Start.Format(domain.DateLayout), r.End.Format(domain.DateLayout))
	}
	return nil
}

func dedupe(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
