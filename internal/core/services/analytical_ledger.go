package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	"github.com/SscSPs/ledger_reporting/internal/utils/accounting"
)

// AnalyticalLedger returns every posting on one account within r with its
// running balance. The closing balance is the aggregator's; Reconciled tells
// whether the transaction fold arrived at the same figure.
func (s *reportingService) AnalyticalLedger(ctx context.Context, accountID string, r domain.DateRange) (*domain.AnalyticalLedger, error) {
	if err := validateRange(r); err != nil {
		return nil, err
	}

	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	chart := map[string]domain.Account{account.AccountID: *account}
	balances, violations, err := s.aggregate(ctx, chart, []string{account.AccountID}, r)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate balances for analytical ledger",
			slog.String("account_id", accountID), slog.String("range", r.String()))
		return nil, err
	}
	pb := balances[account.AccountID]

	report := &domain.AnalyticalLedger{
		Account:        *account,
		Range:          r,
		OpeningBalance: pb.OpeningBalance,
		Transactions:   []domain.LedgerTransaction{},
		ClosingBalance: pb.ClosingBalance,
		Violations:     violations,
	}

	running := pb.OpeningBalance
	collect := func(v domain.IntegrityViolation) {
		// the aggregator already walked the same stream for order
		if v.Kind == domain.OutOfOrderLine && slices.ContainsFunc(report.Violations, func(o domain.IntegrityViolation) bool {
			return o.Kind == v.Kind && o.EntryNumber == v.EntryNumber && o.LineNumber == v.LineNumber
		}) {
			return
		}
		report.Violations = append(report.Violations, v)
	}
	for tx, err := range s.fold(ctx, *account, r, pb.OpeningBalance, collect) {
		if err != nil {
			s.LogError(ctx, err, "Failed to stream analytical ledger", slog.String("account_id", accountID))
			return nil, err
		}
		report.Transactions = append(report.Transactions, tx)
		running = tx.RunningBalance
		debits, errD := accounting.AddUnsigned(report.TotalDebits, tx.Debit)
		credits, errC := accounting.AddUnsigned(report.TotalCredits, tx.Credit)
		if err := errors.Join(errD, errC); err != nil {
			report.Violations = append(report.Violations, domain.IntegrityViolation{
				Kind:        domain.AmountOverflow,
				EntryNumber: tx.EntryNumber,
				LineNumber:  tx.LineNumber,
				AccountID:   account.AccountID,
				Detail:      "analytical ledger total: " + err.Error(),
			})
			continue
		}
		report.TotalDebits, report.TotalCredits = debits, credits
	}

	report.Reconciled = running == pb.ClosingBalance &&
		report.TotalDebits == pb.PeriodDebits &&
		report.TotalCredits == pb.PeriodCredits
	if !report.Reconciled {
		report.Violations = append(report.Violations, domain.IntegrityViolation{
			Kind:      domain.UnreconciledBalance,
			AccountID: account.AccountID,
			Detail: fmt.Sprintf("running balance %d (debits %d, credits %d) differs from aggregated closing %d (debits %d, credits %d)",
				running, report.TotalDebits, report.TotalCredits, pb.ClosingBalance, pb.PeriodDebits, pb.PeriodCredits),
		})
	}
	if report.Violations == nil {
		report.Violations = []domain.IntegrityViolation{}
	}

	s.LogViolations(ctx, domain.AnalyticalLedgerKind, report.Violations)
	s.LogInfo(ctx, "Analytical ledger report generated successfully",
		slog.String("account_id", accountID),
		slog.String("range", r.String()),
		slog.Int("transaction_count", len(report.Transactions)),
		slog.Bool("reconciled", report.Reconciled))
	return report, nil
}

// LedgerTransactions lazily folds the account's approved postings within r
// starting from opening. Integrity problems end the sequence with an error
// wrapping apperrors.ErrDataIntegrity.
func (s *reportingService) LedgerTransactions(ctx context.Context, account domain.Account, r domain.DateRange, opening domain.Balance) iter.Seq2[domain.LedgerTransaction, error] {
	return func(yield func(domain.LedgerTransaction, error) bool) {
		if err := validateRange(r); err != nil {
			yield(domain.LedgerTransaction{}, err)
			return
		}
		var violation *domain.IntegrityViolation
		inner := s.fold(ctx, account, r, opening, func(v domain.IntegrityViolation) {
			if violation == nil {
				violation = &v
			}
		})
		for tx, err := range inner {
			if err == nil && violation != nil {
				err = fmt.Errorf("%w: %s: %s", apperrors.ErrDataIntegrity, violation.Kind, violation.Detail)
			}
			if err != nil {
				yield(domain.LedgerTransaction{}, err)
				return
			}
			if !yield(tx, nil) {
				return
			}
		}
		if violation != nil {
			yield(domain.LedgerTransaction{}, fmt.Errorf("%w: %s: %s", apperrors.ErrDataIntegrity, violation.Kind, violation.Detail))
		}
	}
}

// fold is the running-balance left fold. Each balance is derived strictly from
// its predecessor; a line that cannot be applied is reported through
// onViolation and skipped.
func (s *reportingService) fold(ctx context.Context, account domain.Account, r domain.DateRange, opening domain.Balance, onViolation func(domain.IntegrityViolation)) iter.Seq2[domain.LedgerTransaction, error] {
	return func(yield func(domain.LedgerTransaction, error) bool) {
		running := opening
		var prev *domain.LedgerLine
		for line, err := range s.journal.ApprovedLinesInRange(ctx, []string{account.AccountID}, r) {
			if err != nil {
				yield(domain.LedgerTransaction{}, apperrors.Upstream("fetch ledger lines", err))
				return
			}
			if line.Status != domain.Approved || line.AccountID != account.AccountID || !r.Contains(line.Date) {
				continue
			}
			if prev != nil && domain.LedgerOrderLess(line, *prev) {
				onViolation(lineViolation(domain.OutOfOrderLine, line,
					fmt.Sprintf("line follows entry %d line %d out of (date, entry, line) order", prev.EntryNumber, prev.LineNumber)))
			}

			next, err := accounting.Post(running, account.NormalSide, line.Debit, line.Credit)
			if err != nil {
				if !errors.Is(err, accounting.ErrOverflow) {
					yield(domain.LedgerTransaction{}, err)
					return
				}
				onViolation(lineViolation(domain.AmountOverflow, line, err.Error()))
				continue
			}
			running = next
			l := line
			prev = &l

			tx := domain.LedgerTransaction{
				Date:           line.Date,
				EntryNumber:    line.EntryNumber,
				LineNumber:     line.LineNumber,
				Description:    line.Description,
				Reference:      line.Reference,
				Debit:          line.Debit,
				Credit:         line.Credit,
				RunningBalance: running,
			}
			if !yield(tx, nil) {
				return
			}
		}
	}
}
