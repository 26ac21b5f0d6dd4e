package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
)

// SearchChecks finds every journal entry and payroll disbursement tagged with
// checkNumber. Drafts are excluded. The stores of one snapshot share a
// connection, so the journal and payroll are queried one after the other.
func (s *reportingService) SearchChecks(ctx context.Context, checkNumber string) ([]domain.CheckReference, error) {
	checkNumber = strings.TrimSpace(checkNumber)
	if checkNumber == "" {
		return nil, fmt.Errorf("%w: check number must not be blank", apperrors.ErrValidation)
	}

	entries, err := s.journal.EntriesByReference(ctx, checkNumber, domain.Pending)
	if err != nil {
		err = apperrors.Upstream("search journal by check", err)
		s.LogError(ctx, err, "Check search failed", slog.String("check_number", checkNumber))
		return nil, err
	}
	disbursements, err := s.payroll.DisbursementsByCheck(ctx, checkNumber)
	if err != nil {
		err = apperrors.Upstream("search payroll by check", err)
		s.LogError(ctx, err, "Check search failed", slog.String("check_number", checkNumber))
		return nil, err
	}

	refs := make([]domain.CheckReference, 0, len(entries)+len(disbursements))
	journalHits, payrollHits := 0, 0
	for _, e := range entries {
		if !e.Status.AtLeast(domain.Pending) || e.Reference != checkNumber {
			continue
		}
		debits, _, ok := e.Totals()
		if !ok {
			s.GetLogger(ctx).Warn("Skipping check entry whose debit total overflows",
				slog.String("check_number", checkNumber),
				slog.Int64("entry_number", e.EntryNumber),
				slog.String("kind", string(domain.AmountOverflow)))
			continue
		}
		refs = append(refs, domain.CheckReference{
			CheckNumber: checkNumber,
			SourceKind:  domain.SourceJournal,
			SourceID:    strconv.FormatInt(e.EntryNumber, 10),
			Date:        domain.TruncateDate(e.Date),
			Amount:      debits,
			Description: e.Description,
		})
		journalHits++
	}
	for _, d := range disbursements {
		if d.CheckNumber != checkNumber {
			continue
		}
		refs = append(refs, domain.CheckReference{
			CheckNumber: checkNumber,
			SourceKind:  domain.SourcePayroll,
			SourceID:    d.DisbursementID,
			Date:        domain.TruncateDate(d.PayDate),
			Amount:      d.NetAmount,
			Description: d.EmployeeName,
		})
		payrollHits++
	}
	slices.SortStableFunc(refs, domain.CompareCheckReferences)

	s.LogInfo(ctx, "Check search completed",
		slog.String("check_number", checkNumber),
		slog.Int("journal_hits", journalHits),
		slog.Int("payroll_hits", payrollHits))
	return refs, nil
}
