package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	"github.com/SscSPs/ledger_reporting/internal/utils/accounting"
)

// LegalJournal exports pending and approved entries within r in correlative
// order. Each entry is balance-checked on its own; a bad entry is flagged and
// kept, never dropped.
func (s *reportingService) LegalJournal(ctx context.Context, r domain.DateRange) (*domain.LegalJournal, error) {
	if err := validateRange(r); err != nil {
		return nil, err
	}

	chart, err := s.loadChart(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts for legal journal")
		return nil, err
	}

	report := &domain.LegalJournal{
		Range:   r,
		Entries: []domain.LegalJournalEntry{},
	}
	for entry, err := range s.journal.Entries(ctx, r, domain.Pending) {
		if err != nil {
			err = apperrors.Upstream("fetch journal entries", err)
			s.LogError(ctx, err, "Failed to stream journal entries", slog.String("range", r.String()))
			return nil, err
		}
		if !entry.Status.AtLeast(domain.Pending) || !r.Contains(entry.Date) {
			continue
		}
		report.Entries = append(report.Entries, s.legalEntry(entry, chart, &report.Violations))
	}

	slices.SortStableFunc(report.Entries, func(a, b domain.LegalJournalEntry) int {
		if c := cmp.Compare(a.CorrelativeNumber, b.CorrelativeNumber); c != 0 {
			return c
		}
		return cmp.Compare(a.EntryNumber, b.EntryNumber)
	})

	for _, e := range report.Entries {
		debits, errD := accounting.AddUnsigned(report.TotalDebits, e.TotalDebits)
		credits, errC := accounting.AddUnsigned(report.TotalCredits, e.TotalCredits)
		if errD != nil || errC != nil {
			report.Violations = append(report.Violations, domain.IntegrityViolation{
				Kind:        domain.AmountOverflow,
				EntryNumber: e.EntryNumber,
				Detail:      "legal journal total exceeds the representable range",
			})
			continue
		}
		report.TotalDebits, report.TotalCredits = debits, credits
	}

	report.Violations = append(report.Violations, correlativeViolations(report.Entries)...)
	if report.Violations == nil {
		report.Violations = []domain.IntegrityViolation{}
	}

	s.LogViolations(ctx, domain.LegalJournalKind, report.Violations)
	s.LogInfo(ctx, "Legal journal report generated successfully",
		slog.String("range", r.String()),
		slog.Int("entry_count", len(report.Entries)),
		slog.Int("violation_count", len(report.Violations)))
	return report, nil
}

func (s *reportingService) legalEntry(entry domain.JournalEntry, chart map[string]domain.Account, violations *[]domain.IntegrityViolation) domain.LegalJournalEntry {
	lines := slices.Clone(entry.Lines)
	slices.SortStableFunc(lines, func(a, b domain.JournalLine) int { return cmp.Compare(a.LineNumber, b.LineNumber) })

	out := domain.LegalJournalEntry{
		EntryNumber:       entry.EntryNumber,
		CorrelativeNumber: entry.CorrelativeNumber,
		Date:              entry.Date,
		Description:       entry.Description,
		Reference:         entry.Reference,
		Status:            entry.Status,
		Lines:             make([]domain.LegalJournalLine, 0, len(lines)),
	}

	for _, l := range lines {
		ll := domain.LegalJournalLine{JournalLine: l}
		if a, ok := chart[l.AccountID]; ok {
			ll.AccountCode, ll.AccountName = a.Code, a.Name
		} else {
			*violations = append(*violations, domain.IntegrityViolation{
				Kind:        domain.UnknownLineAccount,
				EntryNumber: entry.EntryNumber,
				LineNumber:  l.LineNumber,
				AccountID:   l.AccountID,
				Detail:      "line references an account missing from the chart",
			})
		}
		if !l.IsWellFormed() {
			*violations = append(*violations, domain.IntegrityViolation{
				Kind:        domain.MalformedLine,
				EntryNumber: entry.EntryNumber,
				LineNumber:  l.LineNumber,
				AccountID:   l.AccountID,
				Detail:      fmt.Sprintf("line carries debit %d and credit %d; exactly one must be non-zero", l.Debit, l.Credit),
			})
		}
		out.Lines = append(out.Lines, ll)
	}

	debits, credits, ok := entry.Totals()
	out.TotalDebits, out.TotalCredits = debits, credits
	out.IsBalanced = ok && debits == credits
	if !ok {
		*violations = append(*violations, domain.IntegrityViolation{
			Kind:        domain.AmountOverflow,
			EntryNumber: entry.EntryNumber,
			Detail:      "entry totals exceed the representable range",
		})
	} else if !out.IsBalanced {
		*violations = append(*violations, domain.IntegrityViolation{
			Kind:        domain.UnbalancedEntry,
			EntryNumber: entry.EntryNumber,
			Detail:      fmt.Sprintf("debits %d != credits %d", debits, credits),
		})
	}
	return out
}

// correlativeViolations checks that approved entries carry a gapless,
// duplicate-free correlative sequence. Entries are expected sorted by
// correlative number. Pending entries may not have a number yet and are
// skipped.
func correlativeViolations(entries []domain.LegalJournalEntry) []domain.IntegrityViolation {
	var out []domain.IntegrityViolation
	var prev *domain.LegalJournalEntry
	for i := range entries {
		e := &entries[i]
		if e.Status != domain.Approved || e.CorrelativeNumber <= 0 {
			continue
		}
		if prev != nil {
			switch {
			case e.CorrelativeNumber == prev.CorrelativeNumber:
				out = append(out, domain.IntegrityViolation{
					Kind:        domain.DuplicateCorrelative,
					EntryNumber: e.EntryNumber,
					Detail:      fmt.Sprintf("correlative %d already used by entry %d", e.CorrelativeNumber, prev.EntryNumber),
				})
			case e.CorrelativeNumber > prev.CorrelativeNumber+1:
				out = append(out, domain.IntegrityViolation{
					Kind:        domain.CorrelativeGap,
					EntryNumber: e.EntryNumber,
					Detail:      fmt.Sprintf("correlatives %d..%d missing", prev.CorrelativeNumber+1, e.CorrelativeNumber-1),
				})
			}
		}
		prev = e
	}
	return out
}
