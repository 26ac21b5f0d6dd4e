// Package memory holds an in-process ledger snapshot. It backs the CLI's CSV
// mode and the engine tests.
package memory

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reporting/internal/core/ports/repositories"
)

// Ledger is a single company's chart, journal and payroll data.
type Ledger struct {
	mu            sync.RWMutex
	accounts      map[string]domain.Account
	entries       []domain.JournalEntry
	disbursements []domain.PayrollDisbursement
}

var (
	_ portsrepo.ChartReader  = (*Ledger)(nil)
	_ portsrepo.JournalStore = (*Ledger)(nil)
	_ portsrepo.PayrollStore = (*Ledger)(nil)
)

// NewLedger builds a ledger from the given records. Entry dates are truncated
// to calendar dates.
func NewLedger(accounts []domain.Account, entries []domain.JournalEntry, disbursements []domain.PayrollDisbursement) *Ledger {
	l := &Ledger{accounts: make(map[string]domain.Account, len(accounts))}
	for _, a := range accounts {
		l.accounts[a.AccountID] = a
	}
	for _, e := range entries {
		l.entries = append(l.entries, cloneEntry(e))
	}
	for _, d := range disbursements {
		d.PayDate = domain.TruncateDate(d.PayDate)
		l.disbursements = append(l.disbursements, d)
	}
	return l
}

// AddEntry appends an entry, as the posting workflow would.
func (l *Ledger) AddEntry(e domain.JournalEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, cloneEntry(e))
}

// SetStatus moves an entry along its lifecycle.
func (l *Ledger) SetStatus(entryNumber int64, status domain.JournalStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].EntryNumber == entryNumber {
			l.entries[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, entryNumber)
}

// ListAccounts returns every account of the chart.
func (l *Ledger) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b domain.Account) int {
		if a.Code < b.Code {
			return -1
		}
		if a.Code > b.Code {
			return 1
		}
		return 0
	})
	return out, nil
}

// GetAccount returns one account.
func (l *Ledger) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &a, nil
}

// ApprovedLinesBefore streams approved lines dated strictly before the given date.
func (l *Ledger) ApprovedLinesBefore(ctx context.Context, accountIDs []string, before time.Time) iter.Seq2[domain.LedgerLine, error] {
	cutoff := domain.TruncateDate(before)
	return l.lines(ctx, accountIDs, func(d time.Time) bool { return d.Before(cutoff) })
}

// ApprovedLinesInRange streams approved lines dated within the inclusive range.
func (l *Ledger) ApprovedLinesInRange(ctx context.Context, accountIDs []string, r domain.DateRange) iter.Seq2[domain.LedgerLine, error] {
	return l.lines(ctx, accountIDs, r.Contains)
}

func (l *Ledger) lines(ctx context.Context, accountIDs []string, keep func(time.Time) bool) iter.Seq2[domain.LedgerLine, error] {
	return func(yield func(domain.LedgerLine, error) bool) {
		wanted := make(map[string]struct{}, len(accountIDs))
		for _, id := range accountIDs {
			wanted[id] = struct{}{}
		}

		l.mu.RLock()
		var matched []domain.LedgerLine
		for _, e := range l.entries {
			if e.Status != domain.Approved || !keep(e.Date) {
				continue
			}
			for _, line := range e.FlattenLines() {
				if _, ok := wanted[line.AccountID]; ok {
					matched = append(matched, line)
				}
			}
		}
		l.mu.RUnlock()

		slices.SortStableFunc(matched, func(a, b domain.LedgerLine) int {
			if domain.LedgerOrderLess(a, b) {
				return -1
			}
			if domain.LedgerOrderLess(b, a) {
				return 1
			}
			return 0
		})
		for _, line := range matched {
			if err := ctx.Err(); err != nil {
				yield(domain.LedgerLine{}, err)
				return
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}

// Entries streams entries dated within the range with status at least minStatus.
func (l *Ledger) Entries(ctx context.Context, r domain.DateRange, minStatus domain.JournalStatus) iter.Seq2[domain.JournalEntry, error] {
	return func(yield func(domain.JournalEntry, error) bool) {
		matched := l.filterEntries(func(e domain.JournalEntry) bool {
			return r.Contains(e.Date) && e.Status.AtLeast(minStatus)
		})
		for _, e := range matched {
			if err := ctx.Err(); err != nil {
				yield(domain.JournalEntry{}, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

// EntriesByReference returns entries whose reference equals the given value.
func (l *Ledger) EntriesByReference(ctx context.Context, reference string, minStatus domain.JournalStatus) ([]domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.filterEntries(func(e domain.JournalEntry) bool {
		return e.Reference == reference && e.Status.AtLeast(minStatus)
	}), nil
}

func (l *Ledger) filterEntries(keep func(domain.JournalEntry) bool) []domain.JournalEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.JournalEntry
	for _, e := range l.entries {
		if keep(e) {
			out = append(out, cloneEntry(e))
		}
	}
	slices.SortStableFunc(out, func(a, b domain.JournalEntry) int {
		if a.CorrelativeNumber != b.CorrelativeNumber {
			return cmpInt64(a.CorrelativeNumber, b.CorrelativeNumber)
		}
		return cmpInt64(a.EntryNumber, b.EntryNumber)
	})
	return out
}

// DisbursementsByCheck returns the disbursements paid with the given check number.
func (l *Ledger) DisbursementsByCheck(ctx context.Context, checkNumber string) ([]domain.PayrollDisbursement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.PayrollDisbursement
	for _, d := range l.disbursements {
		if d.CheckNumber == checkNumber {
			out = append(out, d)
		}
	}
	return out, nil
}

func cloneEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Date = domain.TruncateDate(e.Date)
	e.Lines = slices.Clone(e.Lines)
	return e
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
