package repositories

import (
	"context"
	"iter"
	"time"

	"github.com/SscSPs/ledger_reporting/internal/core/domain"
)

// JournalStore is the read-only view of posted journal data.
//
// Line streams are yielded in (date, entry number, line number) order and
// entry streams in (correlative number, entry number) order. A stream stops
// at the first error it yields; callers stop consuming to cancel.
type JournalStore interface {
	// ApprovedLinesBefore streams approved lines on the given accounts dated strictly before the given date.
	ApprovedLinesBefore(ctx context.Context, accountIDs []string, before time.Time) iter.Seq2[domain.LedgerLine, error]

	// ApprovedLinesInRange streams approved lines on the given accounts dated within the inclusive range.
	ApprovedLinesInRange(ctx context.Context, accountIDs []string, r domain.DateRange) iter.Seq2[domain.LedgerLine, error]

	// Entries streams entries dated within the range whose status is at least minStatus.
	Entries(ctx context.Context, r domain.DateRange, minStatus domain.JournalStatus) iter.Seq2[domain.JournalEntry, error]

	// EntriesByReference returns entries whose reference equals the given value and whose status is at least minStatus.
	EntriesByReference(ctx context.Context, reference string, minStatus domain.JournalStatus) ([]domain.JournalEntry, error)
}
