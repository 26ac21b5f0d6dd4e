package pgsql

import (
	"context"
	"iter"
	"time"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reporting/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_reporting/internal/models"
	"github.com/SscSPs/ledger_reporting/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// DefaultPageSize is used when a repository is built without a page size.
const DefaultPageSize = 500

type PgxJournalRepository struct {
	BaseRepository
	pageSize int
}

// newPgxJournalRepository creates a journal store bound to one company.
func newPgxJournalRepository(db querier, companyID string, pageSize int) *PgxJournalRepository {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &PgxJournalRepository{BaseRepository: BaseRepository{DB: db, CompanyID: companyID}, pageSize: pageSize}
}

var _ portsrepo.JournalStore = (*PgxJournalRepository)(nil)

// lineCursor is the keyset position of the last line of a page.
type lineCursor struct {
	date        time.Time
	entryNumber int64
	lineNumber  int
}

// ApprovedLinesBefore streams approved lines dated strictly before the given date.
func (r *PgxJournalRepository) ApprovedLinesBefore(ctx context.Context, accountIDs []string, before time.Time) iter.Seq2[domain.LedgerLine, error] {
	until := domain.TruncateDate(before)
	return r.approvedLines(ctx, accountIDs, nil, &until)
}

// ApprovedLinesInRange streams approved lines dated within the inclusive range.
func (r *PgxJournalRepository) ApprovedLinesInRange(ctx context.Context, accountIDs []string, rng domain.DateRange) iter.Seq2[domain.LedgerLine, error] {
	from := rng.Start
	until := rng.End.AddDate(0, 0, 1)
	return r.approvedLines(ctx, accountIDs, &from, &until)
}

// approvedLines pages through approved lines in (date, entry, line) order.
// from is inclusive and until exclusive; nil leaves that side open.
func (r *PgxJournalRepository) approvedLines(ctx context.Context, accountIDs []string, from, until *time.Time) iter.Seq2[domain.LedgerLine, error] {
	query := `
		SELECT e.entry_number, e.entry_date, COALESCE(e.description, ''), COALESCE(e.reference, ''), e.status,
		       l.line_number, l.account_id, l.debit_minor, l.credit_minor
		FROM journal_lines l
		JOIN journal_entries e ON e.company_id = l.company_id AND e.entry_number = l.entry_number
		WHERE l.company_id = $1
		  AND l.account_id = ANY($2)
		  AND e.status = 'APPROVED'
		  AND ($3::date IS NULL OR e.entry_date >= $3::date)
		  AND ($4::date IS NULL OR e.entry_date < $4::date)
		  AND ($5::date IS NULL OR (e.entry_date, e.entry_number, l.line_number) > ($5::date, $6::bigint, $7::int))
		ORDER BY e.entry_date, e.entry_number, l.line_number
		LIMIT $8;`

	return func(yield func(domain.LedgerLine, error) bool) {
		if len(accountIDs) == 0 {
			return
		}
		var cursor *lineCursor
		for {
			if err := ctx.Err(); err != nil {
				yield(domain.LedgerLine{}, err)
				return
			}

			var afterDate *time.Time
			var afterEntry int64
			var afterLine int
			if cursor != nil {
				afterDate, afterEntry, afterLine = &cursor.date, cursor.entryNumber, cursor.lineNumber
			}

			rows, err := r.DB.Query(ctx, query, r.CompanyID, accountIDs, from, until, afterDate, afterEntry, afterLine, r.pageSize)
			if err != nil {
				yield(domain.LedgerLine{}, apperrors.NewAppError(500, "failed to query ledger lines for company "+r.CompanyID, err))
				return
			}

			page := make([]domain.LedgerLine, 0, r.pageSize)
			for rows.Next() {
				var e models.JournalEntry
				var l models.JournalLine
				if err := rows.Scan(
					&e.EntryNumber,
					&e.EntryDate,
					&e.Description,
					&e.Reference,
					&e.Status,
					&l.LineNumber,
					&l.AccountID,
					&l.DebitMinor,
					&l.CreditMinor,
				); err != nil {
					rows.Close()
					yield(domain.LedgerLine{}, apperrors.NewAppError(500, "failed to scan ledger line row", err))
					return
				}
				page = append(page, mapping.ToDomainLedgerLine(e, l))
			}
			rows.Close()
			if err := rows.Err(); err != nil {
				yield(domain.LedgerLine{}, apperrors.NewAppError(500, "error iterating ledger line rows", err))
				return
			}

			for _, line := range page {
				if !yield(line, nil) {
					return
				}
			}
			if len(page) < r.pageSize {
				return
			}
			last := page[len(page)-1]
			cursor = &lineCursor{date: last.Date, entryNumber: last.EntryNumber, lineNumber: last.LineNumber}
		}
	}
}

// Entries streams entries dated within the range whose status is at least
// minStatus, paged by (correlative number, entry number).
func (r *PgxJournalRepository) Entries(ctx context.Context, rng domain.DateRange, minStatus domain.JournalStatus) iter.Seq2[domain.JournalEntry, error] {
	query := `
		SELECT entry_number, correlative_number, entry_date, COALESCE(description, ''), COALESCE(reference, ''), status
		FROM journal_entries
		WHERE company_id = $1
		  AND status = ANY($2)
		  AND entry_date BETWEEN $3::date AND $4::date
		  AND ($5::bigint IS NULL OR (correlative_number, entry_number) > ($5::bigint, $6::bigint))
		ORDER BY correlative_number, entry_number
		LIMIT $7;`

	return func(yield func(domain.JournalEntry, error) bool) {
		statuses := statusesAtLeast(minStatus)
		var afterCorrelative *int64
		var afterEntry int64
		for {
			if err := ctx.Err(); err != nil {
				yield(domain.JournalEntry{}, err)
				return
			}

			rows, err := r.DB.Query(ctx, query, r.CompanyID, statuses, rng.Start, rng.End, afterCorrelative, afterEntry, r.pageSize)
			if err != nil {
				yield(domain.JournalEntry{}, apperrors.NewAppError(500, "failed to query journal entries for company "+r.CompanyID, err))
				return
			}
			headers, err := scanEntryHeaders(rows)
			if err != nil {
				yield(domain.JournalEntry{}, err)
				return
			}

			entries, err := r.withLines(ctx, headers)
			if err != nil {
				yield(domain.JournalEntry{}, err)
				return
			}
			for _, e := range entries {
				if !yield(e, nil) {
					return
				}
			}
			if len(headers) < r.pageSize {
				return
			}
			last := headers[len(headers)-1]
			c := last.CorrelativeNumber
			afterCorrelative, afterEntry = &c, last.EntryNumber
		}
	}
}

// EntriesByReference retrieves every entry whose reference equals the given
// value and whose status is at least minStatus.
func (r *PgxJournalRepository) EntriesByReference(ctx context.Context, reference string, minStatus domain.JournalStatus) ([]domain.JournalEntry, error) {
	query := `
		SELECT entry_number, correlative_number, entry_date, COALESCE(description, ''), COALESCE(reference, ''), status
		FROM journal_entries
		WHERE company_id = $1 AND reference = $2 AND status = ANY($3)
		ORDER BY correlative_number, entry_number;`

	rows, err := r.DB.Query(ctx, query, r.CompanyID, reference, statusesAtLeast(minStatus))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries by reference", err)
	}
	headers, err := scanEntryHeaders(rows)
	if err != nil {
		return nil, err
	}
	return r.withLines(ctx, headers)
}

// scanEntryHeaders drains and closes rows.
func scanEntryHeaders(rows pgx.Rows) ([]models.JournalEntry, error) {
	defer rows.Close()
	var headers []models.JournalEntry
	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(
			&m.EntryNumber,
			&m.CorrelativeNumber,
			&m.EntryDate,
			&m.Description,
			&m.Reference,
			&m.Status,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return headers, nil
}

// withLines batch-loads the lines of the given headers and assembles entries
// in header order.
func (r *PgxJournalRepository) withLines(ctx context.Context, headers []models.JournalEntry) ([]domain.JournalEntry, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	numbers := make([]int64, len(headers))
	for i, h := range headers {
		numbers[i] = h.EntryNumber
	}

	query := `
		SELECT entry_number, line_number, account_id, debit_minor, credit_minor
		FROM journal_lines
		WHERE company_id = $1 AND entry_number = ANY($2)
		ORDER BY entry_number, line_number;`

	rows, err := r.DB.Query(ctx, query, r.CompanyID, numbers)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entries", err)
	}
	defer rows.Close()

	linesByEntry := make(map[int64][]models.JournalLine, len(headers))
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.EntryNumber, &l.LineNumber, &l.AccountID, &l.DebitMinor, &l.CreditMinor); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row during batch fetch", err)
		}
		linesByEntry[l.EntryNumber] = append(linesByEntry[l.EntryNumber], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows during batch fetch", err)
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, linesByEntry[h.EntryNumber])
	}
	return entries, nil
}

func statusesAtLeast(min domain.JournalStatus) []string {
	var out []string
	for _, s := range []domain.JournalStatus{domain.Draft, domain.Pending, domain.Approved} {
		if s.AtLeast(min) {
			out = append(out, string(s))
		}
	}
	return out
}
