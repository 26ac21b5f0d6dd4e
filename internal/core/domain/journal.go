package domain

import "time"

// JournalStatus indicates the lifecycle state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Pending  JournalStatus = "PENDING"
	Approved JournalStatus = "APPROVED"
)

// rank orders statuses along the Draft -> Pending -> Approved lifecycle.
func (s JournalStatus) rank() int {
	switch s {
	case Draft:
		return 1
	case Pending:
		return 2
	case Approved:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether s is at or beyond min in the lifecycle.
// Unknown statuses never satisfy any minimum.
func (s JournalStatus) AtLeast(min JournalStatus) bool {
	r := s.rank()
	return r > 0 && r >= min.rank()
}

// JournalLine is a single debit or credit posting within a journal entry.
// Amounts are integer minor currency units.
type JournalLine struct {
	LineNumber int    `json:"lineNumber"`
	AccountID  string `json:"accountID"`
	Debit      uint64 `json:"debit"`
	Credit     uint64 `json:"credit"`
}

// IsWellFormed reports whether exactly one of Debit and Credit is non-zero.
func (l JournalLine) IsWellFormed() bool {
	return (l.Debit == 0) != (l.Credit == 0)
}

// JournalEntry is a posted (or to-be-posted) accounting event.
type JournalEntry struct {
	EntryNumber       int64         `json:"entryNumber"`
	CorrelativeNumber int64         `json:"correlativeNumber"`
	Date              time.Time     `json:"date"`
	Description       string        `json:"description"`
	Reference         string        `json:"reference"`
	Status            JournalStatus `json:"status"`
	Lines             []JournalLine `json:"lines"`
}

// Totals returns the entry's debit and credit sums. ok is false when a sum
// overflows uint64.
func (e JournalEntry) Totals() (debits, credits uint64, ok bool) {
	ok = true
	for _, l := range e.Lines {
		if debits+l.Debit < debits || credits+l.Credit < credits {
			ok = false
		}
		debits += l.Debit
		credits += l.Credit
	}
	return debits, credits, ok
}

// LedgerLine is a journal line flattened together with the header fields of
// its entry. It is the unit streamed by journal range queries.
type LedgerLine struct {
	EntryNumber int64         `json:"entryNumber"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
	Reference   string        `json:"reference"`
	Status      JournalStatus `json:"status"`
	JournalLine
}

// LedgerOrderLess orders ledger lines by (date, entry number, line number).
func LedgerOrderLess(a, b LedgerLine) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.EntryNumber != b.EntryNumber {
		return a.EntryNumber < b.EntryNumber
	}
	return a.LineNumber < b.LineNumber
}

// FlattenLines expands an entry into ledger lines in line order.
func (e JournalEntry) FlattenLines() []LedgerLine {
	out := make([]LedgerLine, 0, len(e.Lines))
	for _, l := range e.Lines {
		out = append(out, LedgerLine{
			EntryNumber: e.EntryNumber,
			Date:        e.Date,
			Description: e.Description,
			Reference:   e.Reference,
			Status:      e.Status,
			JournalLine: l,
		})
	}
	return out
}
