package mapping

import (
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	"github.com/SscSPs/ledger_reporting/internal/models"
)

// minorUnits converts a stored BIGINT amount. Negative values cannot pass the
// table CHECK constraints; they map to zero rather than wrapping.
func minorUnits(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineNumber: m.LineNumber,
		AccountID:  m.AccountID,
		Debit:      minorUnits(m.DebitMinor),
		Credit:     minorUnits(m.CreditMinor),
	}
}

// ToDomainJournalEntry converts an entry header and its lines to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	entry := domain.JournalEntry{
		EntryNumber:       m.EntryNumber,
		CorrelativeNumber: m.CorrelativeNumber,
		Date:              domain.TruncateDate(m.EntryDate),
		Description:       m.Description,
		Reference:         m.Reference,
		Status:            domain.JournalStatus(m.Status),
		Lines:             make([]domain.JournalLine, len(lines)),
	}
	for i, l := range lines {
		entry.Lines[i] = ToDomainJournalLine(l)
	}
	return entry
}

// ToDomainLedgerLine joins a line row with its entry header.
func ToDomainLedgerLine(e models.JournalEntry, l models.JournalLine) domain.LedgerLine {
	return domain.LedgerLine{
		EntryNumber: e.EntryNumber,
		Date:        domain.TruncateDate(e.EntryDate),
		Description: e.Description,
		Reference:   e.Reference,
		Status:      domain.JournalStatus(e.Status),
		JournalLine: ToDomainJournalLine(l),
	}
}

// ToDomainPayrollDisbursement converts a model PayrollDisbursement.
func ToDomainPayrollDisbursement(m models.PayrollDisbursement) domain.PayrollDisbursement {
	return domain.PayrollDisbursement{
		DisbursementID: m.DisbursementID,
		EmployeeName:   m.EmployeeName,
		CheckNumber:    m.CheckNumber,
		PayDate:        domain.TruncateDate(m.PayDate),
		NetAmount:      minorUnits(m.NetAmountMinor),
	}
}
