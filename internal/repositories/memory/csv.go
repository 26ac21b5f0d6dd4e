package memory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledger_reporting/internal/core/domain"
)

// Column layouts of the CSV fixture files. Every file starts with a header row.
const (
	accountFields  = 6
	colAccountID   = 0
	colAccountCode = 1
	colAccountName = 2
	colAccountType = 3
	colNormalSide  = 4
	colParentID    = 5

	journalFields  = 10
	colEntryNumber = 0
	colCorrelative = 1
	colEntryDate   = 2
	colDescription = 3
	colReference   = 4
	colStatus      = 5
	colLineNumber  = 6
	colLineAccount = 7
	colDebit       = 8
	colCredit      = 9

	payrollFields   = 5
	colDisbursement = 0
	colCheckNumber  = 1
	colPayDate      = 2
	colEmployee     = 3
	colNetAmount    = 4
)

// ReadAccounts reads a chart of accounts CSV:
// account_id,code,name,account_type,normal_side,parent_id.
// A blank normal_side takes the type's default.
func ReadAccounts(r io.Reader) ([]domain.Account, error) {
	records, err := readRecords(r, accountFields)
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	accounts := make([]domain.Account, 0, len(records))
	for i, rec := range records {
		acct, err := unmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

func unmarshalAccount(rec []string) (domain.Account, error) {
	if rec[colAccountID] == "" {
		return domain.Account{}, fmt.Errorf("account_id is empty")
	}
	accountType := domain.AccountType(strings.ToUpper(rec[colAccountType]))
	switch accountType {
	case domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense:
	default:
		return domain.Account{}, fmt.Errorf("unknown account_type %q", rec[colAccountType])
	}

	side := domain.NormalSide(strings.ToUpper(rec[colNormalSide]))
	switch side {
	case "":
		side = domain.DefaultNormalSide(accountType)
	case domain.DebitNormal, domain.CreditNormal:
	default:
		return domain.Account{}, fmt.Errorf("unknown normal_side %q", rec[colNormalSide])
	}

	return domain.Account{
		AccountID:       rec[colAccountID],
		Code:            rec[colAccountCode],
		Name:            rec[colAccountName],
		AccountType:     accountType,
		NormalSide:      side,
		ParentAccountID: rec[colParentID],
		IsActive:        true,
	}, nil
}

// ReadJournal reads a journal CSV with one row per line:
// entry_number,correlative_number,date,description,reference,status,line_number,account_id,debit,credit.
// Header fields are taken from the first row of each entry.
func ReadJournal(r io.Reader) ([]domain.JournalEntry, error) {
	records, err := readRecords(r, journalFields)
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	var entries []domain.JournalEntry
	index := make(map[int64]int)
	for i, rec := range records {
		row := i + 2
		entryNumber, err := strconv.ParseInt(rec[colEntryNumber], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing entry_number %q: %w", row, rec[colEntryNumber], err)
		}
		line, err := unmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		if pos, ok := index[entryNumber]; ok {
			entries[pos].Lines = append(entries[pos].Lines, line)
			continue
		}

		entry, err := unmarshalEntryHeader(entryNumber, rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		entry.Lines = []domain.JournalLine{line}
		index[entryNumber] = len(entries)
		entries = append(entries, entry)
	}
	return entries, nil
}

func unmarshalEntryHeader(entryNumber int64, rec []string) (domain.JournalEntry, error) {
	var correlative int64
	if rec[colCorrelative] != "" {
		c, err := strconv.ParseInt(rec[colCorrelative], 10, 64)
		if err != nil {
			return domain.JournalEntry{}, fmt.Errorf("parsing correlative_number %q: %w", rec[colCorrelative], err)
		}
		correlative = c
	}
	date, err := time.Parse(domain.DateLayout, rec[colEntryDate])
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("parsing date %q: %w", rec[colEntryDate], err)
	}
	status := domain.JournalStatus(strings.ToUpper(rec[colStatus]))
	switch status {
	case domain.Draft, domain.Pending, domain.Approved:
	default:
		return domain.JournalEntry{}, fmt.Errorf("unknown status %q", rec[colStatus])
	}

	return domain.JournalEntry{
		EntryNumber:       entryNumber,
		CorrelativeNumber: correlative,
		Date:              date,
		Description:       rec[colDescription],
		Reference:         rec[colReference],
		Status:            status,
	}, nil
}

func unmarshalLine(rec []string) (domain.JournalLine, error) {
	lineNumber, err := strconv.Atoi(rec[colLineNumber])
	if err != nil {
		return domain.JournalLine{}, fmt.Errorf("parsing line_number %q: %w", rec[colLineNumber], err)
	}
	debit, err := parseMinorUnits(rec[colDebit])
	if err != nil {
		return domain.JournalLine{}, fmt.Errorf("parsing debit: %w", err)
	}
	credit, err := parseMinorUnits(rec[colCredit])
	if err != nil {
		return domain.JournalLine{}, fmt.Errorf("parsing credit: %w", err)
	}
	return domain.JournalLine{
		LineNumber: lineNumber,
		AccountID:  rec[colLineAccount],
		Debit:      debit,
		Credit:     credit,
	}, nil
}

// ReadPayroll reads a payroll CSV: disbursement_id,check_number,pay_date,employee_name,net_amount.
func ReadPayroll(r io.Reader) ([]domain.PayrollDisbursement, error) {
	records, err := readRecords(r, payrollFields)
	if err != nil {
		return nil, fmt.Errorf("reading payroll CSV: %w", err)
	}

	out := make([]domain.PayrollDisbursement, 0, len(records))
	for i, rec := range records {
		payDate, err := time.Parse(domain.DateLayout, rec[colPayDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing pay_date %q: %w", i+2, rec[colPayDate], err)
		}
		amount, err := parseMinorUnits(rec[colNetAmount])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing net_amount: %w", i+2, err)
		}
		out = append(out, domain.PayrollDisbursement{
			DisbursementID: rec[colDisbursement],
			CheckNumber:    strings.TrimSpace(rec[colCheckNumber]),
			PayDate:        payDate,
			EmployeeName:   rec[colEmployee],
			NetAmount:      amount,
		})
	}
	return out, nil
}

// LoadLedger reads the CSV fixtures at the given paths into a Ledger. The
// journal and payroll paths are optional.
func LoadLedger(accountsPath, journalPath, payrollPath string) (*Ledger, error) {
	var (
		accounts      []domain.Account
		entries       []domain.JournalEntry
		disbursements []domain.PayrollDisbursement
	)
	if err := readFile(accountsPath, func(r io.Reader) (err error) {
		accounts, err = ReadAccounts(r)
		return err
	}); err != nil {
		return nil, err
	}
	if journalPath != "" {
		if err := readFile(journalPath, func(r io.Reader) (err error) {
			entries, err = ReadJournal(r)
			return err
		}); err != nil {
			return nil, err
		}
	}
	if payrollPath != "" {
		if err := readFile(payrollPath, func(r io.Reader) (err error) {
			disbursements, err = ReadPayroll(r)
			return err
		}); err != nil {
			return nil, err
		}
	}
	return NewLedger(accounts, entries, disbursements), nil
}

func readFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	if err := read(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// readRecords returns the data rows of a CSV, without its header.
func readRecords(r io.Reader, fields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// parseMinorUnits parses a non-negative integer amount. Blank means zero.
func parseMinorUnits(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", s, err)
	}
	return v, nil
}
