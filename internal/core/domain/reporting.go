package domain

import "time"

// ReportKind names one of the ledger report variants.
type ReportKind string

const (
	TrialBalanceKind     ReportKind = "TRIAL_BALANCE"
	AnalyticalLedgerKind ReportKind = "ANALYTICAL_LEDGER"
	LegalJournalKind     ReportKind = "LEGAL_JOURNAL"
)

// Report is implemented by *TrialBalance, *AnalyticalLedger and *LegalJournal.
type Report interface {
	Kind() ReportKind
	Period() DateRange
	isReport()
}

// ViolationKind classifies a data-integrity problem found while reporting.
type ViolationKind string

const (
	UnbalancedEntry      ViolationKind = "UNBALANCED_ENTRY"
	MalformedLine        ViolationKind = "MALFORMED_LINE"
	AmountOverflow       ViolationKind = "AMOUNT_OVERFLOW"
	UnknownLineAccount   ViolationKind = "UNKNOWN_ACCOUNT"
	UnreconciledBalance  ViolationKind = "UNRECONCILED_BALANCE"
	CorrelativeGap       ViolationKind = "CORRELATIVE_GAP"
	DuplicateCorrelative ViolationKind = "DUPLICATE_CORRELATIVE"
	OutOfOrderLine       ViolationKind = "OUT_OF_ORDER_LINE"
)

// IntegrityViolation is a non-fatal data-integrity finding. Reports carry
// these instead of failing so the offending data stays inspectable.
type IntegrityViolation struct {
	Kind        ViolationKind `json:"kind"`
	EntryNumber int64         `json:"entryNumber,omitempty"`
	LineNumber  int           `json:"lineNumber,omitempty"`
	AccountID   string        `json:"accountID,omitempty"`
	Detail      string        `json:"detail"`
}

// TrialBalanceRow is one account line of a trial balance.
type TrialBalanceRow struct {
	AccountID      string      `json:"accountID"`
	Code           string      `json:"code"`
	Name           string      `json:"name"`
	AccountType    AccountType `json:"accountType"`
	NormalSide     NormalSide  `json:"normalSide"`
	OpeningBalance Balance     `json:"openingBalance"`
	OpeningDebit   uint64      `json:"openingDebit"`
	OpeningCredit  uint64      `json:"openingCredit"`
	PeriodDebits   uint64      `json:"periodDebits"`
	PeriodCredits  uint64      `json:"periodCredits"`
	ClosingBalance Balance     `json:"closingBalance"`
	ClosingDebit   uint64      `json:"closingDebit"`
	ClosingCredit  uint64      `json:"closingCredit"`
}

// TrialBalanceTotals sums the bucketed columns of every included row.
type TrialBalanceTotals struct {
	OpeningDebit  uint64 `json:"openingDebit"`
	OpeningCredit uint64 `json:"openingCredit"`
	PeriodDebits  uint64 `json:"periodDebits"`
	PeriodCredits uint64 `json:"periodCredits"`
	ClosingDebit  uint64 `json:"closingDebit"`
	ClosingCredit uint64 `json:"closingCredit"`
}

// TrialBalance summarizes every account with a balance or movement in Range.
type TrialBalance struct {
	Range      DateRange            `json:"range"`
	Rows       []TrialBalanceRow    `json:"rows"`
	Totals     TrialBalanceTotals   `json:"totals"`
	IsBalanced bool                 `json:"isBalanced"`
	Violations []IntegrityViolation `json:"violations"`
}

func (*TrialBalance) Kind() ReportKind    { return TrialBalanceKind }
func (r *TrialBalance) Period() DateRange { return r.Range }
func (*TrialBalance) isReport()           {}

// LedgerTransaction is a single posting on the analytical ledger, decorated
// with the account balance after it.
type LedgerTransaction struct {
	Date           time.Time `json:"date"`
	EntryNumber    int64     `json:"entryNumber"`
	LineNumber     int       `json:"lineNumber"`
	Description    string    `json:"description"`
	Reference      string    `json:"reference"`
	Debit          uint64    `json:"debit"`
	Credit         uint64    `json:"credit"`
	RunningBalance Balance   `json:"runningBalance"`
}

// AnalyticalLedger is the transaction-level detail for one account.
type AnalyticalLedger struct {
	Account        Account              `json:"account"`
	Range          DateRange            `json:"range"`
	OpeningBalance Balance              `json:"openingBalance"`
	Transactions   []LedgerTransaction  `json:"transactions"`
	TotalDebits    uint64               `json:"totalDebits"`
	TotalCredits   uint64               `json:"totalCredits"`
	ClosingBalance Balance              `json:"closingBalance"`
	Reconciled     bool                 `json:"reconciled"`
	Violations     []IntegrityViolation `json:"violations"`
}

func (*AnalyticalLedger) Kind() ReportKind    { return AnalyticalLedgerKind }
func (r *AnalyticalLedger) Period() DateRange { return r.Range }
func (*AnalyticalLedger) isReport()           {}

// LegalJournalLine is a journal line decorated with account metadata.
type LegalJournalLine struct {
	JournalLine
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
}

// LegalJournalEntry is one entry of the legal journal with its own balance check.
type LegalJournalEntry struct {
	EntryNumber       int64              `json:"entryNumber"`
	CorrelativeNumber int64              `json:"correlativeNumber"`
	Date              time.Time          `json:"date"`
	Description       string             `json:"description"`
	Reference         string             `json:"reference"`
	Status            JournalStatus      `json:"status"`
	Lines             []LegalJournalLine `json:"lines"`
	TotalDebits       uint64             `json:"totalDebits"`
	TotalCredits      uint64             `json:"totalCredits"`
	IsBalanced        bool               `json:"isBalanced"`
}

// LegalJournal is the correlative-ordered record of posted entries.
type LegalJournal struct {
	Range        DateRange            `json:"range"`
	Entries      []LegalJournalEntry  `json:"entries"`
	TotalDebits  uint64               `json:"totalDebits"`
	TotalCredits uint64               `json:"totalCredits"`
	Violations   []IntegrityViolation `json:"violations"`
}

func (*LegalJournal) Kind() ReportKind    { return LegalJournalKind }
func (r *LegalJournal) Period() DateRange { return r.Range }
func (*LegalJournal) isReport()           {}

// ReportRequest selects a report variant and its parameters.
type ReportRequest struct {
	Kind      ReportKind
	Range     DateRange
	AccountID string // Required for AnalyticalLedgerKind
}
