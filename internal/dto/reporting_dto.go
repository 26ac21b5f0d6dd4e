package dto

import "github.com/SscSPs/ledger_reporting/internal/core/domain"

// ReportRangeQuery holds the date range query parameters shared by reports.
type ReportRangeQuery struct {
	FromDate string `form:"fromDate" binding:"required,datetime=2006-01-02"`
	ToDate   string `form:"toDate" binding:"required,datetime=2006-01-02"`
}

// Range parses the query into a domain range. Order is validated by the engine.
func (q ReportRangeQuery) Range() (domain.DateRange, error) {
	return domain.ParseDateRange(q.FromDate, q.ToDate)
}

// AnalyticalLedgerQuery adds the account selector to the range query.
type AnalyticalLedgerQuery struct {
	ReportRangeQuery
	AccountID string `form:"accountID" binding:"required,max=64"`
}

// DateRangeResponse is an inclusive ISO date range.
type DateRangeResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func toDateRangeResponse(r domain.DateRange) DateRangeResponse {
	return DateRangeResponse{From: r.Start.Format(domain.DateLayout), To: r.End.Format(domain.DateLayout)}
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID      string             `json:"accountID"`
	Code           string             `json:"code"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	NormalSide     domain.NormalSide  `json:"normalSide"`
	OpeningBalance BalanceAmount      `json:"openingBalance"`
	OpeningDebit   Amount             `json:"openingDebit"`
	OpeningCredit  Amount             `json:"openingCredit"`
	PeriodDebits   Amount             `json:"periodDebits"`
	PeriodCredits  Amount             `json:"periodCredits"`
	ClosingBalance BalanceAmount      `json:"closingBalance"`
	ClosingDebit   Amount             `json:"closingDebit"`
	ClosingCredit  Amount             `json:"closingCredit"`
}

// TrialBalanceTotalsResponse holds the column totals of a trial balance.
type TrialBalanceTotalsResponse struct {
	OpeningDebit  Amount `json:"openingDebit"`
	OpeningCredit Amount `json:"openingCredit"`
	PeriodDebits  Amount `json:"periodDebits"`
	PeriodCredits Amount `json:"periodCredits"`
	ClosingDebit  Amount `json:"closingDebit"`
	ClosingCredit Amount `json:"closingCredit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Range      DateRangeResponse           `json:"range"`
	Rows       []TrialBalanceRowResponse   `json:"rows"`
	Totals     TrialBalanceTotalsResponse  `json:"totals"`
	IsBalanced bool                        `json:"isBalanced"`
	Violations []domain.IntegrityViolation `json:"violations"`
}

// ToTrialBalanceResponse converts a trial balance to its response.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		Range:      toDateRangeResponse(tb.Range),
		Rows:       make([]TrialBalanceRowResponse, len(tb.Rows)),
		IsBalanced: tb.IsBalanced,
		Violations: nonNilViolations(tb.Violations),
		Totals: TrialBalanceTotalsResponse{
			OpeningDebit:  NewAmount(tb.Totals.OpeningDebit),
			OpeningCredit: NewAmount(tb.Totals.OpeningCredit),
			PeriodDebits:  NewAmount(tb.Totals.PeriodDebits),
			PeriodCredits: NewAmount(tb.Totals.PeriodCredits),
			ClosingDebit:  NewAmount(tb.Totals.ClosingDebit),
			ClosingCredit: NewAmount(tb.Totals.ClosingCredit),
		},
	}
	for i, r := range tb.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:      r.AccountID,
			Code:           r.Code,
			Name:           r.Name,
			AccountType:    r.AccountType,
			NormalSide:     r.NormalSide,
			OpeningBalance: NewBalanceAmount(r.OpeningBalance, r.NormalSide),
			OpeningDebit:   NewAmount(r.OpeningDebit),
			OpeningCredit:  NewAmount(r.OpeningCredit),
			PeriodDebits:   NewAmount(r.PeriodDebits),
			PeriodCredits:  NewAmount(r.PeriodCredits),
			ClosingBalance: NewBalanceAmount(r.ClosingBalance, r.NormalSide),
			ClosingDebit:   NewAmount(r.ClosingDebit),
			ClosingCredit:  NewAmount(r.ClosingCredit),
		}
	}
	return resp
}

// LedgerTransactionResponse is one posting of an analytical ledger.
type LedgerTransactionResponse struct {
	Date           string        `json:"date"`
	EntryNumber    int64         `json:"entryNumber"`
	LineNumber     int           `json:"lineNumber"`
	Description    string        `json:"description"`
	Reference      string        `json:"reference"`
	Debit          Amount        `json:"debit"`
	Credit         Amount        `json:"credit"`
	RunningBalance BalanceAmount `json:"runningBalance"`
}

// AnalyticalLedgerResponse represents the single-account ledger response
type AnalyticalLedgerResponse struct {
	AccountID      string                      `json:"accountID"`
	Code           string                      `json:"code"`
	Name           string                      `json:"name"`
	NormalSide     domain.NormalSide           `json:"normalSide"`
	Range          DateRangeResponse           `json:"range"`
	OpeningBalance BalanceAmount               `json:"openingBalance"`
	Transactions   []LedgerTransactionResponse `json:"transactions"`
	TotalDebits    Amount                      `json:"totalDebits"`
	TotalCredits   Amount                      `json:"totalCredits"`
	ClosingBalance BalanceAmount               `json:"closingBalance"`
	Reconciled     bool                        `json:"reconciled"`
	Violations     []domain.IntegrityViolation `json:"violations"`
}

// ToAnalyticalLedgerResponse converts an analytical ledger to its response.
func ToAnalyticalLedgerResponse(al *domain.AnalyticalLedger) AnalyticalLedgerResponse {
	side := al.Account.NormalSide
	resp := AnalyticalLedgerResponse{
		AccountID:      al.Account.AccountID,
		Code:           al.Account.Code,
		Name:           al.Account.Name,
		NormalSide:     side,
		Range:          toDateRangeResponse(al.Range),
		OpeningBalance: NewBalanceAmount(al.OpeningBalance, side),
		Transactions:   make([]LedgerTransactionResponse, len(al.Transactions)),
		TotalDebits:    NewAmount(al.TotalDebits),
		TotalCredits:   NewAmount(al.TotalCredits),
		ClosingBalance: NewBalanceAmount(al.ClosingBalance, side),
		Reconciled:     al.Reconciled,
		Violations:     nonNilViolations(al.Violations),
	}
	for i, t := range al.Transactions {
		resp.Transactions[i] = LedgerTransactionResponse{
			Date:           t.Date.Format(domain.DateLayout),
			EntryNumber:    t.EntryNumber,
			LineNumber:     t.LineNumber,
			Description:    t.Description,
			Reference:      t.Reference,
			Debit:          NewAmount(t.Debit),
			Credit:         NewAmount(t.Credit),
			RunningBalance: NewBalanceAmount(t.RunningBalance, side),
		}
	}
	return resp
}

// LegalJournalLineResponse is one line of a legal journal entry.
type LegalJournalLineResponse struct {
	LineNumber  int    `json:"lineNumber"`
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	Debit       Amount `json:"debit"`
	Credit      Amount `json:"credit"`
}

// LegalJournalEntryResponse is one entry of the legal journal.
type LegalJournalEntryResponse struct {
	EntryNumber       int64                      `json:"entryNumber"`
	CorrelativeNumber int64                      `json:"correlativeNumber"`
	Date              string                     `json:"date"`
	Description       string                     `json:"description"`
	Reference         string                     `json:"reference"`
	Status            domain.JournalStatus       `json:"status"`
	Lines             []LegalJournalLineResponse `json:"lines"`
	TotalDebits       Amount                     `json:"totalDebits"`
	TotalCredits      Amount                     `json:"totalCredits"`
	IsBalanced        bool                       `json:"isBalanced"`
}

// LegalJournalResponse represents the legal journal export response
type LegalJournalResponse struct {
	Range        DateRangeResponse           `json:"range"`
	Entries      []LegalJournalEntryResponse `json:"entries"`
	TotalDebits  Amount                      `json:"totalDebits"`
	TotalCredits Amount                      `json:"totalCredits"`
	Violations   []domain.IntegrityViolation `json:"violations"`
}

// ToLegalJournalResponse converts a legal journal to its response.
func ToLegalJournalResponse(lj *domain.LegalJournal) LegalJournalResponse {
	resp := LegalJournalResponse{
		Range:        toDateRangeResponse(lj.Range),
		Entries:      make([]LegalJournalEntryResponse, len(lj.Entries)),
		TotalDebits:  NewAmount(lj.TotalDebits),
		TotalCredits: NewAmount(lj.TotalCredits),
		Violations:   nonNilViolations(lj.Violations),
	}
	for i, e := range lj.Entries {
		entry := LegalJournalEntryResponse{
			EntryNumber:       e.EntryNumber,
			CorrelativeNumber: e.CorrelativeNumber,
			Date:              e.Date.Format(domain.DateLayout),
			Description:       e.Description,
			Reference:         e.Reference,
			Status:            e.Status,
			Lines:             make([]LegalJournalLineResponse, len(e.Lines)),
			TotalDebits:       NewAmount(e.TotalDebits),
			TotalCredits:      NewAmount(e.TotalCredits),
			IsBalanced:        e.IsBalanced,
		}
		for j, l := range e.Lines {
			entry.Lines[j] = LegalJournalLineResponse{
				LineNumber:  l.LineNumber,
				AccountID:   l.AccountID,
				AccountCode: l.AccountCode,
				AccountName: l.AccountName,
				Debit:       NewAmount(l.Debit),
				Credit:      NewAmount(l.Credit),
			}
		}
		resp.Entries[i] = entry
	}
	return resp
}

// CheckReferenceResponse is one check search hit.
type CheckReferenceResponse struct {
	CheckNumber string                 `json:"checkNumber"`
	SourceKind  domain.CheckSourceKind `json:"sourceKind"`
	SourceID    string                 `json:"sourceID"`
	Date        string                 `json:"date"`
	Amount      Amount                 `json:"amount"`
	Description string                 `json:"description"`
}

// CheckSearchResponse lists the hits of a check search.
type CheckSearchResponse struct {
	CheckNumber string                   `json:"checkNumber"`
	Results     []CheckReferenceResponse `json:"results"`
	Count       int                      `json:"count"`
}

// ToCheckSearchResponse converts check search hits to their response.
func ToCheckSearchResponse(checkNumber string, refs []domain.CheckReference) CheckSearchResponse {
	resp := CheckSearchResponse{
		CheckNumber: checkNumber,
		Results:     make([]CheckReferenceResponse, len(refs)),
		Count:       len(refs),
	}
	for i, r := range refs {
		resp.Results[i] = CheckReferenceResponse{
			CheckNumber: r.CheckNumber,
			SourceKind:  r.SourceKind,
			SourceID:    r.SourceID,
			Date:        r.Date.Format(domain.DateLayout),
			Amount:      NewAmount(r.Amount),
			Description: r.Description,
		}
	}
	return resp
}

func nonNilViolations(vs []domain.IntegrityViolation) []domain.IntegrityViolation {
	if vs == nil {
		return []domain.IntegrityViolation{}
	}
	return vs
}
