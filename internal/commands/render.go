package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	"github.com/SscSPs/ledger_reporting/internal/dto"
	"github.com/SscSPs/ledger_reporting/internal/utils"
	"github.com/charmbracelet/glamour"
)

const (
	formatTable    = "table"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

// markdownStyle picks a dark, light or plain style from the terminal.
const markdownStyle = "auto"

// printer writes reports in one output format.
type printer struct {
	format   string
	currency string
}

func newPrinter(format, currency string) (*printer, error) {
	switch format {
	case formatTable, formatJSON, formatMarkdown:
	default:
		return nil, fmt.Errorf("unknown format %q: use table, json or markdown", format)
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	return &printer{format: format, currency: currency}, nil
}

// Report prints any report variant.
func (p *printer) Report(w io.Writer, report domain.Report) error {
	if p.format == formatJSON {
		switch r := report.(type) {
		case *domain.TrialBalance:
			return writeJSON(w, dto.ToTrialBalanceResponse(r))
		case *domain.AnalyticalLedger:
			return writeJSON(w, dto.ToAnalyticalLedgerResponse(r))
		case *domain.LegalJournal:
			return writeJSON(w, dto.ToLegalJournalResponse(r))
		}
		return fmt.Errorf("unsupported report %T", report)
	}

	var t *table
	switch r := report.(type) {
	case *domain.TrialBalance:
		t = p.trialBalanceTable(r)
	case *domain.AnalyticalLedger:
		t = p.ledgerTable(r)
	case *domain.LegalJournal:
		t = p.journalTable(r)
	default:
		return fmt.Errorf("unsupported report %T", report)
	}
	return p.write(w, t)
}

// Checks prints the result of a check search.
func (p *printer) Checks(w io.Writer, checkNumber string, refs []domain.CheckReference) error {
	if p.format == formatJSON {
		return writeJSON(w, dto.ToCheckSearchResponse(checkNumber, refs))
	}

	t := &table{
		title:   fmt.Sprintf("Check %s", checkNumber),
		headers: []string{"Date", "Source", "ID", "Amount", "Description"},
	}
	for _, ref := range refs {
		t.rows = append(t.rows, []string{
			ref.Date.Format(domain.DateLayout),
			string(ref.SourceKind),
			ref.SourceID,
			p.amount(ref.Amount),
			ref.Description,
		})
	}
	t.footer = append(t.footer, fmt.Sprintf("%d match(es)", len(refs)))
	return p.write(w, t)
}

func (p *printer) write(w io.Writer, t *table) error {
	if p.format == formatMarkdown {
		out, err := glamour.Render(t.markdown(), markdownStyle)
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	}
	return t.writeText(w)
}

func (p *printer) trialBalanceTable(tb *domain.TrialBalance) *table {
	t := &table{
		title:   fmt.Sprintf("Trial balance %s", tb.Range),
		headers: []string{"Code", "Account", "Opening Dr", "Opening Cr", "Debits", "Credits", "Closing Dr", "Closing Cr"},
	}
	for _, r := range tb.Rows {
		t.rows = append(t.rows, []string{
			r.Code, r.Name,
			p.column(r.OpeningDebit), p.column(r.OpeningCredit),
			p.column(r.PeriodDebits), p.column(r.PeriodCredits),
			p.column(r.ClosingDebit), p.column(r.ClosingCredit),
		})
	}
	tot := tb.Totals
	t.rows = append(t.rows, []string{
		"", "Total",
		p.amount(tot.OpeningDebit), p.amount(tot.OpeningCredit),
		p.amount(tot.PeriodDebits), p.amount(tot.PeriodCredits),
		p.amount(tot.ClosingDebit), p.amount(tot.ClosingCredit),
	})
	t.footer = append(t.footer, "Balanced: "+yesNo(tb.IsBalanced))
	t.footer = append(t.footer, violationLines(tb.Violations)...)
	return t
}

func (p *printer) ledgerTable(al *domain.AnalyticalLedger) *table {
	t := &table{
		title:   ledgerTitle(al.Account, al.Range),
		headers: ledgerHeaders,
	}
	t.rows = append(t.rows, []string{"", "", "", "Opening balance", "", "", "", p.balance(al.OpeningBalance)})
	for _, tx := range al.Transactions {
		t.rows = append(t.rows, p.ledgerRow(tx))
	}
	t.rows = append(t.rows, []string{"", "", "", "Closing balance", "", p.amount(al.TotalDebits), p.amount(al.TotalCredits), p.balance(al.ClosingBalance)})
	t.footer = append(t.footer, "Reconciled: "+yesNo(al.Reconciled))
	t.footer = append(t.footer, violationLines(al.Violations)...)
	return t
}

var ledgerHeaders = []string{"Date", "Entry", "Line", "Description", "Reference", "Debit", "Credit", "Balance"}

func ledgerTitle(account domain.Account, r domain.DateRange) string {
	return fmt.Sprintf("Analytical ledger %s %s %s", account.Code, account.Name, r)
}

func (p *printer) ledgerRow(tx domain.LedgerTransaction) []string {
	return []string{
		tx.Date.Format(domain.DateLayout),
		strconv.FormatInt(tx.EntryNumber, 10),
		strconv.Itoa(tx.LineNumber),
		tx.Description,
		tx.Reference,
		p.column(tx.Debit),
		p.column(tx.Credit),
		p.balance(tx.RunningBalance),
	}
}

// ledgerFlushRows is how many streamed rows share one column alignment.
const ledgerFlushRows = 200

// StreamLedger prints postings as txs yields them, holding at most
// ledgerFlushRows rows in memory.
func (p *printer) StreamLedger(w io.Writer, account domain.Account, r domain.DateRange, opening domain.Balance, txs iter.Seq2[domain.LedgerTransaction, error]) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", ledgerTitle(account, r)); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(ledgerHeaders, "\t"))
	fmt.Fprintln(tw, strings.Join([]string{"", "", "", "Opening balance", "", "", "", p.balance(opening)}, "\t"))

	closing, count := opening, 0
	for tx, err := range txs {
		if err != nil {
			_ = tw.Flush()
			return err
		}
		fmt.Fprintln(tw, strings.Join(p.ledgerRow(tx), "\t"))
		closing = tx.RunningBalance
		count++
		if count%ledgerFlushRows == 0 {
			if err := tw.Flush(); err != nil {
				return err
			}
		}
	}
	fmt.Fprintln(tw, strings.Join([]string{"", "", "", "Closing balance", "", "", "", p.balance(closing)}, "\t"))
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d posting(s)\n", count)
	return err
}

func (p *printer) journalTable(lj *domain.LegalJournal) *table {
	t := &table{
		title:   fmt.Sprintf("Legal journal %s", lj.Range),
		headers: []string{"Corr.", "Entry", "Date", "Status", "Code", "Account", "Debit", "Credit"},
	}
	for _, e := range lj.Entries {
		for i, l := range e.Lines {
			row := []string{"", "", "", "", l.AccountCode, l.AccountName, p.column(l.Debit), p.column(l.Credit)}
			if i == 0 {
				row[0] = strconv.FormatInt(e.CorrelativeNumber, 10)
				row[1] = strconv.FormatInt(e.EntryNumber, 10)
				row[2] = e.Date.Format(domain.DateLayout)
				row[3] = string(e.Status)
			}
			t.rows = append(t.rows, row)
		}
		if !e.IsBalanced {
			t.rows = append(t.rows, []string{"", "", "", "", "", "UNBALANCED", p.amount(e.TotalDebits), p.amount(e.TotalCredits)})
		}
	}
	t.rows = append(t.rows, []string{"", "", "", "", "", "Total", p.amount(lj.TotalDebits), p.amount(lj.TotalCredits)})
	t.footer = append(t.footer, fmt.Sprintf("%d entries", len(lj.Entries)))
	t.footer = append(t.footer, violationLines(lj.Violations)...)
	return t
}

// amount formats minor units in the printer's currency.
func (p *printer) amount(v uint64) string {
	if v > math.MaxInt64 {
		return utils.FormatMinorUnits(v, utils.CurrencyPrecision(p.currency))
	}
	return utils.FormatWithCurrency(int64(v), p.currency)
}

// column is amount with zero left blank.
func (p *printer) column(v uint64) string {
	if v == 0 {
		return ""
	}
	return p.amount(v)
}

func (p *printer) balance(b domain.Balance) string {
	return utils.FormatWithCurrency(int64(b), p.currency)
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func violationLines(vs []domain.IntegrityViolation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		var where []string
		if v.EntryNumber != 0 {
			where = append(where, fmt.Sprintf("entry %d", v.EntryNumber))
		}
		if v.LineNumber != 0 {
			where = append(where, fmt.Sprintf("line %d", v.LineNumber))
		}
		if v.AccountID != "" {
			where = append(where, "account "+v.AccountID)
		}
		line := "! " + string(v.Kind)
		if len(where) > 0 {
			line += " (" + strings.Join(where, ", ") + ")"
		}
		out = append(out, line+": "+v.Detail)
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table is a titled grid shared by the text and markdown outputs.
type table struct {
	title   string
	headers []string
	rows    [][]string
	footer  []string
}

func (t *table) writeText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", t.title); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.headers, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, line := range t.footer {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (t *table) markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.title)
	b.WriteString("| " + strings.Join(t.headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(t.headers)) + "\n")
	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	if len(t.footer) > 0 {
		b.WriteString("\n")
		for _, line := range t.footer {
			b.WriteString("- " + line + "\n")
		}
	}
	return b.String()
}
