package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/commands"
	"github.com/SscSPs/ledger_reporting/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	accountsCSV = `account_id,code,name,account_type,normal_side,parent_id
cash,1000,Cash,ASSET,,
payable,2000,Accounts Payable,LIABILITY,,
revenue,4000,Revenue,REVENUE,,
`
	journalCSV = `entry_number,correlative_number,date,description,reference,status,line_number,account_id,debit,credit
1,1,2024-01-10,Cash sale,1001,APPROVED,1,cash,10000,
1,1,2024-01-10,Cash sale,1001,APPROVED,2,revenue,,10000
2,2,2024-01-20,Supplier invoice,,PENDING,1,cash,,4000
2,2,2024-01-20,Supplier invoice,,PENDING,2,payable,4000,
`
	payrollCSV = `disbursement_id,check_number,pay_date,employee_name,net_amount
pay-1,1001,2024-01-31,Jane Roe,250000
`
)

type fixture struct {
	accounts, journal, payroll string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	return fixture{
		accounts: write("accounts.csv", accountsCSV),
		journal:  write("journal.csv", journalCSV),
		payroll:  write("payroll.csv", payrollCSV),
	}
}

func (f fixture) args(extra ...string) []string {
	return append([]string{"--accounts", f.accounts, "--journal", f.journal, "--payroll", f.payroll}, extra...)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestTrialBalance_Table(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, f.args("trial-balance", "--from", "2024-01-01", "--to", "2024-01-31")...)
	require.NoError(t, err)

	assert.Contains(t, out, "Trial balance 2024-01-01..2024-01-31")
	assert.Contains(t, out, "1000")
	assert.Contains(t, out, "$100.00")
	assert.Contains(t, out, "Balanced: yes")
	assert.NotContains(t, out, "Accounts Payable", "pending entries do not move balances")
}

func TestTrialBalance_JSON(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, f.args("trial-balance", "--from", "2024-01-01", "--to", "2024-01-31", "-o", "json")...)
	require.NoError(t, err)

	var resp dto.TrialBalanceResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "1000", resp.Rows[0].Code)
	assert.Equal(t, uint64(10000), resp.Totals.ClosingDebit.Minor)
	assert.Equal(t, uint64(10000), resp.Totals.ClosingCredit.Minor)
	assert.True(t, resp.IsBalanced)
}

func TestTrialBalance_Markdown(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, f.args("trial-balance", "--from", "2024-01-01", "--to", "2024-01-31", "--format", "markdown")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Trial balance")
	assert.Contains(t, out, "Revenue")
}

func TestLedger_RunningBalance(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, f.args("ledger", "cash", "--from", "2024-01-01", "--to", "2024-01-31", "-o", "json")...)
	require.NoError(t, err)

	var resp dto.AnalyticalLedgerResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, int64(10000), resp.Transactions[0].RunningBalance.Minor)
	assert.True(t, resp.Reconciled)
}

func TestLedger_UnknownAccount(t *testing.T) {
	f := newFixture(t)
	_, err := run(t, f.args("ledger", "ghost", "--from", "2024-01-01", "--to", "2024-01-31")...)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)
}

func TestLedger_Stream(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, f.args("ledger", "cash", "--from", "2024-01-01", "--to", "2024-01-31", "--stream")...)
	require.NoError(t, err)

	assert.Contains(t, out, "Analytical ledger 1000 Cash 2024-01-01..2024-01-31")
	assert.Contains(t, out, "Opening balance")
	assert.Contains(t, out, "Cash sale")
	assert.Contains(t, out, "$100.00")
	assert.NotContains(t, out, "Supplier invoice", "pending entries are not posted")
	assert.Contains(t, out, "1 posting(s)")
}

func TestLedger_StreamRejectsOtherFormats(t *testing.T) {
	f := newFixture(t)
	_, err := run(t, f.args("ledger", "cash", "--from", "2024-01-01", "--to", "2024-01-31", "--stream", "-o", "json")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--stream supports the table format only")

	_, err = run(t, f.args("ledger", "ghost", "--from", "2024-01-01", "--to", "2024-01-31", "--stream")...)
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)
}

func TestJournal_IncludesPendingEntries(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, f.args("journal", "--from", "2024-01-01", "--to", "2024-01-31")...)
	require.NoError(t, err)

	assert.Contains(t, out, "PENDING")
	assert.Contains(t, out, "Accounts Payable")
	assert.Contains(t, out, "2 entries")
	assert.NotContains(t, out, "UNBALANCED")
}

func TestChecks_MergesJournalAndPayroll(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, f.args("checks", "1001", "-o", "json")...)
	require.NoError(t, err)

	var resp dto.CheckSearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "JOURNAL", string(resp.Results[0].SourceKind))
	assert.Equal(t, "PAYROLL", string(resp.Results[1].SourceKind))
	assert.Equal(t, "Jane Roe", resp.Results[1].Description)
}

func TestFlagErrors(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no source", args: []string{"trial-balance", "--from", "2024-01-01", "--to", "2024-01-31"}, want: "either --company or --accounts is required"},
		{name: "two sources", args: f.args("--company", "acme", "journal", "--from", "2024-01-01", "--to", "2024-01-31"), want: "mutually exclusive"},
		{name: "bad format", args: f.args("journal", "--from", "2024-01-01", "--to", "2024-01-31", "-o", "xml"), want: "unknown format"},
		{name: "missing range", args: f.args("journal", "--from", "2024-01-01"), want: `required flag(s) "to" not set`},
		{name: "bad date", args: f.args("journal", "--from", "2024-13-01", "--to", "2024-01-31"), want: "invalid start date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInvertedRange(t *testing.T) {
	f := newFixture(t)
	_, err := run(t, f.args("trial-balance", "--from", "2024-02-01", "--to", "2024-01-01")...)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRange)
}
