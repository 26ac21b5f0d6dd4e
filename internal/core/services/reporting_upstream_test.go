package services_test

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_reporting/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_reporting/internal/core/ports/services"
	"github.com/SscSPs/ledger_reporting/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock ChartReader ---
type MockChartReader struct {
	mock.Mock
}

var _ portsrepo.ChartReader = (*MockChartReader)(nil)

func (m *MockChartReader) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockChartReader) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock JournalStore ---
type MockJournalStore struct {
	mock.Mock
}

var _ portsrepo.JournalStore = (*MockJournalStore)(nil)

func lineSeq(lines []domain.LedgerLine, err error) iter.Seq2[domain.LedgerLine, error] {
	return func(yield func(domain.LedgerLine, error) bool) {
		for _, l := range lines {
			if !yield(l, nil) {
				return
			}
		}
		if err != nil {
			yield(domain.LedgerLine{}, err)
		}
	}
}

func (m *MockJournalStore) ApprovedLinesBefore(ctx context.Context, accountIDs []string, before time.Time) iter.Seq2[domain.LedgerLine, error] {
	args := m.Called(ctx, accountIDs, before)
	lines, _ := args.Get(0).([]domain.LedgerLine)
	return lineSeq(lines, args.Error(1))
}

func (m *MockJournalStore) ApprovedLinesInRange(ctx context.Context, accountIDs []string, r domain.DateRange) iter.Seq2[domain.LedgerLine, error] {
	args := m.Called(ctx, accountIDs, r)
	lines, _ := args.Get(0).([]domain.LedgerLine)
	return lineSeq(lines, args.Error(1))
}

func (m *MockJournalStore) Entries(ctx context.Context, r domain.DateRange, minStatus domain.JournalStatus) iter.Seq2[domain.JournalEntry, error] {
	args := m.Called(ctx, r, minStatus)
	entries, _ := args.Get(0).([]domain.JournalEntry)
	err := args.Error(1)
	return func(yield func(domain.JournalEntry, error) bool) {
		for _, e := range entries {
			if !yield(e, nil) {
				return
			}
		}
		if err != nil {
			yield(domain.JournalEntry{}, err)
		}
	}
}

func (m *MockJournalStore) EntriesByReference(ctx context.Context, reference string, minStatus domain.JournalStatus) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, reference, minStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Mock PayrollStore ---
type MockPayrollStore struct {
	mock.Mock
}

var _ portsrepo.PayrollStore = (*MockPayrollStore)(nil)

func (m *MockPayrollStore) DisbursementsByCheck(ctx context.Context, checkNumber string) ([]domain.PayrollDisbursement, error) {
	args := m.Called(ctx, checkNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollDisbursement), args.Error(1)
}

func newMockedService() (portssvc.ReportingService, *MockChartReader, *MockJournalStore, *MockPayrollStore) {
	chart, journal, payroll := new(MockChartReader), new(MockJournalStore), new(MockPayrollStore)
	svc := services.NewReportingService(portsrepo.LedgerSnapshot{Chart: chart, Journal: journal, Payroll: payroll})
	return svc, chart, journal, payroll
}

var (
	errConnRefused = errors.New("dial tcp: connection refused")
	jan2024        = domain.NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	mockCash       = domain.Account{AccountID: "cash", Code: "1000", Name: "Cash", NormalSide: domain.DebitNormal, AccountType: domain.Asset}
)

func TestTrialBalance_ChartUnavailable(t *testing.T) {
	svc, chart, journal, _ := newMockedService()
	ctx := context.Background()
	chart.On("ListAccounts", ctx).Return(nil, errConnRefused).Once()

	tb, err := svc.TrialBalance(ctx, jan2024)

	assert.Nil(t, tb)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, errConnRefused)
	chart.AssertExpectations(t)
	journal.AssertNotCalled(t, "ApprovedLinesBefore", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrialBalance_InvalidRangeBeforeAnyFetch(t *testing.T) {
	svc, chart, _, _ := newMockedService()

	_, err := svc.TrialBalance(context.Background(), domain.DateRange{Start: jan2024.End, End: jan2024.Start})

	assert.ErrorIs(t, err, apperrors.ErrInvalidRange)
	chart.AssertNotCalled(t, "ListAccounts", mock.Anything)
}

func TestAnalyticalLedger_LineStreamFails(t *testing.T) {
	svc, chart, journal, _ := newMockedService()
	ctx := context.Background()
	ids := []string{mockCash.AccountID}
	line := domain.LedgerLine{
		EntryNumber: 1,
		Date:        jan2024.Start,
		Status:      domain.Approved,
		JournalLine: domain.JournalLine{LineNumber: 1, AccountID: mockCash.AccountID, Debit: 100},
	}

	chart.On("GetAccount", ctx, mockCash.AccountID).Return(&mockCash, nil).Once()
	journal.On("ApprovedLinesBefore", ctx, ids, jan2024.Start).Return(nil, nil).Once()
	journal.On("ApprovedLinesInRange", ctx, ids, jan2024).Return([]domain.LedgerLine{line}, errConnRefused).Once()

	al, err := svc.AnalyticalLedger(ctx, mockCash.AccountID, jan2024)

	assert.Nil(t, al)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	chart.AssertExpectations(t)
	journal.AssertExpectations(t)
}

func TestAnalyticalLedger_NotFoundMapsToUnknownAccount(t *testing.T) {
	svc, chart, _, _ := newMockedService()
	ctx := context.Background()
	chart.On("GetAccount", ctx, "gone").Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.AnalyticalLedger(ctx, "gone", jan2024)

	assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)
	assert.NotErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestLedgerTransactions_OutOfOrderLineEndsWithIntegrityError(t *testing.T) {
	svc, _, journal, _ := newMockedService()
	ctx := context.Background()
	ids := []string{mockCash.AccountID}
	later := domain.LedgerLine{
		EntryNumber: 2, Date: jan2024.End, Status: domain.Approved,
		JournalLine: domain.JournalLine{LineNumber: 1, AccountID: mockCash.AccountID, Debit: 5},
	}
	earlier := domain.LedgerLine{
		EntryNumber: 1, Date: jan2024.Start, Status: domain.Approved,
		JournalLine: domain.JournalLine{LineNumber: 1, AccountID: mockCash.AccountID, Debit: 7},
	}
	journal.On("ApprovedLinesInRange", ctx, ids, jan2024).Return([]domain.LedgerLine{later, earlier}, nil).Once()

	var (
		yielded int
		lastErr error
	)
	for _, err := range svc.LedgerTransactions(ctx, mockCash, jan2024, 0) {
		if err != nil {
			lastErr = err
			break
		}
		yielded++
	}

	assert.Equal(t, 1, yielded)
	require.Error(t, lastErr)
	assert.ErrorIs(t, lastErr, apperrors.ErrDataIntegrity)
}

func TestSearchChecks_PayrollUnavailable(t *testing.T) {
	svc, _, journal, payroll := newMockedService()

	journal.On("EntriesByReference", mock.Anything, "1001", domain.Pending).Return([]domain.JournalEntry{}, nil).Maybe()
	payroll.On("DisbursementsByCheck", mock.Anything, "1001").Return(nil, errConnRefused).Once()

	refs, err := svc.SearchChecks(context.Background(), "1001")

	assert.Nil(t, refs)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	payroll.AssertExpectations(t)
}

func cashLine(entry int64, date time.Time, debit, credit uint64) domain.LedgerLine {
	return domain.LedgerLine{
		EntryNumber: entry, Date: date, Status: domain.Approved,
		JournalLine: domain.JournalLine{LineNumber: 1, AccountID: mockCash.AccountID, Debit: debit, Credit: credit},
	}
}

func TestAnalyticalLedger_TotalOverflowIsReported(t *testing.T) {
	svc, chart, journal, _ := newMockedService()
	ctx := context.Background()
	ids := []string{mockCash.AccountID}
	const quarter = uint64(1) << 62
	var lines []domain.LedgerLine
	for i := range int64(4) {
		lines = append(lines,
			cashLine(2*i+1, jan2024.Start, quarter, 0),
			cashLine(2*i+2, jan2024.Start, 0, quarter))
	}

	chart.On("GetAccount", ctx, mockCash.AccountID).Return(&mockCash, nil).Once()
	journal.On("ApprovedLinesBefore", ctx, ids, jan2024.Start).Return(nil, nil).Once()
	journal.On("ApprovedLinesInRange", ctx, ids, jan2024).Return(lines, nil)

	al, err := svc.AnalyticalLedger(ctx, mockCash.AccountID, jan2024)

	require.NoError(t, err)
	assert.Len(t, al.Transactions, 8)
	assert.Equal(t, 3*quarter, al.TotalDebits, "the overflowing line is left out of the total")
	assert.Equal(t, 3*quarter, al.TotalCredits)

	var flagged []int64
	for _, v := range al.Violations {
		if v.Kind == domain.AmountOverflow && strings.HasPrefix(v.Detail, "analytical ledger total") {
			flagged = append(flagged, v.EntryNumber)
		}
	}
	assert.Equal(t, []int64{7, 8}, flagged)
}

func TestComputeBalances_OutOfOrderLineIsFlaggedAndAggregated(t *testing.T) {
	svc, chart, journal, _ := newMockedService()
	ctx := context.Background()
	ids := []string{mockCash.AccountID}
	lines := []domain.LedgerLine{
		cashLine(2, jan2024.End, 5, 0),
		cashLine(1, jan2024.Start, 7, 0),
	}

	chart.On("ListAccounts", ctx).Return([]domain.Account{mockCash}, nil).Once()
	journal.On("ApprovedLinesBefore", ctx, ids, jan2024.Start).Return(nil, nil).Once()
	journal.On("ApprovedLinesInRange", ctx, ids, jan2024).Return(lines, nil).Once()

	balances, violations, err := svc.ComputeBalances(ctx, ids, jan2024)

	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.OutOfOrderLine, violations[0].Kind)
	assert.Equal(t, int64(1), violations[0].EntryNumber)
	assert.Equal(t, uint64(12), balances[mockCash.AccountID].PeriodDebits)
	assert.Equal(t, domain.Balance(12), balances[mockCash.AccountID].ClosingBalance)
}

func TestAnalyticalLedger_OutOfOrderLineReportedOnce(t *testing.T) {
	svc, chart, journal, _ := newMockedService()
	ctx := context.Background()
	ids := []string{mockCash.AccountID}
	lines := []domain.LedgerLine{
		cashLine(2, jan2024.End, 5, 0),
		cashLine(1, jan2024.Start, 7, 0),
	}

	chart.On("GetAccount", ctx, mockCash.AccountID).Return(&mockCash, nil).Once()
	journal.On("ApprovedLinesBefore", ctx, ids, jan2024.Start).Return(nil, nil).Once()
	journal.On("ApprovedLinesInRange", ctx, ids, jan2024).Return(lines, nil)

	al, err := svc.AnalyticalLedger(ctx, mockCash.AccountID, jan2024)

	require.NoError(t, err)
	count := 0
	for _, v := range al.Violations {
		if v.Kind == domain.OutOfOrderLine {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
