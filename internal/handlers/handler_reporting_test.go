package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_reporting/internal/core/ports/services"
	"github.com/SscSPs/ledger_reporting/internal/dto"
	"github.com/SscSPs/ledger_reporting/internal/handlers"
	"github.com/SscSPs/ledger_reporting/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ComputeBalances(ctx context.Context, accountIDs []string, r domain.DateRange) (map[string]domain.AccountPeriodBalance, []domain.IntegrityViolation, error) {
	args := m.Called(ctx, accountIDs, r)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(map[string]domain.AccountPeriodBalance), args.Get(1).([]domain.IntegrityViolation), args.Error(2)
}

func (m *MockReportingService) TrialBalance(ctx context.Context, r domain.DateRange) (*domain.TrialBalance, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) AnalyticalLedger(ctx context.Context, accountID string, r domain.DateRange) (*domain.AnalyticalLedger, error) {
	args := m.Called(ctx, accountID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticalLedger), args.Error(1)
}

func (m *MockReportingService) Account(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockReportingService) LedgerTransactions(ctx context.Context, account domain.Account, r domain.DateRange, opening domain.Balance) iter.Seq2[domain.LedgerTransaction, error] {
	args := m.Called(ctx, account, r, opening)
	return args.Get(0).(iter.Seq2[domain.LedgerTransaction, error])
}

func (m *MockReportingService) LegalJournal(ctx context.Context, r domain.DateRange) (*domain.LegalJournal, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LegalJournal), args.Error(1)
}

func (m *MockReportingService) SearchChecks(ctx context.Context, checkNumber string) ([]domain.CheckReference, error) {
	args := m.Called(ctx, checkNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CheckReference), args.Error(1)
}

func (m *MockReportingService) Generate(ctx context.Context, req domain.ReportRequest) (domain.Report, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Report), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock ReportingServiceFactory ---
type MockReportingServiceFactory struct {
	mock.Mock
	Service *MockReportingService
}

func (m *MockReportingServiceFactory) WithCompany(ctx context.Context, companyID string, fn func(portssvc.ReportingService) error) error {
	args := m.Called(ctx, companyID)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Service)
}

var _ portssvc.ReportingServiceFactory = (*MockReportingServiceFactory)(nil)

const (
	testJWTSecret = "test-secret-for-handlers"
	testCompanyID = "company-1"
)

type ReportingHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	factory *MockReportingServiceFactory
	service *MockReportingService
	token   string
}

func (suite *ReportingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.service = new(MockReportingService)
	suite.factory = &MockReportingServiceFactory{Service: suite.service}

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterReportingRoutes(v1.Group("/companies/:company_id"), suite.factory)

	suite.token = suite.generateTestToken("user-1")
}

func (suite *ReportingHandlerTestSuite) TearDownTest() {
	suite.factory.AssertExpectations(suite.T())
	suite.service.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	suite.Require().NoError(err)
	return token
}

func (suite *ReportingHandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func reportsPath(suffix string) string {
	return fmt.Sprintf("/api/v1/companies/%s/reports/%s", testCompanyID, suffix)
}

func januaryRange() domain.DateRange {
	return domain.NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
}

func (suite *ReportingHandlerTestSuite) TestTrialBalance_Success() {
	rng := januaryRange()
	tb := &domain.TrialBalance{
		Range: rng,
		Rows: []domain.TrialBalanceRow{
			{AccountID: "cash", Code: "1000", Name: "Cash", AccountType: domain.Asset, NormalSide: domain.DebitNormal, PeriodDebits: 10000, ClosingBalance: 10000, ClosingDebit: 10000},
			{AccountID: "revenue", Code: "4000", Name: "Revenue", AccountType: domain.Revenue, NormalSide: domain.CreditNormal, PeriodCredits: 10000, ClosingBalance: 10000, ClosingCredit: 10000},
		},
		Totals:     domain.TrialBalanceTotals{PeriodDebits: 10000, PeriodCredits: 10000, ClosingDebit: 10000, ClosingCredit: 10000},
		IsBalanced: true,
	}
	suite.factory.On("WithCompany", mock.Anything, testCompanyID).Return(nil).Once()
	suite.service.On("Generate", mock.Anything, domain.ReportRequest{Kind: domain.TrialBalanceKind, Range: rng}).Return(tb, nil).Once()

	w := suite.get(reportsPath("trial-balance?fromDate=2024-01-01&toDate=2024-01-31"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.IsBalanced)
	suite.Equal("2024-01-01", resp.Range.From)
	suite.Require().Len(resp.Rows, 2)
	suite.Equal("1000", resp.Rows[0].Code)
	suite.Equal("100.00", resp.Rows[0].ClosingDebit.Display)
	suite.Equal(uint64(10000), resp.Totals.ClosingCredit.Minor)
	suite.NotNil(resp.Violations)
}

func (suite *ReportingHandlerTestSuite) TestTrialBalance_MissingParams() {
	w := suite.get(reportsPath("trial-balance?fromDate=2024-01-01"))

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Details, "toDate is required")
	suite.factory.AssertNotCalled(suite.T(), "WithCompany", mock.Anything, mock.Anything)
}

func (suite *ReportingHandlerTestSuite) TestTrialBalance_BadDateFormat() {
	w := suite.get(reportsPath("trial-balance?fromDate=01/01/2024&toDate=2024-01-31"))

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Details, "fromDate must be a date in YYYY-MM-DD format")
}

func (suite *ReportingHandlerTestSuite) TestErrorMapping() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "inverted range", err: fmt.Errorf("%w: 2024-02-01 after 2024-01-01", apperrors.ErrInvalidRange), wantStatus: http.StatusBadRequest},
		{name: "unknown company", err: apperrors.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "store down", err: apperrors.Upstream("list accounts", fmt.Errorf("connection refused")), wantStatus: http.StatusServiceUnavailable},
		{name: "unexpected", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.factory.On("WithCompany", mock.Anything, testCompanyID).Return(tt.err).Once()

			w := suite.get(reportsPath("legal-journal?fromDate=2024-01-01&toDate=2024-01-31"))

			suite.Equal(tt.wantStatus, w.Code)
			var resp handlers.ErrorResponse
			suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			suite.NotEmpty(resp.Error)
		})
	}
}

func (suite *ReportingHandlerTestSuite) TestUpstreamErrorDoesNotLeakCause() {
	suite.factory.On("WithCompany", mock.Anything, testCompanyID).Return(apperrors.Upstream("begin snapshot", fmt.Errorf("dial tcp 10.0.0.5:5432"))).Once()

	w := suite.get(reportsPath("trial-balance?fromDate=2024-01-01&toDate=2024-01-31"))

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.NotContains(w.Body.String(), "10.0.0.5")
}

func (suite *ReportingHandlerTestSuite) TestAnalyticalLedger_UnknownAccount() {
	rng := januaryRange()
	suite.factory.On("WithCompany", mock.Anything, testCompanyID).Return(nil).Once()
	suite.service.On("Generate", mock.Anything, domain.ReportRequest{Kind: domain.AnalyticalLedgerKind, Range: rng, AccountID: "ghost"}).
		Return(nil, fmt.Errorf("%w: ghost", apperrors.ErrUnknownAccount)).Once()

	w := suite.get(reportsPath("analytical-ledger?accountID=ghost&fromDate=2024-01-01&toDate=2024-01-31"))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "ghost")
}

func (suite *ReportingHandlerTestSuite) TestAnalyticalLedger_RequiresAccount() {
	w := suite.get(reportsPath("analytical-ledger?fromDate=2024-01-01&toDate=2024-01-31"))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "accountID is required")
}

func (suite *ReportingHandlerTestSuite) TestAnalyticalLedger_Success() {
	rng := januaryRange()
	cash := domain.Account{AccountID: "cash", Code: "1000", Name: "Cash", AccountType: domain.Asset, NormalSide: domain.DebitNormal}
	ledger := &domain.AnalyticalLedger{
		Account:        cash,
		Range:          rng,
		OpeningBalance: 500,
		Transactions: []domain.LedgerTransaction{
			{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), EntryNumber: 1, LineNumber: 1, Debit: 10000, RunningBalance: 10500},
		},
		TotalDebits:    10000,
		ClosingBalance: 10500,
		Reconciled:     true,
	}
	suite.factory.On("WithCompany", mock.Anything, testCompanyID).Return(nil).Once()
	suite.service.On("Generate", mock.Anything, domain.ReportRequest{Kind: domain.AnalyticalLedgerKind, Range: rng, AccountID: "cash"}).Return(ledger, nil).Once()

	w := suite.get(reportsPath("analytical-ledger?accountID=cash&fromDate=2024-01-01&toDate=2024-01-31"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AnalyticalLedgerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal("2024-01-10", resp.Transactions[0].Date)
	suite.Equal(int64(10500), resp.ClosingBalance.Minor)
	suite.True(resp.Reconciled)
}

func (suite *ReportingHandlerTestSuite) TestSearchChecks_Success() {
	refs := []domain.CheckReference{
		{CheckNumber: "1001", SourceKind: domain.SourceJournal, SourceID: "7", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Amount: 2500},
		{CheckNumber: "1001", SourceKind: domain.SourcePayroll, SourceID: "pay-1", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Amount: 2500, Description: "Jane Roe"},
	}
	suite.factory.On("WithCompany", mock.Anything, testCompanyID).Return(nil).Once()
	suite.service.On("SearchChecks", mock.Anything, "1001").Return(refs, nil).Once()

	w := suite.get(reportsPath("checks/1001"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CheckSearchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1001", resp.CheckNumber)
	suite.Equal(2, resp.Count)
	suite.Equal(domain.SourceJournal, resp.Results[0].SourceKind)
}

func (suite *ReportingHandlerTestSuite) TestSearchChecks_NoMatchesIsEmptyList() {
	suite.factory.On("WithCompany", mock.Anything, testCompanyID).Return(nil).Once()
	suite.service.On("SearchChecks", mock.Anything, "9999").Return([]domain.CheckReference{}, nil).Once()

	w := suite.get(reportsPath("checks/9999"))

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"results":[]`)
}

func (suite *ReportingHandlerTestSuite) TestRequiresAuthentication() {
	req := httptest.NewRequest(http.MethodGet, reportsPath("trial-balance?fromDate=2024-01-01&toDate=2024-01-31"), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestReportingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}
