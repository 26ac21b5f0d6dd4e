package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_reporting/internal/core/ports/services"
	"github.com/SscSPs/ledger_reporting/internal/dto"
	"github.com/SscSPs/ledger_reporting/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to ledger reports
type reportingHandler struct {
	factory portssvc.ReportingServiceFactory
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(factory portssvc.ReportingServiceFactory) *reportingHandler {
	return &reportingHandler{factory: factory}
}

// RegisterReportingRoutes registers report routes on a group whose path
// carries the :company_id parameter.
func RegisterReportingRoutes(rg *gin.RouterGroup, factory portssvc.ReportingServiceFactory) {
	h := newReportingHandler(factory)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/analytical-ledger", h.getAnalyticalLedger)
		reportingGroup.GET("/legal-journal", h.getLegalJournal)
		reportingGroup.GET("/checks/:check_number", h.searchChecks)
	}
}

// requestLogger returns the request logger enriched with the company and caller.
func requestLogger(c *gin.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("company_id", c.Param("company_id")))
	if subject, ok := middleware.GetSubjectFromContext(c); ok {
		logger = logger.With(slog.String("subject", subject))
	}
	return logger
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Summarizes every account with an opening balance or movement in the range, ordered by account code
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param fromDate query string true "Start date (YYYY-MM-DD), inclusive"
// @Param toDate query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Company not found"
// @Failure 503 {object} ErrorResponse "Ledger store unavailable"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := requestLogger(c)
	var q dto.ReportRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return
	}
	h.generate(c, logger, q, domain.TrialBalanceKind, "")
}

// getAnalyticalLedger godoc
// @Summary Generate analytical ledger report
// @Description Lists every approved posting on one account with its running balance
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param accountID query string true "Account ID"
// @Param fromDate query string true "Start date (YYYY-MM-DD), inclusive"
// @Param toDate query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.AnalyticalLedgerResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Company or account not found"
// @Failure 503 {object} ErrorResponse "Ledger store unavailable"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/analytical-ledger [get]
func (h *reportingHandler) getAnalyticalLedger(c *gin.Context) {
	logger := requestLogger(c)
	var q dto.AnalyticalLedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return
	}
	h.generate(c, logger.With(slog.String("account_id", q.AccountID)), q.ReportRangeQuery, domain.AnalyticalLedgerKind, q.AccountID)
}

// getLegalJournal godoc
// @Summary Generate legal journal export
// @Description Lists pending and approved entries in correlative order with per-entry balance checks
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param fromDate query string true "Start date (YYYY-MM-DD), inclusive"
// @Param toDate query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.LegalJournalResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Company not found"
// @Failure 503 {object} ErrorResponse "Ledger store unavailable"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/legal-journal [get]
func (h *reportingHandler) getLegalJournal(c *gin.Context) {
	logger := requestLogger(c)
	var q dto.ReportRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return
	}
	h.generate(c, logger, q, domain.LegalJournalKind, "")
}

func (h *reportingHandler) generate(c *gin.Context, logger *slog.Logger, q dto.ReportRangeQuery, kind domain.ReportKind, accountID string) {
	rng, err := q.Range()
	if err != nil {
		respondError(c, logger, fmt.Errorf("%w: %w", apperrors.ErrValidation, err), "Invalid report range")
		return
	}
	logger = logger.With(slog.String("kind", string(kind)), slog.String("range", rng.String()))
	logger.Info("Received request to generate report")

	var report domain.Report
	err = h.factory.WithCompany(c.Request.Context(), c.Param("company_id"), func(svc portssvc.ReportingService) error {
		var genErr error
		report, genErr = svc.Generate(c.Request.Context(), domain.ReportRequest{Kind: kind, Range: rng, AccountID: accountID})
		return genErr
	})
	if err != nil {
		respondError(c, logger, err, "Failed to generate report")
		return
	}

	switch r := report.(type) {
	case *domain.TrialBalance:
		c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(r))
	case *domain.AnalyticalLedger:
		c.JSON(http.StatusOK, dto.ToAnalyticalLedgerResponse(r))
	case *domain.LegalJournal:
		c.JSON(http.StatusOK, dto.ToLegalJournalResponse(r))
	default:
		logger.Error("Unexpected report type", slog.String("kind", string(kind)))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate report"})
	}
}

// searchChecks godoc
// @Summary Search by check number
// @Description Finds journal entries and payroll disbursements tagged with a check number
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param check_number path string true "Check number"
// @Success 200 {object} dto.CheckSearchResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Company not found"
// @Failure 503 {object} ErrorResponse "Ledger store unavailable"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/checks/{check_number} [get]
func (h *reportingHandler) searchChecks(c *gin.Context) {
	checkNumber := strings.TrimSpace(c.Param("check_number"))
	logger := requestLogger(c).With(slog.String("check_number", checkNumber))
	logger.Info("Received request to search checks")

	var refs []domain.CheckReference
	err := h.factory.WithCompany(c.Request.Context(), c.Param("company_id"), func(svc portssvc.ReportingService) error {
		var searchErr error
		refs, searchErr = svc.SearchChecks(c.Request.Context(), checkNumber)
		return searchErr
	})
	if err != nil {
		respondError(c, logger, err, "Failed to search checks")
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckSearchResponse(checkNumber, refs))
}
