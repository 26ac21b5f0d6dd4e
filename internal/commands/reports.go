package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_reporting/internal/core/ports/services"
	"github.com/SscSPs/ledger_reporting/internal/middleware"
	"github.com/spf13/cobra"
)

func newTrialBalanceCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, domain.ReportRequest{Kind: domain.TrialBalanceKind})
		},
	}
	addRangeFlags(cmd, opts)
	return cmd
}

func newLedgerCommand(opts *options) *cobra.Command {
	var stream bool
	cmd := &cobra.Command{
		Use:   "ledger <account-id>",
		Short: "Print the analytical ledger of one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if stream {
				return streamLedger(cmd, opts, args[0])
			}
			return runReport(cmd, opts, domain.ReportRequest{Kind: domain.AnalyticalLedgerKind, AccountID: args[0]})
		},
	}
	addRangeFlags(cmd, opts)
	cmd.Flags().BoolVar(&stream, "stream", false, "print postings as they are read (table format only)")
	return cmd
}

// streamLedger prints the ledger without materializing it. It skips the
// reconciliation check, and an integrity problem stops the listing.
func streamLedger(cmd *cobra.Command, opts *options, accountID string) error {
	p, err := newPrinter(opts.format, opts.currency)
	if err != nil {
		return err
	}
	if p.format != formatTable {
		return fmt.Errorf("--stream supports the %s format only", formatTable)
	}
	r, err := domain.ParseDateRange(opts.from, opts.to)
	if err != nil {
		return err
	}

	return withReporting(cmd, opts, func(svc portssvc.ReportingService) error {
		ctx := cmd.Context()
		account, err := svc.Account(ctx, accountID)
		if err != nil {
			return err
		}
		balances, _, err := svc.ComputeBalances(ctx, []string{account.AccountID}, r)
		if err != nil {
			return err
		}
		opening := balances[account.AccountID].OpeningBalance
		return p.StreamLedger(cmd.OutOrStdout(), *account, r, opening, svc.LedgerTransactions(ctx, *account, r, opening))
	})
}

func newJournalCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print the legal journal for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, domain.ReportRequest{Kind: domain.LegalJournalKind})
		},
	}
	addRangeFlags(cmd, opts)
	return cmd
}

func newChecksCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "checks <check-number>",
		Short: "Find journal entries and payroll disbursements paid with a check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(opts.format, opts.currency)
			if err != nil {
				return err
			}
			checkNumber := strings.TrimSpace(args[0])

			var refs []domain.CheckReference
			err = withReporting(cmd, opts, func(svc portssvc.ReportingService) error {
				var searchErr error
				refs, searchErr = svc.SearchChecks(cmd.Context(), checkNumber)
				return searchErr
			})
			if err != nil {
				return err
			}
			return p.Checks(cmd.OutOrStdout(), checkNumber, refs)
		},
	}
}

func runReport(cmd *cobra.Command, opts *options, req domain.ReportRequest) error {
	p, err := newPrinter(opts.format, opts.currency)
	if err != nil {
		return err
	}
	req.Range, err = domain.ParseDateRange(opts.from, opts.to)
	if err != nil {
		return err
	}

	var report domain.Report
	err = withReporting(cmd, opts, func(svc portssvc.ReportingService) error {
		var genErr error
		report, genErr = svc.Generate(cmd.Context(), req)
		return genErr
	})
	if err != nil {
		return err
	}
	return p.Report(cmd.OutOrStdout(), report)
}

// withReporting opens the configured source and runs fn against one
// company snapshot. The command context carries the CLI logger.
func withReporting(cmd *cobra.Command, opts *options, fn func(portssvc.ReportingService) error) error {
	logger := opts.logger(cmd.ErrOrStderr())
	ctx := middleware.WithLogger(cmd.Context(), logger)
	cmd.SetContext(ctx)

	src, err := openSource(ctx, opts)
	if err != nil {
		return err
	}
	defer src.Close()

	logger.Debug("Opened ledger source", slog.String("company_id", src.companyID))
	if err := src.reporting.WithCompany(ctx, src.companyID, fn); err != nil {
		return fmt.Errorf("company %s: %w", src.companyID, err)
	}
	return nil
}
