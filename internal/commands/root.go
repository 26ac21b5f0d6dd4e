// Package commands implements the ledgerctl command line.
package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every report command.
type options struct {
	company     string
	databaseURL string
	accounts    string
	journal     string
	payroll     string
	format      string
	from        string
	to          string
	currency    string
	verbose     bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Generate accounting reports from a double-entry ledger",
		Long: `ledgerctl reads a company ledger from PostgreSQL (--company) or from CSV
fixtures (--accounts, --journal, --payroll) and prints trial balances,
analytical ledgers, legal journals and check searches.`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.company, "company", "", "company id to report on (PostgreSQL source)")
	flags.StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL URL (defaults to PGSQL_URL)")
	flags.StringVar(&opts.accounts, "accounts", "", "chart of accounts CSV (CSV source)")
	flags.StringVar(&opts.journal, "journal", "", "journal lines CSV (CSV source)")
	flags.StringVar(&opts.payroll, "payroll", "", "payroll disbursements CSV (CSV source)")
	flags.StringVarP(&opts.format, "format", "o", formatTable, "output format: table, json or markdown")
	flags.StringVar(&opts.currency, "currency", "USD", "ISO currency code used to display amounts")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log engine diagnostics to stderr")

	rootCmd.AddCommand(
		newTrialBalanceCommand(opts),
		newLedgerCommand(opts),
		newJournalCommand(opts),
		newChecksCommand(opts),
	)

	return rootCmd
}

// addRangeFlags registers the required --from/--to flags on report commands.
func addRangeFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.from, "from", "", "start date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringVar(&opts.to, "to", "", "end date (YYYY-MM-DD), inclusive")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

func (o *options) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
