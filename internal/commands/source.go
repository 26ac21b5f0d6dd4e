package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_reporting/internal/core/services"
	portssvc "github.com/SscSPs/ledger_reporting/internal/core/ports/services"
	"github.com/SscSPs/ledger_reporting/internal/platform/config"
	"github.com/SscSPs/ledger_reporting/internal/repositories/cache/redis"
	"github.com/SscSPs/ledger_reporting/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_reporting/internal/repositories/memory"
	"github.com/SscSPs/ledger_reporting/pkg/database"
)

// csvCompanyID names the single company served from CSV fixtures.
const csvCompanyID = "csv"

// source is an opened ledger source bound to one company.
type source struct {
	reporting portssvc.ReportingServiceFactory
	companyID string
	closers   []func()
}

func (s *source) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openSource picks the CSV or PostgreSQL source from the flags.
func openSource(ctx context.Context, opts *options) (*source, error) {
	switch {
	case opts.accounts != "" && opts.company != "":
		return nil, errors.New("--company and --accounts are mutually exclusive")
	case opts.accounts != "":
		return openCSVSource(opts)
	case opts.company != "":
		return openDatabaseSource(ctx, opts)
	default:
		return nil, errors.New("either --company or --accounts is required")
	}
}

func openCSVSource(opts *options) (*source, error) {
	ledger, err := memory.LoadLedger(opts.accounts, opts.journal, opts.payroll)
	if err != nil {
		return nil, fmt.Errorf("loading CSV ledger: %w", err)
	}
	provider := memory.NewProvider(map[string]*memory.Ledger{csvCompanyID: ledger})
	return &source{
		reporting: services.NewServiceContainer(provider).Reporting,
		companyID: csvCompanyID,
	}, nil
}

func openDatabaseSource(ctx context.Context, opts *options) (*source, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	url := opts.databaseURL
	if url == "" {
		url = cfg.DatabaseURL
	}
	if url == "" {
		return nil, errors.New("no database URL: set --database-url or PGSQL_URL")
	}

	pool, err := database.NewPgxPool(ctx, url, true)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	src := &source{companyID: opts.company, closers: []func(){func() { database.ClosePgxPool(pool) }}}

	providerOptions := []pgsql.ProviderOption{pgsql.WithPageSize(cfg.LedgerPageSize)}
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("configuring redis: %w", err)
		}
		src.closers = append(src.closers, func() { _ = client.Close() })
		providerOptions = append(providerOptions, pgsql.WithChartDecorator(redis.NewChartCache(client, cfg.ChartCacheTTL).Wrap))
	}

	src.reporting = services.NewServiceContainer(pgsql.NewSnapshotProvider(pool, providerOptions...)).Reporting
	return src, nil
}
