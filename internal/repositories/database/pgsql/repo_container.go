package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_reporting/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// ChartDecorator wraps the chart reader of one company, typically with a cache.
type ChartDecorator func(companyID string, chart portsrepo.ChartReader) portsrepo.ChartReader

// SnapshotProvider serves company snapshots backed by one read-only,
// repeatable-read transaction each, so every query of a report sees the same
// committed state.
type SnapshotProvider struct {
	db       TxBeginner
	pageSize int
	decorate ChartDecorator
}

// ProviderOption is a functional option for configuring the snapshot provider
type ProviderOption func(*SnapshotProvider)

// WithPageSize sets the keyset page size used to stream journal data.
func WithPageSize(n int) ProviderOption {
	return func(p *SnapshotProvider) {
		if n > 0 {
			p.pageSize = n
		}
	}
}

// WithChartDecorator wraps every snapshot's chart reader.
func WithChartDecorator(d ChartDecorator) ProviderOption {
	return func(p *SnapshotProvider) {
		p.decorate = d
	}
}

// NewSnapshotProvider creates a provider over the given pool.
func NewSnapshotProvider(db TxBeginner, options ...ProviderOption) *SnapshotProvider {
	p := &SnapshotProvider{db: db, pageSize: DefaultPageSize}
	for _, option := range options {
		option(p)
	}
	return p
}

var _ portsrepo.SnapshotProvider = (*SnapshotProvider)(nil)

// InSnapshot runs fn inside a read-only transaction scoped to companyID. The
// transaction is rolled back if fn fails and committed otherwise.
func (p *SnapshotProvider) InSnapshot(ctx context.Context, companyID string, fn func(portsrepo.LedgerSnapshot) error) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return apperrors.Upstream("begin snapshot", apperrors.NewAppError(500, "failed to begin transaction", err))
	}
	base := BaseRepository{DB: tx, CompanyID: companyID}
	defer func() { _ = base.Rollback(context.WithoutCancel(ctx), tx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE company_id = $1);`, companyID).Scan(&exists); err != nil {
		return apperrors.Upstream("find company", apperrors.NewAppError(500, "failed to look up company "+companyID, err))
	}
	if !exists {
		return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
	}

	var chart portsrepo.ChartReader = newPgxChartRepository(tx, companyID)
	if p.decorate != nil {
		chart = p.decorate(companyID, chart)
	}
	snapshot := portsrepo.LedgerSnapshot{
		Chart:   chart,
		Journal: newPgxJournalRepository(tx, companyID, p.pageSize),
		Payroll: newPgxPayrollRepository(tx, companyID),
	}

	if err := fn(snapshot); err != nil {
		return err
	}
	return apperrors.Upstream("commit snapshot", base.Commit(ctx, tx))
}
