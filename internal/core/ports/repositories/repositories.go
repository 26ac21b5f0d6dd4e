package repositories

import "context"

// LedgerSnapshot bundles the collaborators one report generation reads from.
// All three are scoped to a single company and may share one connection, so
// they must not be called concurrently.
type LedgerSnapshot struct {
	Chart   ChartReader
	Journal JournalStore
	Payroll PayrollStore
}

// SnapshotProvider hands out company-scoped snapshots. Implementations decide
// the consistency guarantee; fn must not retain the snapshot after returning.
type SnapshotProvider interface {
	InSnapshot(ctx context.Context, companyID string, fn func(LedgerSnapshot) error) error
}
