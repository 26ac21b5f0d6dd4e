package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_reporting/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_reporting/internal/core/ports/repositories"
)

// Provider serves snapshots of in-memory ledgers keyed by company id.
type Provider struct {
	ledgers map[string]*Ledger
}

var _ portsrepo.SnapshotProvider = (*Provider)(nil)

// NewProvider creates a provider over the given company ledgers.
func NewProvider(ledgers map[string]*Ledger) *Provider {
	return &Provider{ledgers: ledgers}
}

// InSnapshot runs fn against the company ledger. Reads lock individually; the
// ledger must not be mutated while a report is being generated.
func (p *Provider) InSnapshot(ctx context.Context, companyID string, fn func(portsrepo.LedgerSnapshot) error) error {
	l, ok := p.ledgers[companyID]
	if !ok {
		return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(portsrepo.LedgerSnapshot{Chart: l, Journal: l, Payroll: l})
}
