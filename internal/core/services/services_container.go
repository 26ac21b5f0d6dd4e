package services

import (
	portsrepo "github.com/SscSPs/ledger_reporting/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_reporting/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(provider portsrepo.SnapshotProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Reporting: NewReportingServiceFactory(provider),
	}
}
