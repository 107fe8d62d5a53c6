package module

import (
	"context"

	quotadom "demovault/internal/services/quota/domain"
	quotarepo "demovault/internal/services/quota/repo"
)

// AccountsPort exposes account lookups other modules and the auth layer need
type AccountsPort interface {
	ResolveAPIKey(ctx context.Context, key string) (string, error)
	SyncCreds(ctx context.Context, accountID string) (quotarepo.RowSyncCreds, error)
	CheckStanding(ctx context.Context, accountID string) error
}

// Ports are the quota module's cross-module surface
type Ports struct {
	Guard    quotadom.ServicePort
	Accounts AccountsPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
