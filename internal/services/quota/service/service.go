// Package service contains quota workflows
package service

import (
	"context"
	"time"

	"demovault/internal/modkit/repokit"
	perr "demovault/internal/platform/errors"
	"demovault/internal/services/quota/domain"
	"demovault/internal/services/quota/repo"
)

// Service defines the service contract for quota
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	// clock seam for rollover tests
	now func() time.Time
}

// New creates a new quota service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("quota.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("quota.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, now: time.Now}
}

// Snapshot reads the account's current quota state
func (s *Svc) Snapshot(ctx context.Context, accountID string) (domain.Snapshot, error) {
	row, err := s.Repo.QuotaByAccount(ctx, accountID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{
		AccountID:      accountID,
		Tier:           domain.Tier(row.Tier),
		Admin:          row.Admin,
		DemosThisMonth: row.DemosThisMonth,
		DemosResetAt:   row.DemosResetAt,
		StorageUsedMB:  row.StorageUsedMB,
		MaxStorageMB:   row.MaxStorageMB,
	}, nil
}

// CanIngest decides whether accountID may ingest candidateMB more right now
func (s *Svc) CanIngest(ctx context.Context, accountID string, candidateMB int) (domain.Decision, error) {
	snap, err := s.Snapshot(ctx, accountID)
	if err != nil {
		return domain.Decision{}, err
	}
	return domain.Decide(snap, candidateMB, s.now()), nil
}

// ResolveAPIKey maps a raw api key to an account id for the auth middleware
func (s *Svc) ResolveAPIKey(ctx context.Context, key string) (string, error) {
	return s.Repo.ResolveAPIKey(ctx, key)
}

// SyncCreds reads the account's stored auto-sync credentials
func (s *Svc) SyncCreds(ctx context.Context, accountID string) (repo.RowSyncCreds, error) {
	return s.Repo.SyncCreds(ctx, accountID)
}

// CheckStanding rejects suspended accounts before any protected handler runs
func (s *Svc) CheckStanding(ctx context.Context, accountID string) error {
	suspended, err := s.Repo.Suspended(ctx, accountID)
	if err != nil {
		return err
	}
	if suspended {
		return perr.Unauthorizedf("account is suspended")
	}
	return nil
}
