// Package repo provides postgres access to account quota state
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"demovault/internal/modkit/repokit"
	perr "demovault/internal/platform/errors"
)

// Repo defines the repository contract for account quota reads
type Repo interface {
	QuotaByAccount(ctx context.Context, accountID string) (RowQuota, error)
	ResolveAPIKey(ctx context.Context, key string) (string, error)
	SyncCreds(ctx context.Context, accountID string) (RowSyncCreds, error)
	Suspended(ctx context.Context, accountID string) (bool, error)
}

// RowQuota is the quota slice of an account row
type RowQuota struct {
	Tier           string
	Admin          bool
	DemosThisMonth int
	DemosResetAt   time.Time
	StorageUsedMB  int
	MaxStorageMB   int
}

// RowSyncCreds are the auto-sync credentials stored on the account
type RowSyncCreds struct {
	SteamID       string
	AuthCode      string
	LastShareCode string
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// Compile-time assertion: queries implements Repo
var _ Repo = (*queries)(nil)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) QuotaByAccount(ctx context.Context, accountID string) (RowQuota, error) {
	const sql = `
select tier, is_admin, demos_this_month, demos_reset_at,
       storage_used_mb, coalesce(max_storage_mb, 0)
from accounts
where id = $1
`
	var row RowQuota
	if err := r.q.QueryRow(ctx, sql, accountID).Scan(
		&row.Tier,
		&row.Admin,
		&row.DemosThisMonth,
		&row.DemosResetAt,
		&row.StorageUsedMB,
		&row.MaxStorageMB,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RowQuota{}, perr.NotFoundf("account %s not found", accountID)
		}
		return RowQuota{}, err
	}
	return row, nil
}

func (r *queries) ResolveAPIKey(ctx context.Context, key string) (string, error) {
	const sql = `select id::text from accounts where api_key = $1`

	var id string
	if err := r.q.QueryRow(ctx, sql, key).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", perr.Unauthorizedf("unknown api key")
		}
		return "", err
	}
	return id, nil
}

func (r *queries) Suspended(ctx context.Context, accountID string) (bool, error) {
	const sql = `select is_suspended from accounts where id = $1`

	var suspended bool
	if err := r.q.QueryRow(ctx, sql, accountID).Scan(&suspended); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, perr.NotFoundf("account %s not found", accountID)
		}
		return false, err
	}
	return suspended, nil
}

func (r *queries) SyncCreds(ctx context.Context, accountID string) (RowSyncCreds, error) {
	const sql = `
select coalesce(steam_id, ''), coalesce(steam_auth_code, ''), coalesce(last_share_code, '')
from accounts
where id = $1
`
	var row RowSyncCreds
	if err := r.q.QueryRow(ctx, sql, accountID).Scan(
		&row.SteamID,
		&row.AuthCode,
		&row.LastShareCode,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RowSyncCreds{}, perr.NotFoundf("account %s not found", accountID)
		}
		return RowSyncCreds{}, err
	}
	return row, nil
}
