// Package repo provides postgres access to demo ingestion records
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"demovault/internal/modkit/repokit"
	perr "demovault/internal/platform/errors"
	"demovault/internal/services/demos/domain"
)

// Repo is the demos persistence surface used by the service layer
type Repo interface {
	InsertRecord(ctx context.Context, rec domain.Record) (domain.Record, error)
	FindByChecksum(ctx context.Context, checksum string) (domain.Record, bool, error)
	FindByAccountAndFilename(ctx context.Context, accountID, filename string) (domain.Record, bool, error)
	ListByAccount(ctx context.Context, accountID string, p domain.ListParams) ([]domain.Record, error)
	GetByID(ctx context.Context, accountID, recordID string) (domain.Record, error)
	UpdateStatus(ctx context.Context, recordID string, status domain.Status) error
	ChargeQuota(ctx context.Context, accountID string, sizeMB int, now time.Time) error
	UpdateLastShareCode(ctx context.Context, accountID, code string) error
	PendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]domain.Record, error)
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

const recordCols = `
id::text, account_id::text, filename, checksum, file_size_mb,
map_name, match_date, score_team1, score_team2, status, created_at
`

func scanRecord(row repokit.Row) (domain.Record, error) {
	var rec domain.Record
	err := row.Scan(
		&rec.ID,
		&rec.AccountID,
		&rec.Filename,
		&rec.Checksum,
		&rec.FileSizeMB,
		&rec.MapName,
		&rec.MatchDate,
		&rec.ScoreTeam1,
		&rec.ScoreTeam2,
		&rec.Status,
		&rec.CreatedAt,
	)
	return rec, err
}

// InsertRecord persists a new record; a checksum collision surfaces as a
// unique violation for the caller to classify
func (r *queries) InsertRecord(ctx context.Context, rec domain.Record) (domain.Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	const sql = `
insert into demo_records (
    id, account_id, filename, checksum, file_size_mb,
    map_name, match_date, score_team1, score_team2, status
) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
returning ` + recordCols

	return scanRecord(r.q.QueryRow(ctx, sql,
		rec.ID, rec.AccountID, rec.Filename, rec.Checksum, rec.FileSizeMB,
		rec.MapName, rec.MatchDate, rec.ScoreTeam1, rec.ScoreTeam2, rec.Status,
	))
}

func (r *queries) FindByChecksum(ctx context.Context, checksum string) (domain.Record, bool, error) {
	const sql = `select ` + recordCols + ` from demo_records where checksum = $1`

	rec, err := scanRecord(r.q.QueryRow(ctx, sql, checksum))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Record{}, false, nil
		}
		return domain.Record{}, false, err
	}
	return rec, true, nil
}

func (r *queries) FindByAccountAndFilename(
	ctx context.Context,
	accountID, filename string,
) (domain.Record, bool, error) {
	const sql = `
select ` + recordCols + `
from demo_records
where account_id = $1 and filename = $2
order by created_at desc
limit 1
`
	rec, err := scanRecord(r.q.QueryRow(ctx, sql, accountID, filename))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Record{}, false, nil
		}
		return domain.Record{}, false, err
	}
	return rec, true, nil
}

func (r *queries) ListByAccount(
	ctx context.Context,
	accountID string,
	p domain.ListParams,
) ([]domain.Record, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}
	const sql = `
select ` + recordCols + `
from demo_records
where account_id = $1
  and ($2 = '' or status = $2)
  and ($3::timestamptz is null or created_at >= $3)
order by created_at desc
limit $4 offset $5
`
	rows, err := r.q.Query(ctx, sql, accountID, p.Status, p.Since, limit, p.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *queries) GetByID(ctx context.Context, accountID, recordID string) (domain.Record, error) {
	const sql = `select ` + recordCols + ` from demo_records where id = $1 and account_id = $2`

	rec, err := scanRecord(r.q.QueryRow(ctx, sql, recordID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Record{}, perr.NotFoundf("record %s not found", recordID)
		}
		return domain.Record{}, err
	}
	return rec, nil
}

func (r *queries) UpdateStatus(ctx context.Context, recordID string, status domain.Status) error {
	const sql = `update demo_records set status = $2 where id = $1`
	_, err := r.q.Exec(ctx, sql, recordID, status)
	return err
}

// ChargeQuota bumps the account's monthly counter and storage use
// the counter resets when the stored reset stamp falls in an older month
// months are compared in UTC regardless of the session TimeZone, matching
// the pure quota decision
func (r *queries) ChargeQuota(ctx context.Context, accountID string, sizeMB int, now time.Time) error {
	const sql = `
update accounts
   set demos_this_month = case
           when date_trunc('month', demos_reset_at at time zone 'utc')
              = date_trunc('month', $3::timestamptz at time zone 'utc')
           then demos_this_month + 1
           else 1
       end,
       demos_reset_at   = case
           when date_trunc('month', demos_reset_at at time zone 'utc')
              = date_trunc('month', $3::timestamptz at time zone 'utc')
           then demos_reset_at
           else $3::timestamptz
       end,
       storage_used_mb  = storage_used_mb + $2
 where id = $1
`
	tag, err := r.q.Exec(ctx, sql, accountID, sizeMB, now.UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("account %s not found", accountID)
	}
	return nil
}

func (r *queries) UpdateLastShareCode(ctx context.Context, accountID, code string) error {
	const sql = `update accounts set last_share_code = $2 where id = $1`
	_, err := r.q.Exec(ctx, sql, accountID, code)
	return err
}

// PendingOlderThan returns records stuck in PENDING since before cutoff
func (r *queries) PendingOlderThan(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]domain.Record, error) {
	const sql = `
select ` + recordCols + `
from demo_records
where status = 'PENDING' and created_at < $1
order by created_at asc
limit $2
`
	rows, err := r.q.Query(ctx, sql, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
