// Package service contains the demo ingestion pipeline
package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"demovault/internal/adapters/queue"
	"demovault/internal/core/demoname"
	"demovault/internal/modkit/repokit"
	perr "demovault/internal/platform/errors"
	"demovault/internal/platform/logger"
	"demovault/internal/services/demos/domain"
	"demovault/internal/services/demos/repo"
	matchdom "demovault/internal/services/matches/domain"
	quotadom "demovault/internal/services/quota/domain"
	quotarepo "demovault/internal/services/quota/repo"
)

// preflightEstimateMB is charged against the quota before the transfer
// starts; the real size replaces it once the bytes are on disk
const preflightEstimateMB = 100

// Resolver is the slice of the matches service this pipeline consumes
type Resolver interface {
	ResolveOne(ctx context.Context, code string) (matchdom.MatchSummary, bool, error)
	Walk(ctx context.Context, creds matchdom.Credentials, startCode string, maxSteps int) ([]matchdom.MatchSummary, error)
}

// QuotaGuard answers whether an account may take on more bytes
type QuotaGuard interface {
	CanIngest(ctx context.Context, accountID string, candidateMB int) (quotadom.Decision, error)
}

// CredsSource reads the account's stored auto-sync credentials
type CredsSource interface {
	SyncCreds(ctx context.Context, accountID string) (quotarepo.RowSyncCreds, error)
}

// JobQueue hands finished records to the analysis workers
type JobQueue interface {
	Enqueue(ctx context.Context, job queue.Job) error
}

// Mirror replicates stored demos to object storage
type Mirror interface {
	Put(ctx context.Context, key, path string) error
}

// MirrorKey derives the object key for a stored demo
type MirrorKey func(accountID, filename string) string

// Service defines the service contract for demos
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	matches Resolver
	quota   QuotaGuard
	creds   CredsSource
	jobs    JobQueue

	// optional, nil when mirroring is disabled
	mirror    Mirror
	mirrorKey MirrorKey

	fetch Fetcher
	dir   string
	now   func() time.Time
}

// Deps carries the pipeline's collaborators
type Deps struct {
	DB      repokit.TxRunner
	Binder  repokit.Binder[repo.Repo]
	Matches Resolver
	Quota   QuotaGuard
	Creds   CredsSource
	Jobs    JobQueue

	Mirror    Mirror
	MirrorKey MirrorKey

	Fetch Fetcher
	Dir   string
}

// New creates a new demos service
func New(d Deps) *Svc {
	if d.DB == nil {
		panic("demos.Service requires a non nil TxRunner")
	}
	if d.Binder == nil {
		panic("demos.Service requires a non nil Repo binder")
	}
	if d.Matches == nil || d.Quota == nil || d.Creds == nil || d.Jobs == nil {
		panic("demos.Service requires matches, quota, creds and jobs ports")
	}
	if d.Fetch == nil {
		d.Fetch = HTTPFetcher(nil)
	}
	if d.Dir == "" {
		d.Dir = "demos"
	}
	if d.MirrorKey == nil {
		d.MirrorKey = func(accountID, filename string) string {
			return filepath.ToSlash(filepath.Join("demos", accountID, filename))
		}
	}
	return &Svc{
		Repo:      d.Binder.Bind(d.DB),
		binder:    d.Binder,
		db:        d.DB,
		matches:   d.Matches,
		quota:     d.Quota,
		creds:     d.Creds,
		jobs:      d.Jobs,
		mirror:    d.Mirror,
		mirrorKey: d.MirrorKey,
		fetch:     d.Fetch,
		dir:       d.Dir,
		now:       time.Now,
	}
}

// Ingest acquires one demo by share code and persists its record
//
// The pipeline is ordered so every early exit is cheap: resolve, name
// dedup, quota, then the transfer. Content dedup happens after the
// transfer because the checksum only exists once the bytes are local
func (s *Svc) Ingest(
	ctx context.Context,
	accountID string,
	in domain.IngestInput,
) (domain.IngestResult, error) {
	log := logger.C(ctx)

	sum, found, err := s.matches.ResolveOne(ctx, in.ShareCode)
	if err != nil {
		return domain.IngestResult{}, err
	}
	if !found {
		return domain.IngestResult{}, perr.NotFoundf("match for %s has expired", in.ShareCode)
	}

	url := sum.DemoURL
	if in.DemoURL != "" {
		url = in.DemoURL
	}
	if url == "" {
		return domain.IngestResult{}, perr.NotFoundf("no replay available for %s", in.ShareCode)
	}

	filename := demoname.ForMatch(sum.Map, sum.MatchID)
	dest := s.storedPath(accountID, filename)

	if existing, ok, err := s.Repo.FindByAccountAndFilename(ctx, accountID, filename); err != nil {
		return domain.IngestResult{}, err
	} else if ok {
		return domain.IngestResult{
			Outcome: domain.OutcomeAlreadyDownloaded,
			Record:  existing,
			Path:    s.storedPath(accountID, existing.Filename),
		}, nil
	}

	if err := s.checkQuota(ctx, accountID, preflightEstimateMB); err != nil {
		return domain.IngestResult{}, err
	}

	checksum, size, err := s.fetch(ctx, url, dest)
	if err != nil {
		return domain.IngestResult{}, err
	}
	sizeMB := sizeToMB(size)

	if existing, ok, err := s.Repo.FindByChecksum(ctx, checksum); err != nil {
		s.discard(log, dest)
		return domain.IngestResult{}, err
	} else if ok {
		s.discard(log, dest)
		return domain.IngestResult{
			Outcome: domain.OutcomeDuplicateContent,
			Record:  existing,
			Path:    s.storedPath(existing.AccountID, existing.Filename),
		}, nil
	}

	rec := domain.Record{
		AccountID:  accountID,
		Filename:   filename,
		Checksum:   checksum,
		FileSizeMB: sizeMB,
		MapName:    sum.Map,
		MatchDate:  sum.MatchTime,
		ScoreTeam1: sum.Score.Team1,
		ScoreTeam2: sum.Score.Team2,
		Status:     domain.StatusPending,
	}

	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		saved, err := r.InsertRecord(ctx, rec)
		if err != nil {
			return err
		}
		rec = saved
		return r.ChargeQuota(ctx, accountID, sizeMB, s.now())
	})
	if err != nil {
		// a concurrent ingest of identical bytes won the insert race;
		// yield to its record instead of failing the caller
		if perr.IsDuplicateKey(err) {
			s.discard(log, dest)
			if existing, ok, ferr := s.Repo.FindByChecksum(ctx, checksum); ferr == nil && ok {
				return domain.IngestResult{
					Outcome: domain.OutcomeDuplicateContent,
					Record:  existing,
					Path:    s.storedPath(existing.AccountID, existing.Filename),
				}, nil
			}
			return domain.IngestResult{}, perr.Conflictf("demo %s already recorded", checksum)
		}
		s.discard(log, dest)
		return domain.IngestResult{}, err
	}

	s.handoff(ctx, &rec, dest)
	s.mirrorOut(ctx, rec, dest)

	return domain.IngestResult{Outcome: domain.OutcomeIngested, Record: rec, Path: dest}, nil
}

// Sync walks the account's match history and ingests every discovery
func (s *Svc) Sync(
	ctx context.Context,
	accountID string,
	in domain.SyncInput,
) (domain.SyncOutcome, error) {
	log := logger.C(ctx)

	creds, err := s.creds.SyncCreds(ctx, accountID)
	if err != nil {
		return domain.SyncOutcome{}, err
	}
	if creds.SteamID == "" || creds.AuthCode == "" {
		return domain.SyncOutcome{}, perr.InvalidArgf("account has no sync credentials on file")
	}

	start := in.StartCode
	if start == "" {
		start = creds.LastShareCode
	}
	if start == "" {
		return domain.SyncOutcome{}, perr.InvalidArgf("no starting share code known; pass start_code")
	}

	sums, walkErr := s.matches.Walk(ctx,
		matchdom.Credentials{SteamID: creds.SteamID, AuthCode: creds.AuthCode},
		start, in.MaxSteps)

	out := domain.SyncOutcome{Discovered: len(sums)}
	for _, sum := range sums {
		res, err := s.Ingest(ctx, accountID, domain.IngestInput{ShareCode: sum.ShareCode})
		if err != nil {
			if perr.IsCode(err, perr.ErrorCodeQuotaExceeded) {
				log.Warn().Str("share_code", sum.ShareCode).Msg("sync halted on quota")
				out.WalkError = err.Error()
				break
			}
			log.Warn().Err(err).Str("share_code", sum.ShareCode).Msg("sync skipped one match")
			continue
		}
		out.Results = append(out.Results, res)
		out.LastCode = sum.ShareCode
	}

	if out.LastCode != "" {
		if err := s.Repo.UpdateLastShareCode(ctx, accountID, out.LastCode); err != nil {
			log.Warn().Err(err).Msg("persist last share code failed")
		}
	}
	if walkErr != nil && out.WalkError == "" {
		out.WalkError = walkErr.Error()
	}
	return out, nil
}

// List returns the account's records, newest first
func (s *Svc) List(ctx context.Context, accountID string, p domain.ListParams) ([]domain.Record, error) {
	return s.Repo.ListByAccount(ctx, accountID, p)
}

// Get returns one record owned by the account
func (s *Svc) Get(ctx context.Context, accountID, recordID string) (domain.Record, error) {
	return s.Repo.GetByID(ctx, accountID, recordID)
}

func (s *Svc) checkQuota(ctx context.Context, accountID string, mb int) error {
	dec, err := s.quota.CanIngest(ctx, accountID, mb)
	if err != nil {
		return err
	}
	if dec.Allowed {
		return nil
	}
	switch dec.Reason {
	case quotadom.DenyStorage:
		return perr.QuotaExceededf("storage limit reached; upgrade to %s", dec.RequiredTier)
	default:
		return perr.QuotaExceededf("monthly demo limit reached; upgrade to %s", dec.RequiredTier)
	}
}

// handoff enqueues the record for analysis and flips it to QUEUED
// a queue outage is not an ingest failure; the record stays PENDING and
// the sweeper retries the handoff later
func (s *Svc) handoff(ctx context.Context, rec *domain.Record, path string) {
	log := logger.C(ctx)

	job := queue.Job{RecordID: rec.ID, AccountID: rec.AccountID, FilePath: path}
	if err := s.jobs.Enqueue(ctx, job); err != nil {
		log.Warn().Err(err).Str("record_id", rec.ID).Msg("queue handoff failed, record left pending")
		return
	}
	if err := s.Repo.UpdateStatus(ctx, rec.ID, domain.StatusQueued); err != nil {
		log.Warn().Err(err).Str("record_id", rec.ID).Msg("status flip to queued failed")
		return
	}
	rec.Status = domain.StatusQueued
}

func (s *Svc) mirrorOut(ctx context.Context, rec domain.Record, path string) {
	if s.mirror == nil {
		return
	}
	key := s.mirrorKey(rec.AccountID, rec.Filename)
	if err := s.mirror.Put(ctx, key, path); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("mirror upload failed")
	}
}

// storedPath is the on-disk location of an account's demo; accounts get
// their own subdirectory so identical matches held by two accounts never
// collide on the filesystem
func (s *Svc) storedPath(accountID, filename string) string {
	return filepath.Join(s.dir, accountID, filename)
}

func (s *Svc) discard(log *logger.Logger, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("discard of redundant download failed")
	}
}
