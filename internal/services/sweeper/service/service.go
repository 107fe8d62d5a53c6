// Package service re-drives stalled ingestion records into the queue
package service

import (
	"context"
	"path/filepath"
	"time"

	"demovault/internal/adapters/queue"
	"demovault/internal/modkit/repokit"
	"demovault/internal/platform/logger"
	"demovault/internal/services/demos/domain"
	demorepo "demovault/internal/services/demos/repo"
)

// JobQueue hands records to the analysis workers
type JobQueue interface {
	Enqueue(ctx context.Context, job queue.Job) error
}

// Options tunes a sweep pass
type Options struct {
	// how long a record may sit PENDING before it is retried
	Grace time.Duration

	// max records per pass
	Batch int

	// local demo directory, used to rebuild job file paths
	Dir string
}

// Svc implements the sweeper
type Svc struct {
	Repo demorepo.Repo
	jobs JobQueue
	opts Options
	now  func() time.Time
}

// New creates a new sweeper service
func New(db repokit.TxRunner, binder repokit.Binder[demorepo.Repo], jobs JobQueue, opts Options) *Svc {
	if db == nil {
		panic("sweeper.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("sweeper.Service requires a non nil Repo binder")
	}
	if jobs == nil {
		panic("sweeper.Service requires a job queue")
	}
	if opts.Grace <= 0 {
		opts.Grace = 5 * time.Minute
	}
	if opts.Batch <= 0 {
		opts.Batch = 100
	}
	if opts.Dir == "" {
		opts.Dir = "demos"
	}
	return &Svc{Repo: binder.Bind(db), jobs: jobs, opts: opts, now: time.Now}
}

// Sweep retries the queue handoff for records stuck in PENDING and
// returns how many were requeued
//
// An enqueue error aborts the pass; the broker is likely still down and
// the remaining records will be picked up next tick
func (s *Svc) Sweep(ctx context.Context) (int, error) {
	log := logger.C(ctx)

	cutoff := s.now().Add(-s.opts.Grace)
	recs, err := s.Repo.PendingOlderThan(ctx, cutoff, s.opts.Batch)
	if err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 0, nil
	}

	requeued := 0
	for _, rec := range recs {
		job := queue.Job{
			RecordID:  rec.ID,
			AccountID: rec.AccountID,
			FilePath:  filepath.Join(s.opts.Dir, rec.AccountID, rec.Filename),
		}
		if err := s.jobs.Enqueue(ctx, job); err != nil {
			log.Warn().Err(err).Str("record_id", rec.ID).Msg("requeue failed, aborting pass")
			return requeued, err
		}
		if err := s.Repo.UpdateStatus(ctx, rec.ID, domain.StatusQueued); err != nil {
			log.Warn().Err(err).Str("record_id", rec.ID).Msg("status flip after requeue failed")
			continue
		}
		requeued++
	}

	log.Info().Int("requeued", requeued).Int("found", len(recs)).Msg("sweep pass done")
	return requeued, nil
}
