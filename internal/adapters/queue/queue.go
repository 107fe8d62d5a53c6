// Package queue hands ingested demos to the downstream analysis workers
// jobs ride a redis list; the analysis subsystem BRPOPs on the same key
package queue

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	perr "demovault/internal/platform/errors"
	"demovault/internal/platform/logger"
)

const defaultKey = "demovault:analysis:jobs"

// Job is the hand-off payload consumed by the analysis workers
type Job struct {
	RecordID  string `json:"record_id"`
	AccountID string `json:"account_id"`
	FilePath  string `json:"file_path"`
}

// Options configures the redis enqueuer
type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string
	Timeout  time.Duration
}

// Enqueuer pushes jobs onto the analysis list
type Enqueuer struct {
	rdb     *redis.Client
	key     string
	timeout time.Duration
	log     logger.Logger
}

// New builds an Enqueuer; the connection is lazy so construction cannot fail
func New(o Options) *Enqueuer {
	if o.Key == "" {
		o.Key = defaultKey
	}
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
	})
	return &Enqueuer{
		rdb:     rdb,
		key:     o.Key,
		timeout: o.Timeout,
		log:     *logger.Named("queue"),
	}
}

// Enqueue pushes one job; failures are classified unavailable so callers
// can treat them as recoverable hand-off problems rather than hard errors
func (e *Enqueuer) Enqueue(ctx context.Context, job Job) error {
	b, err := json.Marshal(job)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "queue marshal job failed")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := e.rdb.LPush(ctx, e.key, b).Err(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "queue lpush failed")
	}
	e.log.Debug().Str("record_id", job.RecordID).Str("key", e.key).Msg("job enqueued")
	return nil
}

// Ping verifies connectivity, used by the sweeper at boot
func (e *Enqueuer) Ping(ctx context.Context) error {
	if err := e.rdb.Ping(ctx).Err(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "queue ping failed")
	}
	return nil
}

// Close releases the underlying connection pool
func (e *Enqueuer) Close() error { return e.rdb.Close() }
