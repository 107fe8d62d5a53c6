// Package service contains the bounded match history walker
package service

import (
	"context"
	"errors"
	"time"

	"demovault/internal/adapters/steam"
	"demovault/internal/core/sharecode"
	perr "demovault/internal/platform/errors"
	"demovault/internal/platform/logger"
	"demovault/internal/services/matches/domain"
)

const (
	// defaultMaxSteps hard-bounds a walk even against a cyclic remote sequence
	defaultMaxSteps = 10

	// defaultPause spaces remote calls to respect their implicit rate limit
	defaultPause = 200 * time.Millisecond
)

// HistoryClient is the slice of the steam adapter the walker needs
type HistoryClient interface {
	NextCode(ctx context.Context, creds steam.Credentials, knownCode string) (string, bool, error)
	MatchDetails(ctx context.Context, id sharecode.Identifier) (steam.MatchInfo, bool, error)
}

// Service defines the service contract for matches
type Service interface{ domain.ServicePort }

// Config carries walker knobs
type Config struct {
	MaxSteps int
	Pause    time.Duration
}

// Svc implements the Service interface
type Svc struct {
	client HistoryClient
	cfg    Config
	log    logger.Logger

	// pause seam so tests do not sleep
	pause func(ctx context.Context, d time.Duration) error
}

// New creates a new matches service
func New(client HistoryClient, cfg Config) *Svc {
	if client == nil {
		panic("matches.Service requires a non nil HistoryClient")
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = defaultMaxSteps
	}
	if cfg.Pause <= 0 {
		cfg.Pause = defaultPause
	}
	return &Svc{
		client: client,
		cfg:    cfg,
		log:    *logger.Named("matches"),
		pause:  sleepCtx,
	}
}

// sleepCtx pauses cooperatively so a dropped request stops pacing immediately
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ResolveOne resolves a share code to a MatchSummary
// ok is false for replays the remote has already garbage-collected; that is
// a legitimate terminal outcome, not a retry signal
func (s *Svc) ResolveOne(ctx context.Context, code string) (domain.MatchSummary, bool, error) {
	id, err := sharecode.Decode(code)
	if err != nil {
		if errors.Is(err, sharecode.ErrInvalidFormat) {
			return domain.MatchSummary{}, false, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "malformed share code")
		}
		return domain.MatchSummary{}, false, err
	}

	info, ok, err := s.client.MatchDetails(ctx, id)
	if err != nil {
		return domain.MatchSummary{}, false, err
	}
	if !ok {
		return domain.MatchSummary{}, false, nil
	}

	return domain.MatchSummary{
		MatchID:         id.MatchID,
		ShareCode:       code,
		MatchTime:       time.Unix(info.MatchTime, 0).UTC(),
		Map:             info.Map,
		GameMode:        domain.ModeFromEnum(info.Mode),
		Score:           domain.Score{Team1: info.ScoreTeam1, Team2: info.ScoreTeam2},
		DurationSeconds: info.DurationSeconds,
		DemoURL:         info.DemoURL(id),
	}, true, nil
}

// Walk discovers matches after startCode, bounded at maxSteps iterations
// an empty startCode asks the remote for the newest known match. Expired
// replays are skipped and the walk continues; a transport error stops the
// walk and returns whatever was already resolved alongside the error
func (s *Svc) Walk(
	ctx context.Context,
	creds domain.Credentials,
	startCode string,
	maxSteps int,
) ([]domain.MatchSummary, error) {
	if maxSteps <= 0 || maxSteps > s.cfg.MaxSteps {
		maxSteps = s.cfg.MaxSteps
	}

	sc := steam.Credentials{SteamID: creds.SteamID, AuthCode: creds.AuthCode}
	out := make([]domain.MatchSummary, 0, maxSteps)
	code := startCode

	for step := 0; step < maxSteps; step++ {
		if step > 0 {
			if err := s.pause(ctx, s.cfg.Pause); err != nil {
				return out, err
			}
		}

		next, ok, err := s.client.NextCode(ctx, sc, code)
		if err != nil {
			return out, err
		}
		if !ok {
			// caught up with the newest match
			return out, nil
		}
		code = next

		sum, found, err := s.ResolveOne(ctx, next)
		if err != nil {
			return out, err
		}
		if !found {
			s.log.Debug().Str("share_code", next).Msg("replay expired, skipping")
			continue
		}
		out = append(out, sum)
	}

	return out, nil
}
