package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"

	"demovault/internal/adapters/queue"
	"demovault/internal/platform/config"
	"demovault/internal/platform/logger"
	"demovault/internal/platform/store"
	demorepo "demovault/internal/services/demos/repo"
	sweepsvc "demovault/internal/services/sweeper/service"
)

func main() {
	_ = godotenv.Load()

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	swCfg := root.Prefix("SWEEPER_")
	dmCfg := root.Prefix("DEMOS_")

	l := logger.Named("sweeper")

	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:  true,
				URL:      pgCfg.MustString("DBURL"),
				MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 2)),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	jobs := queue.New(queue.Options{
		Addr:     dmCfg.MayString("REDIS_ADDR", "localhost:6379"),
		Password: dmCfg.MayString("REDIS_PASSWORD", ""),
		DB:       dmCfg.MayInt("REDIS_DB", 0),
		Key:      dmCfg.MayString("QUEUE_KEY", ""),
	})
	defer jobs.Close()

	svc := sweepsvc.New(st.PG, demorepo.NewPG(), jobs, sweepsvc.Options{
		Grace: swCfg.MayDuration("GRACE", 5*time.Minute),
		Batch: swCfg.MayInt("BATCH", 100),
		Dir:   dmCfg.MayString("DIR", "demos"),
	})

	interval := swCfg.MayDuration("INTERVAL", time.Minute)

	sched, err := gocron.NewScheduler()
	if err != nil {
		l.Panic().Err(err).Msg("scheduler init failed")
	}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			if _, err := svc.Sweep(ctx); err != nil {
				l.Warn().Err(err).Msg("sweep pass failed")
			}
		}),
	)
	if err != nil {
		l.Panic().Err(err).Msg("scheduler job failed")
	}

	sched.Start()
	l.Info().Dur("interval", interval).Msg("sweeper running")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if err := sched.Shutdown(); err != nil {
		l.Error().Err(err).Msg("scheduler shutdown failed")
	}
}
