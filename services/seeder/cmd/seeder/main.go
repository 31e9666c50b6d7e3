package main

import (
	"context"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/example/animeswipe/internal/platform/analytics"
	"github.com/example/animeswipe/internal/platform/db"
	"github.com/example/animeswipe/internal/platform/logging"
	"github.com/example/animeswipe/internal/platform/natsconn"
	"github.com/example/animeswipe/internal/platform/run"
	seedcfg "github.com/example/animeswipe/services/seeder/internal/config"
	"github.com/example/animeswipe/services/seeder/internal/jikan"
	"github.com/example/animeswipe/services/seeder/internal/seed"
	"github.com/example/animeswipe/services/seeder/internal/store"
)

func main() {
	_ = godotenv.Load()

	log, err := logging.New("seeder", "info")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := seedcfg.Load()
	if err != nil {
		log.Error("load seeder config", zap.Error(err))
		run.Exit(1)
	}
	if cfg.LogLevel != "info" {
		if l, err := logging.New("seeder", cfg.LogLevel); err == nil {
			log = l
		}
	}
	if cfg.Elevated {
		log.Info("connecting with elevated seeding credentials")
	} else {
		log.Warn("SEED_DATABASE_URL not set, falling back to DATABASE_URL")
	}

	pool, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Error("open database", zap.Error(err))
		run.Exit(1)
	}
	defer pool.Close()

	var pub *analytics.Publisher
	if cfg.NATSURL != "" {
		nc, err := natsconn.Connect(natsconn.Options{URL: cfg.NATSURL})
		if err != nil {
			log.Warn("nats unavailable, analytics disabled", zap.Error(err))
		} else {
			defer nc.Close()
			if js, err := nc.JetStream(); err != nil {
				log.Warn("jetstream unavailable, analytics disabled", zap.Error(err))
			} else {
				pub = analytics.New(js, log)
			}
		}
	}

	var filter jikan.Filter
	if cfg.Filter == seedcfg.FilterTVSeries {
		filter = jikan.TVSeriesFilter
	}

	seeder := &seed.Seeder{
		Log: log,
		Pager: &jikan.Pager{
			Client: jikan.New(cfg.JikanBaseURL),
			Log:    log,
			Delay:  cfg.PageDelay,
			Filter: filter,
		},
		Store:     store.NewPostgresSeedStore(pool),
		Analytics: pub,
	}

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		_, err := seeder.Run(ctx)
		return err
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}
