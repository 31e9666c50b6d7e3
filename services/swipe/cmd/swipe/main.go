package main

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/example/animeswipe/internal/platform/analytics"
	"github.com/example/animeswipe/internal/platform/auth"
	"github.com/example/animeswipe/internal/platform/db"
	"github.com/example/animeswipe/internal/platform/httpserver"
	"github.com/example/animeswipe/internal/platform/logging"
	"github.com/example/animeswipe/internal/platform/natsconn"
	"github.com/example/animeswipe/internal/platform/run"
	"github.com/example/animeswipe/services/swipe/internal/accounts"
	swipecfg "github.com/example/animeswipe/services/swipe/internal/config"
	"github.com/example/animeswipe/services/swipe/internal/handlers"
	"github.com/example/animeswipe/services/swipe/internal/store"
)

func main() {
	_ = godotenv.Load()

	log, err := logging.New("swipe", "info")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := swipecfg.Load()
	if err != nil {
		log.Error("load config", zap.Error(err))
		run.Exit(1)
	}
	if cfg.LogLevel != "info" {
		if l, err := logging.New("swipe", cfg.LogLevel); err == nil {
			log = l
		}
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

	users := accounts.PostgresStore{DB: pool}
	tokens := accounts.TokenService{Secret: cfg.JWTSecret, AccessTokenTTL: cfg.AccessTokenTTL}
	verifier := auth.JWTVerifier{Secret: cfg.JWTSecret}
	swipes := store.NewPostgresStore(pool)

	r := chi.NewRouter()
	httpserver.SetupRouter(r)

	r.Post("/v1/auth/register", handlers.Register(users, tokens, pub))
	r.Post("/v1/auth/login", handlers.Login(users, tokens, pub))

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))
		r.Get("/v1/deck", handlers.GetDeck(swipes))
		r.Post("/v1/swipes", handlers.RecordSwipe(swipes, pub))
		r.Delete("/v1/swipes/last", handlers.UndoSwipe(swipes, pub))
		r.Get("/v1/me/likes", handlers.ListLikes(swipes))
	})

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTPAddr, Logger: log, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}
