package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hoteai/internal/adapters/gpt"
	server "hoteai/internal/adapters/http_server"
	"hoteai/internal/adapters/observability"
	redisad "hoteai/internal/adapters/redis"
	"hoteai/internal/app"
	"hoteai/internal/scheduler"
	"hoteai/internal/shared"
	mysqlrepo "hoteai/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	streams := observability.NewStreams(cfg.LogDir, log.Logger)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)

	oracle, err := gpt.New(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OracleTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize oracle client")
	}
	scoring := app.NewScoringService(repo, oracle, streams)

	// run a sweep now, then every interval; failures stay inside the runs
	sched := scheduler.New(scoring, cfg.SweepInterval, streams.System)
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, S: scoring})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
