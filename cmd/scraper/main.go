package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hoteai/internal/adapters/booking"
	"hoteai/internal/adapters/observability"
	redisad "hoteai/internal/adapters/redis"
	"hoteai/internal/app"
	"hoteai/internal/shared"
	mysqlrepo "hoteai/internal/storage/mysql"
)

func main() {
	hotelHint := flag.String("hotel", "", "hotel name hint; overrides the name derived from the page")
	htmlFile := flag.String("file", "", "ingest a saved page instead of fetching (for JS-rendered pages)")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	urls := flag.Args()
	if *htmlFile == "" && len(urls) == 0 {
		log.Fatal().Msg("usage: scraper [-hotel name] <url>... | scraper -file page.html [-hotel name]")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	fetcher := booking.NewFetcher(cfg.FetchRPS, cfg.FetchTimeout)
	ing := app.NewIngestService(fetcher, booking.NewExtractor(), repo, cache,
		app.IngestDefaults{Location: cfg.HotelLocation, ChainID: cfg.ChainID})

	if *htmlFile != "" {
		html, err := os.ReadFile(*htmlFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", *htmlFile).Msg("read page file failed")
		}
		stats, err := ing.IngestHTML(ctx, string(html), *hotelHint)
		if err != nil {
			log.Fatal().Err(err).Msg("ingest failed")
		}
		log.Info().Int("total", stats.Total).Int("upserted", stats.Upserted).Int("failed", stats.Failed).
			Msg("ingestion completed")
		return
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, u := range urls {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			defer sem.Release(1)

			stats, err := ing.IngestURL(ctx, url, *hotelHint)
			if err != nil {
				log.Warn().Str("url", url).Err(err).Msg("ingest failed")
				return
			}
			log.Info().Str("url", url).
				Int("total", stats.Total).Int("upserted", stats.Upserted).Int("failed", stats.Failed).
				Msg("ingest ok")
		}(u)
	}

	wg.Wait()
	log.Info().Msg("scrape run completed")
}
