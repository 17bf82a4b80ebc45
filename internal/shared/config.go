package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv    string
	HTTPAddr  string
	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string

	OpenAIKey     string
	OpenAIModel   string
	OracleTimeout time.Duration
	SweepInterval time.Duration

	FetchRPS     int
	FetchTimeout time.Duration

	LogDir   string
	CacheTTL time.Duration
	Workers  int

	// Defaults applied to hotels created on first sight.
	HotelLocation string
	ChainID       int64
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":4000"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hoteai?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		OpenAIKey:     env("OPENAI_API_KEY", ""),
		OpenAIModel:   env("OPENAI_MODEL", ""),
		OracleTimeout: time.Duration(atoi("ORACLE_TIMEOUT_SECONDS", 60)) * time.Second,
		SweepInterval: time.Duration(atoi("SWEEP_INTERVAL_MINUTES", 10)) * time.Minute,
		FetchRPS:      atoi("FETCH_RPS", 2),
		FetchTimeout:  time.Duration(atoi("FETCH_TIMEOUT_SECONDS", 45)) * time.Second,
		LogDir:        env("LOG_DIR", "logs"),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		Workers:       atoi("SCRAPE_WORKERS", 4),
		HotelLocation: env("DEFAULT_HOTEL_LOCATION", "Jerusalem, Israel"),
		ChainID:       int64(atoi("DEFAULT_CHAIN_ID", 1)),
	}
	if c.OpenAIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is empty; scoring sweeps will fail")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
