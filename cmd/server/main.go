package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gitlab.tepseg.com/ai/lol-accounts/internal/cache"
	"gitlab.tepseg.com/ai/lol-accounts/internal/config"
	"gitlab.tepseg.com/ai/lol-accounts/internal/database"
	"gitlab.tepseg.com/ai/lol-accounts/internal/handler"
	"gitlab.tepseg.com/ai/lol-accounts/internal/jobs"
	"gitlab.tepseg.com/ai/lol-accounts/internal/middleware"
	"gitlab.tepseg.com/ai/lol-accounts/internal/repository"
	"gitlab.tepseg.com/ai/lol-accounts/internal/riot"
	"gitlab.tepseg.com/ai/lol-accounts/internal/service"
	"gitlab.tepseg.com/ai/lol-accounts/internal/util"
	"gitlab.tepseg.com/ai/lol-accounts/web"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("K_SERVICE") != "" || os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}
	cancel()
	log.Info().Msg("database connected")

	var lookupCache *cache.Cache
	if cfg.CacheEnabled() {
		lookupCache, err = cache.New(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer lookupCache.Close()
		log.Info().Msg("redis lookup cache connected")
	}

	cipher, err := util.NewCipher(cfg.SecretKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize credential cipher")
	}

	accountRepo := repository.NewAccountRepository(db.DB)
	statsRepo := repository.NewStatsRepository(db.DB)

	riotClient := riot.NewClient(cfg.RiotAPIKey, lookupCache)
	accountService := service.NewAccountService(accountRepo, riotClient, cipher)

	accountHandler := handler.NewAccountHandler(accountService)
	overviewHandler := handler.NewOverviewHandler(statsRepo)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(web.IndexHTML)
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/accounts", accountHandler.Routes())
		r.Get("/overview", overviewHandler.Overview)
	})

	refreshJob := jobs.NewRefreshJob(func(ctx context.Context) error {
		_, err := accountService.RefreshAll(ctx)
		return err
	}, cfg.RefreshInterval())
	refreshJob.Start()
	defer refreshJob.Stop()

	server := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: config.ServerReadTimeout,
		IdleTimeout: config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
