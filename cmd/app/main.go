package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voiceclone-backend/internal/config"
	"voiceclone-backend/internal/domain/ports/adapter"
	synthAdapters "voiceclone-backend/internal/infra/adapters/synthesis"
	pg "voiceclone-backend/internal/infra/db/postgres"
	"voiceclone-backend/internal/infra/logging"
	"voiceclone-backend/internal/infra/metrics"
	red "voiceclone-backend/internal/infra/redis"
	"voiceclone-backend/internal/infra/storage"
	"voiceclone-backend/internal/infra/web"
	"voiceclone-backend/internal/infra/worker"
	"voiceclone-backend/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (fake synthesis engine)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	tm := pg.NewTxManager(pool)

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	accountRepo := pg.NewAccountRepo(pool)
	adminRepo := pg.NewAdminRepo(pool)
	planRepo := pg.NewPlanRepoCacheDecorator(pg.NewPlanRepo(pool), redisClient, cfg.Redis.TTL)
	orderRepo := pg.NewOrderRepo(pool)
	voiceRepo := pg.NewVoiceRepo(pool)
	jobRepo := pg.NewGenerationJobRepo(pool)
	creditRepo := pg.NewCreditTransactionRepo(pool)
	paymentRepo := pg.NewPaymentAccountRepo(pool)

	// ---- Sample storage ----
	store, err := storage.NewS3Store(ctx, &cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("sample storage")
	}

	// ---- Synthesis engine ----
	var synth adapter.SpeechSynthesizer
	if cfg.Runtime.Dev && cfg.Synthesis.BaseURL == "" {
		synth = synthAdapters.NewNoopAdapter()
		logger.Info().Msg("synthesis: noop adapter (dev)")
	} else {
		synth = synthAdapters.NewXTTSAdapter(cfg.Synthesis.BaseURL, cfg.Synthesis.Timeout)
		logger.Info().Str("base_url", cfg.Synthesis.BaseURL).Msg("synthesis: xtts adapter")
	}

	// ---- Use cases ----
	ledgerUC := usecase.NewLedgerUseCase(accountRepo, creditRepo, tm, logging.Component(logger, "ledger"))
	authUC := usecase.NewAuthUseCase(accountRepo, adminRepo, tm, cfg.Auth.AdminSecret, logging.Component(logger, "auth"))
	accountUC := usecase.NewAccountUseCase(accountRepo, creditRepo, voiceRepo, tm, logging.Component(logger, "account"))
	planUC := usecase.NewPlanUseCase(planRepo, logging.Component(logger, "plan"))
	orderUC := usecase.NewOrderUseCase(orderRepo, planRepo, accountRepo, ledgerUC, tm, logging.Component(logger, "order"))
	voiceUC := usecase.NewVoiceUseCase(voiceRepo, ledgerUC, store, logging.Component(logger, "voice"))
	genUC := usecase.NewGenerationUseCase(jobRepo, voiceUC, ledgerUC, tm, logging.Component(logger, "generation"))
	paymentUC := usecase.NewPaymentAccountUseCase(paymentRepo, logging.Component(logger, "payment"))
	statsUC := usecase.NewStatsUseCase(accountRepo, orderRepo, creditRepo, jobRepo, synth, logging.Component(logger, "stats"))

	// ---- Generation worker ----
	workerPool := worker.NewPool(cfg.Synthesis.Workers)
	workerPool.Start(ctx)
	defer workerPool.Stop()

	processor := worker.NewSynthesisProcessor(jobRepo, ledgerUC, synth,
		cfg.Synthesis.Timeout, cfg.Synthesis.PollInterval, logging.Component(logger, "processor"))
	go processor.Start(ctx, workerPool)

	// ---- HTTP server ----
	jwtMgr := web.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	srv := web.NewServer(authUC, accountUC, planUC, orderUC, voiceUC, genUC,
		paymentUC, statsUC, ledgerUC, jwtMgr, rateLimiter, cfg.Limits,
		logging.Component(logger, "web"))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
