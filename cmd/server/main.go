package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"visapath/internal/audit"
	"visapath/internal/checklist"
	checklisthandler "visapath/internal/checklist/handler"
	checklistmetrics "visapath/internal/checklist/metrics"
	"visapath/internal/condition"
	"visapath/internal/destination"
	"visapath/internal/explanation"
	explanationhandler "visapath/internal/explanation/handler"
	"visapath/internal/jwtauth"
	"visapath/internal/platform/config"
	"visapath/internal/platform/httpserver"
	"visapath/internal/platform/logger"
	platformredis "visapath/internal/platform/redis"
	"visapath/internal/ruleset"
	rulesethandler "visapath/internal/ruleset/handler"
	rulesetmetrics "visapath/internal/ruleset/metrics"
	"visapath/internal/ruleset/store/memory"
	"visapath/internal/ruleset/store/postgres"
	httptransport "visapath/internal/transport/http"
)

// main wires collaborators and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var store ruleset.Store
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(bootCtx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = postgres.New(db)
		log.Info("rule set store: postgres")
	} else {
		store = memory.New()
		log.Info("rule set store: in-memory")
	}

	var sink audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(bootCtx, cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("kafka audit sink failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("audit sink: kafka", "topic", cfg.AuditTopic)
	} else {
		sink = audit.NewInMemoryStore()
		log.Info("audit sink: in-memory")
	}

	auditInbox := make(chan audit.Event, 256)
	worker := audit.NewWorker(sink, auditInbox)
	go func() {
		if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	var explanations explanationhandler.Store
	if cfg.RedisURL != "" {
		redisClient, err := platformredis.New(bootCtx, cfg.RedisURL)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		explanations = explanation.NewCache(redisClient.Client, cfg.ExplanationTTL)
		log.Info("explanation cache: redis", "ttl", cfg.ExplanationTTL)
	}

	evaluator := condition.NewEvaluator()
	catalog := destination.NewStaticCatalog()
	tokens := jwtauth.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	rulesetService := ruleset.NewService(store, audit.NewPublisher(sink), rulesetmetrics.New(), log)
	checklistService := checklist.NewService(
		rulesetService, catalog, evaluator, auditInbox, checklistmetrics.New(), log,
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Checklist:    checklisthandler.New(checklistService, log),
		RuleSets:     rulesethandler.New(rulesetService, log),
		Explanations: explanationhandler.New(explanations, log),
		Tokens:       tokens,
		Logger:       log,
	})
	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
