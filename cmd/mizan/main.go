package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mizan-legal/mizan/internal/config"
	dbRedis "github.com/mizan-legal/mizan/internal/db/redis"
	"github.com/mizan-legal/mizan/internal/domain"
	logpkg "github.com/mizan-legal/mizan/internal/logger"
	"github.com/mizan-legal/mizan/internal/metrics"
	"github.com/mizan-legal/mizan/internal/repository/corpus"
	"github.com/mizan-legal/mizan/internal/source"
	"github.com/mizan-legal/mizan/internal/source/court"
	"github.com/mizan-legal/mizan/internal/source/gazette"
	"github.com/mizan-legal/mizan/internal/source/legislation"
	"github.com/mizan-legal/mizan/internal/source/research"
	chiTransport "github.com/mizan-legal/mizan/internal/transport/chi"
	"github.com/mizan-legal/mizan/internal/transport/openai"
	fetchuc "github.com/mizan-legal/mizan/internal/usecase/fetch"
	healthuc "github.com/mizan-legal/mizan/internal/usecase/health"
	"github.com/mizan-legal/mizan/internal/usecase/queryproc"
	"github.com/mizan-legal/mizan/internal/usecase/ranking"
	searchuc "github.com/mizan-legal/mizan/internal/usecase/search"
	"github.com/mizan-legal/mizan/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting mizan search server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create corpus store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Corpus store not ready", zap.Error(err))
	}
	logger.Info("Connected to corpus store")

	metrics.RegisterSourceMetrics()

	corpusRepo := corpus.New(store, cfg.Database.KeyPrefix)
	if err := corpusRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure corpus index", zap.Error(err))
	}

	// Optional best-effort summarization
	var summarizer domain.Summarizer
	var enrichmentCheck healthuc.EnrichmentChecker
	if cfg.Enrichment.Enabled {
		s := openai.NewSummarizer(&openai.Config{
			APIKey:  cfg.Enrichment.APIKey,
			BaseURL: cfg.Enrichment.BaseURL,
			Model:   cfg.Enrichment.Model,
			Logger:  logger,
		})
		summarizer = s
		enrichmentCheck = s
		logger.Info("Enrichment enabled", zap.String("model", cfg.Enrichment.Model))
	}

	adapters := buildAdapters(cfg, corpusRepo, summarizer, logger)

	orchestrator, err := fetchuc.New(adapters, maxSourceTimeout(cfg.Sources), logger)
	if err != nil {
		logger.Fatal("Failed to create fetch orchestrator", zap.Error(err))
	}
	defer orchestrator.Release()

	engine := searchuc.New(queryproc.New(), orchestrator, ranking.NewScorer())
	healthSvc := healthuc.New(store, enrichmentCheck)

	server := chiTransport.NewServer(engine, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildAdapters registers all document sources. The legislation corpus
// is local (redis full-text), the other three are remote HTTP APIs.
func buildAdapters(
	cfg config.Config,
	corpusRepo *corpus.Repo,
	summarizer domain.Summarizer,
	logger *zap.Logger,
) []source.Adapter {
	topN := cfg.Enrichment.TopN

	leg := legislation.New(corpusRepo, cfg.Sources.Legislation.MaxCandidates, logger)
	if summarizer != nil {
		leg = leg.WithSummarizer(summarizer, topN)
	}

	adapters := []source.Adapter{leg}

	if cfg.Sources.Judgments.BaseURL != "" {
		a := court.New(
			cfg.Sources.Judgments.BaseURL,
			time.Duration(cfg.Sources.Judgments.TimeoutSec)*time.Second,
			cfg.Sources.Judgments.MaxCandidates,
			logger,
		)
		if summarizer != nil {
			a = a.WithSummarizer(summarizer, topN)
		}
		adapters = append(adapters, a)
	}

	if cfg.Sources.Gazette.BaseURL != "" {
		a := gazette.New(
			cfg.Sources.Gazette.BaseURL,
			time.Duration(cfg.Sources.Gazette.TimeoutSec)*time.Second,
			cfg.Sources.Gazette.MaxCandidates,
			logger,
		)
		if summarizer != nil {
			a = a.WithSummarizer(summarizer, topN)
		}
		adapters = append(adapters, a)
	}

	if cfg.Sources.Research.BaseURL != "" {
		a := research.New(
			cfg.Sources.Research.BaseURL,
			time.Duration(cfg.Sources.Research.TimeoutSec)*time.Second,
			cfg.Sources.Research.MaxCandidates,
			logger,
		)
		if summarizer != nil {
			a = a.WithSummarizer(summarizer, topN)
		}
		adapters = append(adapters, a)
	}

	return adapters
}

// maxSourceTimeout returns the largest configured source timeout so the
// orchestrator deadline never cuts off a source before its own client does.
func maxSourceTimeout(s config.SourcesConfig) time.Duration {
	longest := 0
	for _, sec := range []int{
		s.Legislation.TimeoutSec, s.Judgments.TimeoutSec,
		s.Gazette.TimeoutSec, s.Research.TimeoutSec,
	} {
		if sec > longest {
			longest = sec
		}
	}
	return time.Duration(longest) * time.Second
}

// jsonRecoverer is a recovery middleware that returns the JSON error
// envelope instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"status": "error",
						"error":  "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
