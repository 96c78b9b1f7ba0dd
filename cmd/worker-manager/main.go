// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"vocational-workers/internal/catalog"
	"vocational-workers/internal/common/camunda"
	"vocational-workers/internal/common/config"
	"vocational-workers/internal/common/database"
	"vocational-workers/internal/common/logger"
	"vocational-workers/internal/common/observability"
	"vocational-workers/internal/engine"
	"vocational-workers/internal/engine/describe"
	gen "vocational-workers/internal/genai"
	"vocational-workers/internal/genai/gemini"
	"vocational-workers/internal/genai/groq"
	"vocational-workers/internal/repository"

	pr "vocational-workers/internal/workers/recommendation/process-recommendations"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Text-Generation Provider ---
	// A missing API key disables enrichment only; scoring keeps working with
	// baseline descriptions.
	generator := newTextGenerator(ctx, cfg, zapLog)

	// --- Build Recommendation Engine ---
	cat := catalog.Default()
	optionCacheTTL := time.Duration(cfg.Engine.OptionCacheTTL) * time.Second

	answerRepo := repository.NewAnswerRepository(pg.DB)
	optionRepo := repository.NewOptionRepository(pg.DB, redis.Client, optionCacheTTL)
	recommendationRepo := repository.NewRecommendationRepository(pg.DB)

	recommendationEngine := engine.New(engine.Dependencies{
		Answers:   answerRepo,
		Options:   optionRepo,
		Store:     recommendationRepo,
		Catalog:   cat,
		Describer: describe.NewGenerator(generator, log),
		TopN:      cfg.Engine.TopN,
		Logger:    log,
	})

	// --- Register Workers ---
	var workers []*camunda.CamundaWorker
	if wcfg := cfg.Workers[pr.TaskType]; wcfg.Enabled {
		handler := pr.NewHandler(
			&pr.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
				UseAI:   cfg.Engine.UseAI,
			},
			recommendationEngine,
			log,
		)
		workers = append(workers, camunda.NewWorker(
			camundaClient.GetClient(),
			pr.TaskType,
			wcfg.MaxJobsActive,
			time.Duration(wcfg.Timeout)*time.Millisecond,
			handler.Handle,
			zapLog,
		))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", pr.TaskType))
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Close()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// newTextGenerator builds the configured provider client, or nil when the
// provider has no API key.
func newTextGenerator(ctx context.Context, cfg *config.Config, log *zap.Logger) gen.TextGenerator {
	switch cfg.APIs.Provider {
	case "gemini":
		if cfg.APIs.Gemini.APIKey == "" {
			log.Warn("gemini api key missing, description enrichment disabled")
			return nil
		}
		client, err := gemini.NewClient(ctx, &gemini.Config{
			APIKey:  cfg.APIs.Gemini.APIKey,
			Model:   cfg.APIs.Gemini.Model,
			Timeout: time.Duration(cfg.APIs.Gemini.Timeout) * time.Millisecond,
		})
		if err != nil {
			log.Warn("gemini client init failed, description enrichment disabled", zap.Error(err))
			return nil
		}
		log.Info("gemini text-generation client initialized", zap.String("model", client.Model()))
		return client

	default:
		if cfg.APIs.Groq.APIKey == "" {
			log.Warn("groq api key missing, description enrichment disabled")
			return nil
		}
		client, err := groq.NewClient(&groq.Config{
			BaseURL:    cfg.APIs.Groq.BaseURL,
			APIKey:     cfg.APIs.Groq.APIKey,
			Model:      cfg.APIs.Groq.Model,
			Timeout:    time.Duration(cfg.APIs.Groq.Timeout) * time.Millisecond,
			MaxRetries: 2,
		})
		if err != nil {
			log.Warn("groq client init failed, description enrichment disabled", zap.Error(err))
			return nil
		}
		log.Info("groq text-generation client initialized")
		return client
	}
}

