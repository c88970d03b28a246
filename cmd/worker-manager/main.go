// cmd/worker-manager/main.go
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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	awsclients "finlight-engine/internal/common/aws"
	"finlight-engine/internal/common/camunda"
	"finlight-engine/internal/common/config"
	"finlight-engine/internal/common/database"
	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/common/observability"
	"finlight-engine/internal/culture"
	"finlight-engine/internal/eligibility"
	"finlight-engine/internal/engine"
	"finlight-engine/internal/genai"
	"finlight-engine/internal/intent"
	"finlight-engine/internal/nudge"
	"finlight-engine/internal/profile"
	"finlight-engine/internal/scoring"
	"finlight-engine/pkg/registry"

	// Conversation Workers (2)
	ci "finlight-engine/internal/workers/conversation/classify-intent"
	ga "finlight-engine/internal/workers/conversation/generate-advice"

	// Simulation Workers (1)
	rs "finlight-engine/internal/workers/simulation/run-simulation"

	// Insight Workers (2)
	cfs "finlight-engine/internal/workers/insights/calculate-financial-score"
	cse "finlight-engine/internal/workers/insights/check-scheme-eligibility"

	// Engagement Workers (1)
	dn "finlight-engine/internal/workers/engagement/deliver-nudge"
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
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("otel metrics unavailable, continuing without them", zap.Error(err))
		obs = observability.NewNoop()
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(cfg.Camunda)
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
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	redis := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Engine Collaborators ---
	tables := culture.Default()
	profiles := profile.NewStore(pg.DB, redis, cfg.Engine.CacheTTL(), log)

	generator, err := genai.New(ctx, cfg.APIs.GenAI, log)
	if err != nil {
		zapLog.Fatal("generative client init failed", zap.Error(err))
	}

	eng := engine.New(engine.Options{
		Tables:            tables,
		Detector:          intent.ScriptDetector{},
		Profiles:          profiles,
		Generator:         generator,
		GenerativeTimeout: config.GetDuration(cfg.Engine.GenerativeTimeout),
		Logger:            log,
	})

	// Left as nil interfaces when disabled so deliver-nudge skips the channel.
	var sesSender awsclients.EmailSender
	var snsPublisher awsclients.SMSPublisher
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		sesClient, snsClient, err := awsclients.NewMessagingClients(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Error("AWS messaging clients unavailable, nudges will not be delivered", zap.Error(err))
		} else {
			sesSender = sesClient
			snsPublisher = snsClient
		}
	}

	zapLog.Info("All engine collaborators initialized",
		zap.Bool("generative", generator != nil),
		zap.String("profileCacheTTL", cfg.Engine.CacheTTL().String()),
	)

	checkRegistry(cfg.Registry.Path, cfg, zapLog)

	// --- START: Register ALL 6 Workers ---
	client := zeebe.GetClient()
	var workers []*camunda.CamundaWorker
	start := func(taskType string, handler camunda.JobHandler) {
		w := camunda.StartWorker(client, taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, log)
		if w != nil {
			workers = append(workers, w)
		}
	}
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	// --- 1. Conversation Workers (2) ---
	if config.IsWorkerEnabled(cfg, ci.TaskType) {
		wc := ci.LoadConfig()
		wc.Timeout = timeout(ci.TaskType)
		start(ci.TaskType, ci.NewHandler(wc, eng, log))
	}

	if config.IsWorkerEnabled(cfg, ga.TaskType) {
		wc := ga.LoadConfig()
		wc.Timeout = timeout(ga.TaskType)
		start(ga.TaskType, ga.NewHandler(wc, eng, log))
	}

	// --- 2. Simulation Workers (1) ---
	if config.IsWorkerEnabled(cfg, rs.TaskType) {
		wc := rs.LoadConfig()
		wc.Timeout = timeout(rs.TaskType)
		start(rs.TaskType, rs.NewHandler(wc, eng, profiles, log))
	}

	// --- 3. Insight Workers (2) ---
	if config.IsWorkerEnabled(cfg, cfs.TaskType) {
		wc := cfs.LoadConfig()
		wc.Timeout = timeout(cfs.TaskType)
		start(cfs.TaskType, cfs.NewHandler(wc, scoring.NewCalculator(nil), profiles, log))
	}

	if config.IsWorkerEnabled(cfg, cse.TaskType) {
		wc := cse.LoadConfig()
		wc.Timeout = timeout(cse.TaskType)
		start(cse.TaskType, cse.NewHandler(wc, eligibility.NewChecker(tables), profiles, log))
	}

	// --- 4. Engagement Workers (1) ---
	if config.IsWorkerEnabled(cfg, dn.TaskType) {
		wc := dn.LoadConfig()
		wc.Timeout = timeout(dn.TaskType)
		wc.EmailEnabled = cfg.Notifications.Email.Enabled
		wc.SMSEnabled = cfg.Notifications.SMS.Enabled
		if cfg.Notifications.Email.FromEmail != "" {
			wc.FromEmail = cfg.Notifications.Email.FromEmail
		}
		start(dn.TaskType, dn.NewHandler(wc, nudge.NewGenerator(tables), profiles, sesSender, snsPublisher, log))
	}

	zapLog.Info("Workers registered", zap.Int("running", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}
		code := http.StatusOK
		for name, check := range map[string]func(context.Context) error{
			"zeebe":    zeebe.HealthCheck,
			"postgres": pg.Ping,
			"redis":    redis.Ping,
		} {
			checks[name] = "ok"
			if err := check(r.Context()); err != nil {
				checks[name] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		status := "ready"
		if code != http.StatusOK {
			status = "not_ready"
		}
		writeStatus(w, code, map[string]interface{}{
			"status": status,
			"checks": checks,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.HealthPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down observability", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// checkRegistry warns about enabled workers the activity registry does not
// describe. A missing registry is not fatal.
func checkRegistry(path string, cfg *config.Config, log *zap.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	if err := reg.Validate(); err != nil {
		log.Warn("activity registry invalid", zap.String("path", path), zap.Error(err))
		return
	}

	var enabled []string
	for taskType := range cfg.Workers {
		if config.IsWorkerEnabled(cfg, taskType) {
			enabled = append(enabled, taskType)
		}
	}
	for _, taskType := range reg.Missing(enabled) {
		log.Warn("enabled worker has no registry entry", zap.String("taskType", taskType))
	}
}

func writeStatus(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
