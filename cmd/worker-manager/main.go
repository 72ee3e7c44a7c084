// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"thenetwork-workers/internal/common/camunda"
	"thenetwork-workers/internal/common/config"
	"thenetwork-workers/internal/common/database"
	"thenetwork-workers/internal/common/events"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/common/observability"
	"thenetwork-workers/internal/common/validation"
	"thenetwork-workers/internal/common/yelp"
	"thenetwork-workers/internal/store"

	// Compatibility Workers (2)
	cc "thenetwork-workers/internal/workers/compatibility/calculate-compatibility"
	rc "thenetwork-workers/internal/workers/compatibility/rank-connections"

	// Venue Workers (3)
	luv "thenetwork-workers/internal/workers/venues/lookup-used-venues"
	sv "thenetwork-workers/internal/workers/venues/search-venues"
	slv "thenetwork-workers/internal/workers/venues/select-venue"

	// Planning Workers (3)
	gpt "thenetwork-workers/internal/workers/planning/generate-plan-title"
	grp "thenetwork-workers/internal/workers/planning/generate-ready-plan"
	gtw "thenetwork-workers/internal/workers/planning/generate-time-windows"

	// Party Workers (1)
	fap "thenetwork-workers/internal/workers/parties/friends-attending-party"
)

var connectRetry = &camunda.RetryConfig{
	MaxRetries: 15,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	log.Info("starting worker manager", map[string]interface{}{"environment": cfg.App.Environment})

	obs, err := observability.New(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Zeebe ---
	zeebe, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	log.Info("zeebe client connected", nil)

	// --- PostgreSQL ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres init failed", zap.Error(err))
	}
	defer pg.Close()
	if err := camunda.Retry(ctx, connectRetry, log, "postgres connection", pg.Ping); err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	log.Info("postgres connected", nil)

	// --- Redis ---
	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Fatal("redis init failed", zap.Error(err))
	}
	defer rdb.Close()
	if err := camunda.Retry(ctx, connectRetry, log, "redis connection", rdb.Ping); err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	log.Info("redis connected", nil)

	// --- Elasticsearch venue catalog (optional) ---
	var (
		catalogWriter sv.CatalogWriter
		catalogReader grp.CatalogReader
	)
	if cfg.Database.Elasticsearch.Enabled() {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Fatal("elasticsearch init failed", zap.Error(err))
		}
		index := cfg.Database.Elasticsearch.VenueIndex
		err = camunda.Retry(ctx, connectRetry, log, "elasticsearch connection", func(ctx context.Context) error {
			if err := es.Ping(ctx); err != nil {
				return err
			}
			return es.EnsureIndex(ctx, index, store.CatalogMapping)
		})
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		catalog := store.NewCatalog(es.Client, index, log)
		catalogWriter, catalogReader = catalog, catalog
		log.Info("venue catalog enabled", map[string]interface{}{"index": index})
	}

	// --- Plan events (optional) ---
	var planEvents grp.EventPublisher
	if cfg.Events.SNS.Enabled {
		publisher, err := events.NewSNSPublisher(ctx, cfg.Events.SNS.Region, cfg.Events.SNS.PlanTopicARN, log)
		if err != nil {
			zapLog.Fatal("sns publisher init failed", zap.Error(err))
		}
		planEvents = publisher
		log.Info("plan events enabled", map[string]interface{}{"topic": cfg.Events.SNS.PlanTopicARN})
	}

	validator, err := validation.Load(cfg.RegistryPath)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}

	// --- Stores & clients ---
	profiles := store.NewProfiles(pg.DB, rdb.Client, config.Seconds(cfg.Planning.EmbeddingCacheTTL), log)
	embeddings := store.NewEmbeddings(pg.DB, rdb.Client, config.Seconds(cfg.Planning.EmbeddingCacheTTL), log)
	history := store.NewPlanHistory(pg.DB, log)
	parties := store.NewPartyResolver(pg.DB, rdb.Client, config.Seconds(cfg.Parties.CacheTTL), log)
	yelpClient := yelp.NewClient(cfg.APIs.Yelp, log)

	// --- Workers ---
	client := zeebe.GetClient()
	var workers []worker.JobWorker
	start := func(taskType string, handler worker.JobHandler) {
		if w := camunda.StartWorker(client, taskType, config.GetWorkerConfig(cfg, taskType), handler, log); w != nil {
			workers = append(workers, w)
		}
	}

	start(cc.TaskType, cc.NewHandler(cc.LoadConfig(cfg), profiles, embeddings, validator, obs, log).Handle)
	start(rc.TaskType, rc.NewHandler(rc.LoadConfig(cfg), profiles, embeddings, validator, obs, log).Handle)

	search := sv.NewHandler(sv.LoadConfig(cfg), yelpClient, rdb.Client, catalogWriter, validator, obs, log)
	start(sv.TaskType, search.Handle)
	start(slv.TaskType, slv.NewHandler(slv.LoadConfig(cfg), validator, obs, log).Handle)
	start(luv.TaskType, luv.NewHandler(luv.LoadConfig(cfg), history, validator, obs, log).Handle)

	windowsCfg, err := gtw.LoadConfig(cfg)
	if err != nil {
		zapLog.Fatal("time windows config invalid", zap.Error(err))
	}
	start(gtw.TaskType, gtw.NewHandler(windowsCfg, validator, obs, log).Handle)
	start(gpt.TaskType, gpt.NewHandler(gpt.LoadConfig(cfg), validator, obs, log).Handle)

	planCfg, err := grp.LoadConfig(cfg)
	if err != nil {
		zapLog.Fatal("ready plan config invalid", zap.Error(err))
	}
	start(grp.TaskType, grp.NewHandler(planCfg, grp.Deps{
		Profiles:   profiles,
		Embeddings: embeddings,
		History:    history,
		Venues:     search,
		Catalog:    catalogReader,
		Events:     planEvents,
	}, validator, obs, log).Handle)

	start(fap.TaskType, fap.NewHandler(fap.LoadConfig(cfg), parties, validator, obs, log).Handle)

	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		failed := map[string]string{}
		if err := pg.Ping(checkCtx); err != nil {
			failed["postgres"] = err.Error()
		}
		if err := rdb.Ping(checkCtx); err != nil {
			failed["redis"] = err.Error()
		}
		if err := zeebe.HealthCheck(checkCtx); err != nil {
			failed["zeebe"] = err.Error()
		}
		if len(failed) > 0 {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", failed)
			return
		}
		writeStatus(w, http.StatusOK, "ready", nil)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.App.HTTPAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"address": server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("shutdown signal received, stopping workers", nil)

	for _, w := range workers {
		w.Close()
	}
	for _, w := range workers {
		w.AwaitClose()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("health/metrics server shutdown failed", map[string]interface{}{"error": err})
	}

	log.Info("worker manager stopped", nil)
}

func writeStatus(w http.ResponseWriter, code int, status string, failed map[string]string) {
	body := map[string]interface{}{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if len(failed) > 0 {
		body["failed"] = failed
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
