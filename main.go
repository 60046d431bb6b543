package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/yeremiapane/acai-pdv/config"
	"github.com/yeremiapane/acai-pdv/database"
	"github.com/yeremiapane/acai-pdv/kds"
	"github.com/yeremiapane/acai-pdv/metrics"
	"github.com/yeremiapane/acai-pdv/middlewares"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/router"
	"github.com/yeremiapane/acai-pdv/services"
	"github.com/yeremiapane/acai-pdv/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.InitLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	if cfg.App.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openSnapshotStore(ctx, cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open snapshot store: %v", err)
	}
	defer closeStore()

	loc, err := cfg.App.Location()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid TIMEZONE: %v", err)
	}
	ledger := services.NewLedger(services.WithLocation(loc))

	var seed func() models.LedgerSnapshot
	if cfg.App.SeedDemo {
		seed = func() models.LedgerSnapshot { return services.SeedSnapshot(time.Now()) }
	}
	persister := services.NewPersister(store, cfg.Snapshot.Name)
	if _, err := persister.Restore(ctx, ledger, seed); err != nil {
		utils.ErrorLogger.Fatalf("Failed to restore ledger: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	ledgerMetrics := metrics.NewLedgerMetrics(registry)
	hub := kds.NewHub()

	persister.Attach(ledger)
	ledger.Subscribe(services.HubListener(hub))
	ledger.Subscribe(services.MetricsListener(ledgerMetrics))
	ledger.Subscribe(services.LogListener())

	monitor := services.NewStockMonitor(ledger)
	monitor.OnLow = hub.BroadcastLowStock
	monitor.OnLevel = func(item models.StockItem) {
		ledgerMetrics.SetAvailablePots(item.ProductID, string(item.Size), item.AvailablePots)
	}
	monitor.Start()
	defer monitor.Stop()

	auth, err := services.NewAuthService(services.DefaultAccounts(), cfg.Auth.SharedPassword, cfg.Auth.Delay)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to init auth: %v", err)
	}
	jwt, err := utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to init jwt: %v", err)
	}

	r := router.SetupRouter(router.Dependencies{
		Ledger:       ledger,
		Auth:         auth,
		JWT:          jwt,
		Hub:          hub,
		Gatherer:     registry,
		RateLimiter:  middlewares.NewRateLimiter(50, 100),
		LoginLimiter: middlewares.NewRateLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst),
		CORSOrigin:   cfg.App.CORSOrigin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.WithError(err).Error("Server shutdown failed")
	}
	if err := persister.Save(shutdownCtx, ledger); err != nil {
		utils.ErrorLogger.WithError(err).Error("Final snapshot save failed")
	}
}

func openSnapshotStore(ctx context.Context, cfg *config.Config) (services.SnapshotStore, func(), error) {
	if cfg.Snapshot.Backend == config.SnapshotBackendRedis {
		client, err := database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		utils.InfoLogger.WithField("addr", cfg.Redis.Addr).Info("Using redis snapshot store")
		return database.NewRedisSnapshotStore(client, cfg.Redis.Prefix), func() { _ = client.Close() }, nil
	}

	db, err := config.InitDB(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return database.NewGormSnapshotStore(db), closeDB, nil
}
