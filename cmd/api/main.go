package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/earnings"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/history"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/withdrawal"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/memory"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/notifier"
	timeProvider "github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(coreport.ParseLogLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Service stopped with error", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}
	appLogger.Info("Server exited gracefully", nil)
}

func run(cfg *config.Config, appLogger coreport.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp := timeProvider.NewRealTimeProvider()
	checks := map[string]handler.Pinger{}

	uow, closeStore, err := openStore(ctx, cfg, appLogger, tp, checks)
	if err != nil {
		return err
	}
	defer closeStore()

	hub, balanceNotifier, closeNotifier := openNotifier(cfg.Notifier, appLogger, tp, checks)
	defer closeNotifier()

	converter, err := entity.NewCoinConverter(cfg.Ledger.CoinsPerRupee)
	if err != nil {
		return fmt.Errorf("invalid coin conversion: %w", err)
	}
	refundPolicy, err := entity.ParseRefundPolicy(cfg.Ledger.RefundPolicy)
	if err != nil {
		return err
	}

	earningService := earnings.NewService(uow, balanceNotifier, tp, appLogger, cfg.Ledger.MaxCoinAmount)
	withdrawalService := withdrawal.NewService(uow, converter, balanceNotifier, tp, appLogger, withdrawal.Config{
		MinWithdrawalCoins: cfg.Ledger.MinWithdrawalCoins,
		MaxCoinAmount:      cfg.Ledger.MaxCoinAmount,
	})
	ledgerService := ledger.NewService(uow, earningService, withdrawalService, balanceNotifier, tp, appLogger, ledger.Config{
		MaxCoinAmount: cfg.Ledger.MaxCoinAmount,
		RefundPolicy:  refundPolicy,
	})
	historyService := history.NewService(uow, converter, tp, appLogger, history.Config{
		DefaultLimit: cfg.Ledger.HistoryDefaultLimit,
		MaxLimit:     cfg.Ledger.HistoryMaxLimit,
		Workers:      cfg.Reconciliation.Workers,
		PageSize:     cfg.Reconciliation.PageSize,
		RefundPolicy: refundPolicy,
	})
	accountService := account.NewService(uow, tp, appLogger)

	if cfg.Reconciliation.Interval > 0 {
		go runReconciliation(ctx, historyService, coreport.Duration(cfg.Reconciliation.Interval), appLogger)
	}

	var subscriber handler.Subscriber
	if hub != nil {
		subscriber = hub
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp, cfg.Server.AllowedOrigins)
	routes.SetupRoutes(router, routes.Handlers{
		Accounts:     handler.NewAccountHandler(accountService, historyService, subscriber, appLogger),
		Transactions: handler.NewTransactionHandler(ledgerService, earningService, withdrawalService, appLogger),
		Health:       handler.NewHealthHandler(checks, appLogger),
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":   server.Addr,
			"env":    cfg.Environment,
			"driver": cfg.Database.Driver,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...", nil)

	// Streams hold their request open until the hub closes them
	if hub != nil {
		hub.Close()
	}

	shutdownCtx, cancel := tp.WithTimeout(context.Background(), coreport.Duration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}
	return nil
}

// openStore returns the unit of work for the configured driver and registers its health check
func openStore(
	ctx context.Context,
	cfg *config.Config,
	appLogger coreport.Logger,
	tp coreport.TimeProvider,
	checks map[string]handler.Pinger,
) (persistence.UnitOfWork, func(), error) {
	unitTimeout := coreport.Duration(cfg.Ledger.UnitTimeout)

	if cfg.Database.Driver == "memory" {
		appLogger.Warn("Using the in-memory store; balances are lost on restart", nil)
		return memory.NewUnitOfWork(memory.NewStore(), unitTimeout, tp, appLogger), func() {}, nil
	}

	dbConfig := database.NewConfig(cfg.Database)
	if err := dbConfig.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := dbManager.Close(); err != nil {
			appLogger.Warn("Failed to close database", map[string]any{"error": err.Error()})
		}
	}

	if cfg.Database.AutoMigrate {
		if err := dbManager.Migrate(ctx); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	opts := database.DefaultUnitOptions()
	opts.Timeout = unitTimeout
	opts.MaxAttempts = uint64(cfg.Ledger.MaxAttempts)
	uow, err := dbManager.CreateUnitOfWork(opts)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	checks["database"] = dbManager
	return uow, closeDB, nil
}

// openNotifier builds the balance-change fan-out. The hub is nil when in-process streaming is off.
func openNotifier(
	cfg config.NotifierConfig,
	appLogger coreport.Logger,
	tp coreport.TimeProvider,
	checks map[string]handler.Pinger,
) (*notifier.Hub, coreport.BalanceNotifier, func()) {
	var (
		hub     *notifier.Hub
		targets notifier.Multi
		closers []func()
	)

	if cfg.Hub {
		hub = notifier.NewHub(cfg.HubBuffer, appLogger)
		targets = append(targets, hub)
	}

	if cfg.RedisEnabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		publisher := notifier.NewRedisPublisher(client, cfg.ChannelPrefix, coreport.Duration(cfg.PublishTimeout), tp, appLogger)
		targets = append(targets, publisher)
		checks["redis"] = publisher
		closers = append(closers, func() {
			if err := client.Close(); err != nil {
				appLogger.Warn("Failed to close redis client", map[string]any{"error": err.Error()})
			}
		})
	}

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	if len(targets) == 0 {
		return nil, nil, closeAll
	}
	return hub, targets, closeAll
}

// runReconciliation sweeps every account on each tick until ctx is done
func runReconciliation(ctx context.Context, svc *history.Service, interval coreport.Duration, appLogger coreport.Logger) {
	ticker := time.NewTicker(interval.Std())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reports, err := svc.ReconcileAll(ctx)
			if err != nil {
				appLogger.Error("Reconciliation sweep failed", map[string]any{"error": err.Error()})
				continue
			}
			for _, report := range reports {
				appLogger.Warn("Balance counters drifted from the ledger", map[string]any{
					"user_id": report.UserID,
					"drifts":  report.Drifts,
				})
			}
		}
	}
}
