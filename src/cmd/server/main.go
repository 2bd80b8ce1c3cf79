package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/api-sage/account-ledger/src/internal/adapter/http/controller"
	"github.com/api-sage/account-ledger/src/internal/adapter/http/middleware"
	"github.com/api-sage/account-ledger/src/internal/adapter/http/router"
	"github.com/api-sage/account-ledger/src/internal/adapter/repository/implementations"
	"github.com/api-sage/account-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/account-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-ledger/src/internal/config"
	"github.com/api-sage/account-ledger/src/internal/events"
	"github.com/api-sage/account-ledger/src/internal/metrics"
	"github.com/api-sage/account-ledger/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var accountRepo repo_interfaces.AccountRepository
	var movementRepo repo_interfaces.MovementRepository

	switch cfg.StorageDriver {
	case "memory":
		store := memory.NewAccountRepository()
		accountRepo = store
		movementRepo = memory.NewMovementRepository(store)
		log.Println("using in-memory storage")
	default:
		db, err := implementations.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()

		if err := implementations.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
			log.Fatalf("run migrations: %v", err)
		}

		accountRepo = implementations.NewAccountRepository(db)
		movementRepo = implementations.NewMovementRepository(db)
	}

	var publisher *events.Publisher
	if cfg.RedisAddr != "" {
		redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		publisher = events.NewPublisher(redisClient, cfg.MovementStream)
	}

	collector := metrics.NewCollector()
	locks := services.NewAccountLocks()

	accountService := services.NewAccountService(accountRepo, locks, publisher)
	movementService := services.NewMovementService(accountRepo, movementRepo, locks, collector, publisher)

	mux := router.New(
		controller.NewAccountController(accountService),
		controller.NewMovementController(movementService),
		collector.Handler(),
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKeyHash),
	)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
