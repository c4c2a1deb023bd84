package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"propdesk-be/internal/bootstrap"
	"propdesk-be/internal/config"
	"propdesk-be/internal/pkg/logger"
	"propdesk-be/internal/repository/memory"
	"propdesk-be/internal/repository/unitofwork"
	"propdesk-be/internal/server"
	"propdesk-be/internal/tracer"
	"propdesk-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Tracing (no-op unless an OTLP endpoint is configured)
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEndpoint, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Storage
	var uowFactory unitofwork.RepositoryFactory
	switch cfg.App.StoreDriver {
	case "memory":
		sysLogger.Warn("MAIN", "Using in-memory store, data is lost on restart", nil)
		uowFactory = memory.NewRepositoryFactory(memory.NewStore())
	default:
		gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		uowFactory = unitofwork.NewRepositoryFactory(gormDB)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(uowFactory, cfg, sysLogger)
	defer container.Close()

	// 5. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Panicf("Unable to start consumer: %v", err)
	}

	// 6. Run Server until interrupted
	srv := server.New(cfg, container)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		sysLogger.Info("MAIN", "Shutting down", nil)
		_ = srv.Shutdown()
	}()

	if err := srv.Run(); err != nil {
		sysLogger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err})
	}
}
