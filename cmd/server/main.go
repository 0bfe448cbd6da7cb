package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/zenithhr/procurement-workflow/internal/application/dispatcher"
	"github.com/zenithhr/procurement-workflow/internal/application/service"
	"github.com/zenithhr/procurement-workflow/internal/application/workflow"
	"github.com/zenithhr/procurement-workflow/internal/config"
	"github.com/zenithhr/procurement-workflow/internal/domain/policy"
	"github.com/zenithhr/procurement-workflow/internal/domain/stage"
	"github.com/zenithhr/procurement-workflow/internal/infrastructure/persistence/repository"
	httpserver "github.com/zenithhr/procurement-workflow/internal/interfaces/http"
	"github.com/zenithhr/procurement-workflow/pkg/database"
	"github.com/zenithhr/procurement-workflow/pkg/utils"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting procurement workflow service",
		zap.Int("port", cfg.Server.Port),
		zap.Int64("top_approval_threshold_cents", cfg.Workflow.TopApprovalThresholdCents))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	kvLogger := utils.NewKVLogger(logger)

	store := repository.NewRequestRepository(db, logger)
	registry := stage.NewPurchaseRegistry()
	approvalPolicy := policy.New(cfg.Workflow.TopApprovalThresholdCents)

	eventDispatcher := dispatcher.New(dispatcher.WithLogger(kvLogger))
	defer eventDispatcher.Close()

	engine := workflow.NewEngine(store, registry, approvalPolicy,
		workflow.WithDispatcher(eventDispatcher),
		workflow.WithMaxAttempts(cfg.Workflow.MaxTransitionRetries),
		workflow.WithCommitTimeout(cfg.Workflow.CommitTimeout),
	)

	requestService := service.NewRequestService(store, approvalPolicy, eventDispatcher, kvLogger)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, requestService, engine, kvLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Service stopped")
}
