package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/hrworks/appraisal-engine/internal/application/service"
	"github.com/hrworks/appraisal-engine/internal/config"
	"github.com/hrworks/appraisal-engine/internal/domain/chain"
	"github.com/hrworks/appraisal-engine/internal/email"
	"github.com/hrworks/appraisal-engine/internal/infrastructure/persistence/repository"
	"github.com/hrworks/appraisal-engine/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/hrworks/appraisal-engine/internal/interfaces/http"
	"github.com/hrworks/appraisal-engine/internal/report"
	"github.com/hrworks/appraisal-engine/pkg/database"
	"github.com/hrworks/appraisal-engine/pkg/utils"
)

func main() {
	_ = gotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting appraisal approval engine")

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	txDB := sqlite.NewDB(db.DB, logger)

	employeeRepo := repository.NewEmployeeRepository(db.DB, logger)
	positionRepo := repository.NewPositionRepository(db.DB, logger)
	departmentRepo := repository.NewDepartmentRepository(db.DB, logger)
	overrideRepo := repository.NewOverrideRepository(db.DB, logger)
	appraisalRepo := repository.NewAppraisalRepository(db.DB, logger)
	stepRepo := repository.NewApprovalStepRepository(db.DB, logger)
	logRepo := repository.NewApprovalLogRepository(db.DB, logger)

	notifier := email.NewSender(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		FromName: cfg.SMTP.FromName,
		From:     cfg.SMTP.From,
		BaseURL:  cfg.SMTP.BaseURL,
		Disabled: cfg.SMTP.Disabled,
	}, appraisalRepo, stepRepo, employeeRepo, logger)

	serviceLogger := utils.NewSugarAdapter(logger)

	auditService := service.NewAuditService(logRepo, serviceLogger)
	chainService := service.NewChainService(
		employeeRepo,
		positionRepo,
		departmentRepo,
		overrideRepo,
		appraisalRepo,
		stepRepo,
		auditService,
		txDB,
		notifier,
		chain.Policy{
			RequireSupervisor: cfg.Approval.RequireSupervisor,
			AllowEmptyChain:   cfg.Approval.AllowEmptyChain,
		},
		serviceLogger,
	)
	approvalService := service.NewApprovalService(
		appraisalRepo,
		stepRepo,
		auditService,
		txDB,
		notifier,
		serviceLogger,
	)

	exporter := report.NewChainExporter(logger)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, chainService, approvalService, auditService, exporter, serviceLogger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
