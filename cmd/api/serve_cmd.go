package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/staffing-service/internal/api/http"
	"github.com/spec-kit/staffing-service/internal/api/http/handlers"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/editsession"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/observability"
	"github.com/spec-kit/staffing-service/internal/persistence"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/internal/service"
	"github.com/spec-kit/staffing-service/internal/worker"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func serve(parent context.Context, cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	pool := pg.PoolHandle()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			return err
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()

	stafferRepo := repository.NewStafferRepository(pool)
	stafferService := service.NewStafferService(service.StafferDependencies{
		StafferRepo:   stafferRepo,
		SeniorityRepo: repository.NewSeniorityRepository(pool),
		SkillRepo:     repository.NewSkillRepository(pool),
		Cache:         persistence.NewJSONCache(redis.Client, "staffing", cfg.Redis.SkillCacheTTL()),
		Logger:        logger,
	})
	timeOffService := service.NewTimeOffService(repository.NewTimeOffRepository(pool), dispatcher, logger)
	projectRepo := repository.NewProjectRepository(pool)
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo:    projectRepo,
		PhaseRepo:      repository.NewPhaseRepository(pool),
		TaskRepo:       repository.NewTaskRepository(pool),
		TeamRepo:       repository.NewTeamRepository(pool),
		AssignmentRepo: repository.NewAssignmentRepository(pool),
	})
	profitabilityService := service.NewProfitabilityService(repository.NewProfitabilityRepository(pool), projectRepo, logger)

	// the gauge is read at scrape time, after sessions is assigned
	var sessions *editsession.Manager
	metrics := observability.NewMetrics(func() int { return sessions.Len() })
	notifications := worker.StartNotificationWorker(ctx, dispatcher,
		service.NewNotificationService(logger, cfg.Orchestrator),
		cfg.Orchestrator.QueueSize, metrics, logger)
	sessions = editsession.NewManager(editsession.Stores{
		Staffers: stafferRepo,
		Skills:   repository.NewStafferSkillRepository(pool),
		Rates:    repository.NewRateRepository(pool),
		TimeOff:  timeOffService,
		Catalog:  stafferService,
	}, editsession.ManagerConfig{
		TTL:         cfg.EditSession.TTL(),
		Concurrency: cfg.EditSession.CommitConcurrency,
		Observer:    metrics,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	sweeperDone := worker.StartSessionSweeper(ctx, sessions, cfg.EditSession.SweepInterval(), logger)

	tokens := auth.NewTokenManager(cfg.Auth)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
			handlers.Dependency{Name: "postgres", Check: pg},
			handlers.Dependency{Name: "redis", Check: redis, Optional: true},
		),
		Projects:       handlers.NewProjectHandler(projectService),
		Profitability:  handlers.NewProfitabilityHandler(profitabilityService),
		Staffers:       handlers.NewStafferHandler(stafferService, timeOffService),
		EditSessions:   handlers.NewEditSessionHandler(sessions),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
		Registry:       metrics.Registry(),
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-listenErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownErr := app.Shutdown()
	cancel()
	<-sweeperDone
	<-notifications.Done()
	return shutdownErr
}
