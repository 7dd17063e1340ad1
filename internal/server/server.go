package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nutrifast/backend/config"
	"github.com/nutrifast/backend/internal/api"
	"github.com/nutrifast/backend/internal/database"
	"github.com/nutrifast/backend/internal/fasting"
	"github.com/nutrifast/backend/internal/logger"
	"github.com/nutrifast/backend/internal/middleware"
	"github.com/nutrifast/backend/internal/notify"
	"github.com/nutrifast/backend/internal/router"
	"github.com/nutrifast/backend/internal/scheduler"
	"github.com/nutrifast/backend/internal/service"
)

// alarmPollInterval is how often the scheduler checks the due-queue.
const alarmPollInterval = time.Second

// Server wires configuration, storage, services and HTTP together.
type Server struct {
	cfg  *config.Config
	http *http.Server

	fastingService *service.FastingService
	sched          *scheduler.RedisScheduler
	cancelSched    context.CancelFunc
}

// New builds the full application: database, redis, services, alarm
// scheduler and routes.
func New(cfg *config.Config) (*Server, error) {
	logger.Init()

	sqlDB, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := sqlDB.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("postgres health check failed: %w", err)
	}

	gormDB, err := database.NewGorm(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		// Media uploads are optional in development; run without them.
		logger.Warn("S3 unavailable, media uploads disabled", "error", err)
	}

	// Services
	store := fasting.NewStore(rdb)
	sink := notify.NewStoreSink(gormDB)
	authService := service.NewAuthService(gormDB, cfg.JWTSecret)
	profileService := service.NewProfileService(gormDB)
	foodService := service.NewFoodService(gormDB, profileService)
	foodSearchService := service.NewFoodSearchService(cfg.FoodAPIBaseURL, rdb)
	recipeService := service.NewRecipeService(gormDB)
	imageService := service.NewImageService(s3Config)
	fastingService := service.NewFastingService(store, sink)

	// The scheduler dispatches due alarms back into the fasting service.
	sched := scheduler.NewRedisScheduler(rdb, alarmPollInterval, fastingService.HandleAlarm)
	fastingService.SetAlarmService(sched)

	// Re-derive state and alarms for every active user before serving.
	if err := fastingService.Reconcile(context.Background()); err != nil {
		logger.Warn("fasting reconcile failed", "error", err)
	}

	engine := router.SetupRouter(router.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Profile: api.NewProfileHandler(profileService, imageService),
		Fasting: api.NewFastingHandler(fastingService, sink, store),
		Food:    api.NewFoodHandler(foodService, foodSearchService),
		Recipe:  api.NewRecipeHandler(recipeService, imageService),
		Health:  api.NewHealthHandler(gormDB, rdb),

		TokenValidator:    authService,
		FoodLogLimiter:    middleware.NewFoodLoggingRateLimiter(rdb),
		FoodSearchLimiter: middleware.NewFoodSearchRateLimiter(rdb),
	})

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		fastingService: fastingService,
		sched:          sched,
	}, nil
}

// Start runs the alarm scheduler and the HTTP server. Blocks until the
// listener stops.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelSched = cancel
	go s.sched.Run(ctx)

	logger.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the scheduler and drains in-flight HTTP requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cancelSched != nil {
		s.cancelSched()
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
