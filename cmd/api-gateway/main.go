package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/faculty-rota-api/internal/handler"
	"github.com/noah-isme/faculty-rota-api/internal/middleware"
	"github.com/noah-isme/faculty-rota-api/internal/repository"
	"github.com/noah-isme/faculty-rota-api/internal/service"
	"github.com/noah-isme/faculty-rota-api/pkg/cache"
	"github.com/noah-isme/faculty-rota-api/pkg/config"
	"github.com/noah-isme/faculty-rota-api/pkg/database"
	"github.com/noah-isme/faculty-rota-api/pkg/export"
	"github.com/noah-isme/faculty-rota-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/faculty-rota-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/faculty-rota-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	redisClient, redisErr := cache.NewRedis(cfg.Redis)
	if redisErr != nil {
		logr.Warn("redis unavailable, schedule view caching disabled", zap.Error(redisErr))
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		repo := repository.NewCacheRepository(redisClient, logr)
		defer repo.Close() //nolint:errcheck
		cacheRepo = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Schedule.ViewCacheTTL, logr, cfg.Schedule.CacheEnabled && redisErr == nil)

	facultyRepo := repository.NewFacultyRepository(db)
	weekRepo := repository.NewWeekRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	scheduleSvc := service.NewScheduleService(
		facultyRepo,
		weekRepo,
		requestRepo,
		assignmentRepo,
		cacheSvc,
		metricsSvc,
		export.NewPDFExporter(),
		validate,
		logr,
		service.ScheduleServiceConfig{
			ViewTTL:       cfg.Schedule.ViewCacheTTL,
			ClearExisting: cfg.Schedule.ClearExisting,
			DefaultYear:   cfg.Schedule.DefaultYear,
		},
	)
	weekSvc := service.NewWeekService(weekRepo, cacheSvc, metricsSvc, validate, logr, service.WeekServiceConfig{
		WeeksPerYear:     cfg.Weeks.WeeksPerYear,
		MinStaffRequired: cfg.Weeks.MinStaffRequired,
	})

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, cfg.Schedule.DefaultYear)
	weekHandler := handler.NewWeekHandler(weekSvc, cfg.Schedule.DefaultYear)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/summary", metricsHandler.Snapshot)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/schedule/generate", scheduleHandler.Generate)
		api.GET("/schedule", scheduleHandler.View)
		api.GET("/schedule/validate", scheduleHandler.Validate)
		api.GET("/schedule/export.pdf", scheduleHandler.Export)

		api.POST("/weeks/generate", weekHandler.Generate)
		api.GET("/weeks", weekHandler.List)
		api.DELETE("/weeks", weekHandler.Clear)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
