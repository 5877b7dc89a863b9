package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studyplan-io/studyplan-api/api/swagger"
	"github.com/studyplan-io/studyplan-api/internal/handler"
	internalmiddleware "github.com/studyplan-io/studyplan-api/internal/middleware"
	"github.com/studyplan-io/studyplan-api/internal/repository"
	"github.com/studyplan-io/studyplan-api/internal/service"
	"github.com/studyplan-io/studyplan-api/pkg/cache"
	"github.com/studyplan-io/studyplan-api/pkg/config"
	"github.com/studyplan-io/studyplan-api/pkg/logger"
	corsmiddleware "github.com/studyplan-io/studyplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/studyplan-io/studyplan-api/pkg/middleware/requestid"
)

// @title Study Plan API
// @version 0.1.0
// @description Weekly study schedule generator
// @BasePath /
// @schemes http

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

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Planner.CacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, plan cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Planner.CacheTTL, logr, cfg.Planner.CacheEnabled)

	plannerSvc := service.NewPlannerService(cacheSvc, metricsSvc, nil, logr, service.PlannerServiceConfig{
		CacheTTL:       cfg.Planner.CacheTTL,
		MaxGoals:       cfg.Planner.MaxGoals,
		MaxConstraints: cfg.Planner.MaxConstraints,
	})
	exportSvc := service.NewExportService(plannerSvc, logr)

	plannerHandler := handler.NewPlannerHandler(plannerSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/plan/generate", plannerHandler.Generate)
	api.POST("/constraints/validate", plannerHandler.ValidateConstraint)
	if cfg.Export.Enabled {
		api.POST("/plan/export", exportHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
