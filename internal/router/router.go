package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lead-pipeline-api/internal/client"
	"lead-pipeline-api/internal/config"
	"lead-pipeline-api/internal/handler"
	"lead-pipeline-api/internal/metrics"
	"lead-pipeline-api/internal/middleware"
	"lead-pipeline-api/internal/repository"
	"lead-pipeline-api/internal/service"
)

// Setup wires repositories, services and handlers and returns the engine
func Setup(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	scoringClient client.ScoringClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.Metrics(m))

	repos := repository.NewRepositories(db)
	txManager := repository.NewTxManager(db)

	overviewCache := service.NewOverviewCache(redisClient, cfg.OverviewCacheTTL(), logger)

	leadService := service.NewLeadService(repos, txManager, scoringClient, overviewCache, m, logger)
	pipelineService := service.NewPipelineService(repos, txManager, overviewCache, cfg.App.StaleDaysDefault, m, logger)

	leadHandler := handler.NewLeadHandler(leadService)
	pipelineHandler := handler.NewPipelineHandler(pipelineService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Health and metrics endpoints (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(cfg.Server.BasePath)
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)

		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(cfg.JWT.Secret))
		{
			authenticated.POST("/leads", leadHandler.CreateLead)
			authenticated.GET("/leads", leadHandler.ListLeads)
			authenticated.GET("/leads/:leadId", leadHandler.GetLead)
			authenticated.PUT("/leads/:leadId", leadHandler.UpdateLead)
			authenticated.POST("/leads/:leadId/score", leadHandler.ScoreLead)

			authenticated.GET("/stages", pipelineHandler.ListStages)
			authenticated.POST("/leads/:leadId/move", pipelineHandler.MoveLead)
			authenticated.POST("/leads/:leadId/activities", pipelineHandler.LogActivity)
			authenticated.GET("/leads/:leadId/activities", pipelineHandler.GetActivities)
			authenticated.POST("/leads/:leadId/assign", pipelineHandler.AssignLead)
			authenticated.GET("/leads/:leadId/history", pipelineHandler.GetHistory)
			authenticated.GET("/overview", pipelineHandler.GetOverview)
			authenticated.GET("/stale-leads", pipelineHandler.GetStaleLeads)
			authenticated.GET("/analytics", pipelineHandler.GetAnalytics)
		}
	}

	return r
}
