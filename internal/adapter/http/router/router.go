package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/adapter/http/handler"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/adapter/http/middleware"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/usecase"
)

// Deps holds what the router needs to serve requests
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Gatherer prometheus.Gatherer
	BattleUC usecase.BattleUsecase
	StatsUC  usecase.StatsUsecase
	Logger   *zap.Logger
}

// Setup creates and configures the Gin router
func Setup(deps Deps) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	battleHandler := handler.NewBattleHandler(deps.BattleUC)
	statsHandler := handler.NewStatsHandler(deps.StatsUC)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		battles := v1.Group("/battles")
		{
			battles.POST("/:id/finish", battleHandler.FinishBattle)
			battles.POST("/:id/finalize", battleHandler.FinalizeBattle)
			battles.GET("/:id/result", battleHandler.GetBattleResult)
		}

		users := v1.Group("/users")
		{
			users.GET("/:id/battle-stats", statsHandler.GetBattleStats)
			users.GET("/:id/accuracy", statsHandler.GetAccuracy)
		}

		v1.POST("/scoring/compare", battleHandler.CompareScores)
	}

	return router
}
