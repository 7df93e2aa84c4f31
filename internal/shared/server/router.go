package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"screener-backend/internal/report"
	"screener-backend/internal/screening"
	"screener-backend/internal/services/health"
	"screener-backend/internal/shared/config"
	"screener-backend/internal/shared/metrics"
	"screener-backend/internal/shared/server/middleware"
	"screener-backend/internal/shared/server/respond"
	"screener-backend/internal/shared/storage/reports"
)

const analyzeRateGroup = "ANALYZE"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, svc *screening.Service, reportStore *reports.Store) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				analyzeRateGroup: {Rate: 0.5, Burst: 3},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/analyses" {
					return analyzeRateGroup
				}
				return ""
			},
		}),
	)

	healthSvc := health.NewService(cfg.Env)
	screeningHandler := screening.NewHandler(svc)
	reportHandler := report.NewHandler(svc.History, reportStore)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	screeningHandler.RegisterRoutes(api)
	reportHandler.RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
