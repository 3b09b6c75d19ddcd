package delivery

import (
	"time"

	"adlens/internal/delivery/middleware"
	"adlens/pkg/logger"
	"adlens/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HTTPRouter struct {
	handlers *HTTPHandlers
	logger   *logger.Logger
	metrics  *metrics.Metrics
	timeout  time.Duration
}

func NewHTTPRouter(handlers *HTTPHandlers, logger *logger.Logger, metrics *metrics.Metrics, timeout time.Duration) *HTTPRouter {
	return &HTTPRouter{
		handlers: handlers,
		logger:   logger,
		metrics:  metrics,
		timeout:  timeout,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.timeout))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID"}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/", r.handlers.GetAPIInfo)
		v1.GET("", r.handlers.GetAPIInfo)

		// Ingestion endpoints
		v1.POST("/records", r.handlers.IngestRecords)
		v1.POST("/budgets", r.handlers.SetBudgets)
		ingest := v1.Group("/ingest")
		{
			ingest.POST("/run", r.handlers.IngestRun)
		}

		// Report endpoints
		reports := v1.Group("/reports")
		{
			reports.GET("/classifications", r.handlers.GetClassifications)
			reports.GET("/patterns", r.handlers.GetPatterns)
			reports.GET("/pacing", r.handlers.GetPacing)
			reports.GET("/saturation", r.handlers.GetSaturation)
			reports.GET("/quality", r.handlers.GetQuality)
			reports.GET("/concentration", r.handlers.GetConcentration)
			reports.GET("/roi", r.handlers.GetROI)
		}

		// Simulation endpoints
		simulations := v1.Group("/simulations")
		{
			simulations.POST("/budget", r.handlers.SimulateBudget)
			simulations.POST("/pause", r.handlers.SimulatePause)
		}

		// Export endpoints
		export := v1.Group("/export")
		{
			export.POST("/run", r.handlers.ExportRun)
		}
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	return router
}
