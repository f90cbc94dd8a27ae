package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pagehits/counthub/internal/config"
	"pagehits/counthub/internal/handler/middleware"
	"pagehits/counthub/pkg/response"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	counterHandler *CounterHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Unknown verbs on known routes are a client error, not a 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c, "method not allowed")
	})

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Counter API
	counter := r.Group("/counter")
	counter.Use(middleware.PublicCache())
	{
		counter.GET("", counterHandler.Get)
		counter.POST("", counterHandler.Update)
		// Preflight with an Origin header is answered by the CORS
		// middleware; this covers bare OPTIONS probes.
		counter.OPTIONS("", func(c *gin.Context) {
			c.Status(200)
		})
	}

	return r
}
