package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pagehits/counthub/internal/config"
)

// CORS returns the permissive CORS policy the widget embedding surface
// requires. Defaults allow any origin; config can narrow it.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:              cfg.AllowedOrigins,
		AllowMethods:              cfg.AllowedMethods,
		AllowHeaders:              cfg.AllowedHeaders,
		MaxAge:                    time.Duration(cfg.MaxAge.Seconds()) * time.Second,
		OptionsResponseStatusCode: http.StatusOK,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = []string{"*"}
	}
	if len(corsCfg.AllowMethods) == 0 {
		corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(corsCfg.AllowHeaders) == 0 {
		corsCfg.AllowHeaders = []string{"Content-Type"}
	}
	return cors.New(corsCfg)
}

// PublicCache fixes the counter API's always-on response headers: a
// short public cache directive and the permissive CORS grant, which
// must be present even on requests that carry no Origin header.
func PublicCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=30")
		c.Header("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}
