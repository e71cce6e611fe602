package common

import (
	"net/http"
	"strconv"

	"hackathon_system/lib/connector"
	"hackathon_system/lib/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (hs *HackathonSystem) recoverRequest(c *gin.Context, err any) {
	connector.RespServerError(c, "Panic while handling %s %s: %v", c.Request.Method, c.FullPath(), err)
}

func (hs *HackathonSystem) metricsMiddleware(c *gin.Context) {
	c.Next()
	route := c.FullPath()
	if route == "" {
		route = "unknown"
	}
	hs.Metrics.RequestHandled(c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
}

func (hs *HackathonSystem) InitServer() {
	gin.SetMode(gin.ReleaseMode)
	hs.Router = gin.New()

	if logger.GetLevel() <= logger.LogLevelTrace {
		hs.Router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
			Output: logger.CreateWriter(logger.LogLevelTrace, "Handler log:"),
		}))
	}
	// Registered before recovery to count failed requests too
	hs.Router.Use(hs.metricsMiddleware)
	hs.Router.Use(gin.CustomRecoveryWithWriter(
		logger.CreateWriter(logger.LogLevelError, "Panic in handler:"),
		hs.recoverRequest,
	))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = hs.Config.Server.AllowOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	hs.Router.Use(cors.New(corsConfig))

	hs.Router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if hs.Config.Server.Metrics {
		hs.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(hs.Metrics.Registry, promhttp.HandlerOpts{})))
	}
}
