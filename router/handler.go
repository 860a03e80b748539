package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shamanec/umdb/adb"
	"github.com/shamanec/umdb/logger"
	"github.com/shamanec/umdb/models"
	"github.com/shamanec/umdb/state"
	log "github.com/sirupsen/logrus"
)

type DeviceLister interface {
	ListDevices() ([]models.Device, error)
}

type BrowseFunc func(ctx context.Context, service string, timeout time.Duration) ([]models.ServiceEndpoint, error)

// Dependencies of the HTTP handlers
type Dependencies struct {
	State *state.Handle
	ADB   *adb.Client
	IOS   DeviceLister
	// Browse finds wireless debugging endpoints over mDNS
	Browse BrowseFunc
	// ConfigPath, when set, receives configuration updates made over HTTP
	ConfigPath string
}

type api struct {
	Dependencies
}

func HandleRequests(deps Dependencies) *gin.Engine {
	a := &api{Dependencies: deps}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), permissiveCORS())

	umdb := router.Group("/umdb")
	umdb.GET("/configuration", a.GetConfiguration)
	umdb.PUT("/configuration", a.UpdateConfiguration)
	umdb.GET("/executable/check", a.CheckExecutable)
	umdb.GET("/devices", a.ListDevices)
	umdb.GET("/devices/watch", a.WatchDevices)
	umdb.GET("/devices/mdns", a.BrowseDevices)
	umdb.POST("/devices/:id/connect", a.ConnectDevice)
	umdb.POST("/devices/:id/link", a.OpenDeepLink)
	umdb.GET("/logs", a.GetLogs)
	umdb.PUT("/logs", a.UpdateLogging)
	umdb.GET("/swagger.json", GetSwaggerDoc)

	return router
}

// Tag every request with an id and log its outcome
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.UmdbLogger.WithFields(log.Fields{
			"event":      "http_request",
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info(fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path))
	}
}

func permissiveCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "*")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
