package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shamanec/umdb/logger"
)

const (
	defaultWatchInterval = 5 * time.Second
	minWatchInterval     = 500 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	CheckOrigin:      func(r *http.Request) bool { return true },
	HandshakeTimeout: 5 * time.Second,
}

// @Summary      Stream device listings over a websocket
// @Tags         devices
// @Param        system   query string false "android or ios, when the header cannot be set"
// @Param        interval query string false "Go duration between listings, 5s by default"
// @Router       /devices/watch [get]
func (a *api) WatchDevices(c *gin.Context) {
	system, ok := readSystemHeader(c)
	if !ok {
		return
	}

	interval := defaultWatchInterval
	if value := c.Query("interval"); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil || parsed < minWatchInterval {
			JSONError(c, http.StatusBadRequest, "InvalidParameterError", "interval")
			return
		}
		interval = parsed
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.UmdbLogger.LogError("watch_devices", fmt.Sprintf("WebSocket upgrade error - %s", err))
		return
	}
	defer conn.Close()

	// The client only ever closes, a failed read means it is gone
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		devices, err := a.listDevices(c, system)
		var message interface{} = devices
		if err != nil {
			message = watchError(err)
		}
		if err := conn.WriteJSON(message); err != nil {
			logger.UmdbLogger.LogDebug("watch_devices", fmt.Sprintf("Stopped streaming devices - %s", err))
			return
		}

		select {
		case <-gone:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
