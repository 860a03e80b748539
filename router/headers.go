package router

import (
	"net/http"
	"net/netip"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shamanec/umdb/models"
)

type ReadSystemHeaderError string

const (
	HeaderMissing ReadSystemHeaderError = "HeaderMissing"
	InvalidValue  ReadSystemHeaderError = "InvalidValue"
)

// Read the `system` header, writes the error response when it is unusable
func readSystemHeader(c *gin.Context) (models.System, bool) {
	value := c.GetHeader("system")
	if value == "" {
		// browsers cannot set headers on websocket upgrades
		value = c.Query("system")
	}
	if value == "" {
		JSONError(c, http.StatusBadRequest, "ReadSystemHeaderError", HeaderMissing)
		return "", false
	}

	system, err := models.ParseSystem(value)
	if err != nil {
		JSONError(c, http.StatusBadRequest, "ReadSystemHeaderError", InvalidValue)
		return "", false
	}
	return system, true
}

func readIPHeader(c *gin.Context) (netip.Addr, bool) {
	value := c.GetHeader("ip")
	if value == "" {
		JSONError(c, http.StatusBadRequest, "MissingHeaderError", "ip")
		return netip.Addr{}, false
	}
	ip, err := netip.ParseAddr(value)
	if err != nil {
		JSONError(c, http.StatusBadRequest, "InvalidHeaderError", "ip")
		return netip.Addr{}, false
	}
	return ip, true
}

func readPortHeader(c *gin.Context) (uint16, bool) {
	value := c.GetHeader("port")
	if value == "" {
		JSONError(c, http.StatusBadRequest, "MissingHeaderError", "port")
		return 0, false
	}
	port, err := strconv.ParseUint(value, 10, 16)
	if err != nil || port == 0 {
		JSONError(c, http.StatusBadRequest, "InvalidHeaderError", "port")
		return 0, false
	}
	return uint16(port), true
}
