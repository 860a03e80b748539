package router

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shamanec/umdb/adb"
	"github.com/shamanec/umdb/models"
)

type linkResponse struct {
	Result adb.LinkResult `json:"result"`
}

// @Summary      Connect to a device over TCP/IP
// @Description  Switches the device to TCP/IP mode on `port` and connects to `ip:port`
// @Tags         devices
// @Produce      json
// @Param        id     path   string true "Device serial"
// @Param        system header string true "android"
// @Param        ip     header string true "Device IP address"
// @Param        port   header int    true "TCP/IP port"
// @Success      200 {object} JsonResponse
// @Failure      400 {object} WrappedError
// @Failure      504 {object} WrappedError
// @Router       /devices/{id}/connect [post]
func (a *api) ConnectDevice(c *gin.Context) {
	system, ok := readSystemHeader(c)
	if !ok {
		return
	}
	if system != models.SystemAndroid {
		systemUnsupported(c)
		return
	}

	ip, ok := readIPHeader(c)
	if !ok {
		return
	}
	port, ok := readPortHeader(c)
	if !ok {
		return
	}

	configuration, err := a.State.Configuration()
	if err != nil {
		respondWithError(c, "adb_connect", err)
		return
	}

	deviceID := c.Param("id")
	if err := a.ADB.Connect(c.Request.Context(), configuration, deviceID, ip, port); err != nil {
		respondWithError(c, "adb_connect", err)
		return
	}

	endpoint := net.JoinHostPort(ip.String(), strconv.Itoa(int(port)))
	SimpleJSONResponse(c, fmt.Sprintf("Device `%s` connected on `%s`", deviceID, endpoint), http.StatusOK)
}

// @Summary      Open a deep link on a device
// @Tags         devices
// @Accept       plain
// @Produce      json
// @Param        id     path   string true "Device serial"
// @Param        system header string true "android"
// @Param        link   body   string true "Link to open"
// @Success      200 {object} linkResponse
// @Failure      400 {object} WrappedError
// @Failure      500 {object} WrappedError
// @Router       /devices/{id}/link [post]
func (a *api) OpenDeepLink(c *gin.Context) {
	system, ok := readSystemHeader(c)
	if !ok {
		return
	}
	if system != models.SystemAndroid {
		systemUnsupported(c)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		JSONError(c, http.StatusBadRequest, "InvalidBodyError", err.Error())
		return
	}
	link := strings.TrimSpace(string(body))
	if link == "" {
		JSONError(c, http.StatusBadRequest, "MissingBodyError", "link")
		return
	}

	configuration, err := a.State.Configuration()
	if err != nil {
		respondWithError(c, "open_deep_link", err)
		return
	}

	result, err := a.ADB.OpenDeepLink(c.Request.Context(), configuration, c.Param("id"), link)
	if err != nil {
		respondWithError(c, "open_deep_link", err)
		return
	}
	c.JSON(http.StatusOK, linkResponse{Result: result})
}
