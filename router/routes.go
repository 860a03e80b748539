package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shamanec/umdb/config"
	"github.com/shamanec/umdb/logger"
	"github.com/shamanec/umdb/mdns"
	"github.com/shamanec/umdb/models"
	"github.com/shamanec/umdb/state"
	"github.com/swaggo/swag"
)

// @Summary      Current configuration
// @Tags         configuration
// @Produce      json
// @Success      200 {object} models.Configuration
// @Failure      500 {object} WrappedError
// @Router       /configuration [get]
func (a *api) GetConfiguration(c *gin.Context) {
	configuration, err := a.State.Configuration()
	if err != nil {
		respondWithError(c, "get_configuration", err)
		return
	}
	c.JSON(http.StatusOK, configuration)
}

// @Summary      Update the configuration
// @Description  Checks the adb executable before storing it
// @Tags         configuration
// @Accept       json
// @Produce      json
// @Param        configuration body models.Configuration true "New configuration"
// @Success      200 {object} models.Configuration
// @Failure      400 {object} WrappedError
// @Router       /configuration [put]
func (a *api) UpdateConfiguration(c *gin.Context) {
	var configuration models.Configuration
	if err := c.ShouldBindJSON(&configuration); err != nil {
		JSONError(c, http.StatusBadRequest, "InvalidBodyError", err.Error())
		return
	}

	if configuration.HasAdbCommand() {
		if err := a.ADB.CheckExecutable(c.Request.Context(), configuration.AdbCommand); err != nil {
			respondWithError(c, "update_configuration", err)
			return
		}
	}

	if err := a.State.SetConfiguration(configuration); err != nil {
		respondWithError(c, "update_configuration", err)
		return
	}

	if a.ConfigPath != "" {
		if err := config.Save(a.ConfigPath, configuration); err != nil {
			logger.UmdbLogger.LogError("update_configuration", fmt.Sprintf("Could not persist configuration to `%s` - %s", a.ConfigPath, err))
		}
	}

	logger.UmdbLogger.LogInfo("update_configuration", fmt.Sprintf("adb command set to `%s`", configuration.AdbCommand))
	c.JSON(http.StatusOK, configuration)
}

// @Summary      Check an adb executable
// @Description  Defaults to the configured adb command when no path is given
// @Tags         configuration
// @Produce      json
// @Param        path query string false "Path or name of the executable"
// @Success      200 {object} JsonResponse
// @Failure      400 {object} WrappedError
// @Router       /executable/check [get]
func (a *api) CheckExecutable(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		configuration, err := a.State.Configuration()
		if err != nil {
			respondWithError(c, "check_executable", err)
			return
		}
		path = configuration.AdbCommand
	}
	if path == "" {
		JSONError(c, http.StatusBadRequest, "MissingParameterError", "path")
		return
	}

	if err := a.ADB.CheckExecutable(c.Request.Context(), path); err != nil {
		respondWithError(c, "check_executable", err)
		return
	}
	SimpleJSONResponse(c, fmt.Sprintf("`%s` is a usable adb executable", path), http.StatusOK)
}

// @Summary      List connected devices
// @Tags         devices
// @Produce      json
// @Param        system header string true "android or ios"
// @Success      200 {array} models.Device
// @Failure      400 {object} WrappedError
// @Failure      500 {object} WrappedError
// @Router       /devices [get]
func (a *api) ListDevices(c *gin.Context) {
	system, ok := readSystemHeader(c)
	if !ok {
		return
	}

	devices, err := a.listDevices(c, system)
	if err != nil {
		respondWithError(c, "list_devices", err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

func (a *api) listDevices(c *gin.Context, system models.System) ([]models.Device, error) {
	if system == models.SystemIOS {
		return a.IOS.ListDevices()
	}

	configuration, err := a.State.Configuration()
	if err != nil {
		return nil, err
	}
	return a.ADB.ListDevices(c.Request.Context(), configuration)
}

// @Summary      Browse wireless debugging endpoints
// @Tags         devices
// @Produce      json
// @Param        system header string true "android"
// @Success      200 {array} models.ServiceEndpoint
// @Failure      400 {object} WrappedError
// @Router       /devices/mdns [get]
func (a *api) BrowseDevices(c *gin.Context) {
	system, ok := readSystemHeader(c)
	if !ok {
		return
	}
	if system != models.SystemAndroid {
		systemUnsupported(c)
		return
	}

	endpoints, err := a.Browse(c.Request.Context(), mdns.ConnectService, mdns.DefaultBrowseTimeout)
	if err != nil {
		respondWithError(c, "browse_devices", err)
		return
	}
	c.JSON(http.StatusOK, endpoints)
}

// @Summary      Recent log entries
// @Tags         logs
// @Produce      json
// @Success      200 {array} logger.Entry
// @Router       /logs [get]
func (a *api) GetLogs(c *gin.Context) {
	c.JSON(http.StatusOK, logger.UmdbLogger.Recent())
}

type loggingRequest struct {
	Enabled bool `json:"enabled"`
}

// @Summary      Enable or disable informational logs
// @Tags         logs
// @Accept       json
// @Produce      json
// @Success      200 {object} JsonResponse
// @Router       /logs [put]
func (a *api) UpdateLogging(c *gin.Context) {
	var request loggingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		JSONError(c, http.StatusBadRequest, "InvalidBodyError", err.Error())
		return
	}

	err := a.State.Write(func(umdb *state.Umdb) error {
		umdb.EnableLogs = request.Enabled
		logger.UmdbLogger.SetEnabled(request.Enabled)
		return nil
	})
	if err != nil {
		respondWithError(c, "update_logging", err)
		return
	}
	SimpleJSONResponse(c, fmt.Sprintf("Logging enabled: %v", request.Enabled), http.StatusOK)
}

func GetSwaggerDoc(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		JSONError(c, http.StatusNotFound, "MissingDocError", err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
