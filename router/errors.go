package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shamanec/umdb/adb"
	"github.com/shamanec/umdb/logger"
	"github.com/shamanec/umdb/state"
)

type JsonResponse struct {
	Message string `json:"message"`
}

// Error body, Type names the error family and Details carries the variant
type WrappedError struct {
	Type    string      `json:"type"`
	Details interface{} `json:"details"`
}

type emptyDetails struct{}

func SimpleJSONResponse(c *gin.Context, message string, code int) {
	c.JSON(code, JsonResponse{Message: message})
}

func JSONError(c *gin.Context, code int, errorType string, details interface{}) {
	if details == nil {
		details = emptyDetails{}
	}
	c.AbortWithStatusJSON(code, WrappedError{Type: errorType, Details: details})
}

func systemUnsupported(c *gin.Context) {
	JSONError(c, http.StatusBadRequest, "SystemUnsupportedError", nil)
}

// Write err with the status code matching its kind
func respondWithError(c *gin.Context, event string, err error) {
	requestID := c.GetString("request_id")

	var adbErr *adb.Error
	switch {
	case errors.As(err, &adbErr):
		logger.UmdbLogger.LogWarn(event, requestID+" - "+adbErr.Error())
		JSONError(c, statusForKind(adbErr.Kind), adbErr.Op, adbErr)
	case errors.Is(err, state.ErrPoisoned):
		logger.UmdbLogger.LogError(event, requestID+" - "+err.Error())
		JSONError(c, http.StatusInternalServerError, "FatalStateError", nil)
	default:
		logger.UmdbLogger.LogError(event, requestID+" - "+err.Error())
		JSONError(c, http.StatusInternalServerError, "InternalError", err.Error())
	}
}

func statusForKind(kind adb.Kind) int {
	switch kind {
	case adb.KindDebugBridgePathMissing,
		adb.KindNotAFile,
		adb.KindNotAnExecutable,
		adb.KindCheckFileError,
		adb.KindCannotCheckVersion:
		return http.StatusBadRequest
	case adb.KindDeviceUnresponsive:
		return http.StatusGatewayTimeout
	case adb.KindDeviceServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Body written on the device stream when a listing fails
func watchError(err error) WrappedError {
	var adbErr *adb.Error
	if errors.As(err, &adbErr) {
		return WrappedError{Type: adbErr.Op, Details: adbErr}
	}
	if errors.Is(err, state.ErrPoisoned) {
		return WrappedError{Type: "FatalStateError", Details: emptyDetails{}}
	}
	return WrappedError{Type: "InternalError", Details: err.Error()}
}
