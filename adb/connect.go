package adb

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/shamanec/umdb/logger"
	"github.com/shamanec/umdb/models"
)

// Connect switches the device into TCP/IP mode on port and connects adb to ip:port
func (c *Client) Connect(ctx context.Context, configuration models.Configuration, deviceID string, ip netip.Addr, port uint16) error {
	adb, err := adbCommand(OpConnect, configuration)
	if err != nil {
		return err
	}
	ctx = detached(ctx)

	portValue := strconv.FormatUint(uint64(port), 10)

	logger.UmdbLogger.LogInfo("adb_connect", fmt.Sprintf("Switching device `%s` to TCP/IP mode on port %s", deviceID, portValue))
	output, err := c.Runner.Run(ctx, adb, []string{"-s", deviceID, "tcpip", portValue}, c.StepTimeout)
	if err != nil {
		return runFailure(OpConnect, err)
	}
	if !output.Success() {
		logger.UmdbLogger.LogError("adb_connect", fmt.Sprintf("Could not switch device `%s` to TCP/IP mode, exit code %d", deviceID, output.ExitCode))
		return newError(OpConnect, KindCannotSwitchAdbMode, strings.TrimSpace(string(output.Stderr)))
	}

	time.Sleep(c.SettleDelay)

	endpoint := net.JoinHostPort(ip.String(), portValue)
	logger.UmdbLogger.LogInfo("adb_connect", fmt.Sprintf("Connecting to `%s`", endpoint))
	output, err = c.Runner.Run(ctx, adb, []string{"connect", endpoint}, c.StepTimeout)
	if err != nil {
		return runFailure(OpConnect, err)
	}

	// adb exits with 0 on refused connections so the output has to be checked too
	message := strings.TrimSpace(string(output.Stdout))
	if !output.Success() || !connectSucceeded(message) {
		logger.UmdbLogger.LogError("adb_connect", fmt.Sprintf("Could not connect to `%s` - %s", endpoint, message))
		return newError(OpConnect, KindCannotConnectToDevice, message)
	}

	return nil
}

func connectSucceeded(message string) bool {
	return strings.Contains(message, "connected") && !strings.Contains(message, "failed")
}
