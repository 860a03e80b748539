package adb

import (
	"context"
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/shamanec/umdb/models"
	"github.com/shamanec/umdb/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConnectClient(runner *fakeRunner) *Client {
	client := NewClient(runner)
	client.SettleDelay = time.Millisecond
	return client
}

func TestConnect(t *testing.T) {
	runner := newFakeRunner(map[string]fakeResponse{
		"-s ABC123 tcpip 5555":     {stdout: "restarting in TCP mode port: 5555\n"},
		"connect 192.168.1.5:5555": {stdout: "connected to 192.168.1.5:5555\n"},
	})

	err := newConnectClient(runner).Connect(context.Background(), testConfiguration, "ABC123", netip.MustParseAddr("192.168.1.5"), 5555)
	require.NoError(t, err)
	assert.Equal(t, []string{"-s ABC123 tcpip 5555", "connect 192.168.1.5:5555"}, runner.calls)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, runner.timeouts)
}

func TestConnectAlreadyConnected(t *testing.T) {
	runner := newFakeRunner(map[string]fakeResponse{
		"-s ABC123 tcpip 5555":     {},
		"connect 192.168.1.5:5555": {stdout: "already connected to 192.168.1.5:5555\n"},
	})

	err := newConnectClient(runner).Connect(context.Background(), testConfiguration, "ABC123", netip.MustParseAddr("192.168.1.5"), 5555)
	assert.NoError(t, err)
}

func TestConnectIPv6Endpoint(t *testing.T) {
	runner := newFakeRunner(map[string]fakeResponse{
		"-s ABC123 tcpip 5555":   {},
		"connect [fe80::1]:5555": {stdout: "connected to [fe80::1]:5555\n"},
	})

	err := newConnectClient(runner).Connect(context.Background(), testConfiguration, "ABC123", netip.MustParseAddr("fe80::1"), 5555)
	assert.NoError(t, err)
}

func TestConnectSwitchFailureSkipsConnect(t *testing.T) {
	runner := newFakeRunner(map[string]fakeResponse{
		"-s ABC123 tcpip 5555":     {exitCode: 1, stderr: "error: device 'ABC123' not found\n"},
		"connect 192.168.1.5:5555": {stdout: "connected to 192.168.1.5:5555\n"},
	})

	err := newConnectClient(runner).Connect(context.Background(), testConfiguration, "ABC123", netip.MustParseAddr("192.168.1.5"), 5555)
	assert.True(t, IsKind(err, KindCannotSwitchAdbMode))
	assert.False(t, runner.called("connect 192.168.1.5:5555"))
}

func TestConnectRefused(t *testing.T) {
	runner := newFakeRunner(map[string]fakeResponse{
		"-s ABC123 tcpip 5555":     {},
		"connect 192.168.1.5:5555": {stdout: "failed to connect to '192.168.1.5:5555': Connection refused\n"},
	})

	err := newConnectClient(runner).Connect(context.Background(), testConfiguration, "ABC123", netip.MustParseAddr("192.168.1.5"), 5555)
	require.True(t, IsKind(err, KindCannotConnectToDevice))

	var adbErr *Error
	require.True(t, errors.As(err, &adbErr))
	assert.Contains(t, adbErr.Message, "Connection refused")
}

func TestConnectSecondCommandExitCode(t *testing.T) {
	runner := newFakeRunner(map[string]fakeResponse{
		"-s ABC123 tcpip 5555":     {},
		"connect 192.168.1.5:5555": {exitCode: 1, stdout: "connected to 192.168.1.5:5555\n"},
	})

	err := newConnectClient(runner).Connect(context.Background(), testConfiguration, "ABC123", netip.MustParseAddr("192.168.1.5"), 5555)
	assert.True(t, IsKind(err, KindCannotConnectToDevice))
}

func TestConnectTimeouts(t *testing.T) {
	runner := newFakeRunner(map[string]fakeResponse{
		"-s ABC123 tcpip 5555": {err: process.ErrTimeout},
	})

	err := newConnectClient(runner).Connect(context.Background(), testConfiguration, "ABC123", netip.MustParseAddr("192.168.1.5"), 5555)
	assert.True(t, IsKind(err, KindDeviceUnresponsive))

	runner = newFakeRunner(map[string]fakeResponse{
		"-s ABC123 tcpip 5555":     {},
		"connect 192.168.1.5:5555": {err: process.ErrTimeout},
	})

	err = newConnectClient(runner).Connect(context.Background(), testConfiguration, "ABC123", netip.MustParseAddr("192.168.1.5"), 5555)
	assert.True(t, IsKind(err, KindDeviceUnresponsive))
}

func TestConnectErrorsBeforeRunning(t *testing.T) {
	runner := newFakeRunner(nil)

	err := newConnectClient(runner).Connect(context.Background(), models.Configuration{}, "ABC123", netip.MustParseAddr("192.168.1.5"), 5555)
	assert.True(t, IsKind(err, KindDebugBridgePathMissing))
	assert.Empty(t, runner.calls)

	err = newConnectClient(runner).Connect(context.Background(), testConfiguration, "ABC123", netip.MustParseAddr("192.168.1.5"), 5555)
	assert.True(t, IsKind(err, KindCannotRunProcess))
}
