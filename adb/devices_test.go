package adb

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shamanec/umdb/models"
	"github.com/shamanec/umdb/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfiguration = models.Configuration{AdbCommand: "adb"}

const pixelProps = "[ro.product.manufacturer]: [Google]\n[ro.product.model]: [Pixel 6]\n"

func TestListDevicesRequiresAdbCommand(t *testing.T) {
	client := NewClient(newFakeRunner(nil))

	_, err := client.ListDevices(context.Background(), models.Configuration{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDebugBridgePathMissing))

	var adbErr *Error
	require.True(t, errors.As(err, &adbErr))
	assert.Equal(t, OpListDevices, adbErr.Op)
}

func TestListDevicesBadExitCode(t *testing.T) {
	client := NewClient(newFakeRunner(map[string]fakeResponse{
		"devices": {exitCode: 1},
	}))

	_, err := client.ListDevices(context.Background(), testConfiguration)

	var adbErr *Error
	require.True(t, errors.As(err, &adbErr))
	assert.Equal(t, KindBadExitCode, adbErr.Kind)
	require.NotNil(t, adbErr.ExitCode)
	assert.Equal(t, 1, *adbErr.ExitCode)
}

func TestListDevicesCannotRunProcess(t *testing.T) {
	client := NewClient(newFakeRunner(map[string]fakeResponse{
		"devices": {err: &process.SpawnError{Name: "adb", Err: errors.New("not found")}},
	}))

	_, err := client.ListDevices(context.Background(), testConfiguration)
	assert.True(t, IsKind(err, KindCannotRunProcess))
}

func TestListDevicesHeaderOnly(t *testing.T) {
	client := NewClient(newFakeRunner(map[string]fakeResponse{
		"devices": {stdout: "List of devices attached\n\n"},
	}))

	devices, err := client.ListDevices(context.Background(), testConfiguration)
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestListDevicesCorrelatesUSBAndNetwork(t *testing.T) {
	runner := newFakeRunner(map[string]fakeResponse{
		"devices": {stdout: "List of devices attached\nABC123\tdevice\n192.168.1.5:5555\tdevice\n10.0.0.9:5555\toffline\n"},
		"-s ABC123 shell ifconfig | grep inet": {stdout: "inet addr:127.0.0.1  Mask:255.0.0.0\ninet addr:192.168.1.5  Bcast:192.168.1.255\n"},
		"-s ABC123 shell getprop":              {stdout: pixelProps},
		"-s 192.168.1.5:5555 shell getprop":    {stdout: pixelProps},
		"-s 10.0.0.9:5555 shell getprop":       {exitCode: 1},
	})
	client := NewClient(runner)

	devices, err := client.ListDevices(context.Background(), testConfiguration)
	require.NoError(t, err)

	expected := []models.Device{
		{ID: "ABC123", Model: "Google Pixel 6", Alias: "192.168.1.5:5555", KnownIPs: []string{"192.168.1.5"}},
		{ID: "192.168.1.5:5555", IsRemote: true, Model: "Google Pixel 6", Alias: "ABC123", KnownIPs: []string{"192.168.1.5"}},
		{ID: "10.0.0.9:5555", IsRemote: true, IsOffline: true, KnownIPs: []string{"10.0.0.9"}},
	}
	if diff := cmp.Diff(expected, devices); diff != "" {
		t.Fatalf("unexpected devices (-want +got):\n%s", diff)
	}
	assert.False(t, runner.called("-s 192.168.1.5:5555 shell ifconfig | grep inet"))
}

func TestListDevicesSkipsMalformedLines(t *testing.T) {
	client := NewClient(newFakeRunner(map[string]fakeResponse{
		"devices":                           {stdout: "List of devices attached\r\nnot a device line\r\n192.168.1.5:5555\tdevice\r\n"},
		"-s 192.168.1.5:5555 shell getprop": {stdout: ""},
	}))

	devices, err := client.ListDevices(context.Background(), testConfiguration)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "192.168.1.5:5555", devices[0].ID)
	assert.Equal(t, "<Unknown>", devices[0].Model)
	assert.Empty(t, devices[0].Alias)
}

func TestListDevicesFailedInterfaceProbeKeepsDevice(t *testing.T) {
	client := NewClient(newFakeRunner(map[string]fakeResponse{
		"devices":                              {stdout: "List of devices attached\nABC123\tunauthorized\n"},
		"-s ABC123 shell ifconfig | grep inet": {exitCode: 1},
		"-s ABC123 shell getprop":              {err: process.ErrTimeout},
	}))

	devices, err := client.ListDevices(context.Background(), testConfiguration)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, models.Device{ID: "ABC123", KnownIPs: []string{}}, devices[0])
}

func TestListDevicesIsIdempotent(t *testing.T) {
	runner := newFakeRunner(map[string]fakeResponse{
		"devices":                              {stdout: "List of devices attached\nABC123\tdevice\n192.168.1.5:5555\tdevice\n"},
		"-s ABC123 shell ifconfig | grep inet": {stdout: "inet addr:192.168.1.5  Bcast:192.168.1.255\n"},
		"-s ABC123 shell getprop":              {stdout: pixelProps},
		"-s 192.168.1.5:5555 shell getprop":    {stdout: pixelProps},
	})
	client := NewClient(runner)

	first, err := client.ListDevices(context.Background(), testConfiguration)
	require.NoError(t, err)
	second, err := client.ListDevices(context.Background(), testConfiguration)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second))
}

func TestCorrelateFirstMatchWins(t *testing.T) {
	scans := []ScanResult{
		USBScan{ID: "USB1", Addrs: addrs("10.0.0.1", "192.168.1.5")},
		USBScan{ID: "USB2", Addrs: addrs("192.168.1.5")},
		NetworkScan{ID: "192.168.1.5:5555", Addr: addrs("192.168.1.5")[0]},
		NetworkScan{ID: "192.168.1.5:5556", Addr: addrs("192.168.1.5")[0]},
		NetworkScan{ID: "10.0.0.1:5555", Addr: addrs("10.0.0.1")[0]},
	}

	aliases := correlate(scans)

	assert.Equal(t, map[string]string{
		"USB1":             "10.0.0.1:5555",
		"10.0.0.1:5555":    "USB1",
		"USB2":             "192.168.1.5:5555",
		"192.168.1.5:5555": "USB2",
	}, aliases)
}

func TestCorrelateNoMatch(t *testing.T) {
	scans := []ScanResult{
		USBScan{ID: "USB1", Addrs: addrs("10.0.0.1")},
		NetworkScan{ID: "192.168.1.5:5555", Addr: addrs("192.168.1.5")[0]},
	}
	assert.Empty(t, correlate(scans))
}

func TestDeviceLines(t *testing.T) {
	assert.Nil(t, deviceLines(""))
	assert.Nil(t, deviceLines("List of devices attached\n"))
	assert.Equal(t, []string{"A\tdevice", "B\toffline"}, deviceLines("List of devices attached\nA\tdevice\n\nB\toffline\n\n"))
	// the first line is dropped whatever it says
	assert.Equal(t, []string{"B\tdevice"}, deviceLines("A\tdevice\nB\tdevice"))
}
