package adb

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/shamanec/umdb/logger"
	"github.com/shamanec/umdb/models"
	"golang.org/x/sync/errgroup"
)

// ListDevices enumerates the devices known to adb, probes their models and
// pairs USB devices with their network counterparts.
func (c *Client) ListDevices(ctx context.Context, configuration models.Configuration) ([]models.Device, error) {
	adb, err := adbCommand(OpListDevices, configuration)
	if err != nil {
		return nil, err
	}
	ctx = detached(ctx)

	output, err := c.Runner.Run(ctx, adb, []string{"devices"}, 0)
	if err != nil {
		return nil, runFailure(OpListDevices, err)
	}
	if !output.Success() {
		return nil, badExitCode(OpListDevices, output.ExitCode)
	}

	lines := deviceLines(string(output.Stdout))
	scans := c.scanLines(ctx, adb, lines)
	deviceModels := c.fetchModels(ctx, adb, scans)
	aliases := correlate(scans)

	devices := make([]models.Device, 0, len(scans))
	for i, scan := range scans {
		devices = append(devices, buildDevice(scan, deviceModels[i], aliases))
	}

	logger.UmdbLogger.LogDebug("list_devices", fmt.Sprintf("Enumerated %d devices from %d lines", len(devices), len(lines)))
	return devices, nil
}

// Data lines of `adb devices` output, the header line is always dropped
func deviceLines(stdout string) []string {
	rows := strings.Split(strings.TrimRight(stdout, "\r\n\t "), "\n")
	if len(rows) <= 1 {
		return nil
	}

	var lines []string
	for _, row := range rows[1:] {
		row = strings.TrimRight(row, "\r")
		if strings.TrimSpace(row) == "" {
			continue
		}
		lines = append(lines, row)
	}
	return lines
}

// Parse every line concurrently, malformed lines are logged and skipped
func (c *Client) scanLines(ctx context.Context, adb string, lines []string) []ScanResult {
	results := make([]ScanResult, len(lines))

	var group errgroup.Group
	for i, line := range lines {
		i, line := i, line
		group.Go(func() error {
			result, err := c.scanLine(ctx, adb, line)
			if err != nil {
				logger.UmdbLogger.LogWarn("list_devices", fmt.Sprintf("Skipping device line - %s", err))
				return nil
			}
			results[i] = result
			return nil
		})
	}
	group.Wait()

	scans := make([]ScanResult, 0, len(results))
	for _, result := range results {
		if result != nil {
			scans = append(scans, result)
		}
	}
	return scans
}

func (c *Client) scanLine(ctx context.Context, adb, line string) (ScanResult, error) {
	row, err := splitDeviceLine(line)
	if err != nil {
		return nil, err
	}

	if addr, ok := parseNetworkID(row.id); ok {
		return NetworkScan{
			ID:      row.id,
			Addr:    addr,
			Offline: strings.HasPrefix(row.state, "offline"),
		}, nil
	}

	return USBScan{ID: row.id, Addrs: c.probeAddresses(ctx, adb, row.id)}, nil
}

// Addresses of the device network interfaces, empty when the probe fails
func (c *Client) probeAddresses(ctx context.Context, adb, id string) []netip.Addr {
	output, err := c.Runner.Run(ctx, adb, []string{"-s", id, "shell", "ifconfig | grep inet"}, 0)
	if err != nil {
		logger.UmdbLogger.LogWarn("list_devices", fmt.Sprintf("Could not probe network interfaces of device `%s` - %s", id, err))
		return nil
	}
	if !output.Success() {
		logger.UmdbLogger.LogDebug("list_devices", fmt.Sprintf("Interface probe of device `%s` exited with %d", id, output.ExitCode))
		return nil
	}
	return parseInterfaceAddresses(string(output.Stdout))
}

// Fetch the model of every scanned device concurrently, an empty string marks a failed probe
func (c *Client) fetchModels(ctx context.Context, adb string, scans []ScanResult) []string {
	deviceModels := make([]string, len(scans))

	var group errgroup.Group
	for i, scan := range scans {
		i, id := i, scan.DeviceID()
		group.Go(func() error {
			model, err := c.fetchModel(ctx, adb, id)
			if err != nil {
				logger.UmdbLogger.LogWarn("list_devices", fmt.Sprintf("Could not get model of device `%s` - %s", id, err))
				return nil
			}
			deviceModels[i] = model
			return nil
		})
	}
	group.Wait()

	return deviceModels
}

func (c *Client) fetchModel(ctx context.Context, adb, id string) (string, error) {
	output, err := c.Runner.Run(ctx, adb, []string{"-s", id, "shell", "getprop"}, 0)
	if err != nil {
		return "", err
	}
	if !output.Success() {
		return "", fmt.Errorf("getprop exited with %d", output.ExitCode)
	}
	return modelName(parseProperties(string(output.Stdout))), nil
}

// Build the symmetric alias table between USB serials and network endpoints.
// The first matching address wins and a device takes part in at most one pair.
func correlate(scans []ScanResult) map[string]string {
	networkByAddr := make(map[netip.Addr]string)
	for _, scan := range scans {
		if network, ok := scan.(NetworkScan); ok {
			if _, exists := networkByAddr[network.Addr]; !exists {
				networkByAddr[network.Addr] = network.ID
			}
		}
	}

	aliases := make(map[string]string)
	for _, scan := range scans {
		usb, ok := scan.(USBScan)
		if !ok {
			continue
		}
		if _, aliased := aliases[usb.ID]; aliased {
			continue
		}
		for _, addr := range usb.Addrs {
			networkID, found := networkByAddr[addr]
			if !found {
				continue
			}
			if _, aliased := aliases[networkID]; aliased {
				continue
			}
			aliases[usb.ID] = networkID
			aliases[networkID] = usb.ID
			break
		}
	}

	return aliases
}

func buildDevice(scan ScanResult, model string, aliases map[string]string) models.Device {
	device := models.Device{
		ID:       scan.DeviceID(),
		Model:    model,
		Alias:    aliases[scan.DeviceID()],
		KnownIPs: []string{},
	}

	switch scan := scan.(type) {
	case NetworkScan:
		device.IsRemote = true
		device.IsOffline = scan.Offline
		device.KnownIPs = append(device.KnownIPs, scan.Addr.String())
	case USBScan:
		for _, addr := range scan.Addrs {
			device.KnownIPs = append(device.KnownIPs, addr.String())
		}
	}

	return device
}
