package adb

import (
	"fmt"
	"net"
	"net/netip"
	"regexp"
	"strconv"
	"strings"
)

// ScanResult is one parsed row of `adb devices`, either a NetworkScan or a USBScan
type ScanResult interface {
	DeviceID() string
	scanResult()
}

// NetworkScan is a device attached over TCP/IP, identified by `address:port`
type NetworkScan struct {
	ID      string
	Addr    netip.Addr
	Offline bool
}

// USBScan is a device attached over USB with the addresses found on its interfaces
type USBScan struct {
	ID    string
	Addrs []netip.Addr
}

func (s NetworkScan) DeviceID() string { return s.ID }
func (s USBScan) DeviceID() string     { return s.ID }

func (NetworkScan) scanResult() {}
func (USBScan) scanResult()     {}

type lineRow struct {
	id    string
	state string
}

// Split a row of `adb devices` output into identifier and state
func splitDeviceLine(line string) (lineRow, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return lineRow{}, newError(OpListDevices, KindUnrecognizedDebugBridgeOutput, fmt.Sprintf("unexpected device line `%s`", line))
	}
	return lineRow{id: fields[0], state: strings.TrimSpace(fields[1])}, nil
}

// Classify an identifier as a network endpoint `address:port`
func parseNetworkID(id string) (netip.Addr, bool) {
	host, port, err := net.SplitHostPort(id)
	if err != nil {
		return netip.Addr{}, false
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

var inetLinePattern = regexp.MustCompile(`inet6?\s+(?:addr:\s*)?\[?([0-9A-Fa-f.:]+)\]?`)

// Extract the non-loopback addresses from `ifconfig | grep inet` output
func parseInterfaceAddresses(output string) []netip.Addr {
	var addrs []netip.Addr
	seen := make(map[netip.Addr]bool)

	for _, line := range strings.Split(output, "\n") {
		match := inetLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		addr, err := netip.ParseAddr(match[1])
		if err != nil {
			continue
		}
		addr = addr.Unmap()
		if addr.IsLoopback() || addr.IsUnspecified() || seen[addr] {
			continue
		}
		seen[addr] = true
		addrs = append(addrs, addr)
	}

	return addrs
}
