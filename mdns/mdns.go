package mdns

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/shamanec/umdb/logger"
	"github.com/shamanec/umdb/models"
)

// Service type adb advertises for wireless debugging connections
const ConnectService = "_adb-tls-connect._tcp"

const DefaultBrowseTimeout = 2 * time.Second

// Browse collects the endpoints advertising service until timeout elapses
func Browse(ctx context.Context, service string, timeout time.Duration) ([]models.ServiceEndpoint, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("create mdns resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry, 10)
	collected := make(chan []models.ServiceEndpoint, 1)
	go func() {
		collected <- collect(ctx, entries)
	}()

	if err := resolver.Browse(ctx, service, "local.", entries); err != nil {
		return nil, fmt.Errorf("browse %s: %w", service, err)
	}
	<-ctx.Done()

	endpoints := <-collected
	logger.UmdbLogger.LogDebug("mdns_browse", fmt.Sprintf("Found %d `%s` endpoints", len(endpoints), service))
	return endpoints, nil
}

// Drain entries until ctx is done or the channel is closed, one endpoint per instance
func collect(ctx context.Context, entries <-chan *zeroconf.ServiceEntry) []models.ServiceEndpoint {
	byInstance := make(map[string]models.ServiceEndpoint)
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case entry, ok := <-entries:
			if !ok {
				break loop
			}
			endpoint := toEndpoint(entry)
			if _, exists := byInstance[endpoint.Instance]; !exists {
				byInstance[endpoint.Instance] = endpoint
			}
		}
	}

	endpoints := make([]models.ServiceEndpoint, 0, len(byInstance))
	for _, endpoint := range byInstance {
		endpoints = append(endpoints, endpoint)
	}
	sort.Slice(endpoints, func(i, j int) bool {
		return endpoints[i].Instance < endpoints[j].Instance
	})
	return endpoints
}

func toEndpoint(entry *zeroconf.ServiceEntry) models.ServiceEndpoint {
	endpoint := models.ServiceEndpoint{
		Instance:  entry.Instance,
		Host:      strings.TrimSuffix(entry.HostName, "."),
		Port:      entry.Port,
		Addresses: []string{},
	}
	for _, ips := range [][]net.IP{entry.AddrIPv4, entry.AddrIPv6} {
		for _, ip := range ips {
			endpoint.Addresses = append(endpoint.Addresses, ip.String())
		}
	}
	return endpoint
}
