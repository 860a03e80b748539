package iosdevice

import (
	"fmt"

	"github.com/danielpaulus/go-ios/ios"
	"github.com/shamanec/umdb/adb"
	"github.com/shamanec/umdb/logger"
	"github.com/shamanec/umdb/models"
	"golang.org/x/sync/errgroup"
)

const unknownModel = "<Unknown>"

// Lister enumerates iOS devices through usbmuxd
type Lister struct {
	listDevices func() (ios.DeviceList, error)
	values      func(ios.DeviceEntry) (map[string]interface{}, error)
}

func NewLister() *Lister {
	return &Lister{
		listDevices: ios.ListDevices,
		values:      ios.GetValuesPlist,
	}
}

// ListDevices returns the connected iOS devices with their product type as model
func (l *Lister) ListDevices() ([]models.Device, error) {
	deviceList, err := l.listDevices()
	if err != nil {
		logger.UmdbLogger.LogError("list_ios_devices", fmt.Sprintf("Could not get connected iOS devices with go-ios - %s", err))
		return nil, &adb.Error{Op: adb.OpListDevices, Kind: adb.KindDeviceServiceUnavailable, Message: err.Error()}
	}

	entries := uniqueEntries(deviceList.DeviceList)
	deviceModels := make([]string, len(entries))

	var group errgroup.Group
	for i, entry := range entries {
		i, entry := i, entry
		group.Go(func() error {
			values, err := l.values(entry)
			if err != nil {
				logger.UmdbLogger.LogWarn("list_ios_devices", fmt.Sprintf("Could not get plist values of device `%s` - %s", entry.Properties.SerialNumber, err))
				return nil
			}
			deviceModels[i] = modelName(values)
			return nil
		})
	}
	group.Wait()

	devices := make([]models.Device, 0, len(entries))
	for i, entry := range entries {
		devices = append(devices, models.Device{
			ID:       entry.Properties.SerialNumber,
			IsRemote: entry.Properties.ConnectionType == "Network",
			Model:    deviceModels[i],
			KnownIPs: []string{},
		})
	}
	return devices, nil
}

// usbmuxd reports a device once per connection type, keep the first
func uniqueEntries(entries []ios.DeviceEntry) []ios.DeviceEntry {
	seen := make(map[string]bool)
	var unique []ios.DeviceEntry
	for _, entry := range entries {
		serial := entry.Properties.SerialNumber
		if serial == "" || seen[serial] {
			continue
		}
		seen[serial] = true
		unique = append(unique, entry)
	}
	return unique
}

func modelName(values map[string]interface{}) string {
	productType, ok := values["ProductType"].(string)
	if !ok || productType == "" {
		return unknownModel
	}
	return "Apple " + productType
}
