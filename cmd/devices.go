package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shamanec/umdb/adb"
	"github.com/shamanec/umdb/iosdevice"
	"github.com/shamanec/umdb/models"
	"github.com/shamanec/umdb/process"
	"github.com/spf13/cobra"
)

var (
	devicesSystem string
	devicesJSON   bool
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		system, err := models.ParseSystem(devicesSystem)
		if err != nil {
			return err
		}

		var devices []models.Device
		if system == models.SystemIOS {
			devices, err = iosdevice.NewLister().ListDevices()
		} else {
			var configuration models.Configuration
			configuration, err = loadConfiguration()
			if err != nil {
				return err
			}
			devices, err = adb.NewClient(process.NewShellRunner()).ListDevices(cmd.Context(), configuration)
		}
		if err != nil {
			return err
		}

		if devicesJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(devices)
		}

		if len(devices) == 0 {
			fmt.Println("No devices connected.")
			return nil
		}
		for _, d := range devices {
			status := "online"
			if d.IsOffline {
				status = "OFFLINE"
			}
			connType := "usb"
			if d.IsRemote {
				connType = "tcp"
			}
			alias := ""
			if d.Alias != "" {
				alias = fmt.Sprintf(" (alias %s)", d.Alias)
			}

			fmt.Printf("%-24s %s  [%s] [%s]%s\n", d.ID, d.Model, connType, status, alias)
			if len(d.KnownIPs) > 0 {
				fmt.Printf("  IPs: %s\n", strings.Join(d.KnownIPs, ", "))
			}
		}
		return nil
	},
}

func init() {
	devicesCmd.Flags().StringVar(&devicesSystem, "system", "android", "android or ios")
	devicesCmd.Flags().BoolVar(&devicesJSON, "json", false, "print the listing as JSON")
	rootCmd.AddCommand(devicesCmd)
}
