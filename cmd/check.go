package cmd

import (
	"errors"
	"fmt"

	"github.com/shamanec/umdb/adb"
	"github.com/shamanec/umdb/process"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check that an executable is adb",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			configuration, err := loadConfiguration()
			if err != nil {
				return err
			}
			path = configuration.AdbCommand
		}
		if path == "" {
			return errors.New("no adb executable given, pass a path or set --adb or --config")
		}

		if err := adb.NewClient(process.NewShellRunner()).CheckExecutable(cmd.Context(), path); err != nil {
			return err
		}
		fmt.Printf("`%s` is a usable adb executable\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
