package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/shamanec/umdb/adb"
	"github.com/shamanec/umdb/config"
	_ "github.com/shamanec/umdb/docs"
	"github.com/shamanec/umdb/iosdevice"
	"github.com/shamanec/umdb/logger"
	"github.com/shamanec/umdb/mdns"
	"github.com/shamanec/umdb/models"
	"github.com/shamanec/umdb/process"
	"github.com/shamanec/umdb/router"
	"github.com/shamanec/umdb/state"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var (
	serveHost string
	servePort int
	noLogs    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration, err := loadConfiguration()
		if err != nil {
			return err
		}

		umdb := state.New()
		umdb.Configuration = configuration
		umdb.EnableLogs = !noLogs
		logger.UmdbLogger.SetEnabled(umdb.EnableLogs)
		handle := state.NewHandle(umdb)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if configPath != "" {
			go watchConfiguration(ctx, handle)
		}

		handler := router.HandleRequests(router.Dependencies{
			State:      handle,
			ADB:        adb.NewClient(process.NewShellRunner()),
			IOS:        iosdevice.NewLister(),
			Browse:     mdns.Browse,
			ConfigPath: configPath,
		})

		address := net.JoinHostPort(serveHost, strconv.Itoa(servePort))
		server := &http.Server{Addr: address, Handler: handler}

		serveErr := make(chan error, 1)
		go func() {
			serveErr <- server.ListenAndServe()
		}()
		logger.UmdbLogger.LogInfo("umdb_serve", fmt.Sprintf("Listening on %s", address))

		select {
		case err := <-serveErr:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-ctx.Done():
			logger.UmdbLogger.LogInfo("umdb_serve", "Shutting down")
		case fatal := <-handle.Fatal():
			logger.UmdbLogger.LogError("umdb_serve", fmt.Sprintf("Shutting down on poisoned state - %s\n%s", fatal.Reason, fatal.Stack))
			err = fatal
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
		return err
	},
}

// Apply configuration file edits to the running state, --adb keeps precedence
func watchConfiguration(ctx context.Context, handle *state.Handle) {
	err := config.Watch(ctx, configPath, func(configuration models.Configuration) {
		if adbCommand != "" {
			configuration.AdbCommand = adbCommand
		}
		if err := handle.SetConfiguration(configuration); err != nil {
			logger.UmdbLogger.LogError("config_watch", fmt.Sprintf("Could not apply configuration - %s", err))
			return
		}
		logger.UmdbLogger.LogInfo("config_watch", fmt.Sprintf("Configuration reloaded, adb command `%s`", configuration.AdbCommand))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.UmdbLogger.LogError("config_watch", fmt.Sprintf("Stopped watching `%s` - %s", configPath, err))
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "address to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "port to listen on")
	serveCmd.Flags().BoolVar(&noLogs, "no-logs", false, "only log errors")
	rootCmd.AddCommand(serveCmd)
}
