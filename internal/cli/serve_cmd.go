package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var host string
	var port uint

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := app.Logger
			if logger == nil {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			}

			if n, err := app.Auth.PurgeExpired(ctx); err != nil {
				return fmt.Errorf("purging expired tokens: %w", err)
			} else if n > 0 {
				logger.Info("purged expired tokens", "count", n)
			}

			server := api.New(logger, api.Services{
				Employees:  app.Employees,
				Auth:       app.Auth,
				Timesheets: app.Timesheets,
			}).WithHost(host).WithPort(port).WithRealm(app.Config.Realm)

			return server.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", app.Config.Host, "Interface to listen on")
	cmd.Flags().UintVar(&port, "port", app.Config.Port, "Port to listen on")

	return cmd
}
