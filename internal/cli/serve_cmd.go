package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/plangrid/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning store over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			router := api.BuildRouter(api.RouterDeps{
				ServiceName: "plangrid",
				Version:     Version,
				Store:       app.Store,
				Logger:      app.logger(),
				CORSOrigins: app.Config.HTTP.CORSOrigins,
			})
			return api.Serve(ctx, addr, router, app.logger())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.Config.HTTP.Addr, "Listen address")

	return cmd
}
