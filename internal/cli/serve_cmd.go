package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/mindwell/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring and template HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Config.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(app.Templates, app.Assessments, app.logger(), app.Config.CORSOrigins)
			return srv.Run(ctx, addr, app.Config.ShutdownTimeout())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from MINDWELL_ADDR or :8080)")
	return cmd
}
