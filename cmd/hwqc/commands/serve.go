package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/ubuntu/decorate"

	"github.com/hwqc/hwqc/internal/bridge"
	"github.com/hwqc/hwqc/internal/constants"
)

func installServeCmd(app *App) {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Push hardware snapshots to a QC viewer",
		Long:  "Serve hardware snapshots over a local WebSocket endpoint. Every connected viewer gets one snapshot immediately, then periodic refreshes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.cmd.SilenceUsage = true

			return app.serve()
		},
	}

	serveCmd.Flags().StringVarP(&app.config.Addr, "addr", "a", constants.DefaultBridgeAddr, "listen address of the snapshot bridge")

	app.cmd.AddCommand(serveCmd)
}

func (a *App) serve() (err error) {
	defer decorate.OnError(&err, "bridge failed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.quit = cancel
	close(a.ready)

	c := a.newCollector()
	if err := c.Initialize(ctx); err != nil {
		return err
	}
	defer func() {
		if sErr := c.Shutdown(); sErr != nil {
			slog.Warn("Failed to shut down collector", "error", sErr)
		}
	}()

	return bridge.New(c, a.config.Addr).Serve(ctx)
}
