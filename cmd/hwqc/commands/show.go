package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/ubuntu/decorate"

	"github.com/hwqc/hwqc/internal/fileutils"
)

func installShowCmd(app *App) {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print one hardware snapshot",
		Long:  "Collect one complete hardware snapshot and print it as JSON to stdout, or write it to a file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.cmd.SilenceUsage = true

			return app.show()
		},
	}

	showCmd.Flags().BoolVarP(&app.config.Pretty, "pretty", "p", false, "indent the JSON output")
	showCmd.Flags().StringVarP(&app.config.Output, "output", "o", "", "write the snapshot to a file instead of stdout")

	app.cmd.AddCommand(showCmd)
}

func (a *App) show() (err error) {
	defer decorate.OnError(&err, "failed to collect snapshot")

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

	snap, err := c.Snapshot()
	if err != nil {
		return err
	}

	var data []byte
	if a.config.Pretty {
		data, err = json.MarshalIndent(snap, "", "  ")
	} else {
		data, err = json.Marshal(snap)
	}
	if err != nil {
		return err
	}

	if a.config.Output != "" {
		return fileutils.AtomicWrite(a.config.Output, append(data, '\n'))
	}

	_, err = fmt.Fprintln(a.cmd.OutOrStdout(), string(data))
	return err
}
