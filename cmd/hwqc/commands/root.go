// Package commands contains the cobra commands of the hwqc agent.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hwqc/hwqc/internal/cli"
	"github.com/hwqc/hwqc/internal/collector"
	"github.com/hwqc/hwqc/internal/collector/sysinfo"
	"github.com/hwqc/hwqc/internal/constants"
)

// snapshotCache is the collector surface the commands need.
type snapshotCache interface {
	Initialize(ctx context.Context) error
	Snapshot() (sysinfo.Snapshot, error)
	Shutdown() error
}

// App represents the application.
type App struct {
	cmd    *cobra.Command
	viper  *viper.Viper
	config appConfig

	// Factory seam for tests.
	newCollector func() snapshotCache

	quit  context.CancelFunc
	ready chan struct{}
}

// appConfig holds the configuration for the application.
type appConfig struct {
	Verbosity int

	// serve
	Addr string

	// show
	Pretty bool
	Output string
}

// New creates a new App instance with default values.
func New() (*App, error) {
	a := App{
		ready:        make(chan struct{}),
		newCollector: func() snapshotCache { return collector.New() },
	}

	a.cmd = &cobra.Command{
		Use:           constants.CmdName + " COMMAND",
		Short:         "Hardware QC snapshot agent",
		Long:          "hwqc collects hardware facts about the local machine and exposes them as one consistent JSON snapshot, printed once or pushed to a QC viewer over WebSocket.",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Command parsing has been successful. Returns to not print usage anymore.
			a.cmd.SilenceUsage = true
			cli.SetVerbosity(a.config.Verbosity) // Set verbosity before loading config
			if err := cli.InitViperConfig(constants.CmdName, a.cmd, a.viper); err != nil {
				return err
			}
			if err := a.viper.Unmarshal(&a.config); err != nil {
				return fmt.Errorf("unable to strictly decode configuration into struct: %w", err)
			}
			slog.Debug("got app config", "config", a.config)

			cli.SetVerbosity(a.config.Verbosity)
			return nil
		},
	}
	a.viper = viper.New()
	a.cmd.CompletionOptions.HiddenDefaultCmd = true

	installRootCmd(&a)
	cli.InstallConfigFlag(a.cmd)

	if err := a.viper.BindPFlags(a.cmd.PersistentFlags()); err != nil {
		return nil, err
	}

	installShowCmd(&a)
	installServeCmd(&a)

	return &a, nil
}

func installRootCmd(app *App) {
	cmd := app.cmd

	cmd.PersistentFlags().CountVarP(&app.config.Verbosity, "verbose", "v", "issue INFO (-v), DEBUG (-vv)")
}

// Run executes the command and associated process, returning an error if any.
func (a *App) Run() error {
	return a.cmd.Execute()
}

// UsageError returns if the error is a command parsing or runtime one.
func (a App) UsageError() bool {
	return !a.cmd.SilenceUsage
}

// Hup prints all goroutine stack traces and return false to signal you shouldn't quit.
func (a App) Hup() (shouldQuit bool) {
	buf := make([]byte, 1<<16)
	runtime.Stack(buf, true)
	fmt.Printf("%s", buf)
	return false
}

// Quit gracefully stops the running command.
func (a *App) Quit() {
	a.WaitReady()
	if a.quit != nil {
		a.quit()
	}
}

// WaitReady waits for the running command to have set up its components.
func (a *App) WaitReady() {
	<-a.ready
}

// RootCmd returns the root command.
func (a App) RootCmd() cobra.Command {
	return *a.cmd
}
