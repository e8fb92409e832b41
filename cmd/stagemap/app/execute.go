package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/stagemap/internal/cmd/output"
	"github.com/agentstation/stagemap/pkg/errors"
)

// Execute runs the CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "stagemap",
		Short:   "Monthly map of premieres, performances and funerals",
		Version: a.version,
		Long: `Stagemap plays back a monthly timeline of geolocated events on a map.

Each month shows its events as category-colored markers or as a heat layer,
with an event list and a mini bar chart of monthly totals. Playback steps
through the months at a fixed cadence and stops on the last one.

Run "stagemap serve" for the browser view or "stagemap play" in a terminal.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "tools", Title: "Data Commands:"})

	c := a.config
	fs := rootCmd.PersistentFlags()
	fs.String("config", "", "config file (default is $HOME/.stagemap.yaml)")
	fs.BoolP("verbose", "v", c.Verbose, "verbose output (shortcut for --log-level=debug)")
	fs.BoolP("quiet", "q", c.Quiet, "minimal output (shortcut for --log-level=warn)")
	fs.Bool("no-color", c.NoColor, "disable colored output")
	fs.StringP("format", "o", c.Format, "output format: table, json, yaml")
	fs.String("log-level", c.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	fs.StringP("data", "d", c.DataSource, "timeline document path or URL")
	fs.Duration("interval", c.PlaybackInterval, "time spent on each month during playback")
	fs.Bool("heat", c.HeatEnabled, "offer the heat view mode")

	rootCmd.SetVersionTemplate("stagemap {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand runs before every command so flag values win over the
// config file and environment.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	fs := cmd.Flags()

	if fs.Changed("config") {
		path, err := fs.GetString("config")
		if err != nil {
			return err
		}
		config, err := LoadConfig(path)
		if err != nil {
			return err
		}
		a.config = config
	}

	if err := a.config.ApplyFlags(fs); err != nil {
		return err
	}

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return errors.WrapValidation("format", err)
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(errorMessage(err) + "\n")
		os.Exit(1)
	}
}

// errorMessage is the line printed for a failed command.
func errorMessage(err error) string {
	if errors.IsNoData(err) {
		return err.Error() + ": the dataset has no months, create one with `stagemap build`"
	}
	return err.Error()
}
