package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/stagemap/cmd/stagemap/cmd/build"
	"github.com/agentstation/stagemap/cmd/stagemap/cmd/classify"
	"github.com/agentstation/stagemap/cmd/stagemap/cmd/export"
	"github.com/agentstation/stagemap/cmd/stagemap/cmd/months"
	"github.com/agentstation/stagemap/cmd/stagemap/cmd/play"
	"github.com/agentstation/stagemap/cmd/stagemap/cmd/report"
	"github.com/agentstation/stagemap/cmd/stagemap/cmd/serve"
)

func (a *App) registerCommands(rootCmd *cobra.Command) {
	core := []*cobra.Command{
		serve.NewCommand(a),
		play.NewCommand(a),
		months.NewCommand(a),
	}
	for _, c := range core {
		c.GroupID = "core"
		rootCmd.AddCommand(c)
	}

	tools := []*cobra.Command{
		build.NewCommand(a),
		classify.NewCommand(a),
		export.NewCommand(a),
		report.NewCommand(a),
	}
	for _, c := range tools {
		c.GroupID = "tools"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(a.newVersionCommand())
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("stagemap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
