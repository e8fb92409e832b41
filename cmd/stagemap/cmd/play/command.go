// Package play provides the terminal player: the same month stepping,
// markers, heat, list and mini-chart as the browser view, drawn with
// bubbletea.
package play

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/internal/tui"
	"github.com/agentstation/stagemap/pkg/logging"
	"github.com/agentstation/stagemap/pkg/timeline"
)

// NewCommand creates the play command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the timeline in the terminal",
		Long: `Play opens a full-screen terminal view of the timeline.

Keys:
  space, p        play or pause
  left, right     previous or next month (stops playback)
  home, end       first or last month
  m               switch between points and heat
  +, -            faster or slower
  q               quit`,
		Example: `  stagemap play
  stagemap play --interval 400ms --log-file play.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			logFile, _ := cmd.Flags().GetString("log-file")

			logger := playLogger(logFile)
			m := NewModel(cmd.Context(), app, noColor, logger)

			err := tui.Run(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().String("log-file", "", "write logs to this file; the screen is taken by the player")

	return cmd
}

// NewModel loads the configured dataset and builds the player. A load
// failure yields a model in the error state rather than an error.
func NewModel(ctx context.Context, app application.Application, noColor bool, logger *zerolog.Logger) *tui.Model {
	opts := []tui.Option{
		tui.WithInterval(app.PlaybackInterval()),
		tui.WithHeat(app.HeatEnabled()),
		tui.WithNoColor(noColor),
		tui.WithLogger(logger),
	}

	doc, err := app.Document(ctx)
	if err != nil {
		logger.Error().Err(err).Str("source", app.DataSource()).Msg("Failed to load timeline")
		return tui.New(timeline.New(nil), append(opts, tui.WithLoadError(err))...)
	}
	return tui.New(doc.Build(), opts...)
}

func playLogger(path string) *zerolog.Logger {
	if path == "" {
		return logging.NewNopLogger()
	}
	cfg := logging.DefaultConfig()
	cfg.Format = "json"
	cfg.Output = path
	logger := logging.NewLoggerFromConfig(cfg)
	return &logger
}
