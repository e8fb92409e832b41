// Package serve provides the HTTP server command: the browser map view, the
// REST API and live snapshots for one shared session.
package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/internal/cmd/emoji"
	"github.com/agentstation/stagemap/internal/server"
	"github.com/agentstation/stagemap/pkg/constants"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Serve the map view with a REST API, WebSocket and SSE",
		Long: `Start an HTTP server for one shared presentation session.

Every connected browser sees the same month, mode and playback state.

Endpoints:
  - /                          map page (markers or heat, list, mini-chart)
  - /api/v1/timeline           summary of the loaded dataset
  - /api/v1/months/{i}         events of one month
  - /api/v1/select, /mode      change the session
  - /api/v1/playback/...       play, pause, speed
  - /api/v1/updates/ws         WebSocket snapshots and commands
  - /api/v1/updates/stream     Server-Sent Events snapshots

Environment Variables:
  HTTP_PORT              - Override --port
  HTTP_HOST              - Override --host
  STAGEMAP_CONTROL_KEY   - Default for --control-key`,
		Example: `  # Serve the default dataset on port 8080
  stagemap serve

  # Serve a remote dataset, open to any origin
  stagemap serve --data https://example.com/events_timeline.json --cors

  # Require a key for session changes
  stagemap serve --control-key s3cret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, app)
		},
	}

	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")

	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")

	cmd.Flags().String("control-key", os.Getenv("STAGEMAP_CONTROL_KEY"), "Key required to change the session (empty to disable)")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Commands per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "Rendered payload cache TTL")

	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout (0 keeps streams open)")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

func runServer(cmd *cobra.Command, app application.Application) error {
	cfg, err := parseConfig(cmd)
	if err != nil {
		return err
	}
	logger := app.Logger()

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Str("prefix", cfg.PathPrefix).
		Str("data", app.DataSource()).
		Bool("cors", cfg.CORSEnabled).
		Bool("control_key", cfg.ControlKey != "").
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting server")

	srv, err := server.New(cmd.Context(), app, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	return serve(cmd.Context(), ln, srv, cfg, logger, cmd.OutOrStdout())
}

// serve runs srv on ln until ctx is cancelled, then drains connections and
// stops background services.
func serve(ctx context.Context, ln net.Listener, srv *server.Server, cfg server.Config, logger *zerolog.Logger, out io.Writer) error {
	srv.Start()

	httpServer := &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
		_, _ = fmt.Fprintf(out, "%s Stage map on http://%s/\n", emoji.Play, ln.Addr())
		_, _ = fmt.Fprintln(out, "   Press Ctrl+C to stop")

		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutdown signal received")
		_, _ = fmt.Fprintf(out, "\n%s Shutting down...\n", emoji.Stop)

		// The parent context is already cancelled here.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}

		logger.Info().Msg("Server stopped gracefully")
		_, _ = fmt.Fprintf(out, "%s Server stopped\n", emoji.Success)
		return nil
	})

	return g.Wait()
}

// parseConfig reads command flags into server configuration. HTTP_PORT and
// HTTP_HOST apply when the matching flag was not given.
func parseConfig(cmd *cobra.Command) (server.Config, error) {
	cfg := server.Config{
		Port:         mustGetInt(cmd, "port"),
		Host:         mustGetString(cmd, "host"),
		PathPrefix:   mustGetString(cmd, "prefix"),
		CORSEnabled:  mustGetBool(cmd, "cors"),
		CORSOrigins:  mustGetStringSlice(cmd, "cors-origins"),
		ControlKey:   mustGetString(cmd, "control-key"),
		RateLimit:    mustGetInt(cmd, "rate-limit"),
		CacheTTL:     mustGetDuration(cmd, "cache-ttl"),
		ReadTimeout:  mustGetDuration(cmd, "read-timeout"),
		WriteTimeout: mustGetDuration(cmd, "write-timeout"),
		IdleTimeout:  mustGetDuration(cmd, "idle-timeout"),
	}

	if envPort := os.Getenv("HTTP_PORT"); envPort != "" && !cmd.Flags().Changed("port") {
		p, err := parsePort(envPort)
		if err != nil {
			return cfg, err
		}
		cfg.Port = p
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" && !cmd.Flags().Changed("host") {
		cfg.Host = envHost
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	return cfg, nil
}

// parsePort parses a port string, rejecting values outside 1-65535.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", portStr)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}

// The mustGet helpers read flags defined in this package; a failure is a
// programming error.

func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}
