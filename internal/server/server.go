// Package server provides the HTTP server for a shared stagemap session:
// the map page, a REST API, and live snapshots over WebSocket and SSE.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap"
	"github.com/agentstation/stagemap/cmd/application"
	"github.com/agentstation/stagemap/internal/server/cache"
	"github.com/agentstation/stagemap/internal/server/command"
	"github.com/agentstation/stagemap/internal/server/events"
	"github.com/agentstation/stagemap/internal/server/events/adapters"
	"github.com/agentstation/stagemap/internal/server/middleware"
	"github.com/agentstation/stagemap/internal/server/sse"
	ws "github.com/agentstation/stagemap/internal/server/websocket"
	"github.com/agentstation/stagemap/pkg/logging"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app            application.Application
	player         stagemap.Player
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	rateLimiter    *middleware.RateLimiter
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	unsubscribe    func()

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startTime time.Time
}

// New creates a server for the app's shared session.
func New(ctx context.Context, app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}

	player, err := app.Player(ctx)
	if err != nil {
		return nil, err
	}

	s := &Server{
		app:    app,
		player: player,
		cache:  cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		broker: events.NewBroker(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.wsHub = ws.NewHub(logger,
		ws.WithCommandHandler(s.applyCommand),
		ws.WithGreeting(func() (ws.Message, bool) {
			return adapters.WebSocketMessage(s.currentEvent()), true
		}),
	)
	s.sseBroadcaster = sse.NewBroadcaster(logger, func() (sse.Event, bool) {
		return adapters.SSEEvent(s.currentEvent()), true
	})
	if cfg.RateLimit > 0 {
		s.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	s.broker.Subscribe(adapters.NewWebSocketSubscriber(s.wsHub))
	s.broker.Subscribe(adapters.NewSSESubscriber(s.sseBroadcaster))

	s.connectHooks()

	logger.Debug().
		Str("prefix", cfg.PathPrefix).
		Bool("control_key", cfg.ControlKey != "").
		Msg("Server instance created")
	return s, nil
}

// connectHooks publishes every session snapshot to the broker.
func (s *Server) connectHooks() {
	s.unsubscribe = s.player.OnChange(func(snap stagemap.Snapshot) {
		s.broker.Publish(events.StateChanged, snap.Version, snap)
	})
	s.logger.Debug().Msg("Session hooks connected to event broker")
}

// currentEvent wraps the latest snapshot as a broker event.
func (s *Server) currentEvent() events.Event {
	snap := s.player.Snapshot()
	return events.Event{
		Type:      events.StateChanged,
		Timestamp: time.Now(),
		Sequence:  snap.Version,
		Data:      snap,
	}
}

// applyCommand handles a command sent over a WebSocket connection.
func (s *Server) applyCommand(ctx context.Context, clientID string, payload []byte) error {
	c, err := command.Decode(payload)
	if err != nil {
		return err
	}
	ctx = logging.WithOperation(ctx, string(c.Type))
	logging.FromContext(ctx).Debug().Msg("WebSocket command")
	if err := command.Apply(ctx, s.player, c); err != nil {
		s.broker.Publish(events.CommandFailed, s.player.Snapshot().Version, map[string]any{
			"client_id": clientID,
			"command":   c.Type,
			"error":     err.Error(),
		})
		return err
	}
	return nil
}

// Start starts background services (broker, WebSocket hub, SSE broadcaster,
// rate limiter eviction).
func (s *Server) Start() {
	s.logger.Debug().Msg("Starting background services")

	services := []func(context.Context){
		s.broker.Run,
		s.wsHub.Run,
		s.sseBroadcaster.Run,
	}
	if s.rateLimiter != nil {
		services = append(services, s.rateLimiter.Run)
	}
	for _, run := range services {
		s.wg.Add(1)
		go func(run func(context.Context)) {
			defer s.wg.Done()
			run(s.ctx)
		}(run)
	}

	s.logger.Debug().Int("services", len(services)).Msg("All background services started")
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops background services and waits for them, bounded by ctx.
// The session itself belongs to the app and is not closed here.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")

	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("Background services shut down successfully")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
