package server

import (
	"net/http"

	"github.com/agentstation/stagemap/internal/server/handlers"
	"github.com/agentstation/stagemap/internal/server/middleware"
	"github.com/agentstation/stagemap/internal/web"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	page := web.DefaultPageConfig(s.config.PathPrefix)
	page.ControlKeyRequired = s.config.ControlKey != ""

	h := handlers.New(
		s.player,
		s.cache,
		s.wsHub,
		s.sseBroadcaster,
		s.upgrader,
		page,
		s.app.Version(),
		s.logger,
	)

	s.registerRoutes(mux, h)
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Page
	mux.HandleFunc("GET /{$}", h.HandleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", web.Static()))

	// Health
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Timeline and session state
	mux.HandleFunc("GET "+prefix+"/timeline", h.HandleTimeline)
	mux.HandleFunc("GET "+prefix+"/months/{i}", h.HandleMonth)
	mux.HandleFunc("GET "+prefix+"/months/{i}/list", h.HandleMonthList)
	mux.HandleFunc("GET "+prefix+"/state", h.HandleState)

	// Commands
	mux.HandleFunc("POST "+prefix+"/select", h.HandleSelect)
	mux.HandleFunc("POST "+prefix+"/mode", h.HandleMode)
	mux.HandleFunc("POST "+prefix+"/playback/play", h.HandlePlay)
	mux.HandleFunc("POST "+prefix+"/playback/pause", h.HandlePause)
	mux.HandleFunc("POST "+prefix+"/playback/speed", h.HandleSpeed)

	// Rendered views
	mux.HandleFunc("GET "+prefix+"/minichart.svg", h.HandleMiniChart)
	mux.HandleFunc("GET "+prefix+"/heat.geojson", h.HandleHeatGeoJSON)

	// Real-time
	mux.HandleFunc("GET "+prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc("GET "+prefix+"/updates/stream", h.HandleSSE)
}

// applyMiddleware wraps handler with the middleware chain. The first
// middleware listed runs outermost.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		}
		chain = append(chain, middleware.CORS(corsConfig))
	}

	chain = append(chain, middleware.ControlKey(cfg.ControlKey, s.logger))

	if s.rateLimiter != nil {
		chain = append(chain, middleware.RateLimit(s.rateLimiter))
	}

	return middleware.Chain(chain...)(handler)
}
