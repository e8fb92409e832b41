// Package handlers implements the stagemap HTTP API.
package handlers

import (
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap"
	"github.com/agentstation/stagemap/internal/server/cache"
	"github.com/agentstation/stagemap/internal/server/sse"
	ws "github.com/agentstation/stagemap/internal/server/websocket"
	"github.com/agentstation/stagemap/internal/web"
)

// Handlers holds what the endpoints need.
type Handlers struct {
	player         stagemap.Player
	cache          *cache.Cache
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	page           web.PageConfig
	version        string
	logger         *zerolog.Logger
}

// New creates the handlers.
func New(
	player stagemap.Player,
	cache *cache.Cache,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	page web.PageConfig,
	version string,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		player:         player,
		cache:          cache,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		page:           page,
		version:        version,
		logger:         logger,
	}
}
