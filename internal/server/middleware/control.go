package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/stagemap/internal/server/response"
)

// ControlKeyHeader carries the key that authorizes session commands.
const ControlKeyHeader = "X-Control-Key"

// ControlKey requires key on requests that change the shared session.
// Reads stay public so kiosk viewers need no credentials. An empty key
// disables the check.
func ControlKey(key string, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isCommand(r) {
				next.ServeHTTP(w, r)
				return
			}

			provided := extractKey(r)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("key_provided", provided != "").
					Msg("Control key rejected")
				response.Unauthorized(w, "Invalid or missing control key", "Provide the key in the "+ControlKeyHeader+" header")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// isCommand reports whether r can change the session. WebSocket upgrades
// count because the socket accepts commands.
func isCommand(r *http.Request) bool {
	if r.Method == http.MethodPost {
		return true
	}
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

func extractKey(r *http.Request) string {
	if key := r.Header.Get(ControlKeyHeader); key != "" {
		return key
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	// browsers cannot set headers on WebSocket upgrades
	return r.URL.Query().Get("key")
}
