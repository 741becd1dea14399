package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/maxuni/miniapp-backend/internal/middleware"
	"github.com/maxuni/miniapp-backend/internal/response"
	"github.com/maxuni/miniapp-backend/internal/worker"
	ws "github.com/maxuni/miniapp-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// RefreshFeed is the part of the preloader the stream talks to.
type RefreshFeed interface {
	OnRefreshed(userID int64, fn func()) (unsubscribe func())
	LastResult(userID int64) (worker.PassResult, bool)
	Visibility() *worker.Hub
}

// WSHandler streams refresh notifications and receives visibility changes.
type WSHandler struct {
	feed     RefreshFeed
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(feed RefreshFeed, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		feed:     feed,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// Stream godoc
// WS /ws/v1/stream?token=
// Pushes "refreshed" after every completed preload pass of the user.
// A "visible" action wakes the user's refresh loop.
func (h *WSHandler) Stream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	userID := claims.UserID
	wsLog := h.log.With().Int64("user_id", userID).Logger()
	wsLog.Info().Msg("Client connected")

	// A single writer goroutine owns the connection's write side.
	out := make(chan any, 8)
	done := make(chan struct{})
	defer close(done)

	unsubscribe := h.feed.OnRefreshed(userID, func() {
		res, _ := h.feed.LastResult(userID)
		enqueue(out, done, ws.RefreshedEvent{
			Event:      ws.EventRefreshed,
			Failed:     res.Failed,
			FinishedAt: res.FinishedAt,
		})
	})
	defer unsubscribe()

	go func() {
		for {
			select {
			case <-done:
				return
			case msg := <-out:
				if err := ws.WriteTyped(conn, msg); err != nil {
					wsLog.Debug().Err(err).Msg("Write failed")
					return
				}
			}
		}
	}()

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionVisible:
			n := h.feed.Visibility().Publish(userID)
			wsLog.Debug().Int("listeners", n).Msg("Client visible")
		case ws.ActionPing:
			enqueue(out, done, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			enqueue(out, done, ws.ErrorResponse{Event: ws.EventError, Error: "unknown action: " + string(msg.Action)})
		}
	}
}

// enqueue hands msg to the writer, dropping it when the connection is gone
// or the writer is stuck.
func enqueue(out chan<- any, done <-chan struct{}, msg any) {
	select {
	case out <- msg:
	case <-done:
	case <-time.After(time.Second):
	}
}
