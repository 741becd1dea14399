package websocket

import "time"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	// ActionVisible is sent when the mini-app returns to the foreground.
	ActionVisible Action = "visible"
	ActionPing    Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError     Event = "error"
	EventRefreshed Event = "refreshed"
	EventPong      Event = "pong"
)

// RefreshedEvent is pushed after a background pass has rewritten the caches.
// Failed lists resources whose fetch failed, keyed by resource name.
type RefreshedEvent struct {
	Event      Event             `json:"event"`
	Failed     map[string]string `json:"failed,omitempty"`
	FinishedAt time.Time         `json:"finished_at"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
