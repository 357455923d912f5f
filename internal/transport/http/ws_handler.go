package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sunnet-n/quiz-game/internal/domain"
)

const (
	wsReadLimit = 1 << 16
	wsIdleLimit = 2 * time.Minute
)

// WSHandler serves the websocket command channel. Every inbound message gets
// exactly one reply carrying the same requestId; the server never pushes.
type WSHandler struct {
	commands map[string]command
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(commands map[string]command, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		commands: commands,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type      string          `json:"type"`
	RequestID string          `json:"requestId"`
	Payload   json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId,omitempty"`
	Payload   any    `json:"payload"`
}

// ServeWS upgrades the connection and answers commands until the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleLimit))
		var in inboundMessage
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("ws read ended", "error", err)
			}
			return
		}
		if err := conn.WriteJSON(h.dispatch(r, in)); err != nil {
			h.logger.Warn("ws write failed", "error", err)
			return
		}
	}
}

func (h *WSHandler) dispatch(r *http.Request, in inboundMessage) outboundMessage {
	fail := func(err error) outboundMessage {
		return outboundMessage{Type: "error", RequestID: in.RequestID, Payload: errorBody(h.logger, r, err)}
	}

	cmd, ok := h.commands[in.Type]
	if !ok {
		return fail(domain.ErrInvalidRequest)
	}
	var req request
	if len(in.Payload) > 0 {
		if err := json.Unmarshal(in.Payload, &req); err != nil {
			return fail(domain.ErrInvalidRequest)
		}
	}
	resp, err := cmd(r.Context(), req)
	if err != nil {
		return fail(err)
	}
	return outboundMessage{Type: in.Type, RequestID: in.RequestID, Payload: resp}
}
