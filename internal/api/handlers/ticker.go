package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/CartagenesDev/cartagenes-finacias/internal/feed"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

// Ping/Pong settings
const (
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second
)

// TickerHandler streams quote snapshots to the marquee over WebSocket
// ⭐ SSOT: server-side WebSocket connections are handled here only
type TickerHandler struct {
	board    *feed.Board
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewTickerHandler creates a new ticker handler
func NewTickerHandler(board *feed.Board, log *logger.Logger) *TickerHandler {
	return &TickerHandler{
		board: board,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

// Stream sends the current snapshot, then every refreshed one until the client leaves
// GET /ws/ticker
func (h *TickerHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel := h.board.Subscribe()
	defer cancel()

	h.logger.WithField("subscribers", h.board.Subscribers()).Debug("Ticker client connected")

	// reader: only control frames are expected; any read error ends the stream
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if snapshot := h.board.Ticker(); len(snapshot.Quotes) > 0 {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(snapshot); err != nil {
			return
		}
	}

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case snapshot, ok := <-updates:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snapshot); err != nil {
				h.logger.WithError(err).Debug("Ticker write failed")
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
