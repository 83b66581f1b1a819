package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Poll widgets embed anywhere
	},
}

// handleWebSocket upgrades the connection and registers it with the hub.
// Every subscriber receives every poll's events; filtering happens
// client-side by pollId.
func (s *Server) handleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade failure writes its own HTTP response
		return nil
	}

	if err := s.hub.Register(conn); err != nil {
		slog.Warn("rejecting websocket connection", "error", err)
		conn.Close()
		return nil
	}

	// Read pump: subscribers never send data, but reading is required to
	// process pong frames and detect the close handshake.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.hub.Unregister(conn)
	return nil
}
