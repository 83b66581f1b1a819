package broadcast

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/AbhiGadhave11/realtime-polling-platform/internal/domain"
	"github.com/AbhiGadhave11/realtime-polling-platform/internal/metrics"
)

const (
	commandTimeout    = 5 * time.Second
	stopTimeout       = 10 * time.Second
	commandBufferSize = 256
)

// hubCmd is the command interface for the Hub actor.
type hubCmd interface{ isHubCmd() }

type baseHubCmd struct{}

func (baseHubCmd) isHubCmd() {}

type registerCmd struct {
	baseHubCmd
	connection   *websocket.Conn
	errorChannel chan error
}

type unregisterCmd struct {
	baseHubCmd
	connection *websocket.Conn
}

type publishCmd struct {
	baseHubCmd
	kind domain.EventKind
	data []byte
}

type clientCountCmd struct {
	baseHubCmd
	replyChannel chan int
}

type stopCmd struct {
	baseHubCmd
}

// envelope is the wire framing shared by every broadcast message.
// Clients filter by pollId themselves; there is no per-poll topic.
type envelope struct {
	Type   domain.EventKind `json:"type"`
	PollID string           `json:"pollId"`
	Data   any              `json:"data"`
}

// Hub owns the set of live subscriber connections and fans out poll
// events to all of them. Single goroutine + command channel (no
// mutexes): registrations, removals, and publishes are serialized, which
// gives each connection FIFO delivery in Publish order.
//
// Removing a client waits for its writer goroutine to exit, so an
// eviction that lands mid-write can stall the actor for up to the write
// deadline. Accepted tradeoff: the wait keeps writer teardown race-free,
// and the stall is bounded and rare.
type Hub struct {
	cmdCh      chan hubCmd
	clock      clockwork.Clock
	clients    map[*websocket.Conn]*clientWriter
	done       chan struct{}
	maxClients int
}

// NewHub creates the hub and starts its actor goroutine.
// maxClients caps concurrent connections (prevents resource exhaustion).
func NewHub(clock clockwork.Clock, maxClients int) *Hub {
	h := &Hub{
		cmdCh:      make(chan hubCmd, commandBufferSize),
		clock:      clock,
		clients:    make(map[*websocket.Conn]*clientWriter),
		done:       make(chan struct{}),
		maxClients: maxClients,
	}
	go h.run()
	return h
}

// Register adds a subscriber connection.
// Returns an error only if the client cap is reached or the hub is stuck.
func (h *Hub) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- registerCmd{connection: conn, errorChannel: errCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-timer.Chan():
		return fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a subscriber connection. Safe to call for
// connections that were already evicted.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.cmdCh <- unregisterCmd{connection: conn}
}

// Publish fans the event out to every registered connection.
// Fire-and-forget: a failed or slow connection is evicted without
// affecting delivery to the others, and nothing is reported back to the
// caller. There is no replay — connections that join later must pull a
// snapshot through the read API.
func (h *Hub) Publish(event domain.Event) {
	data, err := json.Marshal(envelope{
		Type:   event.Kind(),
		PollID: event.PollID().String(),
		Data:   event.Data(),
	})
	if err != nil {
		slog.Error("Failed to marshal broadcast event", "type", event.Kind(), "error", err)
		return
	}
	h.cmdCh <- publishCmd{kind: event.Kind(), data: data}
}

// ClientCount returns the number of connected subscribers.
// Returns -1 if the command times out.
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- clientCountCmd{replyChannel: replyCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-timer.Chan():
		slog.Warn("ClientCount timed out", "timeout", commandTimeout)
		return -1
	}
}

// Stop shuts down the hub, closing all client connections.
// Blocks until the hub goroutine has exited or the timeout is reached.
func (h *Hub) Stop() {
	h.cmdCh <- stopCmd{}

	timer := h.clock.NewTimer(stopTimeout)
	defer timer.Stop()

	select {
	case <-h.done:
		slog.Info("Hub stopped gracefully")
	case <-timer.Chan():
		slog.Warn("Hub stop timeout exceeded, forcing exit", "timeout", stopTimeout)
		metrics.HubStopTimeoutsTotal.Inc()
		close(h.done)
	}
}

func (h *Hub) run() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Hub panic recovered", "panic", r)
			metrics.HubPanicsTotal.Inc()
			h.closeAllClients("hub panic")
		}
	}()
	defer close(h.done)

	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			h.handleRegister(c)
		case unregisterCmd:
			h.handleUnregister(c.connection)
		case publishCmd:
			h.handlePublish(c)
		case clientCountCmd:
			c.replyChannel <- len(h.clients)
		case stopCmd:
			h.handleStop()
			return
		default:
			slog.Warn("Hub received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
		}
	}
}

func (h *Hub) handleRegister(c registerCmd) {
	if len(h.clients) >= h.maxClients {
		slog.Warn("Rejecting client: max clients reached", "max_clients", h.maxClients)
		c.connection.Close()
		c.errorChannel <- fmt.Errorf("max clients (%d) reached", h.maxClients)
		return
	}

	cw := newClientWriter(c.connection, h.clock)
	h.clients[c.connection] = cw

	metrics.HubConnectedClients.Set(float64(len(h.clients)))

	slog.Debug("Client registered", "total_clients", len(h.clients))
	c.errorChannel <- nil
}

func (h *Hub) handleUnregister(conn *websocket.Conn) {
	cw, exists := h.clients[conn]
	if !exists {
		return
	}

	cw.stop()
	delete(h.clients, conn)

	metrics.HubConnectedClients.Set(float64(len(h.clients)))

	slog.Debug("Client unregistered", "remaining_clients", len(h.clients))
}

func (h *Hub) handlePublish(c publishCmd) {
	metrics.EventsPublishedTotal.WithLabelValues(string(c.kind)).Inc()

	var slow []*websocket.Conn
	for conn, writer := range h.clients {
		select {
		case writer.sendChannel <- c.data:
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		slog.Warn("Disconnecting slow client")
		metrics.HubSlowClientsEvicted.Inc()
		h.handleUnregister(conn)
	}
}

func (h *Hub) handleStop() {
	slog.Info("Hub shutting down", "clients", len(h.clients))
	h.closeAllClients("Server shutting down")
}

// closeAllClients closes every client connection with the given reason.
// Used during panic recovery and graceful shutdown.
func (h *Hub) closeAllClients(reason string) {
	for conn, cw := range h.clients {
		cw.stopGraceful(reason)
		delete(h.clients, conn)
	}
	metrics.HubConnectedClients.Set(0)
}
