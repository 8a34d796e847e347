package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"team-hub.backend/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Hub owns the connected websocket clients, the presence tracker and the
// bus subscription. One hub runs per server process.
type Hub struct {
	sync     *Synchronizer
	presence *PresenceTracker
	bus      Bus

	mu      sync.RWMutex
	clients map[*Client]bool
}

func NewHub(sync *Synchronizer, presence *PresenceTracker, bus Bus) *Hub {
	return &Hub{
		sync:     sync,
		presence: presence,
		bus:      bus,
		clients:  make(map[*Client]bool),
	}
}

// Presence exposes the tracker for handlers and tests.
func (h *Hub) Presence() *PresenceTracker {
	return h.presence
}

// Run subscribes to the change feed and dispatches events to every
// connected client until the context is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	events, cancel, err := h.bus.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			h.dispatch(ctx, ev)
		}
	}
}

// dispatch routes one change event: each session re-derives its state, and
// clients watching the affected team's chat get a change frame so they can
// refetch the message log.
func (h *Hub) dispatch(ctx context.Context, ev ChangeEvent) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if ev.Table == TableTeamChats {
			if c.session.CurrentTeam() == ev.TeamID {
				c.sendFrame(Frame{Type: FrameChange, Payload: ev})
			}
			continue
		}

		frames, err := h.sync.Apply(ctx, c.session, ev)
		if err != nil {
			logger.Error(ctx, "synchronizer apply failed",
				zap.String("table", ev.Table),
				zap.String("user_id", c.session.UserID.String()),
				zap.Error(err))
			continue
		}
		for _, f := range frames {
			c.sendFrame(f)
		}
	}
}

// Register attaches a client, pushes its bootstrap state and the presence
// snapshot of its selected team.
func (h *Hub) Register(ctx context.Context, c *Client) error {
	frames, err := h.sync.Bootstrap(ctx, c.session)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	for _, f := range frames {
		c.sendFrame(f)
	}
	if current := c.session.CurrentTeam(); current != uuid.Nil {
		c.sendFrame(Frame{Type: FramePresenceSync, Payload: h.presence.Snapshot(current)})
	}
	return nil
}

// Unregister detaches a client and broadcasts its presence leave.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	h.mu.Unlock()

	c.sendMu.Lock()
	c.closed = true
	close(c.send)
	c.sendMu.Unlock()

	if teamID := c.session.CurrentTeam(); teamID != uuid.Nil {
		h.presence.Leave(teamID, c.session.UserID)
		h.broadcastToTeam(teamID, Frame{Type: FramePresenceLeave, Payload: map[string]string{
			"userId": c.session.UserID.String(),
		}})
	}
}

// broadcastToTeam pushes a frame to every client whose current selection is
// the given team.
func (h *Hub) broadcastToTeam(teamID uuid.UUID, f Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.session.CurrentTeam() == teamID {
			c.sendFrame(f)
		}
	}
}

// Client is one websocket connection.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session *Session

	sendMu    sync.Mutex
	closed    bool
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, session *Session) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		session: session,
	}
}

// Session returns the client's server-side state mirror.
func (c *Client) Session() *Session {
	return c.session
}

// Preselect switches the session to the given team right after bootstrap.
// A team the user does not belong to is ignored.
func (c *Client) Preselect(ctx context.Context, teamID uuid.UUID) error {
	frames, err := c.hub.sync.Select(ctx, c.session, teamID)
	if err != nil {
		return err
	}
	for _, f := range frames {
		c.sendFrame(f)
	}
	if frames != nil && teamID != uuid.Nil {
		c.sendFrame(Frame{Type: FramePresenceSync, Payload: c.hub.presence.Snapshot(teamID)})
	}
	return nil
}

func (c *Client) sendFrame(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		logger.Error(context.Background(), "failed to marshal frame", zap.Error(err))
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		// Slow consumer; drop the connection rather than block the hub.
		c.closeOnce.Do(func() { _ = c.conn.Close() })
	}
}

// inboundFrame is a client-to-server message.
type inboundFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client frame types.
const (
	inboundPresenceTrack = "presence.track"
	inboundTeamSelect    = "team.select"
)

// ReadPump pumps messages from the websocket connection to the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.closeOnce.Do(func() { _ = c.conn.Close() })
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx := context.Background()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug(ctx, "websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		c.handleInbound(ctx, frame)
	}
}

func (c *Client) handleInbound(ctx context.Context, frame inboundFrame) {
	switch frame.Type {
	case inboundPresenceTrack:
		var payload struct {
			Path string `json:"path"`
		}
		if err := json.Unmarshal(frame.Payload, &payload); err != nil || payload.Path == "" {
			return
		}
		teamID := c.session.CurrentTeam()
		if teamID == uuid.Nil {
			return
		}
		rec := c.hub.presence.Track(teamID, c.session.UserID, payload.Path)
		c.hub.broadcastToTeam(teamID, Frame{Type: FramePresenceJoin, Payload: rec})

	case inboundTeamSelect:
		var payload struct {
			TeamID uuid.UUID `json:"teamId"`
		}
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			return
		}
		prev := c.session.CurrentTeam()
		frames, err := c.hub.sync.Select(ctx, c.session, payload.TeamID)
		if err != nil {
			logger.Error(ctx, "team select failed", zap.Error(err))
			return
		}
		if frames == nil {
			return
		}
		// Presence moves with the selection: leave the old channel, sync
		// the new one.
		if prev != uuid.Nil && prev != payload.TeamID {
			c.hub.presence.Leave(prev, c.session.UserID)
			c.hub.broadcastToTeam(prev, Frame{Type: FramePresenceLeave, Payload: map[string]string{
				"userId": c.session.UserID.String(),
			}})
		}
		for _, f := range frames {
			c.sendFrame(f)
		}
		if payload.TeamID != uuid.Nil {
			c.sendFrame(Frame{Type: FramePresenceSync, Payload: c.hub.presence.Snapshot(payload.TeamID)})
		}
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.closeOnce.Do(func() { _ = c.conn.Close() })
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
