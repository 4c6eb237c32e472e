// Package ws exposes the realtime hub over a WebSocket endpoint. Frames
// are JSON envelopes {"event": ..., "data": ...} mirroring the protocol
// the web clients already speak.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// replyBufferSize bounds direct replies (pong, acks, errors) queued for
// one connection.
const replyBufferSize = 16

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outboundFrame struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data,omitempty"`
}

// Handler upgrades HTTP requests to WebSocket connections and bridges
// them into the realtime hub.
type Handler struct {
	hub                   *realtime.Hub
	updateLocationHandler commands.UpdateLocationCommandHandler
	upgrader              websocket.Upgrader
	logger                *slog.Logger
}

// NewHandler creates a WebSocket handler publishing through the given hub.
func NewHandler(
	hub *realtime.Hub,
	updateLocationHandler commands.UpdateLocationCommandHandler,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		hub:                   hub,
		updateLocationHandler: updateLocationHandler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws.handler"),
	}
}

// ServeWS handles GET /ws - upgrades the connection and serves the client
// protocol until the peer disconnects.
func (h *Handler) ServeWS(ctx echo.Context) error {
	conn, err := h.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	session := h.hub.Register()
	client := &client{
		handler: h,
		conn:    conn,
		session: session,
		replies: make(chan realtime.Message, replyBufferSize),
	}

	go client.writePump()
	client.readLoop(ctx.Request().Context())
	return nil
}

// client is the per-connection state. readLoop is the only writer of
// claims, so no locking is needed.
type client struct {
	handler       *Handler
	conn          *websocket.Conn
	session       *realtime.Session
	replies       chan realtime.Message
	claims        ports.Claims
	authenticated bool
}

// writePump serializes all outbound traffic for the connection: hub
// fan-out and direct replies. It owns the connection for writing.
func (c *client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case message, open := <-c.session.Outbound():
			if !open {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(outboundFrame{Event: message.Event, Data: message.Payload}); err != nil {
				return
			}
		case message := <-c.replies:
			if err := c.conn.WriteJSON(outboundFrame{Event: message.Event, Data: message.Payload}); err != nil {
				return
			}
		}
	}
}

// readLoop consumes client frames until the connection drops, then tears
// the session down. Unregistering closes the outbound channel, which in
// turn stops the write pump.
func (c *client) readLoop(ctx context.Context) {
	defer c.handler.hub.Unregister(c.session)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.replyError("Invalid message")
			continue
		}

		switch frame.Event {
		case "authenticate":
			c.handleAuthenticate(frame.Data)
		case "subscribe_to_orders":
			c.handleSubscribeToOrders()
		case "join_room":
			c.handleJoinRoom(frame.Data)
		case "leave_room":
			c.handleLeaveRoom(frame.Data)
		case "ping":
			c.reply("pong", nil)
		case "location_update":
			c.handleLocationUpdate(ctx, frame.Data)
		default:
			c.replyError("Unknown event: " + frame.Event)
		}
	}
}

func (c *client) handleAuthenticate(data json.RawMessage) {
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Token == "" {
		c.reply("authentication_error", map[string]any{"message": "Invalid token"})
		return
	}

	claims, err := c.handler.hub.Authenticate(c.session, payload.Token)
	if err != nil {
		c.reply("authentication_error", map[string]any{"message": "Invalid token"})
		return
	}

	c.claims = claims
	c.authenticated = true
	c.reply("authenticated", map[string]any{
		"message": "Successfully authenticated",
		"user": map[string]any{
			"id":   claims.UserID.String(),
			"role": claims.Role.String(),
		},
	})
}

func (c *client) handleSubscribeToOrders() {
	if _, err := c.handler.hub.SubscribeToOrders(c.session); err != nil {
		c.replyError("Not authenticated")
		return
	}
	c.reply("subscribed", map[string]any{"message": "Subscribed to order updates"})
}

func (c *client) handleJoinRoom(data json.RawMessage) {
	room, ok := roomFrom(data)
	if !ok {
		c.replyError("Invalid room")
		return
	}

	if err := c.handler.hub.Subscribe(c.session, room); err != nil {
		c.replyError("Not authenticated")
		return
	}
	c.reply("joined_room", map[string]any{"room": room})
}

func (c *client) handleLeaveRoom(data json.RawMessage) {
	room, ok := roomFrom(data)
	if !ok {
		c.replyError("Invalid room")
		return
	}

	c.handler.hub.Unsubscribe(c.session, room)
	c.reply("left_room", map[string]any{"room": room})
}

func (c *client) handleLocationUpdate(ctx context.Context, data json.RawMessage) {
	if !c.authenticated {
		c.replyError("Not authenticated")
		return
	}

	var payload struct {
		OrderID   string  `json:"orderId"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		c.replyError("Invalid location payload")
		return
	}

	orderID, err := kernel.UUIDFromString(payload.OrderID)
	if err != nil {
		c.replyError("Invalid order id")
		return
	}
	position, err := kernel.NewGeoPoint(payload.Latitude, payload.Longitude)
	if err != nil {
		c.replyError("Invalid coordinates")
		return
	}

	cmd, err := commands.NewUpdateLocationCommand(
		services.Actor{ID: c.claims.UserID, Role: c.claims.Role},
		orderID,
		position,
	)
	if err != nil {
		c.replyError("Invalid location payload")
		return
	}

	if err := c.handler.updateLocationHandler.Handle(ctx, cmd); err != nil {
		c.handler.logger.WarnContext(ctx, "location update rejected",
			"orderId", orderID.String(), "error", err)
		c.replyError("Failed to update location")
		return
	}
}

func (c *client) reply(event string, payload map[string]any) {
	select {
	case c.replies <- realtime.Message{Event: event, Payload: payload}:
	default:
	}
}

func (c *client) replyError(message string) {
	c.reply("error", map[string]any{"message": message})
}

func roomFrom(data json.RawMessage) (string, bool) {
	var payload struct {
		Room string `json:"room"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Room == "" {
		return "", false
	}
	return payload.Room, true
}
