package realtime

import (
	"context"
	"log/slog"
	"sync"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/user"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/pkg/errs"
)

// AdminOrdersTopic receives every order event addressed to administrators.
const AdminOrdersTopic = "admin_orders"

// sessionBufferSize bounds the per-session outbound queue. A session that
// cannot drain fast enough loses messages rather than stalling the hub.
const sessionBufferSize = 64

// CustomerTopic names the per-customer order topic.
func CustomerTopic(customerID kernel.UUID) string {
	return "customer_" + customerID.String()
}

// DeliveryTopic names the per-courier assignment topic.
func DeliveryTopic(deliveryPersonID kernel.UUID) string {
	return "delivery_" + deliveryPersonID.String()
}

// UserTopic names the direct topic bound to a session at authentication.
func UserTopic(userID kernel.UUID) string {
	return "user_" + userID.String()
}

// RoleTopic names the broadcast topic shared by everyone with a role.
func RoleTopic(role user.Role) string {
	return "role_" + role.String()
}

// Message is a named payload queued for delivery over a live connection.
type Message struct {
	Event   string
	Payload map[string]any
}

// Session is one live client connection known to the hub. It stays
// anonymous until authenticated and may not subscribe before that.
type Session struct {
	outbound chan Message

	authenticated bool
	userID        kernel.UUID
	role          user.Role
	closed        bool
}

// Outbound returns the channel the transport drains to the client.
// The hub closes it when the session is unregistered.
func (s *Session) Outbound() <-chan Message {
	return s.outbound
}

// Hub keeps the registry of live sessions and their topic memberships and
// fans published events out to every current member of a topic.
type Hub struct {
	mu          sync.RWMutex
	sessions    map[*Session]struct{}
	topics      map[string]map[*Session]struct{}
	credentials ports.CredentialService
	logger      *slog.Logger
}

// NewHub creates a hub that authenticates sessions with the given
// credential service.
func NewHub(credentials ports.CredentialService, logger *slog.Logger) *Hub {
	return &Hub{
		sessions:    make(map[*Session]struct{}),
		topics:      make(map[string]map[*Session]struct{}),
		credentials: credentials,
		logger:      logger.With("component", "realtime.hub"),
	}
}

// Register adds a new anonymous session to the hub.
func (h *Hub) Register() *Session {
	session := &Session{outbound: make(chan Message, sessionBufferSize)}

	h.mu.Lock()
	h.sessions[session] = struct{}{}
	h.mu.Unlock()

	return session
}

// Unregister removes the session from every topic and closes its outbound
// channel. Safe to call more than once.
func (h *Hub) Unregister(session *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if session.closed {
		return
	}
	session.closed = true

	delete(h.sessions, session)
	for topic, members := range h.topics {
		delete(members, session)
		if len(members) == 0 {
			delete(h.topics, topic)
		}
	}
	close(session.outbound)
}

// Authenticate verifies the token and binds the session to its user and
// role topics. A failed verification leaves the session anonymous.
func (h *Hub) Authenticate(session *Session, token string) (ports.Claims, error) {
	claims, err := h.credentials.Verify(token)
	if err != nil {
		return ports.Claims{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if session.closed {
		return ports.Claims{}, errs.NewAuthError("session is closed")
	}

	session.authenticated = true
	session.userID = claims.UserID
	session.role = claims.Role
	h.join(session, UserTopic(claims.UserID))
	h.join(session, RoleTopic(claims.Role))

	return claims, nil
}

// Subscribe adds the session to a topic. Subscribing twice is a no-op.
// Anonymous sessions are rejected.
func (h *Hub) Subscribe(session *Session, topic string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !session.authenticated || session.closed {
		return errs.NewAuthError("not authenticated")
	}

	h.join(session, topic)
	return nil
}

// SubscribeToOrders joins the order topic matching the session's role and
// returns the topic name: customers follow their own orders, couriers
// their assignments, admins everything.
func (h *Hub) SubscribeToOrders(session *Session) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !session.authenticated || session.closed {
		return "", errs.NewAuthError("not authenticated")
	}

	var topic string
	switch session.role {
	case user.RoleCustomer:
		topic = CustomerTopic(session.userID)
	case user.RoleDelivery:
		topic = DeliveryTopic(session.userID)
	case user.RoleAdmin:
		topic = AdminOrdersTopic
	default:
		return "", errs.NewValueIsInvalidError("role")
	}

	h.join(session, topic)
	return topic, nil
}

// Unsubscribe removes the session from a topic. Unknown memberships are
// ignored.
func (h *Hub) Unsubscribe(session *Session, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.topics[topic]
	if !ok {
		return
	}
	delete(members, session)
	if len(members) == 0 {
		delete(h.topics, topic)
	}
}

// Publish queues the message for every session currently subscribed to the
// topic. A topic with no subscribers is a silent no-op. Delivery per
// session is in publish order and at most once: a full outbound queue
// drops the message for that session only.
func (h *Hub) Publish(_ context.Context, topic, event string, payload map[string]any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for session := range h.topics[topic] {
		select {
		case session.outbound <- Message{Event: event, Payload: payload}:
		default:
			h.logger.Warn("dropping message for slow session",
				"topic", topic, "event", event, "userId", session.userID.String())
		}
	}
}

// join must be called with h.mu held for writing.
func (h *Hub) join(session *Session, topic string) {
	members, ok := h.topics[topic]
	if !ok {
		members = make(map[*Session]struct{})
		h.topics[topic] = members
	}
	members[session] = struct{}{}
}
